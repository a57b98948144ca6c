package view

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestRenderGridIncludesHeaderAndCells(t *testing.T) {
	state := GridViewState{
		InnerW:       30,
		GridH:        8,
		Headers:      []string{"Sun", "Mon"},
		HeaderStyles: []lipgloss.Style{lipgloss.NewStyle(), lipgloss.NewStyle()},
		Rows:         [][]string{{"1", "2"}},
		CellStyles:   [][]lipgloss.Style{{lipgloss.NewStyle(), lipgloss.NewStyle()}},
		BorderStyle:  lipgloss.NewStyle(),
	}

	out := ansi.Strip(RenderGrid(state))
	for _, want := range []string{"Sun", "Mon", "1", "2"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
	if got := len(strings.Split(out, "\n")); got != state.GridH {
		t.Errorf("got %d lines, want %d", got, state.GridH)
	}
}

func TestRenderGridEmptyBox(t *testing.T) {
	if got := RenderGrid(GridViewState{InnerW: 10, GridH: 0}); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestRenderCell(t *testing.T) {
	more := func(n int) string { return fmt.Sprintf("+%d more", n) }
	chip := func(s string) *Chip { return &Chip{Text: s} }

	tests := []struct {
		name  string
		chips []*Chip
		lines int
		want  []string
	}{
		{
			name:  "fits",
			chips: []*Chip{chip("a"), chip("b")},
			lines: 4,
			want:  []string{"3", "a", "b", ""},
		},
		{
			name:  "empty slot keeps row",
			chips: []*Chip{nil, chip("b")},
			lines: 3,
			want:  []string{"3", "", "b"},
		},
		{
			name:  "trailing empty slots do not overflow",
			chips: []*Chip{chip("a"), nil, nil, nil},
			lines: 2,
			want:  []string{"3", "a"},
		},
		{
			name:  "overflow collapses into more",
			chips: []*Chip{chip("a"), chip("b"), nil, chip("c")},
			lines: 3,
			want:  []string{"3", "a", "+2 more"},
		},
		{
			name:  "title only",
			chips: []*Chip{chip("a")},
			lines: 1,
			want:  []string{"3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RenderCell(CellState{Title: "3", Chips: tt.chips, Width: 8, Lines: tt.lines, More: more})
			got := strings.Split(ansi.Strip(out), "\n")
			if len(got) != len(tt.want) {
				t.Fatalf("got %d lines %q, want %d", len(got), got, len(tt.want))
			}
			for i := range got {
				if strings.TrimRight(got[i], " ") != tt.want[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("standup meeting", 8); lipgloss.Width(got) > 8 || !strings.HasSuffix(got, "…") {
		t.Errorf("Truncate() = %q", got)
	}
	if got := Truncate("short", 8); got != "short" {
		t.Errorf("Truncate() = %q, want unchanged", got)
	}
	if got := Truncate("x", 0); got != "" {
		t.Errorf("Truncate() = %q, want empty", got)
	}
}

func TestDayHeaders(t *testing.T) {
	start := time.Date(2023, 2, 5, 0, 0, 0, 0, time.UTC)
	days := []time.Time{start, start.AddDate(0, 0, 1), start.AddDate(0, 0, 2)}
	today := time.Date(2023, 2, 6, 15, 0, 0, 0, time.UTC)

	labels, isToday := DayHeaders(days, today, true)
	want := []string{"Sun 5", "Mon 6", "Tue 7"}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("labels[%d] = %q, want %q", i, labels[i], want[i])
		}
	}
	if isToday[0] || !isToday[1] || isToday[2] {
		t.Errorf("isToday = %v, want only Monday", isToday)
	}

	short, _ := DayHeaders(days[:1], today, false)
	if short[0] != "Sun" {
		t.Errorf("short label = %q, want Sun", short[0])
	}
}

func TestRenderModalOverlayCenters(t *testing.T) {
	base := strings.Repeat(strings.Repeat(".", 10)+"\n", 4) + strings.Repeat(".", 10)
	out := RenderModalOverlay(base, "XX", 10, 5, "")
	lines := strings.Split(ansi.Strip(out), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5", len(lines))
	}
	if lines[2] != "....XX...." {
		t.Errorf("middle line = %q", lines[2])
	}
	if lines[0] != ".........." {
		t.Errorf("first line = %q", lines[0])
	}
}

func TestRenderDetailRowsSkipsEmpty(t *testing.T) {
	out := ansi.Strip(RenderDetailRows([]DetailRow{
		{Label: "Location", Value: "Room 1"},
		{Label: "Labels", Value: ""},
		{Value: "notes"},
	}, ModalStyles{}))
	if out != "Location: Room 1\nnotes" {
		t.Errorf("got %q", out)
	}
}

func TestRenderPlaceholder(t *testing.T) {
	if got := Render(ViewState{EmptyPlaceholder: "wait"}); got != "wait" {
		t.Errorf("got %q", got)
	}
	if got := Render(ViewState{Width: 3, Height: 1, BaseContent: "abc"}); got != "abc" {
		t.Errorf("got %q", got)
	}
}
