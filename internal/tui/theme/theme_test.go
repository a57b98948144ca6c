package theme

import (
	"slices"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func isHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f' || r >= 'A' && r <= 'F') {
			return false
		}
	}
	return true
}

func TestLoad_EmbeddedThemes(t *testing.T) {
	for _, name := range Available() {
		t.Run(name, func(t *testing.T) {
			th, err := Load(name)
			if err != nil {
				t.Fatalf("Load(%q): %v", name, err)
			}
			if th.Name != name {
				t.Errorf("Name = %q, want %q", th.Name, name)
			}
			if !isHexColor(th.Today) || th.Today == th.Bg {
				t.Errorf("Today = %q, want a hex color distinct from bg %q", th.Today, th.Bg)
			}
			if len(th.Events) < 6 {
				t.Fatalf("Events = %d colors, want at least 6", len(th.Events))
			}
			seen := map[string]bool{}
			for i, c := range th.Events {
				if !isHexColor(c) {
					t.Errorf("Events[%d] = %q, want a hex color", i, c)
				}
				if seen[c] {
					t.Errorf("Events[%d] = %q repeats an earlier color", i, c)
				}
				seen[c] = true
			}
		})
	}
}

func TestLoad_Fallbacks(t *testing.T) {
	for _, name := range []string{"", "nonexistent", "MOCHA"} {
		th, err := Load(name)
		if err != nil {
			t.Fatalf("Load(%q): %v", name, err)
		}
		if th.Name != "mocha" {
			t.Errorf("Load(%q).Name = %q, want mocha", name, th.Name)
		}
	}
	if !IsAvailable("Latte") || IsAvailable("solarized") {
		t.Error("IsAvailable should match case-insensitively and reject unknown names")
	}
}

func TestLoad_ModalOverrides(t *testing.T) {
	tests := []struct {
		theme string
		field func(*Theme) string
		want  func(*Theme) string
	}{
		{"mocha", func(t *Theme) string { return t.ModalBorder }, func(*Theme) string { return "#b4befe" }},
		{"mocha", func(t *Theme) string { return t.Highlight }, func(*Theme) string { return "#45475a" }},
		{"latte", func(t *Theme) string { return t.TextMuted }, func(*Theme) string { return "#6c6f85" }},
		{"frappe", func(t *Theme) string { return t.ModalBorder }, func(t *Theme) string { return t.Accent }},
		{"frappe", func(t *Theme) string { return t.BaseBg }, func(t *Theme) string { return t.BgHighlight }},
		{"light", func(t *Theme) string { return t.TextPrimary }, func(t *Theme) string { return t.Fg }},
	}
	for _, tt := range tests {
		th, err := Load(tt.theme)
		if err != nil {
			t.Fatalf("Load(%q): %v", tt.theme, err)
		}
		if got, want := tt.field(th), tt.want(th); got != want {
			t.Errorf("%s: got %q, want %q", tt.theme, got, want)
		}
	}
}

func TestPalette_TextOnColors(t *testing.T) {
	for _, name := range []string{"mocha", "light"} {
		t.Run(name, func(t *testing.T) {
			th, err := Load(name)
			if err != nil {
				t.Fatalf("Load(%q): %v", name, err)
			}
			p := NewPalette(th)
			if p.TextOnSelection != lipgloss.Color(th.Fg) {
				t.Errorf("TextOnSelection = %q, want fg %q", p.TextOnSelection, th.Fg)
			}
			if p.TextOnToday != lipgloss.Color(th.Bg) {
				t.Errorf("TextOnToday = %q, want bg %q", p.TextOnToday, th.Bg)
			}
			if p.Today != Color(th.Today) {
				t.Errorf("Today = %q, want %q", p.Today, th.Today)
			}
		})
	}
}

func TestEventColors_ReturnsCopy(t *testing.T) {
	th, err := Load("mocha")
	if err != nil {
		t.Fatalf("Load(mocha): %v", err)
	}
	colors := th.EventColors()
	if !slices.Equal(colors, th.Events) {
		t.Fatalf("EventColors() = %v, want %v", colors, th.Events)
	}
	colors[0] = "mutated"
	if th.Events[0] == "mutated" {
		t.Error("EventColors() must return a copy")
	}
}

func TestApplyDefaults(t *testing.T) {
	th := &Theme{Bg: "#000000", BgSelection: "#222222", Accent: "#123456", Fg: "#ffffff", FgMuted: "#888888"}
	th.applyDefaults()

	if len(th.Events) != 1 || th.Events[0] != th.Accent {
		t.Errorf("Events = %v, want [accent]", th.Events)
	}
	if th.BaseBg != th.Bg {
		t.Errorf("BaseBg = %q, want bg", th.BaseBg)
	}
	if th.ModalBorder != th.Accent || th.TextPrimary != th.Fg || th.TextMuted != th.FgMuted {
		t.Errorf("modal fields not defaulted: %+v", th)
	}
	if th.Highlight != th.BgSelection {
		t.Errorf("Highlight = %q, want bg_selection", th.Highlight)
	}
}
