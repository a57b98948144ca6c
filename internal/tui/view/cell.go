package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Chip is one event line inside a day cell.
type Chip struct {
	Text  string
	Style lipgloss.Style
}

// CellState describes a day cell: a title line followed by slot lines.
// Nil chips are empty slots and keep multi-day events on the same row
// across neighbouring cells.
type CellState struct {
	Title      string
	TitleStyle lipgloss.Style
	Chips      []*Chip
	Width      int
	Lines      int // total lines including the title
	More       func(hidden int) string
	MoreStyle  lipgloss.Style
}

// RenderCell renders a cell to exactly Lines lines. When the chips do not
// fit, the last line collapses the rest into a "more" label.
func RenderCell(state CellState) string {
	if state.Lines <= 0 || state.Width <= 0 {
		return ""
	}

	lines := []string{state.TitleStyle.Render(Truncate(state.Title, state.Width))}
	chips := trimTrailingEmpty(state.Chips)
	room := state.Lines - 1

	shown := chips
	hidden := 0
	if len(chips) > room {
		shown = chips[:max(room-1, 0)]
		for _, c := range chips[len(shown):] {
			if c != nil {
				hidden++
			}
		}
	}

	for _, c := range shown {
		if c == nil {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, c.Style.Width(state.Width).Render(Truncate(c.Text, state.Width)))
	}
	if hidden > 0 && room > 0 && state.More != nil {
		lines = append(lines, state.MoreStyle.Render(Truncate(state.More(hidden), state.Width)))
	}

	for len(lines) < state.Lines {
		lines = append(lines, "")
	}
	return strings.Join(lines[:state.Lines], "\n")
}

func trimTrailingEmpty(chips []*Chip) []*Chip {
	n := len(chips)
	for n > 0 && chips[n-1] == nil {
		n--
	}
	return chips[:n]
}
