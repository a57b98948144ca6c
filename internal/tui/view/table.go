package view

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// GridViewState holds data needed to render a calendar grid.
type GridViewState struct {
	InnerW       int
	GridH        int
	Headers      []string
	HeaderStyles []lipgloss.Style
	Rows         [][]string
	CellStyles   [][]lipgloss.Style
	RowBorders   bool // draw separators between week rows
	BorderStyle  lipgloss.Style
	Bg           lipgloss.Color
}

// RenderGrid renders a bordered lipgloss table filling the grid box.
func RenderGrid(state GridViewState) string {
	if state.GridH <= 0 || state.InnerW <= 0 {
		return ""
	}

	t := table.New().
		Width(max(state.InnerW-2, 0)).
		Border(lipgloss.RoundedBorder()).
		BorderHeader(len(state.Headers) > 0).
		BorderColumn(true).
		BorderRow(state.RowBorders).
		BorderStyle(state.BorderStyle).
		Rows(state.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleAt(state.HeaderStyles, col)
			}
			if row < 0 || row >= len(state.CellStyles) {
				return lipgloss.NewStyle()
			}
			return styleAt(state.CellStyles[row], col)
		})
	if len(state.Headers) > 0 {
		t = t.Headers(state.Headers...)
	}

	return PlaceBox(state.InnerW, state.GridH, lipgloss.Top, t.Render(), state.Bg)
}

func styleAt(styles []lipgloss.Style, i int) lipgloss.Style {
	if i < 0 || i >= len(styles) {
		return lipgloss.NewStyle()
	}
	return styles[i]
}
