package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PlaceBox renders content in a lipgloss.Place box with background fill.
func PlaceBox(w, h int, vAlign lipgloss.Position, content string, bg lipgloss.Color) string {
	placed := lipgloss.Place(w, h, lipgloss.Left, vAlign, content,
		lipgloss.WithWhitespaceBackground(bg))
	return PadLinesWithBackground(placed, w, h, bg)
}

// PadLinesWithBackground pads content to width/height with a background color.
func PadLinesWithBackground(content string, width, height int, bg lipgloss.Color) string {
	if width <= 0 || height <= 0 {
		return content
	}
	lines := strings.Split(content, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	lines = lines[:height]

	pad := lipgloss.NewStyle().Background(bg)
	for i, line := range lines {
		if w := lipgloss.Width(line); w < width {
			lines[i] = line + pad.Render(strings.Repeat(" ", width-w))
		}
	}
	return strings.Join(lines, "\n")
}

// RenderModalOverlay centers modalContent and splices it over the base content.
func RenderModalOverlay(baseContent, modalContent string, width, height int, modalBg lipgloss.Color) string {
	modalLines := strings.Split(modalContent, "\n")
	modalWidth := 0
	for _, line := range modalLines {
		modalWidth = max(modalWidth, lipgloss.Width(line))
	}
	if modalWidth == 0 {
		return baseContent
	}
	modalWidth = min(modalWidth, width)
	modalHeight := min(len(modalLines), height)

	top := max((height-modalHeight)/2, 0)
	left := max((width-modalWidth)/2, 0)

	pad := lipgloss.NewStyle().Background(modalBg)
	bgSeq := backgroundSeq(modalBg)
	for i, line := range modalLines[:modalHeight] {
		w := lipgloss.Width(line)
		if w > modalWidth {
			line = ansi.Cut(line, 0, modalWidth)
		} else if w < modalWidth {
			line += pad.Render(strings.Repeat(" ", modalWidth-w))
		}
		if bgSeq != "" {
			line = strings.ReplaceAll(line, ansi.ResetStyle, ansi.ResetStyle+bgSeq)
		}
		modalLines[i] = line + ansi.ResetStyle
	}

	baseLines := strings.Split(PadLinesWithBackground(baseContent, width, height, lipgloss.Color("")), "\n")
	for row := top; row < top+modalHeight && row < len(baseLines); row++ {
		base := baseLines[row]
		baseLines[row] = ansi.Cut(base, 0, left) + modalLines[row-top] + ansi.Cut(base, left+modalWidth, width)
	}
	return strings.Join(baseLines, "\n")
}

// backgroundSeq returns the background escape sequence for a hex color.
func backgroundSeq(bg lipgloss.Color) string {
	if bg == "" {
		return ""
	}
	return ansi.Style{}.BackgroundColor(ansi.HexColor(string(bg))).String()
}

// Truncate shortens s to width cells, marking the cut with an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}
