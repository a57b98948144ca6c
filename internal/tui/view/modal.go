package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ModalStyles groups the styles needed to render the detail modal.
type ModalStyles struct {
	ModalStyle       lipgloss.Style
	ModalHeaderStyle lipgloss.Style
	ModalTitleStyle  lipgloss.Style
	ModalBodyStyle   lipgloss.Style
	ModalLabelStyle  lipgloss.Style
	ModalFooterStyle lipgloss.Style
}

// DetailRow is one labelled line of the detail modal. An empty label
// renders the value alone.
type DetailRow struct {
	Label string
	Value string
}

// RenderModalFrame renders a modal with the provided title, body, and footer.
func RenderModalFrame(title, body, footer string, styles ModalStyles) string {
	var b strings.Builder

	b.WriteString(styles.ModalHeaderStyle.Render(styles.ModalTitleStyle.Render(title)))
	if body != "" {
		b.WriteString("\n\n")
		b.WriteString(body)
	}
	if footer != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.ModalFooterStyle.Render(footer))
	}

	return styles.ModalStyle.Render(b.String())
}

// RenderDetailRows renders label/value pairs, skipping empty values.
func RenderDetailRows(rows []DetailRow, styles ModalStyles) string {
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		if r.Value == "" {
			continue
		}
		if r.Label == "" {
			lines = append(lines, styles.ModalBodyStyle.Render(r.Value))
			continue
		}
		lines = append(lines, styles.ModalLabelStyle.Render(r.Label+": ")+styles.ModalBodyStyle.Render(r.Value))
	}
	return strings.Join(lines, "\n")
}
