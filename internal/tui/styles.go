// Package tui provides the terminal calendar panel for calpanel.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/calpanel/internal/tui/theme"
	"github.com/javiermolinar/calpanel/internal/tui/view"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	colorBg     lipgloss.Color
	colorFg     lipgloss.Color
	colorMuted  lipgloss.Color
	colorAccent lipgloss.Color

	// Toolbar
	TitleStyle      lipgloss.Style
	ButtonStyle     lipgloss.Style
	ViewTabStyle    lipgloss.Style
	ViewTabActive   lipgloss.Style
	ViewTabDisabled lipgloss.Style

	// Grid
	DayHeaderStyle      lipgloss.Style
	DayHeaderTodayStyle lipgloss.Style
	DayNumberStyle      lipgloss.Style
	DayNumberTodayStyle lipgloss.Style
	DayNumberOtherStyle lipgloss.Style // days outside the displayed month
	CursorDayStyle      lipgloss.Style
	CellStyle           lipgloss.Style
	MoreStyle           lipgloss.Style
	BorderStyle         lipgloss.Style

	// Agenda and year
	AgendaDayStyle  lipgloss.Style
	AgendaTimeStyle lipgloss.Style
	MonthNameStyle  lipgloss.Style
	CountStyle      lipgloss.Style

	// Footer
	StatusStyle  lipgloss.Style
	WarningStyle lipgloss.Style
	HelpStyle    lipgloss.Style
	EmptyStyle   lipgloss.Style

	// Detail modal
	ModalStyle       lipgloss.Style
	ModalBgColor     lipgloss.Color
	ModalHeaderStyle lipgloss.Style
	ModalTitleStyle  lipgloss.Style
	ModalBodyStyle   lipgloss.Style
	ModalLabelStyle  lipgloss.Style
	ModalFooterStyle lipgloss.Style

	// App container
	AppStyle lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)
	s := &Styles{
		palette:     p,
		colorBg:     p.Bg,
		colorFg:     p.Fg,
		colorMuted:  p.FgMuted,
		colorAccent: p.Accent,
	}

	base := lipgloss.NewStyle().Foreground(p.Fg).Background(p.Bg)

	s.TitleStyle = base.Bold(true).Foreground(p.Accent)
	s.ButtonStyle = base.Padding(0, 1).Background(p.BgHighlight)
	s.ViewTabStyle = base.Padding(0, 1).Foreground(p.FgMuted)
	s.ViewTabActive = base.Padding(0, 1).Bold(true).
		Background(p.Accent).
		Foreground(p.TextOnAccent)
	s.ViewTabDisabled = s.ViewTabStyle.Strikethrough(true)

	s.DayHeaderStyle = base.Bold(true).Align(lipgloss.Center)
	s.DayHeaderTodayStyle = s.DayHeaderStyle.Foreground(p.Today)
	s.DayNumberStyle = base.Bold(true)
	s.DayNumberTodayStyle = lipgloss.NewStyle().Bold(true).
		Background(p.Today).
		Foreground(p.TextOnToday)
	s.DayNumberOtherStyle = base.Foreground(p.FgMuted)
	s.CursorDayStyle = lipgloss.NewStyle().Bold(true).
		Background(p.BgSelection).
		Foreground(p.TextOnSelection)
	s.CellStyle = base.Align(lipgloss.Left)
	s.MoreStyle = base.Italic(true).Foreground(p.FgMuted)
	s.BorderStyle = lipgloss.NewStyle().Foreground(p.Accent).Background(p.Bg)

	s.AgendaDayStyle = base.Bold(true).Foreground(p.Accent)
	s.AgendaTimeStyle = base.Foreground(p.FgMuted)
	s.MonthNameStyle = base.Bold(true)
	s.CountStyle = base.Foreground(p.FgMuted)

	s.StatusStyle = base
	s.WarningStyle = base.Foreground(p.Warning)
	s.HelpStyle = base.Foreground(p.FgMuted)
	s.EmptyStyle = base.Foreground(p.FgMuted).Italic(true)

	s.ModalBgColor = p.Modal.Bg
	s.ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Modal.Border).
		BorderBackground(p.Modal.Bg).
		Background(p.Modal.Bg).
		Foreground(p.Modal.Text).
		Padding(1, 2).
		Width(56)
	s.ModalHeaderStyle = lipgloss.NewStyle().Background(p.Modal.Bg)
	s.ModalTitleStyle = lipgloss.NewStyle().Bold(true).
		Foreground(p.Modal.Border).
		Background(p.Modal.Bg)
	s.ModalBodyStyle = lipgloss.NewStyle().
		Foreground(p.Modal.Text).
		Background(p.Modal.Bg)
	s.ModalLabelStyle = lipgloss.NewStyle().Bold(true).
		Foreground(p.Modal.Muted).
		Background(p.Modal.Bg)
	s.ModalFooterStyle = lipgloss.NewStyle().
		Foreground(p.Modal.Muted).
		Background(p.Modal.Bg)

	s.AppStyle = lipgloss.NewStyle().Background(p.Bg)

	return s
}

// EventStyle returns the chip style for an event color.
func (s *Styles) EventStyle(color string, selected bool) lipgloss.Style {
	bg := s.palette.EventBg(color)
	if selected {
		bg = s.palette.EventBgAlt(color)
	}
	st := lipgloss.NewStyle().Background(bg).Foreground(s.palette.EventFg(color))
	if selected {
		st = st.Bold(true).Underline(true)
	}
	return st
}

// ModalStyles returns the styles the view package needs for the modal.
func (s *Styles) ModalStyles() view.ModalStyles {
	return view.ModalStyles{
		ModalStyle:       s.ModalStyle,
		ModalHeaderStyle: s.ModalHeaderStyle,
		ModalTitleStyle:  s.ModalTitleStyle,
		ModalBodyStyle:   s.ModalBodyStyle,
		ModalLabelStyle:  s.ModalLabelStyle,
		ModalFooterStyle: s.ModalFooterStyle,
	}
}
