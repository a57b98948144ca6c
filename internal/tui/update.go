package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/calpanel/internal/i18n"
	"github.com/javiermolinar/calpanel/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case commands.FramesLoadedMsg:
		m.frames = msg.Frames
		m.loading = false
		m.rebuild()
		return m, nil

	case commands.LinkCopiedMsg:
		m.setStatus(m.tr.Translate(i18n.KeyLinkCopied) + ": " + msg.Href)
		return m, commands.ClearStatusAfter(statusTTL)

	case commands.ErrMsg:
		m.loading = false
		m.setError(msg.Err)
		return m, commands.ClearStatusAfter(statusTTL)

	case commands.StatusMsgCmd:
		m.setStatus(msg.Msg)
		return m, commands.ClearStatusAfter(statusTTL)

	case commands.ClearStatusMsg:
		if !m.now().Before(m.statusTime) {
			m.statusMsg = ""
			m.statusErr = false
		}
		return m, nil
	}

	return m, nil
}
