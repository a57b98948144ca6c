package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/calpanel/internal/calrange"
	"github.com/javiermolinar/calpanel/internal/i18n"
	"github.com/javiermolinar/calpanel/internal/tui/commands"
)

// keyMap lists every binding of the panel.
type keyMap struct {
	Left, Right, Up, Down key.Binding
	NextEvent, PrevEvent  key.Binding
	Prev, Next, Today     key.Binding
	Open, Copy, Back      key.Binding
	Reload, Help, Quit    key.Binding

	Day, Week, WorkWeek, Month, Year, Agenda key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Left:      key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("←/h", "prev day")),
		Right:     key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("→/l", "next day")),
		Up:        key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		NextEvent: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next event")),
		PrevEvent: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev event")),
		Prev:      key.NewBinding(key.WithKeys("p", "["), key.WithHelp("p", "back")),
		Next:      key.NewBinding(key.WithKeys("n", "]"), key.WithHelp("n", "next")),
		Today:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Copy:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy link")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Day:       key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "day")),
		Week:      key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "week")),
		WorkWeek:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "work week")),
		Month:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "month")),
		Year:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "year")),
		Agenda:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "agenda")),
	}
}

// localize swaps help labels for the translated toolbar words.
func (k keyMap) localize(tr i18n.Translator) keyMap {
	relabel := func(b *key.Binding, msgKey string) {
		b.SetHelp(b.Help().Key, tr.Translate(msgKey))
	}
	relabel(&k.Prev, i18n.KeyPrevious)
	relabel(&k.Next, i18n.KeyNext)
	relabel(&k.Today, i18n.KeyToday)
	relabel(&k.Day, i18n.KeyDay)
	relabel(&k.Week, i18n.KeyWeek)
	relabel(&k.WorkWeek, i18n.KeyWorkWeek)
	relabel(&k.Month, i18n.KeyMonth)
	relabel(&k.Year, i18n.KeyYear)
	relabel(&k.Agenda, i18n.KeyAgenda)
	return k
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Today, k.Open, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down, k.NextEvent, k.PrevEvent},
		{k.Prev, k.Next, k.Today, k.Open, k.Copy, k.Back},
		{k.Day, k.Week, k.WorkWeek, k.Month, k.Year, k.Agenda},
		{k.Reload, k.Help, k.Quit},
	}
}

// viewFor maps a view binding to its view.
func (k keyMap) viewFor(msg tea.KeyMsg) (calrange.View, bool) {
	switch {
	case key.Matches(msg, k.Day):
		return calrange.ViewDay, true
	case key.Matches(msg, k.Week):
		return calrange.ViewWeek, true
	case key.Matches(msg, k.WorkWeek):
		return calrange.ViewWorkWeek, true
	case key.Matches(msg, k.Month):
		return calrange.ViewMonth, true
	case key.Matches(msg, k.Year):
		return calrange.ViewYear, true
	case key.Matches(msg, k.Agenda):
		return calrange.ViewAgenda, true
	}
	return "", false
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	LogKeyPress(msg)

	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if m.showDetail {
		return m.handleDetailKeys(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		return m, commands.LoadFrames(m.repo)
	}

	if m.noViews {
		return m, nil
	}

	if v, ok := m.keys.viewFor(msg); ok {
		return m.changeView(v)
	}

	switch {
	case key.Matches(msg, m.keys.Prev):
		return m.navigate(calrange.ActionPrev)
	case key.Matches(msg, m.keys.Next):
		return m.navigate(calrange.ActionNext)
	case key.Matches(msg, m.keys.Today):
		return m.navigate(calrange.ActionToday)
	case key.Matches(msg, m.keys.Left):
		return m.moveCursor(m.horizontalStep(-1))
	case key.Matches(msg, m.keys.Right):
		return m.moveCursor(m.horizontalStep(1))
	case key.Matches(msg, m.keys.Up):
		return m.vertical(-1)
	case key.Matches(msg, m.keys.Down):
		return m.vertical(1)
	case key.Matches(msg, m.keys.NextEvent):
		m.selectEvent(1)
	case key.Matches(msg, m.keys.PrevEvent):
		m.selectEvent(-1)
	case key.Matches(msg, m.keys.Open):
		return m.open()
	case key.Matches(msg, m.keys.Copy):
		return m.copyLink()
	case key.Matches(msg, m.keys.Back):
		m.selected = -1
	}
	return m, nil
}

// handleDetailKeys handles keys while the event detail modal is open.
func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Open):
		m.showDetail = false
	case key.Matches(msg, m.keys.Copy):
		return m.copyLink()
	}
	return m, nil
}
