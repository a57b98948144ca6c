package tui

import (
	"errors"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/calpanel/internal/calrange"
	"github.com/javiermolinar/calpanel/internal/dateutil"
	"github.com/javiermolinar/calpanel/internal/i18n"
	"github.com/javiermolinar/calpanel/internal/tui/commands"
)

// navigate pages the calendar with a toolbar action.
func (m Model) navigate(action calrange.Action) (tea.Model, tea.Cmd) {
	view := m.ctrl.View()
	date := m.ctrl.Step(action)
	target := m.shiftPeriod(m.cursor, action)
	if action == calrange.ActionToday {
		date = m.now().In(m.loc)
		target = m.today()
	}

	r := m.ctrl.Navigate(date, view, action)
	LogNavigate(action, view, date, r)
	m.applyRequests()
	m.placeCursor(target)
	m.selected = -1
	return m, nil
}

// shiftPeriod moves t by one page of the current view.
func (m Model) shiftPeriod(t time.Time, action calrange.Action) time.Time {
	sign := 1
	if action == calrange.ActionPrev {
		sign = -1
	}
	switch m.ctrl.View().Unit() {
	case dateutil.UnitDay:
		return t.AddDate(0, 0, sign)
	case dateutil.UnitWeek:
		return t.AddDate(0, 0, 7*sign)
	case dateutil.UnitYear:
		return t.AddDate(sign, 0, 0)
	default:
		return t.AddDate(0, sign, 0)
	}
}

// horizontalStep returns the cursor target for a left or right move.
func (m Model) horizontalStep(dir int) time.Time {
	switch m.ctrl.View() {
	case calrange.ViewYear:
		return dateutil.StartOf(m.cursor, dateutil.UnitMonth, m.weekStart).AddDate(0, dir, 0)
	case calrange.ViewWorkWeek:
		next := m.cursor.AddDate(0, 0, dir)
		for isWeekend(next) {
			next = next.AddDate(0, 0, dir)
		}
		return next
	default:
		return m.cursor.AddDate(0, 0, dir)
	}
}

// vertical moves a grid row in month and year views and walks the
// event selection elsewhere.
func (m Model) vertical(dir int) (tea.Model, tea.Cmd) {
	switch m.ctrl.View() {
	case calrange.ViewMonth:
		return m.moveCursor(m.cursor.AddDate(0, 0, 7*dir))
	case calrange.ViewYear:
		first := dateutil.StartOf(m.cursor, dateutil.UnitMonth, m.weekStart)
		return m.moveCursor(first.AddDate(0, yearColumns*dir, 0))
	case calrange.ViewAgenda:
		return m.agendaStep(dir)
	default:
		m.selectEvent(dir)
		return m, nil
	}
}

// agendaStep walks events across the agenda days.
func (m Model) agendaStep(dir int) (tea.Model, tea.Cmd) {
	n := len(m.dayEvents(m.cursor))
	next := m.selected + dir
	if m.selected < 0 && dir < 0 {
		next = n - 1
	}
	if next >= 0 && next < n {
		m.selected = next
		return m, nil
	}

	days := m.pageDays()
	if dir < 0 {
		slices.Reverse(days)
	}
	for _, d := range days {
		if (dir > 0 && !d.After(m.cursor)) || (dir < 0 && !d.Before(m.cursor)) {
			continue
		}
		if k := len(m.dayEvents(d)); k > 0 {
			m.cursor = d
			m.selected = 0
			if dir < 0 {
				m.selected = k - 1
			}
			return m, nil
		}
	}
	return m, nil
}

// moveCursor moves the cursor, paging when the target leaves the page.
func (m Model) moveCursor(target time.Time) (tea.Model, tea.Cmd) {
	target = dateutil.TruncateToDay(target)
	if !m.ctrl.Window().Contains(target) {
		action := calrange.ActionNext
		if target.Before(m.cursor) {
			action = calrange.ActionPrev
		}
		view := m.ctrl.View()
		date := m.ctrl.Step(action)
		r := m.ctrl.Navigate(date, view, action)
		LogNavigate(action, view, date, r)
		m.applyRequests()
	}
	m.placeCursor(target)
	m.selected = -1
	return m, nil
}

// changeView switches the page to view.
func (m Model) changeView(view calrange.View) (tea.Model, tea.Cmd) {
	from := m.ctrl.View()
	t, err := m.ctrl.ChangeView(view)
	if errors.Is(err, calrange.ErrViewUnavailable) {
		m.setStatus(m.tr.Translate(i18n.KeyNoView))
		return m, commands.ClearStatusAfter(statusTTL)
	}
	LogViewChange(from, t)
	m.applyRequests()
	m.placeCursor(m.cursor)
	return m, nil
}

// drillDown is the view a DATE action on the cursor opens.
func drillDown(view calrange.View) (calrange.View, bool) {
	switch view {
	case calrange.ViewYear:
		return calrange.ViewWeek, true
	case calrange.ViewMonth, calrange.ViewWeek, calrange.ViewWorkWeek:
		return calrange.ViewDay, true
	}
	return "", false
}

// open shows the selected event, or drills into the cursor day.
func (m Model) open() (tea.Model, tea.Cmd) {
	if e := m.selectedEvent(); e != nil {
		if m.config.Calendar.QuickLinks && len(e.Links) > 0 && e.Links[0].Href != "" {
			return m, commands.CopyLink(e.Links[0].Href)
		}
		m.showDetail = true
		return m, nil
	}

	target, ok := drillDown(m.ctrl.View())
	if !ok {
		m.selectEvent(1)
		return m, nil
	}
	if !slices.Contains(m.ctrl.Views(), target) {
		m.setStatus(m.tr.Translate(i18n.KeyNoView))
		return m, commands.ClearStatusAfter(statusTTL)
	}

	from := m.ctrl.View()
	r := m.ctrl.Navigate(m.cursor, from, calrange.ActionDate)
	LogNavigate(calrange.ActionDate, from, m.cursor, r)
	m.applyRequests()

	t, err := m.ctrl.ChangeView(target)
	if err != nil {
		m.setError(err)
		return m, nil
	}
	LogViewChange(from, t)
	m.applyRequests()
	m.placeCursor(m.cursor)
	m.selected = -1
	return m, nil
}

// copyLink copies the selected event's first link.
func (m Model) copyLink() (tea.Model, tea.Cmd) {
	e := m.selectedEvent()
	if e == nil || len(e.Links) == 0 || e.Links[0].Href == "" {
		m.setStatus("No link to copy")
		return m, commands.ClearStatusAfter(statusTTL)
	}
	return m, commands.CopyLink(e.Links[0].Href)
}
