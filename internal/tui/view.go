package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/calpanel/internal/calrange"
	"github.com/javiermolinar/calpanel/internal/dateutil"
	"github.com/javiermolinar/calpanel/internal/event"
	"github.com/javiermolinar/calpanel/internal/i18n"
	"github.com/javiermolinar/calpanel/internal/tui/view"
)

const (
	yearColumns   = 4
	toolbarHeight = 1
	// gridChrome is the table's top border, header row, header border and
	// bottom border.
	gridChrome = 4
)

// viewLabels maps views to their toolbar message keys.
var viewLabels = map[calrange.View]string{
	calrange.ViewDay:      i18n.KeyDay,
	calrange.ViewWeek:     i18n.KeyWeek,
	calrange.ViewWorkWeek: i18n.KeyWorkWeek,
	calrange.ViewMonth:    i18n.KeyMonth,
	calrange.ViewYear:     i18n.KeyYear,
	calrange.ViewAgenda:   i18n.KeyAgenda,
}

// View renders the panel.
func (m Model) View() string {
	return view.Render(m.viewState())
}

func (m Model) viewState() view.ViewState {
	state := view.ViewState{
		Width:            m.width,
		Height:           m.height,
		ModalBg:          m.styles.ModalBgColor,
		EmptyPlaceholder: "Loading...",
	}
	if m.width <= 0 || m.height <= 0 {
		return state
	}
	state.BaseContent = m.renderAppContent()
	if e := m.selectedEvent(); m.showDetail && e != nil {
		state.ShowModal = true
		state.ModalContent = m.renderDetail(*e)
	}
	return state
}

func (m Model) renderAppContent() string {
	footer := m.renderFooter()
	bodyH := m.height - toolbarHeight - lipgloss.Height(footer)
	if bodyH <= 0 {
		return "Terminal too small"
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.renderToolbar(),
		m.renderBody(bodyH),
		footer,
	)
	return view.PadLinesWithBackground(m.styles.AppStyle.Render(content), m.width, m.height, m.styles.colorBg)
}

// renderToolbar renders the period title, navigation buttons and view tabs.
func (m Model) renderToolbar() string {
	if m.noViews {
		return m.styles.TitleStyle.Render("calpanel")
	}

	buttons := []string{
		m.styles.ButtonStyle.Render(m.tr.Translate(i18n.KeyToday)),
		m.styles.ButtonStyle.Render(m.tr.Translate(i18n.KeyPrevious)),
		m.styles.ButtonStyle.Render(m.tr.Translate(i18n.KeyNext)),
	}

	var tabs []string
	for _, v := range m.ctrl.Views() {
		style := m.styles.ViewTabStyle
		if v == m.ctrl.View() {
			style = m.styles.ViewTabActive
		}
		tabs = append(tabs, style.Render(m.tr.Translate(viewLabels[v])))
	}

	left := lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
	title := m.styles.TitleStyle.Render(" " + m.periodLabel() + " ")
	right := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(title) - lipgloss.Width(right)
	if gap < 0 {
		return view.Truncate(left+title, m.width)
	}
	spacer := m.styles.StatusStyle.Render(strings.Repeat(" ", gap))
	return left + title + spacer + right
}

// periodLabel describes the page shown.
func (m Model) periodLabel() string {
	w := m.ctrl.Window()
	switch m.ctrl.View() {
	case calrange.ViewDay:
		return w.From.Format("Monday, Jan 2, 2006")
	case calrange.ViewWeek, calrange.ViewWorkWeek:
		days := m.pageDays()
		first, last := days[0], days[len(days)-1]
		return first.Format("Jan 2") + " - " + last.Format("Jan 2, 2006")
	case calrange.ViewYear:
		return w.From.Format("2006")
	default:
		return w.From.Format("January 2006")
	}
}

func (m Model) renderBody(h int) string {
	switch {
	case m.noViews:
		return view.PlaceBox(m.width, h, lipgloss.Center,
			m.styles.EmptyStyle.Render(m.tr.Translate(i18n.KeyNoViews)), m.styles.colorBg)
	case m.loading:
		return view.PlaceBox(m.width, h, lipgloss.Center,
			m.styles.EmptyStyle.Render("Loading..."), m.styles.colorBg)
	}

	switch m.ctrl.View() {
	case calrange.ViewMonth:
		return m.renderMonth(h)
	case calrange.ViewYear:
		return m.renderYear(h)
	case calrange.ViewAgenda:
		return m.renderAgenda(h)
	default:
		return m.renderDays(h)
	}
}

// columnWidth is the content width of one of n table columns.
func (m Model) columnWidth(n int) int {
	return max((m.width-2-(n+1))/n, 1)
}

// renderMonth renders the month grid, one table row per week.
func (m Model) renderMonth(h int) string {
	w := m.ctrl.Window()
	first := dateutil.StartOfWeek(w.From, m.weekStart)
	var weeks [][]time.Time
	for d := first; !d.After(w.To); d = d.AddDate(0, 0, 7) {
		weeks = append(weeks, m.weekDays(d))
	}

	headers, _ := view.DayHeaders(weeks[0], time.Time{}, false)
	lines := max((h-gridChrome-(len(weeks)-1))/len(weeks), 1)
	colW := m.columnWidth(7)

	rows := make([][]string, len(weeks))
	styles := make([][]lipgloss.Style, len(weeks))
	for i, week := range weeks {
		for _, day := range week {
			titleStyle := m.styles.DayNumberStyle
			if day.Month() != w.From.Month() {
				titleStyle = m.styles.DayNumberOtherStyle
			}
			rows[i] = append(rows[i], m.renderDayCell(day, fmt.Sprint(day.Day()), titleStyle, colW, lines, false))
			styles[i] = append(styles[i], m.styles.CellStyle)
		}
	}

	return view.RenderGrid(view.GridViewState{
		InnerW:       m.width,
		GridH:        h,
		Headers:      headers,
		HeaderStyles: m.headerStyles(weeks[0], false),
		Rows:         rows,
		CellStyles:   styles,
		RowBorders:   true,
		BorderStyle:  m.styles.BorderStyle,
		Bg:           m.styles.colorBg,
	})
}

// renderDays renders the day, week and work week pages as columns.
func (m Model) renderDays(h int) string {
	days := m.pageDays()
	headers, _ := view.DayHeaders(days, m.today(), true)
	colW := m.columnWidth(len(days))
	lines := max(h-gridChrome, 1)

	row := make([]string, len(days))
	styles := make([]lipgloss.Style, len(days))
	for i, day := range days {
		row[i] = m.renderDayCell(day, "", m.styles.DayNumberStyle, colW, lines+1, true)
		styles[i] = m.styles.CellStyle
	}

	return view.RenderGrid(view.GridViewState{
		InnerW:       m.width,
		GridH:        h,
		Headers:      headers,
		HeaderStyles: m.headerStyles(days, true),
		Rows:         [][]string{row},
		CellStyles:   [][]lipgloss.Style{styles},
		BorderStyle:  m.styles.BorderStyle,
		Bg:           m.styles.colorBg,
	})
}

// renderDayCell renders one day. An empty title drops the title line.
func (m Model) renderDayCell(day time.Time, title string, titleStyle lipgloss.Style, width, lines int, withTime bool) string {
	isCursor := day.Equal(m.cursor)
	switch {
	case isCursor:
		titleStyle = m.styles.CursorDayStyle
	case day.Equal(m.today()):
		titleStyle = m.styles.DayNumberTodayStyle
	}

	selected := m.selectedEvent()
	slots := m.table.On(day)
	chips := make([]*view.Chip, len(slots))
	for i, e := range slots {
		if e == nil {
			continue
		}
		chips[i] = &view.Chip{
			Text:  m.chipText(*e, day, withTime),
			Style: m.styles.EventStyle(e.Color, isCursor && e == selected),
		}
	}

	out := view.RenderCell(view.CellState{
		Title:      title,
		TitleStyle: titleStyle,
		Chips:      chips,
		Width:      width,
		Lines:      lines,
		More:       m.tr.ShowMore,
		MoreStyle:  m.styles.MoreStyle,
	})
	if title == "" {
		// The header row already names the day; keep a cursor marker only.
		marker := ""
		if isCursor {
			marker = m.styles.CursorDayStyle.Render(strings.Repeat(" ", width))
		}
		_, rest, _ := strings.Cut(out, "\n")
		out = marker + "\n" + rest
	}
	return out
}

// chipText labels an event inside a day cell.
func (m Model) chipText(e event.Event, day time.Time, withTime bool) string {
	if !withTime || !sameDay(e.Start, day) || isAllDay(e) {
		return e.Text
	}
	return e.Start.Format("15:04") + " " + e.Text
}

func sameDay(a, b time.Time) bool {
	return dateutil.DayKey(a) == dateutil.DayKey(b.In(a.Location()))
}

// isAllDay reports whether an event starts at midnight and spans whole days.
func isAllDay(e event.Event) bool {
	if !e.Start.Equal(dateutil.TruncateToDay(e.Start)) {
		return false
	}
	if e.IsOpen() {
		return true
	}
	return e.End.Sub(e.Start) >= 24*time.Hour-time.Millisecond
}

func (m Model) weekDays(start time.Time) []time.Time {
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

func (m Model) headerStyles(days []time.Time, markToday bool) []lipgloss.Style {
	_, isToday := view.DayHeaders(days, m.today(), false)
	styles := make([]lipgloss.Style, len(days))
	for i := range days {
		styles[i] = m.styles.DayHeaderStyle
		if markToday && isToday[i] {
			styles[i] = m.styles.DayHeaderTodayStyle
		}
	}
	return styles
}

// renderYear renders twelve month cells with event counts.
func (m Model) renderYear(h int) string {
	w := m.ctrl.Window()
	rowsN := 12 / yearColumns
	lines := max((h-2-(rowsN-1))/rowsN, 2)
	colW := m.columnWidth(yearColumns)

	rows := make([][]string, rowsN)
	styles := make([][]lipgloss.Style, rowsN)
	for i := 0; i < 12; i++ {
		month := w.From.AddDate(0, i, 0)
		r := dateutil.Range{
			From: month,
			To:   dateutil.EndOf(month, dateutil.UnitMonth, m.weekStart),
		}
		titleStyle := m.styles.MonthNameStyle
		if r.Contains(m.cursor) {
			titleStyle = m.styles.CursorDayStyle
		}

		var chips []*view.Chip
		for _, e := range m.monthEvents(r) {
			chips = append(chips, &view.Chip{Text: e.Start.Format("2") + " " + e.Text, Style: m.styles.EventStyle(e.Color, false)})
		}
		title := month.Format("January") + "  " + m.styles.CountStyle.Render(m.tr.Events(m.table.Count(r)))
		cell := view.RenderCell(view.CellState{
			Title:      title,
			TitleStyle: titleStyle,
			Chips:      chips,
			Width:      colW,
			Lines:      lines,
			More:       m.tr.ShowMore,
			MoreStyle:  m.styles.MoreStyle,
		})
		rows[i/yearColumns] = append(rows[i/yearColumns], cell)
		styles[i/yearColumns] = append(styles[i/yearColumns], m.styles.CellStyle)
	}

	return view.RenderGrid(view.GridViewState{
		InnerW:      m.width,
		GridH:       h,
		Rows:        rows,
		CellStyles:  styles,
		RowBorders:  true,
		BorderStyle: m.styles.BorderStyle,
		Bg:          m.styles.colorBg,
	})
}

// monthEvents returns the distinct events starting inside r, by start.
func (m Model) monthEvents(r dateutil.Range) []*event.Event {
	seen := make(map[*event.Event]bool)
	var out []*event.Event
	for _, key := range m.table.Keys() {
		for _, e := range m.table.Day(key) {
			if e == nil || seen[e] || !r.Contains(e.Start) {
				continue
			}
			seen[e] = true
			out = append(out, e)
		}
	}
	return out
}

// renderAgenda lists the month's events day by day, scrolled so the
// cursor day stays on screen.
func (m Model) renderAgenda(h int) string {
	var lines []string
	cursorLine := 0
	selected := m.selectedEvent()

	for _, day := range m.pageDays() {
		events := m.dayEvents(day)
		if len(events) == 0 {
			continue
		}
		dayStyle := m.styles.AgendaDayStyle
		if day.Equal(m.cursor) {
			dayStyle = m.styles.CursorDayStyle
			cursorLine = len(lines)
		}
		lines = append(lines, dayStyle.Render(day.Format("Mon Jan 2")))
		for _, e := range events {
			when := m.tr.Translate(i18n.KeyAllDay)
			if !isAllDay(*e) {
				when = e.Start.Format("15:04")
				if !e.IsOpen() && !e.Endless {
					when += "-" + e.End.Format("15:04")
				}
			}
			text := e.Text
			if e.Location != "" {
				text += " @ " + e.Location
			}
			chip := m.styles.EventStyle(e.Color, day.Equal(m.cursor) && e == selected)
			lines = append(lines, "  "+m.styles.AgendaTimeStyle.Render(fmt.Sprintf("%-12s", when))+
				chip.Render(view.Truncate(text, max(m.width-16, 1))))
		}
	}

	if len(lines) == 0 {
		return view.PlaceBox(m.width, h, lipgloss.Center,
			m.styles.EmptyStyle.Render(m.tr.Translate(i18n.KeyNoEvents)), m.styles.colorBg)
	}

	start := 0
	if cursorLine >= h {
		start = cursorLine - h/3
	}
	end := min(start+h, len(lines))
	return view.PlaceBox(m.width, h, lipgloss.Top, strings.Join(lines[start:end], "\n"), m.styles.colorBg)
}

// renderFooter renders the status and help lines.
func (m Model) renderFooter() string {
	status := m.statusLine()
	helpView := m.styles.HelpStyle.Render(m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, status, helpView)
}

func (m Model) statusLine() string {
	switch {
	case m.statusMsg != "" && m.statusErr:
		return m.styles.WarningStyle.Render(view.Truncate(m.statusMsg, m.width))
	case m.statusMsg != "":
		return m.styles.StatusStyle.Render(view.Truncate(m.statusMsg, m.width))
	}
	if e := m.selectedEvent(); e != nil {
		return m.styles.StatusStyle.Render(view.Truncate(event.DisplayTime(*e)+"  "+e.Text, m.width))
	}
	if m.issues > 0 {
		return m.styles.WarningStyle.Render(fmt.Sprintf("%d rows skipped", m.issues))
	}
	return m.styles.StatusStyle.Render(" ")
}

// renderDetail renders the selected event's detail modal.
func (m Model) renderDetail(e event.Event) string {
	rows := []view.DetailRow{
		{Value: event.DisplayTime(e)},
		{Label: m.tr.Translate(i18n.KeyLocation), Value: e.Location},
		{Label: m.tr.Translate(i18n.KeyLabels), Value: strings.Join(e.Labels, ", ")},
	}
	for _, d := range e.Description {
		rows = append(rows, view.DetailRow{Value: d})
	}
	for _, l := range e.Links {
		rows = append(rows, view.DetailRow{Label: l.Title, Value: l.Href})
	}

	footer := "esc close"
	if len(e.Links) > 0 {
		footer += " · c copy link"
	}
	return view.RenderModalFrame(e.Text, view.RenderDetailRows(rows, m.styles.ModalStyles()), footer, m.styles.ModalStyles())
}
