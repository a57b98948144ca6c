package tui

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/calpanel/internal/calrange"
	"github.com/javiermolinar/calpanel/internal/config"
	"github.com/javiermolinar/calpanel/internal/dateutil"
	"github.com/javiermolinar/calpanel/internal/event"
	"github.com/javiermolinar/calpanel/internal/frame"
	"github.com/javiermolinar/calpanel/internal/i18n"
	"github.com/javiermolinar/calpanel/internal/layout"
	"github.com/javiermolinar/calpanel/internal/tui/commands"
	"github.com/javiermolinar/calpanel/internal/tui/theme"
	"github.com/javiermolinar/calpanel/internal/zone"
)

// statusTTL is how long a status message stays in the footer.
const statusTTL = 3 * time.Second

// rangeRequests collects replace-range requests from the controller. The
// panel owns the visible range and honors every request in order.
type rangeRequests struct {
	pending []dateutil.Range
}

func (r *rangeRequests) add(rng dateutil.Range) {
	r.pending = append(r.pending, rng)
}

func (r *rangeRequests) drain() []dateutil.Range {
	out := r.pending
	r.pending = nil
	return out
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	repo   frame.Repository
	config *config.Config

	// Theme and styles
	theme  *theme.Theme
	styles *Styles
	keys   keyMap
	help   help.Model
	tr     i18n.Translator

	// Calendar state
	ctrl      *calrange.Controller
	requests  *rangeRequests
	loc       *time.Location
	offset    int
	weekStart dateutil.WeekStart
	frames    []frame.Frame
	events    []event.Event
	table     layout.Table
	issues    int

	// Selection
	cursor     time.Time // selected day, midnight in loc
	selected   int       // index into the cursor day's events, -1 for none
	showDetail bool

	loading bool
	noViews bool

	// Terminal dimensions
	width  int
	height int

	// Messages
	statusMsg  string
	statusErr  bool
	statusTime time.Time

	err error
	now func() time.Time
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithClock sets the clock used for "today" and the initial page.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = now
	}
}

// WithLocation sets the calendar-local zone.
func WithLocation(loc *time.Location) ModelOption {
	return func(m *Model) {
		m.loc = loc
	}
}

// WithFrames preloads frames so the model starts without a repository read.
func WithFrames(frames []frame.Frame) ModelOption {
	return func(m *Model) {
		m.frames = frames
	}
}

// New creates a new TUI model showing the default view around today.
func New(repo frame.Repository, cfg *config.Config, opts ...ModelOption) *Model {
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load("mocha")
	}

	tr := i18n.New(cfg.Calendar.Locale)
	m := &Model{
		repo:      repo,
		config:    cfg,
		theme:     t,
		styles:    NewStyles(t),
		keys:      newKeyMap().localize(tr),
		help:      help.New(),
		tr:        tr,
		requests:  &rangeRequests{},
		loc:       time.Local,
		weekStart: cfg.WeekStart(),
		selected:  -1,
		loading:   repo != nil,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.help.Styles.ShortKey = m.styles.HelpStyle.Bold(true)
	m.help.Styles.ShortDesc = m.styles.HelpStyle
	m.help.Styles.FullKey = m.styles.HelpStyle.Bold(true)
	m.help.Styles.FullDesc = m.styles.HelpStyle

	offset, err := zone.Offsetter{Local: m.loc, Now: m.now}.OffsetMinutes(cfg.Calendar.TimeZone)
	if err != nil {
		m.setError(fmt.Errorf("time zone: %w", err))
	}
	m.offset = offset

	today := m.today()
	view := cfg.DefaultView()
	unit := view.Unit()
	visible := dateutil.Range{
		From: dateutil.StartOf(today, unit, m.weekStart),
		To:   dateutil.EndOf(today, unit, m.weekStart),
	}
	m.ctrl = calrange.New(visible, view, calrange.Options{
		WeekStart: m.weekStart,
		Location:  m.loc,
		Views:     cfg.Views(),
		OnChange:  m.requests.add,
	})

	if _, err := m.ctrl.Reconcile(); errors.Is(err, calrange.ErrNoViews) {
		m.noViews = true
	}
	m.applyRequests()
	m.placeCursor(today)

	return m
}

// Init loads the stored frames.
func (m Model) Init() tea.Cmd {
	if m.repo == nil {
		return nil
	}
	return commands.LoadFrames(m.repo)
}

// today returns midnight of the current day in the calendar zone.
func (m Model) today() time.Time {
	return dateutil.TruncateToDay(m.now().In(m.loc))
}

// applyRequests syncs every pending range into the controller and
// rebuilds the event table for the resulting visible range.
func (m *Model) applyRequests() {
	for _, r := range m.requests.drain() {
		moved := m.ctrl.Sync(r)
		LogRangeRequest(r, moved)
	}
	m.rebuild()
}

// rebuild normalizes the frames for the visible range and lays them out.
func (m *Model) rebuild() {
	issues := 0
	opts := event.Options{
		DescriptionFields: m.config.Calendar.DescriptionFields,
		ColorMode:         m.config.ColorMode(),
		OffsetMinutes:     m.offset,
		Location:          m.loc,
		WeekStart:         m.weekStart,
		OnIssue: func(issue event.RowIssue) {
			issues++
			LogRowIssue(issue)
		},
	}
	frames := frame.ApplyThresholds(m.frames, m.config.Calendar.Thresholds)
	m.events = event.Normalize(frames, opts, m.theme.EventColors(), m.ctrl.Visible())
	m.table = layout.Align(m.events, m.weekStart)
	m.issues = issues
	LogReload(len(m.frames), len(m.events), m.table.Len())

	if m.selected >= len(m.dayEvents(m.cursor)) {
		m.selected = -1
	}
}

// placeCursor moves the cursor to target's day, pulling it into the
// displayed page when it falls outside.
func (m *Model) placeCursor(target time.Time) {
	target = dateutil.TruncateToDay(target.In(m.loc))
	days := m.pageDays()
	if len(days) > 0 && !slices.ContainsFunc(days, func(d time.Time) bool { return d.Equal(target) }) {
		target = days[0]
		if today := m.today(); slices.ContainsFunc(days, func(d time.Time) bool { return d.Equal(today) }) {
			target = today
		}
	}
	m.cursor = target
}

// pageDays lists the selectable days of the current page.
func (m Model) pageDays() []time.Time {
	w := m.ctrl.Window()
	var days []time.Time
	for d := dateutil.TruncateToDay(w.From); !d.After(w.To); d = d.AddDate(0, 0, 1) {
		if m.ctrl.View() == calrange.ViewWorkWeek && isWeekend(d) {
			continue
		}
		days = append(days, d)
	}
	return days
}

func isWeekend(d time.Time) bool {
	return d.Weekday() == time.Saturday || d.Weekday() == time.Sunday
}

// dayEvents returns the distinct events on day in slot order.
func (m Model) dayEvents(day time.Time) []*event.Event {
	var out []*event.Event
	for _, e := range m.table.On(day) {
		if e != nil {
			out = append(out, e)
		}
	}
	return out
}

// selectedEvent returns the highlighted event, if any.
func (m Model) selectedEvent() *event.Event {
	events := m.dayEvents(m.cursor)
	if m.selected < 0 || m.selected >= len(events) {
		return nil
	}
	return events[m.selected]
}

// selectEvent cycles the selection within the cursor day.
func (m *Model) selectEvent(dir int) {
	n := len(m.dayEvents(m.cursor))
	if n == 0 {
		m.selected = -1
		return
	}
	switch {
	case m.selected < 0 && dir > 0:
		m.selected = 0
	case m.selected < 0:
		m.selected = n - 1
	default:
		m.selected = ((m.selected+dir)%n + n) % n
	}
}

// setStatus shows a temporary footer message.
func (m *Model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusErr = false
	m.statusTime = m.now().Add(statusTTL)
}

// setError shows an error in the footer and logs it.
func (m *Model) setError(err error) {
	m.err = err
	m.statusMsg = fmt.Sprintf("Error: %v", err)
	m.statusErr = true
	m.statusTime = m.now().Add(statusTTL)
	LogError("tui", err)
}

// Run starts the TUI.
func Run(repo frame.Repository, cfg *config.Config) error {
	return RunWithDebug(repo, cfg, false)
}

// RunWithDebug starts the TUI with optional debug logging. A nil repo
// opens the configured store, writing a default config on first run.
func RunWithDebug(repo frame.Repository, cfg *config.Config, debug bool) error {
	if err := InitDebugLogger(debug); err != nil {
		return err
	}
	defer CloseDebugLogger()

	if repo == nil {
		state, err := DetectInitState(cfg, config.DefaultConfigPath())
		if err != nil {
			return err
		}
		repo, err = Initialize(cfg, state)
		if err != nil {
			return err
		}
		defer func() { _ = repo.Close() }()
	}

	p := tea.NewProgram(New(repo, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
