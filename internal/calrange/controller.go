// Package calrange keeps the displayed calendar page in step with an
// externally owned time range.
//
// The external range is the source of truth. The controller derives an
// anchor date from it, computes navigation and view transitions, and asks
// the owner to replace the range through Options.OnChange. It never
// assumes a request was honored; the next Sync is authoritative.
package calrange

import (
	"slices"
	"time"

	"github.com/javiermolinar/calpanel/internal/dateutil"
)

// Options configures a Controller.
type Options struct {
	WeekStart dateutil.WeekStart
	Location  *time.Location        // calendar-local zone; the range's own zone when nil
	Views     []View                // available views; every view when empty
	OnChange  func(dateutil.Range) // replace-range request; optional
}

// Transition is the outcome of a view change.
type Transition struct {
	View    View
	Range   dateutil.Range // period bounds around the anchor
	Replace bool           // a replace-range request was emitted
}

// Controller holds the anchor date and view of the displayed page.
type Controller struct {
	date    time.Time
	view    View
	visible dateutil.Range
	opts    Options
}

// New derives the initial page from the visible range and default view.
func New(visible dateutil.Range, defaultView View, opts Options) *Controller {
	c := &Controller{view: defaultView, opts: opts}
	c.visible = c.localize(visible)
	c.date = c.anchorFor(c.visible, defaultView)
	return c
}

// Date returns the anchor date.
func (c *Controller) Date() time.Time { return c.date }

// View returns the current view.
func (c *Controller) View() View { return c.view }

// Visible returns the last synced external range.
func (c *Controller) Visible() dateutil.Range { return c.visible }

// Views returns the available views.
func (c *Controller) Views() []View {
	if c.opts.Views == nil {
		return AllViews
	}
	return c.opts.Views
}

// Window returns the period bounds of the current page.
func (c *Controller) Window() dateutil.Range {
	unit := c.view.Unit()
	return dateutil.Range{
		From: dateutil.StartOf(c.date, unit, c.opts.WeekStart),
		To:   dateutil.EndOf(c.date, unit, c.opts.WeekStart),
	}
}

// Sync records a new external range. The anchor is recomputed when the
// range's To boundary changed or the anchor fell outside the range, so
// updates that only touch From keep the current page. It reports whether
// the anchor moved.
func (c *Controller) Sync(visible dateutil.Range) bool {
	visible = c.localize(visible)
	toChanged := !visible.To.Equal(c.visible.To)
	c.visible = visible
	if !toChanged && visible.Contains(c.date) {
		return false
	}
	before := c.date
	c.date = c.anchorFor(visible, c.view)
	return !before.Equal(c.date)
}

// Navigate computes the range for moving to date in view and always
// requests it. Agenda pages by whole months; a DATE action drills down
// from year to week and from month or week to day.
func (c *Controller) Navigate(date time.Time, view View, action Action) dateutil.Range {
	date = c.in(date)

	var r dateutil.Range
	if view == ViewAgenda {
		r = dateutil.Range{
			From: dateutil.StartOf(date, dateutil.UnitMonth, c.opts.WeekStart),
			To:   dateutil.EndOf(date, dateutil.UnitMonth, c.opts.WeekStart),
		}
	} else {
		unit := effectiveUnit(view, action)
		r = dateutil.Range{
			From: dateutil.StartOf(date, unit, c.opts.WeekStart),
			To:   dateutil.EndOf(date, unit, c.opts.WeekStart),
		}
	}

	c.emit(r)
	return r
}

// Step returns the date a PREV or NEXT action moves to from the anchor.
// Other actions return the anchor unchanged.
func (c *Controller) Step(action Action) time.Time {
	sign := 0
	switch action {
	case ActionPrev:
		sign = -1
	case ActionNext:
		sign = 1
	default:
		return c.date
	}
	switch c.view.Unit() {
	case dateutil.UnitDay:
		return c.date.AddDate(0, 0, sign)
	case dateutil.UnitWeek:
		return c.date.AddDate(0, 0, 7*sign)
	case dateutil.UnitYear:
		return c.date.AddDate(sign, 0, 0)
	default:
		// Step from the first of the month so day overflow never skips a month.
		first := dateutil.StartOf(c.date, dateutil.UnitMonth, c.opts.WeekStart)
		return first.AddDate(0, sign, 0)
	}
}

// ChangeView switches to view, re-anchoring inside the new period. A
// replace-range request is emitted only when the new period leaves the
// visible range.
func (c *Controller) ChangeView(view View) (Transition, error) {
	if !c.available(view) {
		return Transition{}, ErrViewUnavailable
	}

	unit := view.Unit()
	r := dateutil.Range{
		From: dateutil.StartOf(c.date, unit, c.opts.WeekStart),
		To:   dateutil.EndOf(c.date, unit, c.opts.WeekStart),
	}

	if view == ViewAgenda {
		c.date = r.From
	} else {
		c.date = dateutil.Midpoint(r.From, r.To)
	}
	c.view = view

	t := Transition{View: view, Range: r}
	if r.From.Before(c.visible.From) || r.To.After(c.visible.To) {
		c.emit(r)
		t.Replace = true
	}
	return t, nil
}

// Reconcile switches to the first available view when the current one
// is not available. It returns ErrNoViews when nothing is available, and
// a zero Transition when the current view is kept.
func (c *Controller) Reconcile() (Transition, error) {
	if c.opts.Views != nil && len(c.opts.Views) == 0 {
		return Transition{}, ErrNoViews
	}
	if c.available(c.view) {
		return Transition{}, nil
	}
	return c.ChangeView(c.Views()[0])
}

// anchorFor places the anchor in the middle of the part of the visible
// range that belongs to the period containing To. Agenda anchors on the
// first of that month.
func (c *Controller) anchorFor(visible dateutil.Range, view View) time.Time {
	if view == ViewAgenda {
		return dateutil.StartOf(visible.To, dateutil.UnitMonth, c.opts.WeekStart)
	}
	start := dateutil.StartOf(visible.To, view.Unit(), c.opts.WeekStart)
	if visible.From.After(start) {
		start = visible.From
	}
	return dateutil.Midpoint(start, visible.To)
}

func (c *Controller) available(view View) bool {
	return slices.Contains(c.Views(), view)
}

func (c *Controller) emit(r dateutil.Range) {
	if c.opts.OnChange != nil {
		c.opts.OnChange(r)
	}
}

func (c *Controller) in(t time.Time) time.Time {
	if c.opts.Location == nil {
		return t
	}
	return t.In(c.opts.Location)
}

func (c *Controller) localize(r dateutil.Range) dateutil.Range {
	if c.opts.Location == nil {
		return r
	}
	return r.In(c.opts.Location)
}
