package calrange

import (
	"errors"
	"fmt"
	"strings"

	"github.com/javiermolinar/calpanel/internal/dateutil"
)

// View is a calendar display granularity.
type View string

const (
	ViewDay      View = "day"
	ViewWeek     View = "week"
	ViewWorkWeek View = "work_week"
	ViewMonth    View = "month"
	ViewYear     View = "year"
	ViewAgenda   View = "agenda"
)

// AllViews lists every view in display order.
var AllViews = []View{ViewDay, ViewWeek, ViewWorkWeek, ViewMonth, ViewYear, ViewAgenda}

// View errors.
var (
	ErrUnknownView     = errors.New("unknown view")
	ErrViewUnavailable = errors.New("view is not available")
	ErrNoViews         = errors.New("no views configured")
)

// ParseView parses a view name. "workWeek" and "work-week" are accepted
// as spellings of work_week.
func ParseView(s string) (View, error) {
	n := strings.ToLower(strings.TrimSpace(s))
	n = strings.NewReplacer("-", "_").Replace(n)
	if n == "workweek" {
		n = string(ViewWorkWeek)
	}
	for _, v := range AllViews {
		if string(v) == n {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownView, s)
}

// ParseViews parses a list of view names, keeping order and dropping
// duplicates.
func ParseViews(names []string) ([]View, error) {
	views := make([]View, 0, len(names))
	seen := make(map[View]bool, len(names))
	for _, name := range names {
		v, err := ParseView(name)
		if err != nil {
			return nil, err
		}
		if seen[v] {
			continue
		}
		seen[v] = true
		views = append(views, v)
	}
	return views, nil
}

// Unit returns the period unit used for range math. Agenda pages by month.
func (v View) Unit() dateutil.Unit {
	switch v {
	case ViewDay:
		return dateutil.UnitDay
	case ViewWeek, ViewWorkWeek:
		return dateutil.UnitWeek
	case ViewYear:
		return dateutil.UnitYear
	default:
		return dateutil.UnitMonth
	}
}

// Action is a navigation request.
type Action string

const (
	ActionToday Action = "TODAY"
	ActionPrev  Action = "PREV"
	ActionNext  Action = "NEXT"
	ActionDate  Action = "DATE"
)

// ErrUnknownAction is returned by ParseAction.
var ErrUnknownAction = errors.New("unknown navigation action")

// ParseAction parses an action name, case-insensitively.
func ParseAction(s string) (Action, error) {
	switch a := Action(strings.ToUpper(strings.TrimSpace(s))); a {
	case ActionToday, ActionPrev, ActionNext, ActionDate:
		return a, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
}

// effectiveUnit narrows the unit when a specific date is picked.
func effectiveUnit(view View, action Action) dateutil.Unit {
	if view == ViewAgenda {
		return dateutil.UnitMonth
	}
	if action == ActionDate {
		switch view {
		case ViewYear:
			return dateutil.UnitWeek
		case ViewMonth, ViewWeek, ViewWorkWeek:
			return dateutil.UnitDay
		}
	}
	return view.Unit()
}
