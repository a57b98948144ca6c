// Package event defines the canonical calendar event and the normalizer
// that builds events from frames.
package event

import (
	"errors"
	"strings"
	"time"

	"github.com/javiermolinar/calpanel/internal/dateutil"
	"github.com/javiermolinar/calpanel/internal/frame"
)

// Validation errors.
var (
	ErrMissingText  = errors.New("event text is required")
	ErrMissingStart = errors.New("event start is required")
)

// Event is one display-ready calendar entry. Start and End are already
// shifted into calendar-local time.
type Event struct {
	Text        string
	Description []string
	Start       time.Time
	End         time.Time // zero when the event is open-ended
	Endless     bool      // End was clamped because the row had no end value
	Labels      []string
	Color       string
	Location    string
	Links       []frame.Link
}

// New validates and builds an event. Empty labels and description
// fragments are dropped.
func New(text string, start, end time.Time, opts ...Option) (Event, error) {
	if strings.TrimSpace(text) == "" {
		return Event{}, ErrMissingText
	}
	if start.IsZero() {
		return Event{}, ErrMissingStart
	}

	e := Event{Text: text, Start: start, End: end}
	for _, opt := range opts {
		opt(&e)
	}
	e.Labels = compact(e.Labels)
	e.Description = compact(e.Description)
	return e, nil
}

// Option sets an optional event attribute.
type Option func(*Event)

// WithDescription sets the description fragments.
func WithDescription(d ...string) Option {
	return func(e *Event) { e.Description = d }
}

// WithLabels sets the labels.
func WithLabels(l ...string) Option {
	return func(e *Event) { e.Labels = l }
}

// WithColor sets the color token.
func WithColor(c string) Option {
	return func(e *Event) { e.Color = c }
}

// WithLocation sets the location.
func WithLocation(l string) Option {
	return func(e *Event) { e.Location = l }
}

// WithLinks sets the navigation links.
func WithLinks(l []frame.Link) Option {
	return func(e *Event) { e.Links = l }
}

// Endless marks the end as clamped rather than known.
func Endless() Option {
	return func(e *Event) { e.Endless = true }
}

// IsOpen reports whether the event has no end at all.
func (e Event) IsOpen() bool {
	return e.End.IsZero()
}

// StartDay returns the day key of the start.
func (e Event) StartDay() string {
	return dateutil.DayKey(e.Start)
}

// DisplayTime renders the event's time span. The end is shown as a time
// only when it falls on the start's day.
func DisplayTime(e Event) string {
	const full = "Jan 2, 2006 3:04 PM"
	start := e.Start.Format(full)
	if e.IsOpen() {
		return start
	}
	sy, sm, sd := e.Start.Date()
	ey, em, ed := e.End.Date()
	if sy == ey && sm == em && sd == ed {
		return start + " - " + e.End.Format("3:04 PM")
	}
	return start + " - " + e.End.Format(full)
}

func compact(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
