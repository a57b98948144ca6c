// Package ingest builds frames from calendar files.
package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"github.com/javiermolinar/calpanel/internal/dateutil"
	"github.com/javiermolinar/calpanel/internal/frame"
)

// maxOccurrences caps the expansion of a single recurring event.
const maxOccurrences = 5000

// ErrEmptyCalendar is returned for an empty ICS payload.
var ErrEmptyCalendar = errors.New("empty calendar")

// vevent is the subset of a VEVENT that becomes a frame row.
type vevent struct {
	uid         string
	summary     string
	description string
	location    string
	status      string
	categories  string
	color       string
	url         string
	start       time.Time
	end         time.Time
	allDay      bool
	rrule       string
	exdates     []time.Time
	recurrence  *time.Time
}

// occurrence is one concrete instance of a vevent.
type occurrence struct {
	ev    vevent
	start time.Time
	end   time.Time
}

// LoadICS reads an ICS file and returns one frame with an occurrence per
// row. Recurring events are expanded inside window; with a zero window
// only their first instance is kept. All-day events are placed in the
// window's zone.
func LoadICS(path string, window dateutil.Range) (frame.Frame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return frame.Frame{}, fmt.Errorf("reading calendar file: %w", err)
	}
	return ParseICS(bytes.NewReader(data), window)
}

// ParseICS parses an ICS payload into a frame. Events without a UID or a
// start are skipped.
func ParseICS(r io.Reader, window dateutil.Range) (frame.Frame, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return frame.Frame{}, fmt.Errorf("reading calendar: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return frame.Frame{}, ErrEmptyCalendar
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(data))
	if err != nil {
		return frame.Frame{}, fmt.Errorf("parsing calendar: %w", err)
	}

	// All-day dates are placed in the window's zone.
	loc := time.Local
	if !window.From.IsZero() {
		loc = window.From.Location()
	}

	var base []vevent
	overrides := make(map[string][]vevent)
	for _, comp := range cal.Events() {
		ev, ok := parseVEvent(comp, loc)
		if !ok {
			continue
		}
		if ev.recurrence != nil {
			overrides[ev.uid] = append(overrides[ev.uid], ev)
			continue
		}
		base = append(base, ev)
	}

	var occs []occurrence
	for _, ev := range base {
		occs = append(occs, expand(ev, overrides[ev.uid], window)...)
	}
	return toFrame(occs), nil
}

func parseVEvent(ve *ical.VEvent, loc *time.Location) (vevent, bool) {
	var ev vevent

	uid := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uid == nil || uid.Value == "" {
		return ev, false
	}
	ev.uid = uid.Value

	ev.summary = propValue(ve, ical.ComponentPropertySummary)
	ev.description = propValue(ve, ical.ComponentPropertyDescription)
	ev.location = propValue(ve, ical.ComponentPropertyLocation)
	ev.status = propValue(ve, "STATUS")
	ev.categories = propValue(ve, "CATEGORIES")
	ev.color = propValue(ve, "COLOR")
	ev.url = propValue(ve, "URL")

	start, err := ve.GetStartAt()
	if err != nil {
		return ev, false
	}
	ev.start = start

	if dtStart := ve.GetProperty(ical.ComponentPropertyDtStart); dtStart != nil {
		if !strings.Contains(dtStart.Value, "T") {
			ev.allDay = true
		}
		if vs, ok := dtStart.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
			ev.allDay = true
		}
	}

	if ev.allDay {
		ev.start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	}

	end, err := ve.GetEndAt()
	switch {
	case err != nil && ev.allDay:
		ev.end = ev.start.AddDate(0, 0, 1)
	case err != nil:
		ev.end = ev.start
	case ev.allDay:
		ev.end = time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, loc)
	default:
		ev.end = end
	}

	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		ev.rrule = p.Value
	}
	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			if t, err := parseICSTime(part, ev.start.Location()); err == nil {
				ev.exdates = append(ev.exdates, t)
			}
		}
	}
	if p := ve.GetProperty("RECURRENCE-ID"); p != nil {
		if t, err := parseICSTime(p.Value, ev.start.Location()); err == nil {
			ev.recurrence = &t
		}
	}

	return ev, true
}

func propValue(ve *ical.VEvent, prop ical.ComponentProperty) string {
	if p := ve.GetProperty(prop); p != nil {
		return p.Value
	}
	return ""
}

// parseICSTime parses a bare DATE or DATE-TIME value. Floating values are
// read in loc.
func parseICSTime(v string, loc *time.Location) (time.Time, error) {
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		return time.Time{}, errors.New("empty time value")
	case strings.HasSuffix(v, "Z"):
		return time.Parse("20060102T150405Z", v)
	case strings.Contains(v, "T"):
		return time.ParseInLocation("20060102T150405", v, loc)
	default:
		return time.ParseInLocation("20060102", v, loc)
	}
}

func expand(ev vevent, overrides []vevent, window dateutil.Range) []occurrence {
	if ev.rrule == "" || window.To.IsZero() {
		if !window.To.IsZero() && !overlaps(ev.start, ev.end, window) {
			return nil
		}
		return []occurrence{withOverride(ev, overrides, ev.start, ev.end)}
	}

	rule, err := rrule.StrToRRule(ev.rrule)
	if err != nil {
		return []occurrence{withOverride(ev, overrides, ev.start, ev.end)}
	}
	rule.DTStart(ev.start)

	var set rrule.Set
	set.RRule(rule)
	for _, ex := range ev.exdates {
		set.ExDate(ex.In(ev.start.Location()))
	}

	// Occurrences starting before the window may still run into it.
	duration := ev.end.Sub(ev.start)
	from := window.From.In(ev.start.Location()).Add(-duration)
	to := window.To.In(ev.start.Location())

	starts := set.Between(from, to, true)
	if len(starts) > maxOccurrences {
		starts = starts[:maxOccurrences]
	}

	out := make([]occurrence, 0, len(starts))
	for _, s := range starts {
		out = append(out, withOverride(ev, overrides, s, s.Add(duration)))
	}
	return out
}

func withOverride(ev vevent, overrides []vevent, start, end time.Time) occurrence {
	for _, ov := range overrides {
		if ov.recurrence.Equal(start) {
			return occurrence{ev: ov, start: ov.start, end: ov.end}
		}
	}
	return occurrence{ev: ev, start: start, end: end}
}

func overlaps(start, end time.Time, window dateutil.Range) bool {
	return !end.Before(window.From) && !start.After(window.To)
}

// toFrame lays occurrences out as columns. All-day ends are exclusive in
// ICS, so they are pulled back into the last covered day.
func toFrame(occs []occurrence) frame.Frame {
	n := len(occs)
	cols := map[string][]any{}
	for _, name := range []string{"summary", "start", "end", "location", "color", "description", "status", "categories"} {
		cols[name] = make([]any, n)
	}
	links := make([][]frame.Link, n)
	hasLinks := false

	for i, o := range occs {
		end := o.end
		if o.ev.allDay && end.After(o.start) {
			end = end.Add(-time.Millisecond)
		}
		cols["summary"][i] = o.ev.summary
		cols["start"][i] = o.start
		cols["end"][i] = end
		cols["location"][i] = o.ev.location
		cols["color"][i] = o.ev.color
		cols["description"][i] = o.ev.description
		cols["status"][i] = o.ev.status
		cols["categories"][i] = o.ev.categories
		if o.ev.url != "" {
			links[i] = []frame.Link{{Title: o.ev.summary, Href: o.ev.url}}
			hasLinks = true
		}
	}

	f := frame.Frame{
		Text:     &frame.Field{Name: "summary", Values: cols["summary"]},
		Start:    &frame.Field{Name: "start", Values: cols["start"]},
		End:      &frame.Field{Name: "end", Values: cols["end"]},
		Location: &frame.Field{Name: "location", Values: cols["location"]},
		Color:    &frame.Field{Name: "color", Values: cols["color"]},
		Description: []*frame.Field{
			{Name: "description", Values: cols["description"]},
			{Name: "status", Values: cols["status"]},
		},
		Labels: []*frame.Field{
			{Name: "categories", Values: cols["categories"]},
		},
	}
	if hasLinks {
		f.Text.Links = frame.StaticLinks(links)
	}
	return f
}
