// Package dateutil provides date parsing and calendar period arithmetic.
package dateutil

import (
	"errors"
	"strings"
	"time"
)

// Validation errors.
var (
	ErrInvalidDateFormat  = errors.New("date must be in YYYY-MM-DD format")
	ErrUnparseableInstant = errors.New("value is not a recognizable instant")
)

// DayKeyLayout is the canonical day-key format.
const DayKeyLayout = "2006-01-02"

// weekdayMap maps weekday names to time.Weekday values.
var weekdayMap = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// WeekStart is the first day of a calendar week.
type WeekStart int

const (
	WeekStartSunday WeekStart = 0 // Sunday-style locales
	WeekStartMonday WeekStart = 1 // Monday/ISO-style locales
)

// String returns the config spelling of the week start.
func (w WeekStart) String() string {
	if w == WeekStartSunday {
		return "sunday"
	}
	return "monday"
}

// Unit is a period granularity used for range arithmetic.
type Unit string

const (
	UnitDay   Unit = "day"
	UnitWeek  Unit = "week"
	UnitMonth Unit = "month"
	UnitYear  Unit = "year"
)

// ParseDate parses a date string in YYYY-MM-DD format in the given location.
// If the string is empty, returns today's date.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	if s == "" {
		return TruncateToDay(time.Now().In(loc)), nil
	}
	t, err := time.ParseInLocation(DayKeyLayout, s, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// ParseRelativeDate parses a date string that can be:
//   - Empty string or "today": returns relativeTo date
//   - Keywords: "tomorrow", "yesterday"
//   - Weekday names: "monday" through "sunday" (next occurrence)
//   - Absolute date: "2025-01-15" (YYYY-MM-DD), read in relativeTo's location
//
// All inputs are case-insensitive.
func ParseRelativeDate(s string, relativeTo time.Time) (time.Time, error) {
	today := TruncateToDay(relativeTo)
	input := strings.ToLower(strings.TrimSpace(s))

	switch input {
	case "", "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}

	if targetDay, ok := weekdayMap[input]; ok {
		return nextWeekday(today, targetDay), nil
	}

	result, err := time.ParseInLocation(DayKeyLayout, input, relativeTo.Location())
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return result, nil
}

// nextWeekday returns the next occurrence of the given weekday after today.
// If today is the target weekday, returns one week from today.
func nextWeekday(today time.Time, target time.Weekday) time.Time {
	daysUntil := int(target) - int(today.Weekday())
	if daysUntil <= 0 {
		daysUntil += 7
	}
	return today.AddDate(0, 0, daysUntil)
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayKey formats t as a canonical YYYY-MM-DD key in t's own location.
func DayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

// StartOfWeek returns midnight of the first day of the week containing t.
func StartOfWeek(t time.Time, ws WeekStart) time.Time {
	t = TruncateToDay(t)
	back := (int(t.Weekday()) - int(ws) + 7) % 7
	return t.AddDate(0, 0, -back)
}

// StartOf returns the first instant of the period containing t.
func StartOf(t time.Time, unit Unit, ws WeekStart) time.Time {
	switch unit {
	case UnitWeek:
		return StartOfWeek(t, ws)
	case UnitMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	case UnitYear:
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	default:
		return TruncateToDay(t)
	}
}

// EndOf returns the last millisecond of the period containing t.
func EndOf(t time.Time, unit Unit, ws WeekStart) time.Time {
	start := StartOf(t, unit, ws)
	var next time.Time
	switch unit {
	case UnitWeek:
		next = start.AddDate(0, 0, 7)
	case UnitMonth:
		next = start.AddDate(0, 1, 0)
	case UnitYear:
		next = start.AddDate(1, 0, 0)
	default:
		next = start.AddDate(0, 0, 1)
	}
	return next.Add(-time.Millisecond)
}

// Midpoint returns the instant halfway between a and b.
func Midpoint(a, b time.Time) time.Time {
	return a.Add(b.Sub(a) / 2)
}

// DaysBetween returns the number of calendar days from a's day to b's day.
// The result is negative when b falls on an earlier day than a.
func DaysBetween(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

// Range is a closed time window.
type Range struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls inside the range, bounds included.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.From) && !t.After(r.To)
}

// Covers reports whether other lies entirely inside r.
func (r Range) Covers(other Range) bool {
	return r.Contains(other.From) && r.Contains(other.To)
}

// In returns the range expressed in loc.
func (r Range) In(loc *time.Location) Range {
	return Range{From: r.From.In(loc), To: r.To.In(loc)}
}
