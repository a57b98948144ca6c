// Package layout expands events across the days they cover and assigns
// each a vertical slot so that no two events share a slot on any day.
package layout

import (
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/javiermolinar/calpanel/internal/dateutil"
	"github.com/javiermolinar/calpanel/internal/event"
)

// Table maps day keys to slot sequences. A nil entry is an empty slot.
type Table struct {
	days      map[string][]*event.Event
	weekStart dateutil.WeekStart
}

// Align sorts a copy of events by start then text and places them
// first-fit. The slot is chosen on the start day and reused on every day
// the event covers. An end before the start covers only the start day.
func Align(events []event.Event, weekStart dateutil.WeekStart) Table {
	sorted := slices.Clone(events)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !a.Start.Equal(b.Start) {
			return a.Start.Before(b.Start)
		}
		return strings.Compare(a.Text, b.Text) < 0
	})

	t := Table{days: make(map[string][]*event.Event), weekStart: weekStart}
	for i := range sorted {
		e := &sorted[i]
		covered := coveredDays(*e)
		offset := firstFree(t.days[covered[0]])
		for _, key := range covered {
			slots := t.days[key]
			for len(slots) <= offset {
				slots = append(slots, nil)
			}
			slots[offset] = e
			t.days[key] = slots
		}
	}
	return t
}

// coveredDays lists the day keys from the start day through the end day.
func coveredDays(e event.Event) []string {
	first := dateutil.TruncateToDay(e.Start)
	if e.IsOpen() {
		return []string{dateutil.DayKey(first)}
	}
	n := dateutil.DaysBetween(e.Start, e.End.In(e.Start.Location()))
	if n < 0 {
		n = 0
	}
	keys := make([]string, 0, n+1)
	for i := 0; i <= n; i++ {
		keys = append(keys, dateutil.DayKey(first.AddDate(0, 0, i)))
	}
	return keys
}

func firstFree(slots []*event.Event) int {
	for i, s := range slots {
		if s == nil {
			return i
		}
	}
	return len(slots)
}

// Day returns the slots for a day key. The slice must not be modified.
func (t Table) Day(key string) []*event.Event {
	return t.days[key]
}

// On returns the slots for the day containing d.
func (t Table) On(d time.Time) []*event.Event {
	return t.days[dateutil.DayKey(d)]
}

// Keys returns the day keys in ascending order.
func (t Table) Keys() []string {
	keys := make([]string, 0, len(t.days))
	for k := range t.days {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Len returns the number of days with at least one slot.
func (t Table) Len() int {
	return len(t.days)
}

// Week returns the seven day keys of the week containing d.
func (t Table) Week(d time.Time) []string {
	start := dateutil.StartOfWeek(d, t.weekStart)
	keys := make([]string, 7)
	for i := range keys {
		keys[i] = dateutil.DayKey(start.AddDate(0, 0, i))
	}
	return keys
}

// MaxSlots returns the longest slot sequence among keys.
func (t Table) MaxSlots(keys []string) int {
	n := 0
	for _, k := range keys {
		n = max(n, len(t.days[k]))
	}
	return n
}

// Count returns the number of distinct events placed on days within r.
func (t Table) Count(r dateutil.Range) int {
	seen := make(map[*event.Event]bool)
	for key, slots := range t.days {
		d, err := time.ParseInLocation(dateutil.DayKeyLayout, key, r.From.Location())
		if err != nil || d.Before(dateutil.TruncateToDay(r.From)) || d.After(r.To) {
			continue
		}
		for _, s := range slots {
			if s != nil {
				seen[s] = true
			}
		}
	}
	return len(seen)
}
