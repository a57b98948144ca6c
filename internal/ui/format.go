package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/javiermolinar/calpanel/internal/dateutil"
	"github.com/javiermolinar/calpanel/internal/event"
	"github.com/javiermolinar/calpanel/internal/layout"
)

// Stats holds aggregated statistics for the events of a range.
type Stats struct {
	Events       int
	AllDay       int
	TimedMinutes int
	Issues       int
	DayEvents    map[string]int
}

// BusiestDay returns the day key with the most events.
func (s Stats) BusiestDay() (day string, events int) {
	for d, n := range s.DayEvents {
		if n > events || (n == events && d < day) {
			day, events = d, n
		}
	}
	return day, events
}

// PrintOpts configures event printing behavior.
type PrintOpts struct {
	Verbose      bool // Show descriptions, labels and links
	MaxTextWidth int  // Maximum event text width (0 = auto)
}

// CalcMaxTextWidth calculates the maximum event text width based on options.
func (o PrintOpts) CalcMaxTextWidth(defaultWidth int) int {
	if o.MaxTextWidth > 0 {
		return o.MaxTextWidth
	}
	if !o.Verbose {
		return defaultWidth
	}
	// "    HH:MM-HH:MM  " is 17 columns, the duration suffix about 8
	available := termWidth() - 25
	if available > defaultWidth {
		return available
	}
	return defaultWidth
}

// PrintEventRow prints one event as seen on day.
func PrintEventRow(w io.Writer, e *event.Event, day time.Time, opts PrintOpts, maxTextWidth int) {
	text := truncate(e.Text, maxTextWidth)
	span := spanLabel(e, day)
	duration := ""
	if !e.IsOpen() && !isAllDay(e) {
		duration = formatMuted(FormatDuration(int(e.End.Sub(e.Start).Minutes())))
	}
	fmt.Fprintf(w, "    %s  %-*s  %s\n", formatTime(fmt.Sprintf("%-11s", span)), maxTextWidth, text, duration)

	if !opts.Verbose {
		return
	}
	if e.Location != "" {
		fmt.Fprintf(w, "      %s %s\n", formatMuted("at"), e.Location)
	}
	for _, d := range e.Description {
		fmt.Fprintf(w, "      %s\n", formatMuted(d))
	}
	if len(e.Labels) > 0 {
		fmt.Fprintf(w, "      %s\n", formatMuted("["+strings.Join(e.Labels, ", ")+"]"))
	}
	for _, l := range e.Links {
		fmt.Fprintf(w, "      %s %s\n", formatMuted("->"), l.Href)
	}
}

// spanLabel describes the part of e that falls on day.
func spanLabel(e *event.Event, day time.Time) string {
	if isAllDay(e) {
		return "all day"
	}
	startsToday := dateutil.DayKey(e.Start) == dateutil.DayKey(day)
	if e.IsOpen() {
		return e.Start.Format("15:04")
	}
	endsToday := dateutil.DayKey(e.End) == dateutil.DayKey(day)
	switch {
	case startsToday && endsToday:
		return e.Start.Format("15:04") + "-" + e.End.Format("15:04")
	case startsToday:
		return e.Start.Format("15:04") + " ->"
	case endsToday:
		return "-> " + e.End.Format("15:04")
	default:
		return "all day"
	}
}

// isAllDay reports whether e starts at midnight and covers whole days.
func isAllDay(e *event.Event) bool {
	if e.IsOpen() || !e.Start.Equal(dateutil.TruncateToDay(e.Start)) {
		return false
	}
	end := e.End.Add(time.Millisecond)
	return end.Equal(dateutil.TruncateToDay(end)) || e.End.Equal(dateutil.TruncateToDay(e.End))
}

// AccumulateStats folds the events placed in table within r into stats.
func AccumulateStats(stats *Stats, table layout.Table, r dateutil.Range) {
	if stats.DayEvents == nil {
		stats.DayEvents = make(map[string]int)
	}
	seen := make(map[*event.Event]bool)
	for _, key := range table.Keys() {
		day, err := time.ParseInLocation(dateutil.DayKeyLayout, key, r.From.Location())
		if err != nil || !r.Contains(day) {
			continue
		}
		for _, e := range table.Day(key) {
			if e == nil {
				continue
			}
			stats.DayEvents[key]++
			if seen[e] {
				continue
			}
			seen[e] = true
			stats.Events++
			switch {
			case isAllDay(e):
				stats.AllDay++
			case !e.IsOpen():
				stats.TimedMinutes += int(e.End.Sub(e.Start).Minutes())
			}
		}
	}
}

// PrintStats prints the stats summary lines.
func PrintStats(w io.Writer, stats Stats) {
	fmt.Fprintf(w, "  Events: %d  |  All day: %d  |  Scheduled: %s\n",
		stats.Events, stats.AllDay, FormatDuration(stats.TimedMinutes))

	if day, n := stats.BusiestDay(); n > 0 {
		fmt.Fprintf(w, "  Busiest day: %s (%d events)\n", day, n)
	}
	if stats.Issues > 0 {
		fmt.Fprintf(w, "  %s\n", formatWarn(fmt.Sprintf("Skipped rows: %d", stats.Issues)))
	}
}

// FormatDuration formats minutes as a human-readable duration.
func FormatDuration(minutes int) string {
	if minutes <= 0 {
		return "0m"
	}
	days := minutes / (24 * 60)
	hours := minutes % (24 * 60) / 60
	mins := minutes % 60
	switch {
	case days > 0 && hours > 0:
		return fmt.Sprintf("%dd%dh", days, hours)
	case days > 0:
		return fmt.Sprintf("%dd", days)
	case hours == 0:
		return fmt.Sprintf("%dm", mins)
	case mins == 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dh%dm", hours, mins)
	}
}

// truncate shortens s to width runes, marking the cut with "...".
func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}
