package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/calpanel/internal/dateutil"
	"github.com/javiermolinar/calpanel/internal/event"
	"github.com/javiermolinar/calpanel/internal/layout"
)

// emptySlot marks a slot kept free to hold alignment.
const emptySlot = "·"

func (a *App) layoutCmd() *cobra.Command {
	var (
		viewName string
		dateStr  string
		width    int
		noColor  bool
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Show the slot layout of a calendar period",
		Long: `Show how events are placed into day slots.

Each week of the period is printed as a table with one column per day and
one row per slot. A multi-day event keeps the same slot on every day it
covers; empty slots are shown as ` + emptySlot + `.`,
		Example: `  calpanel layout
  calpanel layout --view week --date 2025-01-15`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}

			p, _, err := a.loadPass(cmd.Context(), viewName, dateStr)
			if err != nil {
				return err
			}
			reportIssues(cmd.ErrOrStderr(), p.Issues)

			if width <= 0 {
				width = max((termWidth()-2)/7-1, 6)
			}
			printLayout(cmd.OutOrStdout(), p.Table, p.Range, width)
			return nil
		},
	}

	cmd.Flags().StringVar(&viewName, "view", "", "Calendar view (day, week, work_week, month, year, agenda)")
	cmd.Flags().StringVar(&dateStr, "date", "", "Date inside the period (YYYY-MM-DD, today, tomorrow, weekday)")
	cmd.Flags().IntVar(&width, "width", 0, "Column width (default fits the terminal)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}

// printLayout prints one slot table per week overlapping r. Days outside
// r are left blank.
func printLayout(w io.Writer, table layout.Table, r dateutil.Range, width int) {
	first := true
	for week := dateutil.TruncateToDay(r.From); !week.After(r.To); {
		keys := table.Week(week)
		days := make([]time.Time, len(keys))
		for i, key := range keys {
			days[i], _ = time.ParseInLocation(dateutil.DayKeyLayout, key, r.From.Location())
		}

		if !first {
			fmt.Fprintln(w)
		}
		first = false

		header := make([]string, len(days))
		for i, d := range days {
			header[i] = pad(d.Format("Mon 2"), width)
		}
		fmt.Fprintf(w, "  %s\n", formatHeader(strings.Join(header, " ")))

		slots := table.MaxSlots(keys)
		if slots == 0 {
			fmt.Fprintf(w, "  %s\n", formatMuted("(no events)"))
		}
		for slot := 0; slot < slots; slot++ {
			cells := make([]string, len(keys))
			for i, key := range keys {
				cells[i] = pad(slotText(table.Day(key), slot, r.Contains(days[i])), width)
			}
			fmt.Fprintf(w, "  %s\n", strings.Join(cells, " "))
		}

		week = days[len(days)-1].AddDate(0, 0, 1)
	}
}

func slotText(slots []*event.Event, slot int, inRange bool) string {
	if !inRange {
		return ""
	}
	if slot >= len(slots) || slots[slot] == nil {
		return emptySlot
	}
	return slots[slot].Text
}

// pad truncates or right-pads s to exactly width runes.
func pad(s string, width int) string {
	s = truncate(s, width)
	if n := len([]rune(s)); n < width {
		s += strings.Repeat(" ", width-n)
	}
	return s
}
