package ui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/calpanel/internal/calrange"
	"github.com/javiermolinar/calpanel/internal/dateutil"
	"github.com/javiermolinar/calpanel/internal/event"
	"github.com/javiermolinar/calpanel/internal/frame"
	"github.com/javiermolinar/calpanel/internal/layout"
	"github.com/javiermolinar/calpanel/internal/tui/theme"
)

// pass is one normalize and align run over the stored frames.
type pass struct {
	Range  dateutil.Range
	Events []event.Event
	Table  layout.Table
	Issues []event.RowIssue
}

// build normalizes frames for r and lays the events out.
func (c calendar) build(frames []frame.Frame, r dateutil.Range) pass {
	p := pass{Range: r}
	palette := []string{}
	if t, err := theme.Load(c.cfg.UI.Theme); err == nil {
		palette = t.EventColors()
	}
	opts := event.Options{
		DescriptionFields: c.cfg.Calendar.DescriptionFields,
		ColorMode:         c.cfg.ColorMode(),
		OffsetMinutes:     c.offset,
		Location:          c.loc,
		WeekStart:         c.cfg.WeekStart(),
		OnIssue: func(issue event.RowIssue) {
			p.Issues = append(p.Issues, issue)
		},
	}
	frames = frame.ApplyThresholds(frames, c.cfg.Calendar.Thresholds)
	p.Events = event.Normalize(frames, opts, palette, r)
	p.Table = layout.Align(p.Events, opts.WeekStart)
	return p
}

// periodRange returns the page of view containing date.
func (c calendar) periodRange(date time.Time, view calrange.View) dateutil.Range {
	ws := c.cfg.WeekStart()
	unit := view.Unit()
	return dateutil.Range{
		From: dateutil.StartOf(date, unit, ws),
		To:   dateutil.EndOf(date, unit, ws),
	}
}

// parseView returns the named view, or the configured default when empty.
func (a *App) parseView(name string) (calrange.View, error) {
	if name == "" {
		return a.config.DefaultView(), nil
	}
	return calrange.ParseView(name)
}

// loadPass reads every stored frame and runs one pass over the period of
// view containing dateStr.
func (a *App) loadPass(ctx context.Context, viewName, dateStr string) (pass, calrange.View, error) {
	if err := a.ensureRepo(); err != nil {
		return pass{}, "", err
	}
	view, err := a.parseView(viewName)
	if err != nil {
		return pass{}, "", err
	}
	cal, err := a.calendar()
	if err != nil {
		return pass{}, "", err
	}
	date, err := dateutil.ParseRelativeDate(dateStr, a.now().In(cal.loc))
	if err != nil {
		return pass{}, "", err
	}

	frames, err := a.repo.LoadFrames(ctx)
	if err != nil {
		return pass{}, "", fmt.Errorf("loading frames: %w", err)
	}
	return cal.build(frames, cal.periodRange(date, view)), view, nil
}

func (a *App) eventsCmd() *cobra.Command {
	var (
		viewName string
		dateStr  string
		verbose  bool
		noColor  bool
	)

	cmd := &cobra.Command{
		Use:   "events",
		Short: "List events in a calendar period",
		Long: `List the events of the period a calendar view would show.

The period is the day, week, month or year containing --date, following
the configured week start. Agenda lists the whole month. Rows that cannot
become events are reported on stderr.`,
		Example: `  calpanel events
  calpanel events --view week --date 2025-01-15
  calpanel events --view day --date tomorrow -v`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}

			p, _, err := a.loadPass(cmd.Context(), viewName, dateStr)
			if err != nil {
				return err
			}
			reportIssues(cmd.ErrOrStderr(), p.Issues)

			out := cmd.OutOrStdout()
			opts := PrintOpts{Verbose: verbose}
			if !printEvents(out, p, a.now(), opts) {
				fmt.Fprintln(out, "No events found in the specified period.")
				return nil
			}

			fmt.Fprintln(out, strings.Repeat("─", 60))
			stats := Stats{Issues: len(p.Issues)}
			AccumulateStats(&stats, p.Table, p.Range)
			PrintStats(out, stats)
			return nil
		},
	}

	cmd.Flags().StringVar(&viewName, "view", "", "Calendar view (day, week, work_week, month, year, agenda)")
	cmd.Flags().StringVar(&dateStr, "date", "", "Date inside the period (YYYY-MM-DD, today, tomorrow, weekday)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show locations, descriptions, labels and links")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}

// printEvents prints the events of p grouped by day. It reports whether
// anything was printed.
func printEvents(w io.Writer, p pass, now time.Time, opts PrintOpts) bool {
	maxTextWidth := opts.CalcMaxTextWidth(40)
	today := dateutil.DayKey(now.In(p.Range.From.Location()))

	printed := false
	for d := dateutil.TruncateToDay(p.Range.From); !d.After(p.Range.To); d = d.AddDate(0, 0, 1) {
		var events []*event.Event
		for _, e := range p.Table.On(d) {
			if e != nil {
				events = append(events, e)
			}
		}
		if len(events) == 0 {
			continue
		}

		if printed {
			fmt.Fprintln(w)
		}
		header := d.Format("Mon Jan 2, 2006")
		if dateutil.DayKey(d) == today {
			fmt.Fprintf(w, "  %s\n", formatToday(header+" (today)"))
		} else {
			fmt.Fprintf(w, "  %s\n", formatHeader(header))
		}
		for _, e := range events {
			PrintEventRow(w, e, d, opts, maxTextWidth)
		}
		printed = true
	}
	return printed
}

// reportIssues writes one warning per skipped row.
func reportIssues(w io.Writer, issues []event.RowIssue) {
	for _, issue := range issues {
		fmt.Fprintf(w, "%s frame %d row %d: %v\n", formatWarn("warning:"), issue.Frame, issue.Row, issue.Err)
	}
}

