package ui

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/calpanel/internal/calrange"
	"github.com/javiermolinar/calpanel/internal/dateutil"
)

const rangeLayout = "2006-01-02 15:04"

func (a *App) navigateCmd() *cobra.Command {
	var (
		viewName   string
		dateStr    string
		changeView string
	)

	cmd := &cobra.Command{
		Use:   "navigate [today|prev|next|date]",
		Short: "Show the range a toolbar action requests",
		Long: `Start from the period of --view containing --date and apply a toolbar
action or a view change, printing the replace-range request it produces
and the page shown once the request is honored.

A "date" action drills down: year to week, month and week to day.`,
		Example: `  calpanel navigate next --view month --date 2025-01-15
  calpanel navigate date --view year --date 2025-06-10
  calpanel navigate --change-view week`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && changeView == "" {
				return errors.New("an action or --change-view is required")
			}

			view, err := a.parseView(viewName)
			if err != nil {
				return err
			}
			cal, err := a.calendar()
			if err != nil {
				return err
			}
			now := a.now().In(cal.loc)
			date, err := dateutil.ParseRelativeDate(dateStr, now)
			if err != nil {
				return err
			}

			n := navigation{cal: cal, now: now}
			if err := n.start(date, view); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			n.printPage(out, "start")
			if len(args) == 1 {
				action, err := calrange.ParseAction(args[0])
				if err != nil {
					return err
				}
				n.navigate(out, action, date)
			}
			if changeView != "" {
				target, err := calrange.ParseView(changeView)
				if err != nil {
					return err
				}
				if err := n.changeView(out, target); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&viewName, "view", "", "Starting view (default from config)")
	cmd.Flags().StringVar(&dateStr, "date", "", "Starting date; also the date a \"date\" action picks")
	cmd.Flags().StringVar(&changeView, "change-view", "", "Switch to this view after the action")
	return cmd
}

// navigation drives a range controller the way the panel does: every
// replace-range request is honored and synced back.
type navigation struct {
	cal      calendar
	now      time.Time
	ctrl     *calrange.Controller
	requests []dateutil.Range
}

func (n *navigation) start(date time.Time, view calrange.View) error {
	n.ctrl = calrange.New(n.cal.periodRange(date, view), view, calrange.Options{
		WeekStart: n.cal.cfg.WeekStart(),
		Location:  n.cal.loc,
		Views:     n.cal.cfg.Views(),
		OnChange:  func(r dateutil.Range) { n.requests = append(n.requests, r) },
	})
	if _, err := n.ctrl.Reconcile(); err != nil {
		return fmt.Errorf("checking views: %w", err)
	}
	n.apply()
	return nil
}

// apply syncs pending requests into the controller.
func (n *navigation) apply() []dateutil.Range {
	applied := n.requests
	for _, r := range applied {
		n.ctrl.Sync(r)
	}
	n.requests = nil
	return applied
}

func (n *navigation) navigate(w io.Writer, action calrange.Action, picked time.Time) {
	view := n.ctrl.View()
	date := n.ctrl.Step(action)
	switch action {
	case calrange.ActionToday:
		date = n.now
	case calrange.ActionDate:
		date = picked
	}
	n.ctrl.Navigate(date, view, action)
	for _, r := range n.apply() {
		printRange(w, "request", r)
	}
	n.printPage(w, string(action))
}

func (n *navigation) changeView(w io.Writer, view calrange.View) error {
	t, err := n.ctrl.ChangeView(view)
	if err != nil {
		return fmt.Errorf("changing view to %s: %w", view, err)
	}
	applied := n.apply()
	for _, r := range applied {
		printRange(w, "request", r)
	}
	if !t.Replace {
		fmt.Fprintf(w, "  %-8s %s\n", "request", formatMuted("none, the visible range already covers the period"))
	}
	n.printPage(w, string(view))
	return nil
}

func (n *navigation) printPage(w io.Writer, label string) {
	fmt.Fprintf(w, "%s\n", formatHeader(label))
	fmt.Fprintf(w, "  %-8s %s\n", "view", n.ctrl.View())
	fmt.Fprintf(w, "  %-8s %s\n", "anchor", formatTime(n.ctrl.Date().Format(rangeLayout)))
	printRange(w, "visible", n.ctrl.Visible())
	printRange(w, "page", n.ctrl.Window())
}

func printRange(w io.Writer, label string, r dateutil.Range) {
	fmt.Fprintf(w, "  %-8s %s - %s\n", label, formatTime(r.From.Format(rangeLayout)), formatTime(r.To.Format(rangeLayout)))
}
