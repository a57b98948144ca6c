package calrange

import (
	"errors"
	"testing"
	"time"

	"github.com/javiermolinar/calpanel/internal/dateutil"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func endOfDay(y int, m time.Month, d int) time.Time {
	return day(y, m, d+1).Add(-time.Millisecond)
}

// recorder collects replace-range requests.
type recorder struct {
	calls []dateutil.Range
}

func (r *recorder) onChange(rng dateutil.Range) {
	r.calls = append(r.calls, rng)
}

func (r *recorder) last(t *testing.T) dateutil.Range {
	t.Helper()
	if len(r.calls) == 0 {
		t.Fatal("expected a replace-range request")
	}
	return r.calls[len(r.calls)-1]
}

func sameRange(a, b dateutil.Range) bool {
	return a.From.Equal(b.From) && a.To.Equal(b.To)
}

func newController(t *testing.T, visible dateutil.Range, view View) (*Controller, *recorder) {
	t.Helper()
	rec := &recorder{}
	c := New(visible, view, Options{WeekStart: dateutil.WeekStartSunday, OnChange: rec.onChange})
	return c, rec
}

// threeMonths ends on 2023-02-02 and starts three months earlier.
var threeMonths = dateutil.Range{From: day(2022, 11, 2), To: day(2023, 2, 2)}

// sameDay is a zero-length range on 2023-02-02.
var sameDay = dateutil.Range{From: day(2023, 2, 2), To: day(2023, 2, 2)}

func TestNew_Anchor(t *testing.T) {
	tests := []struct {
		view View
		want time.Time
	}{
		{ViewMonth, time.Date(2023, 2, 1, 12, 0, 0, 0, time.UTC)},
		{ViewWeek, day(2023, 1, 31)},
		{ViewDay, day(2023, 2, 2)},
		{ViewAgenda, day(2023, 2, 1)},
	}
	for _, tt := range tests {
		t.Run(string(tt.view), func(t *testing.T) {
			c, rec := newController(t, threeMonths, tt.view)
			if !c.Date().Equal(tt.want) {
				t.Errorf("got %v, want %v", c.Date(), tt.want)
			}
			if c.View() != tt.view {
				t.Errorf("view = %s", c.View())
			}
			if len(rec.calls) != 0 {
				t.Errorf("construction emitted %d requests", len(rec.calls))
			}
		})
	}
}

func TestSync(t *testing.T) {
	t.Run("from-only change keeps anchor", func(t *testing.T) {
		c, _ := newController(t, threeMonths, ViewDay)
		moved := c.Sync(dateutil.Range{From: day(2022, 10, 2), To: threeMonths.To})
		if moved {
			t.Error("anchor should not move")
		}
		if !c.Date().Equal(day(2023, 2, 2)) {
			t.Errorf("got %v", c.Date())
		}
		if !c.Visible().From.Equal(day(2022, 10, 2)) {
			t.Errorf("visible not stored: %v", c.Visible())
		}
	})

	t.Run("identical range keeps anchor", func(t *testing.T) {
		c, _ := newController(t, threeMonths, ViewMonth)
		before := c.Date()
		c.Sync(threeMonths)
		c.Sync(threeMonths)
		if !c.Date().Equal(before) {
			t.Errorf("got %v, want %v", c.Date(), before)
		}
	})

	t.Run("to change recomputes anchor", func(t *testing.T) {
		c, _ := newController(t, threeMonths, ViewDay)
		moved := c.Sync(dateutil.Range{From: day(2023, 2, 2), To: day(2023, 1, 1)})
		if !moved {
			t.Error("anchor should move")
		}
		if want := day(2023, 1, 17); !c.Date().Equal(want) {
			t.Errorf("got %v, want %v", c.Date(), want)
		}
	})

	t.Run("same to with anchor outside range recomputes anchor", func(t *testing.T) {
		feb := dateutil.Range{From: day(2023, 2, 1), To: endOfDay(2023, 2, 28)}
		c, _ := newController(t, feb, ViewMonth)
		if _, err := c.ChangeView(ViewDay); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		r := c.Navigate(time.Date(2023, 2, 28, 9, 0, 0, 0, time.UTC), ViewDay, ActionToday)
		if !r.To.Equal(feb.To) {
			t.Fatalf("request to = %v, want %v", r.To, feb.To)
		}
		if !c.Sync(r) {
			t.Error("anchor should move")
		}
		if got := c.Window(); !got.From.Equal(day(2023, 2, 28)) || !got.To.Equal(endOfDay(2023, 2, 28)) {
			t.Errorf("window = %v - %v", got.From, got.To)
		}
	})

	t.Run("drill-down to the last day of the month", func(t *testing.T) {
		feb := dateutil.Range{From: day(2023, 2, 1), To: endOfDay(2023, 2, 28)}
		c, _ := newController(t, feb, ViewMonth)
		c.Sync(c.Navigate(day(2023, 2, 28), ViewMonth, ActionDate))
		if _, err := c.ChangeView(ViewDay); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := c.Window(); !got.From.Equal(day(2023, 2, 28)) {
			t.Errorf("window starts %v, want 2023-02-28", got.From)
		}
	})
}

func TestNavigate(t *testing.T) {
	tests := []struct {
		name   string
		date   time.Time
		view   View
		action Action
		want   dateutil.Range
	}{
		{
			name: "month prev", date: day(2023, 2, 15), view: ViewMonth, action: ActionPrev,
			want: dateutil.Range{From: day(2023, 2, 1), To: time.Date(2023, 2, 28, 23, 59, 59, 999000000, time.UTC)},
		},
		{
			name: "week prev", date: day(2023, 1, 26), view: ViewWeek, action: ActionPrev,
			want: dateutil.Range{From: day(2023, 1, 22), To: endOfDay(2023, 1, 28)},
		},
		{
			name: "day prev", date: day(2023, 2, 1), view: ViewDay, action: ActionPrev,
			want: dateutil.Range{From: day(2023, 2, 1), To: endOfDay(2023, 2, 1)},
		},
		{
			name: "agenda next", date: day(2023, 3, 2), view: ViewAgenda, action: ActionNext,
			want: dateutil.Range{From: day(2023, 3, 1), To: endOfDay(2023, 3, 31)},
		},
		{
			name: "agenda date still pages by month", date: day(2023, 3, 2), view: ViewAgenda, action: ActionDate,
			want: dateutil.Range{From: day(2023, 3, 1), To: endOfDay(2023, 3, 31)},
		},
		{
			name: "date from month drills to day", date: day(2023, 3, 2), view: ViewMonth, action: ActionDate,
			want: dateutil.Range{From: day(2023, 3, 2), To: endOfDay(2023, 3, 2)},
		},
		{
			name: "date from week drills to day", date: day(2023, 3, 2), view: ViewWeek, action: ActionDate,
			want: dateutil.Range{From: day(2023, 3, 2), To: endOfDay(2023, 3, 2)},
		},
		{
			name: "date from year drills to week", date: day(2023, 6, 10), view: ViewYear, action: ActionDate,
			want: dateutil.Range{From: day(2023, 6, 4), To: endOfDay(2023, 6, 10)},
		},
		{
			name: "year next", date: day(2024, 5, 5), view: ViewYear, action: ActionNext,
			want: dateutil.Range{From: day(2024, 1, 1), To: endOfDay(2024, 12, 31)},
		},
		{
			name: "work week uses week unit", date: day(2023, 2, 8), view: ViewWorkWeek, action: ActionNext,
			want: dateutil.Range{From: day(2023, 2, 5), To: endOfDay(2023, 2, 11)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newController(t, sameDay, ViewMonth)
			before := c.Date()

			got := c.Navigate(tt.date, tt.view, tt.action)
			if !sameRange(got, tt.want) {
				t.Errorf("got %v - %v, want %v - %v", got.From, got.To, tt.want.From, tt.want.To)
			}
			if req := rec.last(t); !sameRange(req, got) {
				t.Errorf("emitted %v, returned %v", req, got)
			}
			if !c.Date().Equal(before) {
				t.Error("navigate should leave the anchor to the next sync")
			}
		})
	}
}

func TestNavigate_ThenSync(t *testing.T) {
	c, _ := newController(t, sameDay, ViewMonth)
	r := c.Navigate(c.Step(ActionPrev), ViewMonth, ActionPrev)
	c.Sync(r)

	if want := time.Date(2023, 1, 16, 11, 59, 59, 999500000, time.UTC); !c.Date().Equal(want) {
		t.Errorf("got %v, want %v", c.Date(), want)
	}
	if got := c.Window(); !got.From.Equal(day(2023, 1, 1)) || !got.To.Equal(endOfDay(2023, 1, 31)) {
		t.Errorf("window = %v", got)
	}
}

func TestStep(t *testing.T) {
	tests := []struct {
		view   View
		action Action
		want   time.Time
	}{
		{ViewDay, ActionNext, day(2023, 2, 3)},
		{ViewWeek, ActionPrev, day(2023, 1, 26)},
		{ViewMonth, ActionNext, day(2023, 3, 1)},
		{ViewYear, ActionPrev, day(2022, 2, 2)},
		{ViewDay, ActionToday, day(2023, 2, 2)},
	}
	for _, tt := range tests {
		t.Run(string(tt.view)+"/"+string(tt.action), func(t *testing.T) {
			c, _ := newController(t, sameDay, tt.view)
			if got := c.Step(tt.action); !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestChangeView(t *testing.T) {
	t.Run("updates view", func(t *testing.T) {
		c, _ := newController(t, sameDay, ViewMonth)
		if _, err := c.ChangeView(ViewDay); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.View() != ViewDay {
			t.Errorf("view = %s", c.View())
		}
	})

	t.Run("re-anchors at the period midpoint", func(t *testing.T) {
		c, _ := newController(t, sameDay, ViewMonth)
		for _, v := range []View{ViewYear, ViewWeek, ViewDay, ViewMonth, ViewWorkWeek, ViewAgenda} {
			prev := c.Date()
			if _, err := c.ChangeView(v); err != nil {
				t.Fatalf("%s: unexpected error: %v", v, err)
			}
			var want time.Time
			if v == ViewAgenda {
				want = time.Date(prev.Year(), prev.Month(), 1, 0, 0, 0, 0, time.UTC)
			} else {
				start := dateutil.StartOf(prev, v.Unit(), dateutil.WeekStartSunday)
				end := dateutil.EndOf(prev, v.Unit(), dateutil.WeekStartSunday)
				want = dateutil.Midpoint(start, end)
			}
			if !c.Date().Equal(want) {
				t.Errorf("%s: got %v, want %v", v, c.Date(), want)
			}
		}
	})

	t.Run("requests range when period starts earlier", func(t *testing.T) {
		c, rec := newController(t, sameDay, ViewMonth)
		tr, err := c.ChangeView(ViewWeek)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := dateutil.Range{From: day(2023, 1, 29), To: endOfDay(2023, 2, 4)}
		if !tr.Replace || !sameRange(rec.last(t), want) {
			t.Errorf("replace=%v emitted=%v, want %v", tr.Replace, rec.calls, want)
		}
	})

	t.Run("no request when period is inside visible range", func(t *testing.T) {
		c, rec := newController(t, dateutil.Range{From: day(2023, 1, 2), To: day(2023, 2, 2)}, ViewMonth)
		// Anchor is 2023-02-01 12:00; the day period sits inside the range.
		tr, err := c.ChangeView(ViewDay)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tr.Replace || len(rec.calls) != 0 {
			t.Errorf("unexpected request %v", rec.calls)
		}
	})

	t.Run("requests range when period ends later", func(t *testing.T) {
		c, rec := newController(t, dateutil.Range{From: day(2023, 1, 2), To: day(2023, 2, 2)}, ViewMonth)
		if _, err := c.ChangeView(ViewDay); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := c.ChangeView(ViewWeek); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := dateutil.Range{From: day(2023, 1, 29), To: endOfDay(2023, 2, 4)}
		if got := rec.last(t); !sameRange(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("unavailable view", func(t *testing.T) {
		c := New(sameDay, ViewMonth, Options{Views: []View{ViewMonth, ViewDay}})
		if _, err := c.ChangeView(ViewYear); !errors.Is(err, ErrViewUnavailable) {
			t.Errorf("got %v, want %v", err, ErrViewUnavailable)
		}
		if c.View() != ViewMonth {
			t.Errorf("view changed to %s", c.View())
		}
	})
}

func TestReconcile(t *testing.T) {
	t.Run("keeps available view", func(t *testing.T) {
		c := New(sameDay, ViewMonth, Options{Views: []View{ViewDay, ViewMonth}})
		tr, err := c.Reconcile()
		if err != nil || tr.View != "" {
			t.Errorf("got %+v, %v", tr, err)
		}
	})

	t.Run("switches to first available", func(t *testing.T) {
		c := New(sameDay, ViewMonth, Options{Views: []View{ViewWeek, ViewDay}})
		tr, err := c.Reconcile()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tr.View != ViewWeek || c.View() != ViewWeek {
			t.Errorf("got %s, controller %s", tr.View, c.View())
		}
	})

	t.Run("no views", func(t *testing.T) {
		c := New(sameDay, ViewMonth, Options{Views: []View{}})
		if _, err := c.Reconcile(); !errors.Is(err, ErrNoViews) {
			t.Errorf("got %v, want %v", err, ErrNoViews)
		}
	})
}

func TestLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	visible := dateutil.Range{From: day(2023, 2, 2), To: day(2023, 2, 2)}
	c := New(visible, ViewDay, Options{Location: loc})
	// 2023-02-02 00:00 UTC is 2023-02-01 19:00 in UTC-5.
	if got := c.Window(); got.From.Day() != 1 || got.From.Location() != loc {
		t.Errorf("window = %v", got)
	}
}

func TestParseView(t *testing.T) {
	tests := []struct {
		in      string
		want    View
		wantErr bool
	}{
		{"month", ViewMonth, false},
		{"Work-Week", ViewWorkWeek, false},
		{"workWeek", ViewWorkWeek, false},
		{" agenda ", ViewAgenda, false},
		{"decade", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseView(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownView) {
					t.Errorf("got %v, want %v", err, ErrUnknownView)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("got %q, %v", got, err)
			}
		})
	}

	views, err := ParseViews([]string{"day", "month", "day"})
	if err != nil || len(views) != 2 {
		t.Errorf("ParseViews = %v, %v", views, err)
	}
}

func TestParseAction(t *testing.T) {
	if a, err := ParseAction("prev"); err != nil || a != ActionPrev {
		t.Errorf("got %q, %v", a, err)
	}
	if _, err := ParseAction("jump"); !errors.Is(err, ErrUnknownAction) {
		t.Errorf("got %v", err)
	}
}
