package event

import (
	"errors"
	"fmt"
	"time"

	"github.com/javiermolinar/calpanel/internal/dateutil"
	"github.com/javiermolinar/calpanel/internal/frame"
	"github.com/javiermolinar/calpanel/internal/zone"
)

// ColorMode selects how event colors are resolved.
type ColorMode string

const (
	ColorFrame      ColorMode = "frame"
	ColorEvent      ColorMode = "event"
	ColorThresholds ColorMode = "thresholds"
)

// ErrUnknownColorMode is returned when parsing an unsupported color mode.
var ErrUnknownColorMode = errors.New("unknown color mode")

// ParseColorMode validates a configured color mode.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(s); m {
	case ColorFrame, ColorEvent, ColorThresholds:
		return m, nil
	case "":
		return ColorFrame, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownColorMode, s)
	}
}

// RowIssue describes a row that was excluded from a normalization pass.
type RowIssue struct {
	Frame int
	Row   int
	Err   error
}

func (i RowIssue) Error() string {
	return fmt.Sprintf("frame %d row %d: %v", i.Frame, i.Row, i.Err)
}

func (i RowIssue) Unwrap() error {
	return i.Err
}

// Options configures a normalization pass.
type Options struct {
	DescriptionFields []string
	ColorMode         ColorMode
	OffsetMinutes     int
	Location          *time.Location // calendar-local zone; time.Local when nil
	WeekStart         dateutil.WeekStart
	OnIssue           func(RowIssue) // optional
}

// Normalize turns frames into events, in frame-then-row order. Frames
// without a text and a start field contribute nothing. Rows with no text,
// no start or an unparseable instant are skipped and reported to OnIssue.
func Normalize(frames []frame.Frame, opts Options, palette []string, visible dateutil.Range) []Event {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	endOfRangeWeek := dateutil.EndOf(zone.Apply(visible.To, opts.OffsetMinutes, loc), dateutil.UnitWeek, opts.WeekStart)

	var events []Event
	for fi, fr := range frames {
		if !fr.Usable() {
			continue
		}
		for row := 0; row < fr.Rows(); row++ {
			e, err := normalizeRow(fr, fi, row, opts, loc, palette, endOfRangeWeek)
			if err != nil {
				if opts.OnIssue != nil {
					opts.OnIssue(RowIssue{Frame: fi, Row: row, Err: err})
				}
				continue
			}
			events = append(events, e)
		}
	}
	return events
}

func normalizeRow(fr frame.Frame, fi, row int, opts Options, loc *time.Location, palette []string, endOfRangeWeek time.Time) (Event, error) {
	if frame.IsEmpty(fr.Text.Value(row)) {
		return Event{}, ErrMissingText
	}
	rawStart := fr.Start.Value(row)
	if frame.IsEmpty(rawStart) {
		return Event{}, ErrMissingStart
	}

	start, err := dateutil.ParseInstant(rawStart, loc)
	if err != nil {
		return Event{}, fmt.Errorf("start: %w", err)
	}
	start = zone.Apply(start, opts.OffsetMinutes, loc)

	var end time.Time
	endless := false
	if fr.End != nil {
		rawEnd := fr.End.Value(row)
		if frame.IsEmpty(rawEnd) {
			end = endOfRangeWeek
			endless = true
		} else {
			end, err = dateutil.ParseInstant(rawEnd, loc)
			if err != nil {
				return Event{}, fmt.Errorf("end: %w", err)
			}
			end = zone.Apply(end, opts.OffsetMinutes, loc)
		}
	}

	options := []Option{
		WithDescription(description(fr, row, opts.DescriptionFields)...),
		WithLabels(labels(fr, row)...),
		WithColor(resolveColor(fr, fi, row, opts.ColorMode, palette)),
		WithLinks(fr.Text.RowLinks(row)),
	}
	if fr.Location != nil {
		options = append(options, WithLocation(frame.Stringify(fr.Location.Value(row))))
	}
	if endless {
		options = append(options, Endless())
	}
	return New(fr.Text.Text(row), start, end, options...)
}

// description follows the configured name order, not frame order.
func description(fr frame.Frame, row int, names []string) []string {
	var out []string
	for _, name := range names {
		field := fr.DescriptionField(name)
		if field == nil {
			continue
		}
		if raw := field.Value(row); !frame.IsEmpty(raw) {
			out = append(out, frame.Stringify(raw))
		}
	}
	return out
}

func labels(fr frame.Frame, row int) []string {
	var out []string
	for _, field := range fr.Labels {
		if raw := field.Value(row); !frame.IsEmpty(raw) {
			out = append(out, frame.Stringify(raw))
		}
	}
	return out
}

func resolveColor(fr frame.Frame, fi, row int, mode ColorMode, palette []string) string {
	if mode == ColorThresholds && fr.Color != nil && fr.Color.Display != nil {
		if raw := fr.Color.Value(row); !frame.IsEmpty(raw) {
			if c := fr.Color.Display(raw).Color; c != "" {
				return c
			}
		}
	}
	if len(palette) == 0 {
		return ""
	}
	idx := fi
	if mode == ColorEvent {
		idx = row
	}
	return palette[idx%len(palette)]
}
