package dateutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// instantLayouts are tried in order for string values without a numeric form.
// Layouts without a zone are read in the caller's location.
var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	DayKeyLayout,
}

// ParseInstant converts a raw field value into an instant.
// Accepted values are time.Time, *time.Time, integer or float epoch
// milliseconds, numeric strings (epoch milliseconds), and the layouts in
// instantLayouts. Zone-less strings are interpreted in loc.
func ParseInstant(raw any, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}

	switch v := raw.(type) {
	case time.Time:
		if v.IsZero() {
			return time.Time{}, ErrUnparseableInstant
		}
		return v, nil
	case *time.Time:
		if v == nil || v.IsZero() {
			return time.Time{}, ErrUnparseableInstant
		}
		return *v, nil
	case int:
		return time.UnixMilli(int64(v)).In(loc), nil
	case int32:
		return time.UnixMilli(int64(v)).In(loc), nil
	case int64:
		return time.UnixMilli(v).In(loc), nil
	case uint64:
		return time.UnixMilli(int64(v)).In(loc), nil
	case float32:
		return time.UnixMilli(int64(v)).In(loc), nil
	case float64:
		return time.UnixMilli(int64(v)).In(loc), nil
	case string:
		return parseInstantString(v, loc)
	default:
		return time.Time{}, fmt.Errorf("%w: unsupported type %T", ErrUnparseableInstant, raw)
	}
}

func parseInstantString(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrUnparseableInstant
	}

	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).In(loc), nil
	}

	for _, layout := range instantLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseableInstant, s)
}
