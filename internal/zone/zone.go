// Package zone computes the minute offset between a dashboard time zone and
// the viewer's local zone.
package zone

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Zone selector sentinels.
const (
	Browser = "browser"
	UTC     = "utc"
)

// ErrUnknownZone is returned for zone names the tz database does not know.
var ErrUnknownZone = errors.New("unknown time zone")

// Offsetter snapshots zone offsets relative to a local zone.
type Offsetter struct {
	Local *time.Location   // viewer zone; time.Local when nil
	Now   func() time.Time // clock; time.Now when nil
}

// IsBrowser reports whether name selects the viewer's own zone.
func IsBrowser(name string) bool {
	n := strings.ToLower(strings.TrimSpace(name))
	return n == "" || n == Browser
}

// IsUTC reports whether name selects UTC.
func IsUTC(name string) bool {
	return strings.EqualFold(strings.TrimSpace(name), UTC)
}

// Validate checks that name is a sentinel or a loadable zone.
func Validate(name string) error {
	if IsBrowser(name) || IsUTC(name) {
		return nil
	}
	if _, err := time.LoadLocation(name); err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownZone, name)
	}
	return nil
}

// OffsetMinutes returns the signed minutes to add to an instant so that,
// rendered in the local zone, it shows the wall clock of zone.
// The value is a snapshot at call time and is applied uniformly to a whole
// render pass; DST transitions inside the displayed range are not tracked.
func (o Offsetter) OffsetMinutes(zone string) (int, error) {
	if IsBrowser(zone) {
		return 0, nil
	}

	local := o.local()
	now := o.now().In(local)

	if IsUTC(zone) {
		_, offsetSec := now.Zone()
		return -offsetSec / 60, nil
	}

	loc, err := time.LoadLocation(zone)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownZone, zone)
	}

	// Render now as a wall clock in zone, read that wall clock back as
	// local time, and diff against local now. Sub-second parts are dropped
	// on both sides so the difference lands on whole minutes.
	wall := now.In(loc)
	reinterpreted := time.Date(wall.Year(), wall.Month(), wall.Day(),
		wall.Hour(), wall.Minute(), wall.Second(), 0, local)
	browser := now.Truncate(time.Second)

	return int(reinterpreted.Sub(browser) / time.Minute), nil
}

// Apply shifts t by minutes and expresses the result in loc.
func Apply(t time.Time, minutes int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return t.Add(time.Duration(minutes) * time.Minute).In(loc)
}

func (o Offsetter) local() *time.Location {
	if o.Local != nil {
		return o.Local
	}
	return time.Local
}

func (o Offsetter) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}
