package zone

import (
	"errors"
	"testing"
	"time"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestOffsetMinutes_Browser(t *testing.T) {
	for _, local := range []*time.Location{time.UTC, time.FixedZone("X", -7*3600), time.FixedZone("Y", 5*3600+1800)} {
		o := Offsetter{Local: local}
		for _, name := range []string{"browser", "", "Browser"} {
			got, err := o.OffsetMinutes(name)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != 0 {
				t.Errorf("local %s, zone %q: got %d, want 0", local, name, got)
			}
		}
	}
}

func TestOffsetMinutes_UTC(t *testing.T) {
	tests := []struct {
		name  string
		local *time.Location
		want  int
	}{
		{"local is utc", time.UTC, 0},
		{"local is utc-7", time.FixedZone("MST", -7*3600), 420},
		{"local is utc+5:30", time.FixedZone("IST", 5*3600+1800), -330},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Offsetter{Local: tt.local, Now: fixedClock(time.Date(2023, 2, 2, 12, 30, 0, 0, time.UTC))}
			got, err := o.OffsetMinutes("utc")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestOffsetMinutes_NamedZone(t *testing.T) {
	now := time.Date(2023, 2, 2, 12, 30, 45, 678000000, time.UTC)

	tests := []struct {
		name  string
		zone  string
		local *time.Location
		want  int
	}{
		{"phoenix from utc", "America/Phoenix", time.UTC, -420},
		{"brisbane from utc", "Australia/Brisbane", time.UTC, 600},
		{"brisbane from utc-7", "Australia/Brisbane", time.FixedZone("MST", -7*3600), 1020},
		{"kolkata from utc", "Asia/Kolkata", time.UTC, 330},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := time.LoadLocation(tt.zone); err != nil {
				t.Skipf("zoneinfo unavailable: %v", err)
			}
			o := Offsetter{Local: tt.local, Now: fixedClock(now)}
			got, err := o.OffsetMinutes(tt.zone)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestOffsetMinutes_UnknownZone(t *testing.T) {
	_, err := Offsetter{}.OffsetMinutes("Mars/Olympus_Mons")
	if !errors.Is(err, ErrUnknownZone) {
		t.Errorf("got error %v, want %v", err, ErrUnknownZone)
	}
	if err := Validate("Mars/Olympus_Mons"); !errors.Is(err, ErrUnknownZone) {
		t.Errorf("Validate: got %v", err)
	}
	if err := Validate("utc"); err != nil {
		t.Errorf("Validate(utc): %v", err)
	}
}

func TestApply(t *testing.T) {
	start := time.Date(2023, 2, 2, 12, 30, 0, 0, time.UTC)
	got := Apply(start, -420, time.UTC)
	want := time.Date(2023, 2, 2, 5, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if got.Location() != time.UTC {
		t.Errorf("location = %v, want UTC", got.Location())
	}
}
