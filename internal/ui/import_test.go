package ui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/javiermolinar/calpanel/internal/dateutil"
	"github.com/javiermolinar/calpanel/internal/db"
)

const teamYAML = `
frames:
  - name: team
    fields:
      - {name: title, role: text, values: [Standup, Trip, Broken]}
      - {name: start, role: start, values: ["2023-02-15 09:00", "2023-02-15", null]}
      - {name: end, role: end, values: ["2023-02-15 09:30", "2023-02-17", null]}
      - {name: room, role: location, values: [Room 4, "", ""]}
      - {name: notes, role: link, values: ["https://example.com/standup", "", ""]}
`

var weeklyICS = strings.Join([]string{
	"BEGIN:VCALENDAR",
	"VERSION:2.0",
	"PRODID:-//calpanel//test//EN",
	"BEGIN:VEVENT",
	"UID:review",
	"SUMMARY:Review",
	"DTSTART:20230206T150000Z",
	"DTEND:20230206T160000Z",
	"RRULE:FREQ=WEEKLY;COUNT=10",
	"END:VEVENT",
	"END:VCALENDAR",
}, "\r\n")

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func newStore(t *testing.T) *db.Store {
	t.Helper()
	store, err := db.New(filepath.Join(t.TempDir(), "calpanel.db"))
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestImportFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	yamlPath := writeFile(t, dir, "team.yaml", teamYAML)
	icsPath := writeFile(t, dir, "reviews.ics", weeklyICS)
	store := newStore(t)

	window := dateutil.Range{
		From: time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2023, 2, 28, 23, 59, 59, 0, time.UTC),
	}
	results, err := importFiles(ctx, store, []string{yamlPath, icsPath}, importOpts{Window: window})
	if err != nil {
		t.Fatalf("importFiles: %v", err)
	}

	want := []importResult{
		{Name: "team", Rows: 3, Path: yamlPath},
		{Name: "reviews", Rows: 4, Path: icsPath},
	}
	if len(results) != len(want) {
		t.Fatalf("got %d results, want %d", len(results), len(want))
	}
	for i, r := range results {
		if r != want[i] {
			t.Errorf("result %d = %+v, want %+v", i, r, want[i])
		}
	}

	infos, err := store.ListFrames(ctx)
	if err != nil {
		t.Fatalf("ListFrames: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("stored %d frames, want 2", len(infos))
	}

	frames, err := store.LoadFrames(ctx)
	if err != nil {
		t.Fatalf("LoadFrames: %v", err)
	}
	for _, f := range frames {
		if f.Name != "team" {
			continue
		}
		links := f.Text.RowLinks(0)
		if len(links) != 1 || links[0].Href != "https://example.com/standup" {
			t.Errorf("team links = %+v", links)
		}
	}
}

func TestImportFiles_Rename(t *testing.T) {
	ctx := context.Background()
	path := writeFile(t, t.TempDir(), "reviews.ics", weeklyICS)
	store := newStore(t)

	results, err := importFiles(ctx, store, []string{path}, importOpts{Name: "work"})
	if err != nil {
		t.Fatalf("importFiles: %v", err)
	}
	if len(results) != 1 || results[0].Name != "work" {
		t.Errorf("results = %+v", results)
	}
}

func TestImportFiles_Errors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name  string
		path  string
		isErr error
	}{
		{name: "unsupported extension", path: writeFile(t, dir, "notes.txt", "hello"), isErr: ErrUnsupportedFile},
		{name: "missing file", path: filepath.Join(dir, "missing.ics")},
		{name: "directory", path: dir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore(t)
			_, err := importFiles(context.Background(), store, []string{tt.path}, importOpts{})
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.isErr != nil && !errors.Is(err, tt.isErr) {
				t.Errorf("got %v, want %v", err, tt.isErr)
			}
		})
	}
}

func TestImportWindow(t *testing.T) {
	now := time.Date(2023, 2, 15, 10, 0, 0, 0, time.UTC)

	t.Run("defaults to a year either side", func(t *testing.T) {
		r, err := importWindow("", "", now)
		if err != nil {
			t.Fatalf("importWindow: %v", err)
		}
		if !r.From.Equal(time.Date(2022, 2, 15, 0, 0, 0, 0, time.UTC)) || !r.To.Equal(time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("got %v - %v", r.From, r.To)
		}
	})

	t.Run("explicit bounds include the last day", func(t *testing.T) {
		r, err := importWindow("2023-01-01", "2023-01-31", now)
		if err != nil {
			t.Fatalf("importWindow: %v", err)
		}
		if want := time.Date(2023, 1, 31, 23, 59, 59, 999000000, time.UTC); !r.To.Equal(want) {
			t.Errorf("to = %v, want %v", r.To, want)
		}
	})

	t.Run("invalid date", func(t *testing.T) {
		_, err := importWindow("01/02/2023", "", now)
		if !errors.Is(err, dateutil.ErrInvalidDateFormat) {
			t.Errorf("got %v, want %v", err, dateutil.ErrInvalidDateFormat)
		}
	})

	t.Run("reversed bounds", func(t *testing.T) {
		if _, err := importWindow("2023-03-01", "2023-02-01", now); err == nil {
			t.Error("expected an error")
		}
	})
}

func TestResolvePath(t *testing.T) {
	if _, err := resolvePath("  "); err == nil {
		t.Error("expected an error for an empty path")
	}
	got, err := resolvePath("data/team.yaml")
	if err != nil {
		t.Fatalf("resolvePath: %v", err)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("got %q, want an absolute path", got)
	}
}
