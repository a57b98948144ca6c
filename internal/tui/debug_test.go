package tui

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/javiermolinar/calpanel/internal/calrange"
	"github.com/javiermolinar/calpanel/internal/dateutil"
	"github.com/javiermolinar/calpanel/internal/event"
)

func readDebugLog(t *testing.T, path string) []map[string]any {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()

	var entries []map[string]any
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var entry map[string]any
		if err := json.Unmarshal(sc.Bytes(), &entry); err != nil {
			t.Fatalf("line %q is not JSON: %v", sc.Text(), err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestDebugLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	if err := initDebugLoggerAt(path); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(func() { debugLog = nil })

	r := dateutil.Range{From: day(1), To: endOfDay(day(28))}
	LogNavigate(calrange.ActionNext, calrange.ViewMonth, day(15), r)
	LogRangeRequest(r, true)
	LogRowIssue(event.RowIssue{Frame: 0, Row: 2, Err: event.ErrMissingStart})
	LogError("tui", errors.New("boom"))
	CloseDebugLogger()

	// Closed loggers drop entries.
	LogReload(1, 2, 3)

	entries := readDebugLog(t, path)
	want := []string{"DEBUG_START", "NAVIGATE", "RANGE_REQUEST", "ROW_ISSUE", "ERROR", "DEBUG_END"}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(entries), len(want))
	}
	for i, name := range want {
		if entries[i]["event"] != name {
			t.Errorf("entry %d = %v, want %s", i, entries[i]["event"], name)
		}
		if seq, _ := entries[i]["seq"].(float64); int(seq) != i+1 {
			t.Errorf("entry %d seq = %v", i, entries[i]["seq"])
		}
	}
	if entries[1]["action"] != "NEXT" || entries[1]["view"] != "month" {
		t.Errorf("navigate entry = %v", entries[1])
	}
	if entries[2]["anchor_moved"] != true {
		t.Errorf("range entry = %v", entries[2])
	}
	if entries[3]["error"] != event.ErrMissingStart.Error() {
		t.Errorf("issue entry = %v", entries[3])
	}
}

func TestDebugLoggerDisabled(t *testing.T) {
	if err := InitDebugLogger(false); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(func() { debugLog = nil })

	if debugEnabled() {
		t.Error("disabled logger reports enabled")
	}
	LogError("tui", errors.New("ignored"))
	CloseDebugLogger()
}
