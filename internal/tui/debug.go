package tui

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/calpanel/internal/calrange"
	"github.com/javiermolinar/calpanel/internal/dateutil"
	"github.com/javiermolinar/calpanel/internal/event"
)

// DebugLogger logs TUI state, keystrokes, and range requests to a file.
type DebugLogger struct {
	mu      sync.Mutex
	file    *os.File
	enabled bool
	seq     int
}

// Global debug logger instance
var debugLog *DebugLogger

// DebugLogPath is the fixed path for debug logs
const DebugLogPath = "calpanel-debug.log"

// InitDebugLogger initializes the debug logger if debug mode is enabled.
func InitDebugLogger(enabled bool) error {
	if !enabled {
		debugLog = &DebugLogger{enabled: false}
		return nil
	}
	return initDebugLoggerAt(DebugLogPath)
}

func initDebugLoggerAt(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating debug log: %w", err)
	}

	debugLog = &DebugLogger{
		file:    f,
		enabled: true,
	}

	debugLog.log("DEBUG_START", map[string]any{
		"log_file": path,
		"time":     time.Now().Format(time.RFC3339),
	})
	return nil
}

// CloseDebugLogger closes the debug log file.
func CloseDebugLogger() {
	if debugLog != nil && debugLog.file != nil {
		debugLog.log("DEBUG_END", map[string]any{
			"time": time.Now().Format(time.RFC3339),
		})
		_ = debugLog.file.Close()
		debugLog.file = nil
	}
}

func debugEnabled() bool {
	return debugLog != nil && debugLog.enabled
}

// log writes a structured log entry.
func (d *DebugLogger) log(event string, data map[string]any) {
	if d == nil || !d.enabled || d.file == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	entry := map[string]any{
		"seq":   d.seq,
		"ts":    time.Now().Format("15:04:05.000"),
		"event": event,
	}
	for k, v := range data {
		entry[k] = v
	}

	b, _ := json.Marshal(entry)
	_, _ = fmt.Fprintf(d.file, "%s\n", b)
}

// LogKeyPress logs a key press event.
func LogKeyPress(msg tea.KeyMsg) {
	if !debugEnabled() {
		return
	}
	debugLog.log("KEY_PRESS", map[string]any{
		"key": msg.String(),
	})
}

// LogNavigate logs a navigation action and the range it produced.
func LogNavigate(action calrange.Action, view calrange.View, date time.Time, r dateutil.Range) {
	if !debugEnabled() {
		return
	}
	debugLog.log("NAVIGATE", map[string]any{
		"action": string(action),
		"view":   string(view),
		"date":   date.Format(time.RFC3339),
		"from":   r.From.Format(time.RFC3339),
		"to":     r.To.Format(time.RFC3339),
	})
}

// LogViewChange logs a view transition.
func LogViewChange(from calrange.View, t calrange.Transition) {
	if !debugEnabled() {
		return
	}
	debugLog.log("VIEW_CHANGE", map[string]any{
		"from":    string(from),
		"to":      string(t.View),
		"replace": t.Replace,
		"period":  []string{t.Range.From.Format(time.RFC3339), t.Range.To.Format(time.RFC3339)},
	})
}

// LogRangeRequest logs a replace-range request and whether the anchor moved.
func LogRangeRequest(r dateutil.Range, anchorMoved bool) {
	if !debugEnabled() {
		return
	}
	debugLog.log("RANGE_REQUEST", map[string]any{
		"from":         r.From.Format(time.RFC3339),
		"to":           r.To.Format(time.RFC3339),
		"anchor_moved": anchorMoved,
	})
}

// LogRowIssue logs a row the normalizer skipped.
func LogRowIssue(issue event.RowIssue) {
	if !debugEnabled() {
		return
	}
	debugLog.log("ROW_ISSUE", map[string]any{
		"frame": issue.Frame,
		"row":   issue.Row,
		"error": issue.Err.Error(),
	})
}

// LogReload logs a normalization and layout pass.
func LogReload(frames, events, days int) {
	if !debugEnabled() {
		return
	}
	debugLog.log("RELOAD", map[string]any{
		"frames": frames,
		"events": events,
		"days":   days,
	})
}

// LogError logs an error.
func LogError(context string, err error) {
	if !debugEnabled() {
		return
	}
	debugLog.log("ERROR", map[string]any{
		"context": context,
		"error":   err.Error(),
	})
}
