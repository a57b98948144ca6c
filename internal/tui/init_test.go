package tui

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/javiermolinar/calpanel/internal/config"
)

func TestDetectInitState(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Storage.DBPath = filepath.Join(dir, "data", "calpanel.db")
	configPath := filepath.Join(dir, "config", "config.toml")

	state, err := DetectInitState(cfg, configPath)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if !state.ConfigMissing || !state.DBMissing {
		t.Fatalf("state = %+v, want both missing", state)
	}

	repo, err := Initialize(cfg, state)
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	if _, err := os.Stat(configPath); err != nil {
		t.Errorf("config not written: %v", err)
	}
	names, err := repo.ListFrames(context.Background())
	if err != nil {
		t.Fatalf("list frames: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("new store has frames: %v", names)
	}

	state, err = DetectInitState(cfg, configPath)
	if err != nil {
		t.Fatalf("detect again: %v", err)
	}
	if state.ConfigMissing || state.DBMissing {
		t.Errorf("state after init = %+v, want nothing missing", state)
	}
}

func TestOpenRepo_EmptyPath(t *testing.T) {
	if _, err := OpenRepo(""); err == nil {
		t.Error("expected an error for an empty path")
	}
}
