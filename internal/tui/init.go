package tui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/javiermolinar/calpanel/internal/config"
	"github.com/javiermolinar/calpanel/internal/db"
	"github.com/javiermolinar/calpanel/internal/frame"
)

// InitState tracks which first-run files are missing.
type InitState struct {
	ConfigMissing bool
	DBMissing     bool
	ConfigPath    string
	DBPath        string
}

// DetectInitState checks for missing config or database files.
func DetectInitState(cfg *config.Config, configPath string) (InitState, error) {
	state := InitState{
		ConfigPath: configPath,
		DBPath:     cfg.Storage.DBPath,
	}

	configMissing, err := pathMissing(state.ConfigPath)
	if err != nil {
		return InitState{}, fmt.Errorf("checking config path: %w", err)
	}
	dbMissing, err := pathMissing(state.DBPath)
	if err != nil {
		return InitState{}, fmt.Errorf("checking db path: %w", err)
	}

	state.ConfigMissing = configMissing
	state.DBMissing = dbMissing
	return state, nil
}

func pathMissing(path string) (bool, error) {
	if path == "" {
		return true, nil
	}
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if os.IsNotExist(err) {
		return true, nil
	}
	return false, err
}

// Initialize writes the default config when it is missing and opens the
// frame store, creating its directory.
func Initialize(cfg *config.Config, state InitState) (frame.Repository, error) {
	if state.ConfigMissing && state.ConfigPath != "" {
		if err := cfg.SaveTo(state.ConfigPath); err != nil {
			return nil, fmt.Errorf("saving config: %w", err)
		}
	}
	return OpenRepo(state.DBPath)
}

// OpenRepo opens the SQLite frame store at dbPath.
func OpenRepo(dbPath string) (frame.Repository, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	repo, err := db.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}
	return repo, nil
}
