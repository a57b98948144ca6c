// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/calpanel/internal/calrange"
	"github.com/javiermolinar/calpanel/internal/dateutil"
	"github.com/javiermolinar/calpanel/internal/event"
	"github.com/javiermolinar/calpanel/internal/frame"
	"github.com/javiermolinar/calpanel/internal/zone"
)

// Config holds the application configuration.
type Config struct {
	Calendar CalendarConfig `toml:"calendar"`
	Storage  StorageConfig  `toml:"storage"`
	UI       UIConfig       `toml:"ui"`
}

// CalendarConfig holds the panel's view and event settings.
type CalendarConfig struct {
	DefaultView       string           `toml:"default_view"`       // day, week, work_week, month, year, agenda
	Views             []string         `toml:"views"`              // available views, in toolbar order
	Colors            string           `toml:"colors"`             // frame, event, thresholds
	DescriptionFields []string         `toml:"description_fields"` // ordered description field names
	TimeZone          string           `toml:"time_zone"`          // browser, utc or an IANA name
	WeekStart         string           `toml:"week_start"`         // locale, sunday, monday
	Locale            string           `toml:"locale"`             // BCP 47 tag, e.g. "en-US"
	QuickLinks        bool             `toml:"quick_links"`        // act on the first link instead of showing details
	Thresholds        frame.Thresholds `toml:"thresholds"`         // color steps for the thresholds mode
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte", "light"
}

// Default returns the default configuration.
func Default() *Config {
	views := make([]string, 0, len(calrange.AllViews))
	for _, v := range calrange.AllViews {
		views = append(views, string(v))
	}
	return &Config{
		Calendar: CalendarConfig{
			DefaultView: string(calrange.ViewMonth),
			Views:       views,
			Colors:      string(event.ColorFrame),
			TimeZone:    zone.Browser,
			WeekStart:   "locale",
			Locale:      "en-US",
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "mocha",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "calpanel.db"
	}
	return filepath.Join(home, ".local", "share", "calpanel", "calpanel.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "calpanel", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CALPANEL_DEFAULT_VIEW"); v != "" {
		cfg.Calendar.DefaultView = v
	}
	if v := os.Getenv("CALPANEL_VIEWS"); v != "" {
		cfg.Calendar.Views = splitList(v)
	}
	if v := os.Getenv("CALPANEL_COLORS"); v != "" {
		cfg.Calendar.Colors = v
	}
	if v := os.Getenv("CALPANEL_TIME_ZONE"); v != "" {
		cfg.Calendar.TimeZone = v
	}
	if v := os.Getenv("CALPANEL_WEEK_START"); v != "" {
		cfg.Calendar.WeekStart = v
	}
	if v := os.Getenv("CALPANEL_LOCALE"); v != "" {
		cfg.Calendar.Locale = v
	}

	if v := os.Getenv("CALPANEL_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}

	if v := os.Getenv("CALPANEL_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	views, err := calrange.ParseViews(c.Calendar.Views)
	if err != nil {
		return fmt.Errorf("views: %w", err)
	}
	def, err := calrange.ParseView(c.Calendar.DefaultView)
	if err != nil {
		return fmt.Errorf("default_view: %w", err)
	}
	if len(views) > 0 && !containsView(views, def) {
		return fmt.Errorf("default_view %q is not in views", c.Calendar.DefaultView)
	}
	if _, err := event.ParseColorMode(c.Calendar.Colors); err != nil {
		return fmt.Errorf("colors: %w", err)
	}
	if _, ok := dateutil.ParseWeekStart(c.Calendar.WeekStart, c.Calendar.Locale); !ok {
		return fmt.Errorf("invalid week_start: %q", c.Calendar.WeekStart)
	}
	if err := zone.Validate(c.Calendar.TimeZone); err != nil {
		return fmt.Errorf("time_zone: %w", err)
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	return nil
}

func containsView(views []calrange.View, v calrange.View) bool {
	for _, view := range views {
		if view == v {
			return true
		}
	}
	return false
}

// DefaultView returns the parsed default view, falling back to month.
func (c *Config) DefaultView() calrange.View {
	v, err := calrange.ParseView(c.Calendar.DefaultView)
	if err != nil {
		return calrange.ViewMonth
	}
	return v
}

// Views returns the parsed available views. An empty list means no view
// is available.
func (c *Config) Views() []calrange.View {
	views, err := calrange.ParseViews(c.Calendar.Views)
	if err != nil {
		return []calrange.View{}
	}
	return views
}

// ColorMode returns the parsed color mode, falling back to frame cycling.
func (c *Config) ColorMode() event.ColorMode {
	m, err := event.ParseColorMode(c.Calendar.Colors)
	if err != nil {
		return event.ColorFrame
	}
	return m
}

// WeekStart resolves the configured week start, asking the locale when
// the setting defers to it.
func (c *Config) WeekStart() dateutil.WeekStart {
	ws, ok := dateutil.ParseWeekStart(c.Calendar.WeekStart, c.Calendar.Locale)
	if !ok {
		return dateutil.WeekStartForLocale(c.Calendar.Locale)
	}
	return ws
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
