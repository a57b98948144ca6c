package ui

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/calpanel/internal/config"
	"github.com/javiermolinar/calpanel/internal/frame"
	"github.com/javiermolinar/calpanel/internal/tui"
	"github.com/javiermolinar/calpanel/internal/zone"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo   frame.Repository
	config *config.Config
	root   *cobra.Command
	debug  bool // Enable debug logging
	owned  bool // repo was opened by the app and is closed by it
	now    func() time.Time
}

// NewApp creates a new CLI application with the given repository and config.
// A nil repository is opened lazily from the configured database path.
func NewApp(repo frame.Repository, cfg *config.Config) *App {
	a := &App{repo: repo, config: cfg, now: time.Now}

	a.root = &cobra.Command{
		Use:   "calpanel",
		Short: "A terminal calendar panel for time-series events",
		Long: `Calpanel shows events from stored frames as a calendar.

Frames are imported from ICS calendars or columnar YAML files and
rendered in day, week, work week, month, year and agenda views.`,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return tui.RunWithDebug(a.repo, a.config, a.debug)
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (writes "+tui.DebugLogPath+")")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.framesCmd())
	a.root.AddCommand(a.eventsCmd())
	a.root.AddCommand(a.layoutCmd())
	a.root.AddCommand(a.navigateCmd())
	a.root.AddCommand(a.offsetCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "calpanel %s (commit: %s)\n", Version, Commit)
		},
	}
}

// ensureRepo opens the configured store on first use.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	repo, err := tui.OpenRepo(a.config.Storage.DBPath)
	if err != nil {
		return err
	}
	a.repo = repo
	a.owned = true
	return nil
}

// Close releases a store opened by the app.
func (a *App) Close() error {
	if a.repo == nil || !a.owned {
		return nil
	}
	err := a.repo.Close()
	a.repo = nil
	return err
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// calendar resolves the zone settings shared by the read-only commands.
type calendar struct {
	loc    *time.Location
	offset int
	cfg    *config.Config
}

func (a *App) calendar() (calendar, error) {
	c := calendar{loc: time.Local, cfg: a.config}
	offset, err := zone.Offsetter{Local: c.loc, Now: a.now}.OffsetMinutes(a.config.Calendar.TimeZone)
	if err != nil {
		return calendar{}, fmt.Errorf("time zone: %w", err)
	}
	c.offset = offset
	return c, nil
}
