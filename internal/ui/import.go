package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/calpanel/internal/dateutil"
	"github.com/javiermolinar/calpanel/internal/frame"
	"github.com/javiermolinar/calpanel/internal/ingest"
)

// ErrUnsupportedFile is returned for files that are neither ICS nor YAML.
var ErrUnsupportedFile = errors.New("unsupported file type")

// importOpts configures an import run.
type importOpts struct {
	Name   string         // frame name for a single-frame file
	Window dateutil.Range // recurrence expansion window for ICS files
}

// importResult describes one stored frame.
type importResult struct {
	Name string
	Rows int
	Path string
}

func (a *App) importCmd() *cobra.Command {
	var (
		name    string
		fromStr string
		toStr   string
	)

	cmd := &cobra.Command{
		Use:   "import FILE...",
		Short: "Import frames from ICS or YAML files",
		Long: `Import calendar files into the frame store.

ICS files become one frame named after the file, with recurring events
expanded between --from and --to (one year either side of today by
default). YAML files hold columnar frames and keep their own names.
Importing a name again replaces the stored frame.`,
		Example: `  calpanel import work.ics
  calpanel import team.ics --name team --from 2025-01-01 --to 2025-12-31
  calpanel import deploys.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			if name != "" && len(args) > 1 {
				return errors.New("--name needs a single file")
			}

			window, err := importWindow(fromStr, toStr, a.now())
			if err != nil {
				return err
			}

			paths := make([]string, 0, len(args))
			for _, arg := range args {
				path, err := resolvePath(arg)
				if err != nil {
					return err
				}
				paths = append(paths, path)
			}

			results, err := importFiles(cmd.Context(), a.repo, paths, importOpts{Name: name, Window: window})
			for _, r := range results {
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d rows into %s from %s\n", r.Rows, formatHeader(r.Name), r.Path)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Frame name (defaults to the file name)")
	cmd.Flags().StringVar(&fromStr, "from", "", "Start of the recurrence window (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toStr, "to", "", "End of the recurrence window (YYYY-MM-DD)")
	return cmd
}

// importWindow parses the recurrence window, defaulting to a year either
// side of now.
func importWindow(fromStr, toStr string, now time.Time) (dateutil.Range, error) {
	today := dateutil.TruncateToDay(now)
	r := dateutil.Range{From: today.AddDate(-1, 0, 0), To: today.AddDate(1, 0, 0)}

	if fromStr != "" {
		from, err := dateutil.ParseDate(fromStr, now.Location())
		if err != nil {
			return dateutil.Range{}, fmt.Errorf("--from: %w", err)
		}
		r.From = from
	}
	if toStr != "" {
		to, err := dateutil.ParseDate(toStr, now.Location())
		if err != nil {
			return dateutil.Range{}, fmt.Errorf("--to: %w", err)
		}
		r.To = dateutil.EndOf(to, dateutil.UnitDay, dateutil.WeekStartSunday)
	}
	if r.To.Before(r.From) {
		return dateutil.Range{}, fmt.Errorf("--to %s is before --from %s", r.To.Format(dateutil.DayKeyLayout), r.From.Format(dateutil.DayKeyLayout))
	}
	return r, nil
}

// importFiles stores the frames of every file. It stops at the first
// failure and returns what was stored so far.
func importFiles(ctx context.Context, repo frame.Repository, paths []string, opts importOpts) ([]importResult, error) {
	var results []importResult
	for _, path := range paths {
		frames, err := readFrames(path, opts)
		if err != nil {
			return results, err
		}
		for _, f := range frames {
			if err := repo.SaveFrame(ctx, f.Name, f); err != nil {
				return results, fmt.Errorf("saving frame %q: %w", f.Name, err)
			}
			results = append(results, importResult{Name: f.Name, Rows: f.Len(), Path: path})
		}
	}
	return results, nil
}

// readFrames loads the frames of one file by its extension.
func readFrames(path string, opts importOpts) ([]frame.Frame, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file does not exist: %s", path)
		}
		return nil, fmt.Errorf("checking file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory: %s", path)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ics", ".ical":
		f, err := ingest.LoadICS(path, opts.Window)
		if err != nil {
			return nil, err
		}
		f.Name = base
		if opts.Name != "" {
			f.Name = opts.Name
		}
		return []frame.Frame{f}, nil
	case ".yaml", ".yml":
		frames, err := ingest.LoadYAML(path)
		if err != nil {
			return nil, err
		}
		if opts.Name != "" && len(frames) == 1 {
			frames[0].Name = opts.Name
		}
		return frames, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, path)
	}
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
