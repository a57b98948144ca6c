package ui

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/calpanel/internal/config"
	"github.com/javiermolinar/calpanel/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  calpanel config`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInteractive()
		},
	}
}

func runConfigInteractive() error {
	configPath := config.DefaultConfigPath()
	fmt.Printf("Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Check if file exists
	_, fileErr := os.Stat(configPath)
	isNew := os.IsNotExist(fileErr)

	if isNew {
		fmt.Println("No config file found. Creating with default values...")
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("Created %s\n\n", configPath)
	}

	// Display current config
	printConfig(cfg)

	// Ask if user wants to edit
	if !promptYesNo("\nWould you like to edit the configuration?") {
		return nil
	}

	// Interactive editing
	reader := bufio.NewReader(os.Stdin)

	c := &cfg.Calendar
	c.Views = promptSlice(reader, "Views (comma-separated)", c.Views)
	c.DefaultView = promptValue(reader, "Default view", c.DefaultView)
	c.Colors = promptValue(reader, "Colors (frame, event, thresholds)", c.Colors)
	c.DescriptionFields = promptSlice(reader, "Description fields (comma-separated)", c.DescriptionFields)
	c.TimeZone = promptValue(reader, "Time zone (browser, utc or IANA name)", c.TimeZone)
	c.WeekStart = promptValue(reader, "Week start (locale, sunday, monday)", c.WeekStart)
	c.Locale = promptValue(reader, "Locale", c.Locale)
	c.QuickLinks = promptBool(reader, "Quick links", c.QuickLinks)
	cfg.Storage.DBPath = promptValue(reader, "Database path", cfg.Storage.DBPath)
	cfg.UI.Theme = promptTheme(reader, cfg.UI.Theme)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Save
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println("\nConfiguration saved!")
	return nil
}

func printConfig(cfg *config.Config) {
	c := cfg.Calendar
	fmt.Println("Current configuration:")
	fmt.Println("──────────────────────")
	fmt.Println("[calendar]")
	fmt.Printf("  default_view       = %s\n", c.DefaultView)
	fmt.Printf("  views              = %s\n", strings.Join(c.Views, ", "))
	fmt.Printf("  colors             = %s\n", c.Colors)
	if len(c.DescriptionFields) > 0 {
		fmt.Printf("  description_fields = %s\n", strings.Join(c.DescriptionFields, ", "))
	}
	fmt.Printf("  time_zone          = %s\n", c.TimeZone)
	fmt.Printf("  week_start         = %s (%s)\n", c.WeekStart, cfg.WeekStart())
	fmt.Printf("  locale             = %s\n", c.Locale)
	fmt.Printf("  quick_links        = %t\n", c.QuickLinks)
	if !c.Thresholds.IsZero() {
		fmt.Printf("  thresholds.base    = %s\n", c.Thresholds.Base)
		for _, s := range c.Thresholds.Steps {
			fmt.Printf("  thresholds.step    = %g -> %s\n", s.Value, s.Color)
		}
	}
	fmt.Println("\n[storage]")
	fmt.Printf("  db_path            = %s\n", cfg.Storage.DBPath)
	fmt.Println("\n[ui]")
	fmt.Printf("  theme              = %s\n", cfg.UI.Theme)
}

func promptYesNo(question string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, label, current string) string {
	if current == "" {
		fmt.Printf("  %s: ", label)
	} else {
		fmt.Printf("  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptSlice(reader *bufio.Reader, label string, current []string) []string {
	currentStr := strings.Join(current, ", ")
	fmt.Printf("  %s [%s]: ", label, currentStr)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	parts := strings.Split(input, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

func promptBool(reader *bufio.Reader, label string, current bool) bool {
	for {
		value := promptValue(reader, label+" (true/false)", strconv.FormatBool(current))
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
		fmt.Printf("  Invalid value %q. Use true or false\n", value)
	}
}

func promptTheme(reader *bufio.Reader, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Printf("  Invalid theme %q. Available: %s\n", value, options)
	}
}
