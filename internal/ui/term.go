package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Day headers: bold
	colorHeader = color.New(color.Bold)

	// Today's header stands out in cyan
	colorToday = color.New(color.FgCyan, color.Bold)

	// Times and ranges: yellow
	colorTime = color.New(color.FgYellow)

	// Warnings for skipped rows
	colorWarn = color.New(color.FgRed)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

func formatToday(s string) string {
	return colorToday.Sprint(s)
}

func formatTime(s string) string {
	return colorTime.Sprint(s)
}

func formatWarn(s string) string {
	return colorWarn.Sprint(s)
}

func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
