// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/calpanel/internal/frame"
)

// FramesLoadedMsg is sent when the stored frames have been read.
type FramesLoadedMsg struct {
	Frames []frame.Frame
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// LinkCopiedMsg is sent after a link was written to the clipboard.
type LinkCopiedMsg struct {
	Href string
}

// writeClipboard is swapped in tests.
var writeClipboard = clipboard.WriteAll

// LoadFrames reads every stored frame from the repository.
func LoadFrames(repo frame.Repository) tea.Cmd {
	return func() tea.Msg {
		if repo == nil {
			return FramesLoadedMsg{}
		}
		frames, err := repo.LoadFrames(context.Background())
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading frames: %w", err)}
		}
		return FramesLoadedMsg{Frames: frames}
	}
}

// CopyLink writes href to the system clipboard.
func CopyLink(href string) tea.Cmd {
	return func() tea.Msg {
		if err := writeClipboard(href); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying link: %w", err)}
		}
		return LinkCopiedMsg{Href: href}
	}
}

// ClearStatusAfter schedules a ClearStatusMsg.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
