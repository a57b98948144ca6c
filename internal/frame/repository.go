package frame

import (
	"context"
	"time"
)

// Info summarizes a stored frame.
type Info struct {
	Name      string
	Rows      int
	Fields    int
	CreatedAt time.Time
}

// Repository persists frames by name.
type Repository interface {
	// SaveFrame stores f under name, replacing any frame with that name.
	SaveFrame(ctx context.Context, name string, f Frame) error

	// LoadFrames returns every stored frame in insertion order.
	LoadFrames(ctx context.Context) ([]Frame, error)

	// DeleteFrame removes the named frame.
	DeleteFrame(ctx context.Context, name string) error

	// ListFrames summarizes the stored frames.
	ListFrames(ctx context.Context) ([]Info, error)

	Close() error
}

// StaticLinks returns a LinksFunc serving precomputed per-row links.
func StaticLinks(rows [][]Link) LinksFunc {
	return func(row int) []Link {
		if row < 0 || row >= len(rows) {
			return nil
		}
		return rows[row]
	}
}
