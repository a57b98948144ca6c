package frame

import (
	"slices"
	"strconv"
	"strings"
)

// Step is one threshold: values at or above Value take Color.
type Step struct {
	Value float64 `yaml:"value" toml:"value"`
	Color string  `yaml:"color" toml:"color"`
}

// Thresholds maps numeric values to colors. Base applies below the lowest
// step and to non-numeric values.
type Thresholds struct {
	Base  string `yaml:"base" toml:"base"`
	Steps []Step `yaml:"steps" toml:"steps"`
}

// ColorFor returns the color for a raw value.
func (t Thresholds) ColorFor(raw any) string {
	v, ok := toFloat(raw)
	if !ok {
		return t.Base
	}
	steps := slices.Clone(t.Steps)
	slices.SortFunc(steps, func(a, b Step) int {
		switch {
		case a.Value < b.Value:
			return -1
		case a.Value > b.Value:
			return 1
		default:
			return 0
		}
	})
	color := t.Base
	for _, s := range steps {
		if v < s.Value {
			break
		}
		color = s.Color
	}
	return color
}

// Display returns a display function that keeps the raw text and resolves
// its color through the thresholds.
func (t Thresholds) Display() DisplayFunc {
	return func(raw any) DisplayValue {
		return DisplayValue{Text: Stringify(raw), Color: t.ColorFor(raw)}
	}
}

// IsZero reports whether no thresholds are configured.
func (t Thresholds) IsZero() bool {
	return t.Base == "" && len(t.Steps) == 0
}

// ApplyThresholds gives every color field without a display function the
// threshold display. Frames are copied; the caller's fields are untouched.
func ApplyThresholds(frames []Frame, t Thresholds) []Frame {
	if t.IsZero() {
		return frames
	}
	out := make([]Frame, len(frames))
	for i, f := range frames {
		if f.Color != nil && f.Color.Display == nil {
			color := *f.Color
			color.Display = t.Display()
			f.Color = &color
		}
		out[i] = f
	}
	return out
}

func toFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
