// Package theme provides color themes for the TUI.
package theme

import (
	"math"

	"github.com/charmbracelet/lipgloss"
)

// Palette holds precomputed colors derived from a Theme.
type Palette struct {
	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	BgSelection lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Today       lipgloss.Color
	Warning     lipgloss.Color

	TextOnAccent    lipgloss.Color
	TextOnToday     lipgloss.Color
	TextOnSelection lipgloss.Color

	Modal ModalColors

	isLight bool
	bgHex   string
	fgHex   string
}

// ModalColors holds modal-specific colors derived from a Theme.
type ModalColors struct {
	Bg       lipgloss.Color
	Border   lipgloss.AdaptiveColor
	Text     lipgloss.AdaptiveColor
	Muted    lipgloss.AdaptiveColor
	Panel    lipgloss.AdaptiveColor
	Backdrop lipgloss.Color
}

// NewPalette derives a Palette from the provided Theme.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load("mocha")
	}

	modalBgHex := coalesce(t.BaseBg, t.BgHighlight, t.Bg)

	return &Palette{
		Bg:          lipgloss.Color(t.Bg),
		BgHighlight: lipgloss.Color(t.BgHighlight),
		BgSelection: lipgloss.Color(t.BgSelection),
		Fg:          lipgloss.Color(t.Fg),
		FgMuted:     lipgloss.Color(t.FgMuted),
		Accent:      lipgloss.Color(t.Accent),
		Today:       lipgloss.Color(t.Today),
		Warning:     lipgloss.Color(t.Warning),

		TextOnAccent:    lipgloss.Color(chooseTextColor(t.Accent, t.Bg, t.Fg)),
		TextOnToday:     lipgloss.Color(chooseTextColor(t.Today, t.Bg, t.Fg)),
		TextOnSelection: lipgloss.Color(chooseTextColor(t.BgSelection, t.Bg, t.Fg)),

		Modal: ModalColors{
			Bg:       lipgloss.Color(modalBgHex),
			Border:   adaptiveColor(coalesce(t.ModalBorder, t.Accent)),
			Text:     adaptiveColor(coalesce(t.TextPrimary, t.Fg)),
			Muted:    adaptiveColor(coalesce(t.TextMuted, t.FgMuted)),
			Panel:    adaptiveColor(coalesce(t.Highlight, t.BgSelection, t.Bg)),
			Backdrop: lipgloss.Color(coalesce(t.BgSelection, t.BgHighlight, t.Bg)),
		},

		isLight: isLightTheme(t.Bg),
		bgHex:   t.Bg,
		fgHex:   t.Fg,
	}
}

// EventBg returns the chip background for an event color. Hex colors are
// toned toward the theme background; other color names pass through.
func (p *Palette) EventBg(color string) lipgloss.Color {
	if color == "" {
		return p.BgHighlight
	}
	if p.isLight {
		return lipgloss.Color(blendColors(color, p.bgHex, 0.65))
	}
	return lipgloss.Color(darkenColor(color))
}

// EventBgAlt returns a shade of EventBg used for the selected event.
func (p *Palette) EventBgAlt(color string) lipgloss.Color {
	return lipgloss.Color(alternateShade(string(p.EventBg(color)), p.isLight))
}

// EventFg returns a readable text color for an event chip.
func (p *Palette) EventFg(color string) lipgloss.Color {
	bg := string(p.EventBg(color))
	if !isHex(bg) {
		return p.Fg
	}
	return lipgloss.Color(chooseTextColor(bg, p.fgHex, p.bgHex))
}

func isHex(s string) bool {
	return len(s) == 7 && s[0] == '#'
}

func isLightTheme(bg string) bool {
	return relativeLuminance(bg) > 0.55
}

// darkenColor halves each channel of a hex color, keeping a floor so chips
// stay visible on dark backgrounds.
func darkenColor(hex string) string {
	if !isHex(hex) {
		return hex
	}
	var rgb [3]int
	for i := range rgb {
		parseHex(hex[1+2*i:3+2*i], &rgb[i])
		rgb[i] = max(rgb[i]/2, 40)
	}
	return formatHexColor(rgb[0], rgb[1], rgb[2])
}

// alternateShade nudges a chip color toward the contrasting end.
func alternateShade(hex string, isLight bool) string {
	if !isHex(hex) {
		return hex
	}
	if isLight {
		return blendColors(hex, "#000000", 0.10)
	}
	return blendColors(hex, "#ffffff", 0.30)
}

// parseHex parses a 2-character hex string into an integer.
func parseHex(s string, v *int) {
	var val int
	for i := 0; i < len(s); i++ {
		val *= 16
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			val += int(c - '0')
		case c >= 'a' && c <= 'f':
			val += int(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			val += int(c - 'A' + 10)
		}
	}
	*v = val
}

// formatHexColor formats RGB values as a hex color string.
func formatHexColor(r, g, b int) string {
	const hex = "0123456789abcdef"
	result := make([]byte, 7)
	result[0] = '#'
	result[1] = hex[r>>4]
	result[2] = hex[r&0xf]
	result[3] = hex[g>>4]
	result[4] = hex[g&0xf]
	result[5] = hex[b>>4]
	result[6] = hex[b&0xf]
	return string(result)
}

func adaptiveColor(hex string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{
		Dark:  hex,
		Light: hex,
	}
}

func chooseTextColor(bg, lightText, darkText string) string {
	lightContrast := contrastRatio(bg, lightText)
	darkContrast := contrastRatio(bg, darkText)
	if lightContrast >= darkContrast {
		return lightText
	}
	return darkText
}

func contrastRatio(a, b string) float64 {
	l1 := relativeLuminance(a)
	l2 := relativeLuminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

func relativeLuminance(hex string) float64 {
	if len(hex) != 7 || hex[0] != '#' {
		return 0
	}
	var r, g, b int
	parseHex(hex[1:3], &r)
	parseHex(hex[3:5], &g)
	parseHex(hex[5:7], &b)
	return 0.2126*srgbToLinear(r) + 0.7152*srgbToLinear(g) + 0.0722*srgbToLinear(b)
}

func srgbToLinear(c int) float64 {
	v := float64(c) / 255.0
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

func blendColors(a, b string, ratio float64) string {
	if len(a) != 7 || a[0] != '#' || len(b) != 7 || b[0] != '#' {
		return a
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}

	var ar, ag, ab int
	var br, bg, bb int
	parseHex(a[1:3], &ar)
	parseHex(a[3:5], &ag)
	parseHex(a[5:7], &ab)
	parseHex(b[1:3], &br)
	parseHex(b[3:5], &bg)
	parseHex(b[5:7], &bb)

	r := int(float64(ar)*(1-ratio) + float64(br)*ratio)
	g := int(float64(ag)*(1-ratio) + float64(bg)*ratio)
	bv := int(float64(ab)*(1-ratio) + float64(bb)*ratio)

	return formatHexColor(r, g, bv)
}
