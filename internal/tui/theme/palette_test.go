package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestNewPalette_EventShades(t *testing.T) {
	base := &Theme{
		Bg:          "#101010",
		BgHighlight: "#202020",
		BgSelection: "#303030",
		Fg:          "#ffffff",
		FgMuted:     "#aaaaaa",
		Accent:      "#ff0000",
		Today:       "#00ff00",
		Warning:     "#888888",
	}

	palette := NewPalette(base)

	tests := []struct {
		name  string
		color string
		want  lipgloss.Color
	}{
		{name: "hex is darkened", color: "#8090a0", want: lipgloss.Color("#404850")},
		{name: "floor keeps dark colors visible", color: "#102030", want: lipgloss.Color("#282828")},
		{name: "named color passes through", color: "red", want: lipgloss.Color("red")},
		{name: "empty uses highlight", color: "", want: lipgloss.Color(base.BgHighlight)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := palette.EventBg(tt.color); got != tt.want {
				t.Errorf("EventBg(%q) = %q, want %q", tt.color, got, tt.want)
			}
		})
	}

	if got := palette.EventFg("red"); got != palette.Fg {
		t.Errorf("EventFg(named) = %q, want theme fg", got)
	}
	if got := palette.EventFg("#8090a0"); got != lipgloss.Color(base.Fg) {
		t.Errorf("EventFg on dark chip = %q, want %q", got, base.Fg)
	}
}

func TestNewPalette_ModalFallbacks(t *testing.T) {
	base := &Theme{
		Bg:          "#101010",
		BgHighlight: "#202020",
		BgSelection: "#303030",
		Fg:          "#ffffff",
		FgMuted:     "#aaaaaa",
		Accent:      "#ff0000",
		Today:       "#ffff00",
		Warning:     "#ff00ff",
	}

	palette := NewPalette(base)
	if palette.Modal.Bg != lipgloss.Color(base.BgHighlight) {
		t.Fatalf("Modal.Bg = %q, want %q", palette.Modal.Bg, base.BgHighlight)
	}
	if palette.Modal.Border.Dark != base.Accent {
		t.Fatalf("Modal.Border.Dark = %q, want %q", palette.Modal.Border.Dark, base.Accent)
	}
	if palette.Modal.Backdrop != lipgloss.Color(base.BgSelection) {
		t.Fatalf("Modal.Backdrop = %q, want %q", palette.Modal.Backdrop, base.BgSelection)
	}
}

func TestNewPalette_LightThemeLightensChips(t *testing.T) {
	base := &Theme{
		Bg:          "#f5f5f5",
		BgHighlight: "#eeeeee",
		BgSelection: "#e0e0e0",
		Fg:          "#222222",
		FgMuted:     "#555555",
		Accent:      "#2f6feb",
		Today:       "#2f8f2f",
		Warning:     "#c2410c",
	}

	palette := NewPalette(base)
	chip := "#1d8a8a"
	if relativeLuminance(string(palette.EventBg(chip))) <= relativeLuminance(chip) {
		t.Fatalf("EventBg luminance = %f, want greater than %s", relativeLuminance(string(palette.EventBg(chip))), chip)
	}
	if got := palette.EventFg(chip); got != lipgloss.Color(base.Fg) {
		t.Fatalf("EventFg on light chip = %q, want %q", got, base.Fg)
	}
}

func TestChooseTextColorPrefersContrast(t *testing.T) {
	bg := "#f0f0f0"
	lightText := "#ffffff"
	darkText := "#111111"

	if got := chooseTextColor(bg, lightText, darkText); got != darkText {
		t.Fatalf("chooseTextColor(%q, %q, %q) = %q, want %q", bg, lightText, darkText, got, darkText)
	}
}
