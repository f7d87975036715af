package theme

import "github.com/charmbracelet/lipgloss"

// Palette is the set of colours for one mode.
type Palette struct {
	Name       string
	Dark       bool
	Background lipgloss.Color
	Surface    lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Accent     lipgloss.Color

	// Shadow colours by countdown level.
	OK       lipgloss.Color
	Warning  lipgloss.Color
	Critical lipgloss.Color
}

// DarkPalette is used when the dark theme is active.
func DarkPalette() Palette {
	return Palette{
		Name:       ModeDark,
		Dark:       true,
		Background: lipgloss.Color("#111827"),
		Surface:    lipgloss.Color("#1F2937"),
		Foreground: lipgloss.Color("#E5E7EB"),
		Muted:      lipgloss.Color("#9CA3AF"),
		Border:     lipgloss.Color("#4B5563"),
		Accent:     lipgloss.Color("#A78BFA"),
		OK:         lipgloss.Color("#22C55E"),
		Warning:    lipgloss.Color("#EAB308"),
		Critical:   lipgloss.Color("#EF4444"),
	}
}

// LightPalette is used when the light theme is active.
func LightPalette() Palette {
	return Palette{
		Name:       ModeLight,
		Background: lipgloss.Color("#F3F4F6"),
		Surface:    lipgloss.Color("#FFFFFF"),
		Foreground: lipgloss.Color("#1F2937"),
		Muted:      lipgloss.Color("#4B5563"),
		Border:     lipgloss.Color("#D1D5DB"),
		Accent:     lipgloss.Color("#7C3AED"),
		OK:         lipgloss.Color("#16A34A"),
		Warning:    lipgloss.Color("#CA8A04"),
		Critical:   lipgloss.Color("#DC2626"),
	}
}

// PaletteFor returns the palette for the given mode.
func PaletteFor(dark bool) Palette {
	if dark {
		return DarkPalette()
	}
	return LightPalette()
}

// Shadow returns the colour for a countdown level ("ok", "warning", "critical").
// Unknown levels are treated as critical.
func (p Palette) Shadow(level string) lipgloss.Color {
	switch level {
	case "ok":
		return p.OK
	case "warning":
		return p.Warning
	default:
		return p.Critical
	}
}

// Icon is the toggle glyph: a sun offers light mode, a moon offers dark mode.
func (p Palette) Icon() string {
	if p.Dark {
		return "☀"
	}
	return "☾"
}
