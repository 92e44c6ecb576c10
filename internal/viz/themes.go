package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the water gradient and UI colours. Water interpolates from
// Deep at level 0 to Surface at level 1.
type Theme struct {
	Name    string
	Deep    lipgloss.Color
	Surface lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Accent  lipgloss.Color
	Warning lipgloss.Color
}

// Available themes
var (
	// ThemeOcean matches the rendered frame: black through pure blue.
	ThemeOcean = Theme{
		Name:    "ocean",
		Deep:    lipgloss.Color("#000000"),
		Surface: lipgloss.Color("#0000ff"),
		Text:    lipgloss.Color("#e0f0ff"),
		Muted:   lipgloss.Color("#4488aa"),
		Accent:  lipgloss.Color("#ffd700"),
		Warning: lipgloss.Color("#ffcc00"),
	}

	ThemeLagoon = Theme{
		Name:    "lagoon",
		Deep:    lipgloss.Color("#001a33"),
		Surface: lipgloss.Color("#00e0ff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#5f8fa0"),
		Accent:  lipgloss.Color("#ff9ff3"),
		Warning: lipgloss.Color("#ffc048"),
	}

	ThemeRetroGreen = Theme{
		Name:    "retro",
		Deep:    lipgloss.Color("#001100"),
		Surface: lipgloss.Color("#00ff00"),
		Text:    lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#005500"),
		Accent:  lipgloss.Color("#88ff88"),
		Warning: lipgloss.Color("#ffff00"),
	}

	ThemeInk = Theme{
		Name:    "ink",
		Deep:    lipgloss.Color("#ffffff"),
		Surface: lipgloss.Color("#000000"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
		Accent:  lipgloss.Color("#0088ff"),
		Warning: lipgloss.Color("#ffaa00"),
	}

	ThemeSunset = Theme{
		Name:    "sunset",
		Deep:    lipgloss.Color("#2d1b2e"),
		Surface: lipgloss.Color("#feca57"),
		Text:    lipgloss.Color("#fff5f5"),
		Muted:   lipgloss.Color("#8b6b8c"),
		Accent:  lipgloss.Color("#ff6b6b"),
		Warning: lipgloss.Color("#ff4757"),
	}

	// Default theme
	CurrentTheme = ThemeOcean

	// All available themes
	Themes = []Theme{
		ThemeOcean,
		ThemeLagoon,
		ThemeRetroGreen,
		ThemeInk,
		ThemeSunset,
	}
)

// Water is the colour of a cell at level v in [0,1].
func (t Theme) Water(v float64) lipgloss.Color {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	sr, sg, sb := parseHex(string(t.Deep))
	er, eg, eb := parseHex(string(t.Surface))
	r := int(float64(sr) + v*float64(er-sr) + 0.5)
	g := int(float64(sg) + v*float64(eg-sg) + 0.5)
	b := int(float64(sb) + v*float64(eb-sb) + 0.5)
	return lipgloss.Color(hexColor(r, g, b))
}

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeOcean
}

// SetTheme changes the current theme
func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
