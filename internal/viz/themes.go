package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the colour scheme around the tank. An empty Liquid keeps the
// fill band colour.
type Theme struct {
	Name    string
	Liquid  lipgloss.Color
	Border  lipgloss.Color
	Title   lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Chart   lipgloss.Color
	Warning lipgloss.Color
}

var (
	ThemeTank = Theme{
		Name:    "tank",
		Border:  lipgloss.Color("#444466"),
		Title:   lipgloss.Color("#00ffff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#666688"),
		Chart:   lipgloss.Color("#8b5cf6"),
		Warning: lipgloss.Color("#ffaa00"),
	}

	ThemeMono = Theme{
		Name:    "mono",
		Liquid:  lipgloss.Color("#e0e0e0"),
		Border:  lipgloss.Color("#888888"),
		Title:   lipgloss.Color("#ffffff"),
		Text:    lipgloss.Color("#cccccc"),
		Muted:   lipgloss.Color("#666666"),
		Chart:   lipgloss.Color("#ffffff"),
		Warning: lipgloss.Color("#ffffff"),
	}

	ThemeOcean = Theme{
		Name:    "ocean",
		Liquid:  lipgloss.Color("#00a8cc"),
		Border:  lipgloss.Color("#0077be"),
		Title:   lipgloss.Color("#ffd700"),
		Text:    lipgloss.Color("#e0f0ff"),
		Muted:   lipgloss.Color("#4488aa"),
		Chart:   lipgloss.Color("#00ff88"),
		Warning: lipgloss.Color("#ffcc00"),
	}

	ThemeLava = Theme{
		Name:    "lava",
		Liquid:  lipgloss.Color("#ff6b35"),
		Border:  lipgloss.Color("#8b2e16"),
		Title:   lipgloss.Color("#feca57"),
		Text:    lipgloss.Color("#fff5f5"),
		Muted:   lipgloss.Color("#8b6b6c"),
		Chart:   lipgloss.Color("#ff4757"),
		Warning: lipgloss.Color("#ffc048"),
	}

	CurrentTheme = ThemeTank

	Themes = []Theme{
		ThemeTank,
		ThemeMono,
		ThemeOcean,
		ThemeLava,
	}
)

// GetTheme returns a theme by name, falling back to the default.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeTank
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = Themes[(i+1)%len(Themes)]
			return
		}
	}
	CurrentTheme = ThemeTank
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
