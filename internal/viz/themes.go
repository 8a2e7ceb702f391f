package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the color scheme for the interactive viewer.
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Warning lipgloss.Color
}

var (
	// Green-phosphor look of the oscilloscope the figures are named for.
	ThemeScope = Theme{
		Name:    "scope",
		Primary: lipgloss.Color("#00ff00"),
		Accent:  lipgloss.Color("#88ff88"),
		Text:    lipgloss.Color("#00cc00"),
		Muted:   lipgloss.Color("#005500"),
		Warning: lipgloss.Color("#ffff00"),
	}

	ThemeLaser = Theme{
		Name:    "laser",
		Primary: lipgloss.Color("#ff3333"),
		Accent:  lipgloss.Color("#ff8888"),
		Text:    lipgloss.Color("#eeeeee"),
		Muted:   lipgloss.Color("#663333"),
		Warning: lipgloss.Color("#ffaa00"),
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Primary: lipgloss.Color("#ffffff"),
		Accent:  lipgloss.Color("#0088ff"),
		Text:    lipgloss.Color("#cccccc"),
		Muted:   lipgloss.Color("#888888"),
		Warning: lipgloss.Color("#ffaa00"),
	}
)

var themes = []Theme{ThemeScope, ThemeLaser, ThemeMinimal}

var CurrentTheme = ThemeScope

func ThemeNames() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

func SetTheme(name string) bool {
	for _, t := range themes {
		if t.Name == name {
			CurrentTheme = t
			return true
		}
	}
	return false
}

// NextTheme cycles to the theme after the current one.
func NextTheme() {
	for i, t := range themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = themes[(i+1)%len(themes)]
			return
		}
	}
	CurrentTheme = themes[0]
}
