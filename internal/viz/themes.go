package viz

import "github.com/charmbracelet/lipgloss"

// Theme maps the roles a step can give an element to colors.
type Theme struct {
	Name    string
	Title   lipgloss.Color
	Bar     lipgloss.Color
	Compare lipgloss.Color
	Pivot   lipgloss.Color
	Found   lipgloss.Color
	Range   lipgloss.Color
	Wall    lipgloss.Color
	Mud     lipgloss.Color
	Visited lipgloss.Color
	Path    lipgloss.Color
	Muted   lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:    "cyberpunk",
		Title:   lipgloss.Color("#00ffff"),
		Bar:     lipgloss.Color("#8888aa"),
		Compare: lipgloss.Color("#ffff00"),
		Pivot:   lipgloss.Color("#ff00ff"),
		Found:   lipgloss.Color("#00ff00"),
		Range:   lipgloss.Color("#00aaff"),
		Wall:    lipgloss.Color("#444444"),
		Mud:     lipgloss.Color("#aa6600"),
		Visited: lipgloss.Color("#005577"),
		Path:    lipgloss.Color("#00ff88"),
		Muted:   lipgloss.Color("#666666"),
	}

	ThemeRetroGreen = Theme{
		Name:    "retro",
		Title:   lipgloss.Color("#00ff00"),
		Bar:     lipgloss.Color("#00aa00"),
		Compare: lipgloss.Color("#ccff66"),
		Pivot:   lipgloss.Color("#88ff88"),
		Found:   lipgloss.Color("#ffffff"),
		Range:   lipgloss.Color("#00cc00"),
		Wall:    lipgloss.Color("#003300"),
		Mud:     lipgloss.Color("#557700"),
		Visited: lipgloss.Color("#005500"),
		Path:    lipgloss.Color("#aaffaa"),
		Muted:   lipgloss.Color("#005500"),
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Title:   lipgloss.Color("#ffffff"),
		Bar:     lipgloss.Color("#888888"),
		Compare: lipgloss.Color("#0088ff"),
		Pivot:   lipgloss.Color("#ffaa00"),
		Found:   lipgloss.Color("#00ff00"),
		Range:   lipgloss.Color("#cccccc"),
		Wall:    lipgloss.Color("#333333"),
		Mud:     lipgloss.Color("#886644"),
		Visited: lipgloss.Color("#555555"),
		Path:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
	}

	ThemeOcean = Theme{
		Name:    "ocean",
		Title:   lipgloss.Color("#00a8cc"),
		Bar:     lipgloss.Color("#0077be"),
		Compare: lipgloss.Color("#ffd700"),
		Pivot:   lipgloss.Color("#ff4444"),
		Found:   lipgloss.Color("#00ff88"),
		Range:   lipgloss.Color("#e0f0ff"),
		Wall:    lipgloss.Color("#001a33"),
		Mud:     lipgloss.Color("#8b7355"),
		Visited: lipgloss.Color("#4488aa"),
		Path:    lipgloss.Color("#ffcc00"),
		Muted:   lipgloss.Color("#4488aa"),
	}

	ThemeSunset = Theme{
		Name:    "sunset",
		Title:   lipgloss.Color("#ff6b6b"),
		Bar:     lipgloss.Color("#feca57"),
		Compare: lipgloss.Color("#ff9ff3"),
		Pivot:   lipgloss.Color("#ff4757"),
		Found:   lipgloss.Color("#5fd068"),
		Range:   lipgloss.Color("#fff5f5"),
		Wall:    lipgloss.Color("#2d1b2e"),
		Mud:     lipgloss.Color("#a0522d"),
		Visited: lipgloss.Color("#8b6b8c"),
		Path:    lipgloss.Color("#ffc048"),
		Muted:   lipgloss.Color("#8b6b8c"),
	}

	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to the first one.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

// next returns the theme after t in Themes.
func (t Theme) next() Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

func (t Theme) fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}
