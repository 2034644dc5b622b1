package ui

import "github.com/charmbracelet/lipgloss"

// Theme defines colors for the UI.
type Theme struct {
	Name string

	Background string
	Surface    string
	Border     string

	Text    string
	Muted   string
	Accent  string
	Success string
	Warning string
	Danger  string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)).
			Bold(true),

		TitleError: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		TitleSignin: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),

		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		StatusOK: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)),

		StatusError: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)),

		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(1, 2),

		Accent: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),
	}
}

// Styles holds the rendered lipgloss styles for a theme.
type Styles struct {
	Title       lipgloss.Style
	TitleError  lipgloss.Style
	TitleSignin lipgloss.Style
	Status      lipgloss.Style
	StatusOK    lipgloss.Style
	StatusError lipgloss.Style
	Header      lipgloss.Style
	Footer      lipgloss.Style
	Box         lipgloss.Style
	Accent      lipgloss.Style
}

var themes = []Theme{
	{
		Name:       "Dracula",
		Background: "#282a36",
		Surface:    "#44475a",
		Border:     "#6272a4",
		Text:       "#f8f8f2",
		Muted:      "#6272a4",
		Accent:     "#bd93f9",
		Success:    "#50fa7b",
		Warning:    "#f1fa8c",
		Danger:     "#ff5555",
	},
	{
		Name:       "Slate",
		Background: "#1e293b",
		Surface:    "#334155",
		Border:     "#475569",
		Text:       "#e2e8f0",
		Muted:      "#94a3b8",
		Accent:     "#38bdf8",
		Success:    "#4ade80",
		Warning:    "#facc15",
		Danger:     "#f87171",
	},
}

// GetTheme returns the named theme, falling back to the first one.
func GetTheme(name string) Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return themes[0]
}

// NextTheme returns the name of the theme after the given one, wrapping
// around at the end of the list.
func NextTheme(name string) string {
	for i, t := range themes {
		if t.Name == name {
			return themes[(i+1)%len(themes)].Name
		}
	}
	return themes[0].Name
}
