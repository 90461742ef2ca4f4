package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is a named palette. Colors are hex strings so they can be used both
// as lipgloss colors and in border definitions.
type Theme struct {
	Name string

	Background, Surface              string
	Border, BorderMuted, BorderFocus string
	Text, Muted, Faint               string
	Accent, Success, Warning, Danger string
	Info                             string

	// StatusColors maps a request phase name to its badge color.
	StatusColors map[string]string
}

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Background lipgloss.Style
	Surface    lipgloss.Style

	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header lipgloss.Style
	Logo   lipgloss.Style

	badges map[string]string
	ink    string
	muted  string
}

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// Styles builds the style set for t.
func (t Theme) Styles() Styles {
	return Styles{
		Background: lipgloss.NewStyle().Background(lipgloss.Color(t.Background)),
		Surface:    fg(t.Text).Background(lipgloss.Color(t.Surface)),

		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		SuccessText: fg(t.Success).Bold(true),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),
		InfoText:    fg(t.Info),

		Header: fg(t.Text).Background(lipgloss.Color(t.Surface)).Padding(0, 1),
		Logo:   fg(t.Warning).Bold(true),

		badges: t.StatusColors,
		ink:    t.Background,
		muted:  t.Muted,
	}
}

// StatusStyle returns the badge style for a phase name, muted when the
// phase has no color of its own.
func (s Styles) StatusStyle(phase string) lipgloss.Style {
	color, ok := s.badges[phase]
	if !ok {
		color = s.muted
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.ink)).
		Background(lipgloss.Color(color)).
		Padding(0, 1)
}

// WithBackground paints every text style onto bgColor so nested renders do
// not punch transparent holes into a panel.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	out := s
	for _, st := range []*lipgloss.Style{
		&out.Background, &out.Surface,
		&out.Text, &out.MutedText, &out.FaintText, &out.AccentText,
		&out.SuccessText, &out.WarningText, &out.DangerText, &out.InfoText,
		&out.Header, &out.Logo,
	} {
		*st = st.Background(bg)
	}
	return out
}

// themes lists the palettes in cycling order. The first is the default.
var themes = []Theme{
	{
		// https://github.com/EdenEast/nightfox.nvim
		Name:         "Nightfox",
		Background:   "#131a24", Surface: "#192330",
		Border:       "#39506d", BorderMuted: "#212e3f", BorderFocus: "#719cd6",
		Text:         "#cdcecf", Muted: "#738091", Faint: "#71839b",
		Accent:       "#719cd6", Success: "#81b29a", Warning: "#dbc074", Danger: "#c94f6d",
		Info:         "#63cdcf",
		StatusColors: map[string]string{
			"idle":   "#738091", "loading": "#63cdcf", "loaded": "#81b29a",
			"failed": "#c94f6d", "submitting": "#9d79d6", "deleting": "#f4a261",
		},
	},
	{
		// https://github.com/rebelot/kanagawa.nvim
		Name:         "Kanagawa",
		Background:   "#16161D", Surface: "#1F1F28",
		Border:       "#54546D", BorderMuted: "#2A2A37", BorderFocus: "#7E9CD8",
		Text:         "#DCD7BA", Muted: "#C8C093", Faint: "#727169",
		Accent:       "#7E9CD8", Success: "#98BB6C", Warning: "#E6C384", Danger: "#E46876",
		Info:         "#7FB4CA",
		StatusColors: map[string]string{
			"idle":   "#727169", "loading": "#7FB4CA", "loaded": "#98BB6C",
			"failed": "#E46876", "submitting": "#957FB8", "deleting": "#E6C384",
		},
	},
	{
		// Tailwind slate and sky.
		Name:         "Slate",
		Background:   "#020617", Surface: "#0f172a",
		Border:       "#334155", BorderMuted: "#1e293b", BorderFocus: "#38bdf8",
		Text:         "#f1f5f9", Muted: "#94a3b8", Faint: "#64748b",
		Accent:       "#38bdf8", Success: "#22c55e", Warning: "#f59e0b", Danger: "#ef4444",
		Info:         "#06b6d4",
		StatusColors: map[string]string{
			"idle":   "#64748b", "loading": "#38bdf8", "loaded": "#22c55e",
			"failed": "#dc2626", "submitting": "#06b6d4", "deleting": "#f59e0b",
		},
	},
}

// GetTheme returns the theme called name, or the default theme.
func GetTheme(name string) Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return themes[0]
}

// NextTheme returns the theme after current, wrapping around.
func NextTheme(current string) string {
	for i, t := range themes {
		if t.Name == current {
			return themes[(i+1)%len(themes)].Name
		}
	}
	return themes[0].Name
}

// ThemeNames returns the theme names in cycling order.
func ThemeNames() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}
