package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const helpKeyWidth = 12

// renderHelp renders the key bindings as a centered overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()
	keyStyle := fg(m.theme.Warning).Width(helpKeyWidth)

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))

	for _, group := range m.keys.helpGroups() {
		b.WriteString("\n\n")
		b.WriteString(styles.AccentText.Bold(true).Render(group.title))
		for _, binding := range group.bindings {
			h := binding.Help()
			b.WriteString("\n")
			b.WriteString(keyStyle.Render(h.Key))
			b.WriteString(styles.Text.Render(h.Desc))
		}
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(44)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		box.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
