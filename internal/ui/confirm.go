package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/carview/internal/carapi"
	"github.com/five82/carview/internal/state"
)

// confirmModal asks before deleting a car. It renders whatever the delete
// flow says and never changes the flow itself; confirming only emits
// confirmDeleteMsg.
type confirmModal struct {
	car  carapi.Car
	flow state.DeleteFlow
}

func newConfirmModal(car carapi.Car, flow state.DeleteFlow) confirmModal {
	return confirmModal{car: car, flow: flow}
}

// Update implements Modal.
func (c confirmModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil, false
	}
	switch {
	case key.Matches(keyMsg, keys.Confirm):
		if c.flow.Confirming() {
			return c, nil, false
		}
		return c, func() tea.Msg { return confirmDeleteMsg{} }, false
	case key.Matches(keyMsg, keys.Cancel):
		return c, nil, true
	}
	return c, nil, false
}

// View implements Modal.
func (c confirmModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder

	b.WriteString(styles.DangerText.Render("Delete car"))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render(displayTitle(c.car)))
	b.WriteString("\n")
	meta := displayColor(c.car) + " · " + displayPrice(c.car)
	if id, ok := c.flow.Pending(); ok {
		meta += " · id " + id.String()
	}
	b.WriteString(styles.MutedText.Render(meta))
	b.WriteString("\n\n")

	if err := c.flow.Err(); err != nil {
		b.WriteString(styles.DangerText.Render("Delete failed: "))
		b.WriteString(styles.Text.Width(44).Render(errorMessage(err)))
		b.WriteString("\n\n")
	}

	switch c.flow.Stage() {
	case state.DeleteConfirming:
		b.WriteString(styles.WarningText.Render("Deleting..."))
	default:
		label := "y: delete"
		if c.flow.Err() != nil {
			label = "y: retry"
		}
		b.WriteString(styles.AccentText.Render(label))
		b.WriteString("  ")
		b.WriteString(styles.MutedText.Render("n/esc: cancel"))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Danger)).
		Padding(1, 2).
		Width(52).
		Render(b.String())

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
