package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/carview/internal/carapi"
	"github.com/five82/carview/internal/state"
)

// renderHeader renders the status bar: API, list phase, count and freshness.
func (m Model) renderHeader() string {
	// Header uses Surface background
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth
	sep := bg.Spaces(2)

	parts := []string{bg.Render("carview", styles.Logo)}

	if m.apiLabel != "" && !compact {
		parts = append(parts, bg.Render(truncateMiddle(m.apiLabel, 40), styles.MutedText))
	}

	phase := m.list.Phase.String()
	switch {
	case m.deletes.Confirming():
		phase = "deleting"
	case m.form.state.Busy():
		phase = "submitting"
	}
	parts = append(parts, styles.StatusStyle(phase).Render(strings.ToUpper(phase)))

	switch m.list.Phase {
	case state.Failed:
		parts = append(parts, bg.Render(failureLabel(m.list), styles.DangerText))
	case state.Loaded, state.Loading:
		if m.list.Phase == state.Loaded || len(m.cars) > 0 {
			parts = append(parts, bg.Render(pluralCars(len(m.cars)), styles.Text))
		}
	}

	if !m.list.LastUpdated.IsZero() && !compact {
		parts = append(parts,
			bg.Render("updated", styles.FaintText)+bg.Space()+
				bg.Render(m.list.LastUpdated.Format("15:04:05"), styles.MutedText))
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		Render(strings.Join(parts, sep))
}

func pluralCars(n int) string {
	if n == 1 {
		return "1 car"
	}
	return strconv.Itoa(n) + " cars"
}

// classifyError returns a short label for a failed request.
func classifyError(err error) string {
	if err == nil {
		return ""
	}
	switch carapi.KindOf(err) {
	case carapi.ErrTimeout:
		return "TIMEOUT"
	case carapi.ErrNetwork:
		return "OFFLINE"
	case carapi.ErrCORS:
		return "BLOCKED"
	case carapi.ErrAuth:
		return "UNAUTHORIZED"
	case carapi.ErrNotFound:
		return "NOT FOUND"
	case carapi.ErrServer:
		return "SERVER ERROR"
	case carapi.ErrMalformedJSON, carapi.ErrInvalidShape:
		return "BAD RESPONSE"
	default:
		return "ERROR"
	}
}

// failureLabel is the header text for a failed list: the error class, and
// the number of failures in a row once there is more than one.
func failureLabel(l state.Load) string {
	label := classifyError(l.Err)
	if l.Failures > 1 {
		label += " ×" + strconv.Itoa(l.Failures)
	}
	return label
}

// renderCommandBar renders the key hints for the current view.
func (m Model) renderCommandBar() string {
	// Command bar uses Surface background
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.currentView {
	case ViewDetail:
		commands = []cmd{
			{"esc", "Back"},
			{"r", "Retry"},
			{"d", "Delete"},
			{"j/k", "Scroll"},
			{"?", "More"},
		}
	case ViewForm:
		commands = []cmd{
			{"tab", "Next"},
			{"shift+tab", "Prev"},
			{"ctrl+s", "Submit"},
			{"esc", "Cancel"},
		}
	default: // ViewList
		commands = []cmd{
			{"j/k", "Navigate"},
			{"enter", "Details"},
			{"n", "New"},
			{"d", "Delete"},
			{"r", "Reload"},
			{"?", "More"},
		}
	}

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	// Add theme indicator
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, sep))
}
