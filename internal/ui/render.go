package ui

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/carview/internal/carapi"
)

// Fallback text for missing or malformed car fields.
const (
	fallbackBrand       = "Unknown brand"
	fallbackModel       = "Unknown model"
	fallbackYear        = "N/A"
	fallbackColor       = "Not specified"
	fallbackMileage     = "N/A"
	fallbackPrice       = "Price unavailable"
	fallbackDescription = "No description available"
	emptyListText       = "No cars in the catalog yet"
)

func displayBrand(c carapi.Car) string {
	return orFallback(c.Brand, fallbackBrand)
}

func displayModel(c carapi.Car) string {
	return orFallback(c.Model, fallbackModel)
}

func displayYear(c carapi.Car) string {
	if c.Year == nil || *c.Year <= 0 {
		return fallbackYear
	}
	return strconv.Itoa(*c.Year)
}

func displayColor(c carapi.Car) string {
	return orFallback(c.Color, fallbackColor)
}

func displayDescription(c carapi.Car) string {
	return orFallback(c.Description, fallbackDescription)
}

func displayPrice(c carapi.Car) string {
	if c.Price == nil || *c.Price < 0 || math.IsNaN(*c.Price) || math.IsInf(*c.Price, 0) {
		return fallbackPrice
	}
	return formatEuros(*c.Price)
}

func displayMileage(c carapi.Car) string {
	if c.Mileage == nil || *c.Mileage < 0 {
		return fallbackMileage
	}
	return groupThousands(int64(*c.Mileage)) + " km"
}

// displayTitle returns "Year Brand Model", each part with its fallback.
func displayTitle(c carapi.Car) string {
	return displayYear(c) + " " + displayBrand(c) + " " + displayModel(c)
}

func orFallback(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

// formatEuros renders 24500 as "24 500 €" and 24500.5 as "24 500,50 €".
func formatEuros(v float64) string {
	cents := int64(math.Round(v * 100))
	whole := groupThousands(cents / 100)
	if frac := cents % 100; frac != 0 {
		return fmt.Sprintf("%s,%02d €", whole, frac)
	}
	return whole + " €"
}

// groupThousands separates thousands with a space: 1234567 -> "1 234 567".
func groupThousands(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	digits := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(d)
	}
	return sign + b.String()
}

// cardState marks how a card is drawn.
type cardState struct {
	selected bool
	fading   bool // deleted, fading out
}

// renderCard renders the summary card of one car.
func renderCard(theme Theme, c carapi.Car, width int, st cardState) string {
	styles := theme.Styles()

	titleStyle := styles.Text.Bold(true)
	metaStyle := styles.MutedText
	priceStyle := styles.SuccessText
	border := lipgloss.Color(theme.Border)
	descStyle := styles.FaintText
	if st.selected {
		titleStyle = styles.AccentText.Bold(true)
		border = lipgloss.Color(theme.BorderFocus)
	}
	if st.fading {
		titleStyle = styles.FaintText.Strikethrough(true)
		metaStyle = styles.FaintText
		priceStyle = styles.FaintText
		border = lipgloss.Color(theme.BorderMuted)
	}

	inner := max(width-4, 20)
	title := truncate(displayTitle(c), inner)
	meta := truncate(displayColor(c)+" · "+displayMileage(c), inner)
	desc := truncate(firstLine(displayDescription(c)), inner)

	body := titleStyle.Render(title) + "\n" +
		metaStyle.Render(meta) + "  " + priceStyle.Render(displayPrice(c)) + "\n" +
		descStyle.Render(desc)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(inner + 2).
		Render(body)
}

// cardHeight is the number of terminal rows one rendered card occupies.
const cardHeight = 5

// renderCarList renders one card per car, or the empty state. Only the cards
// in [start, end) are rendered.
func renderCarList(theme Theme, cars []carapi.Car, width, selected, start, end int, fading map[carapi.ID]bool) string {
	if len(cars) == 0 {
		return renderEmptyState(theme)
	}
	start = max(start, 0)
	if end > len(cars) || end <= 0 {
		end = len(cars)
	}
	cards := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		cards = append(cards, renderCard(theme, cars[i], width, cardState{
			selected: i == selected,
			fading:   fading[cars[i].ID],
		}))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func renderEmptyState(theme Theme) string {
	styles := theme.Styles()
	return styles.MutedText.Render(emptyListText) + "\n" +
		styles.FaintText.Render("press n to add one")
}

// detailRow is one line of the details table.
type detailRow struct {
	label string
	value string
}

func detailRows(c carapi.Car) []detailRow {
	return []detailRow{
		{"Year", displayYear(c)},
		{"Make", displayBrand(c)},
		{"Model", displayModel(c)},
		{"Color", displayColor(c)},
		{"Mileage", displayMileage(c)},
		{"Price", displayPrice(c)},
	}
}

// renderDetail renders the detail page of one car.
func renderDetail(theme Theme, c carapi.Car, width int) string {
	styles := theme.Styles()
	var b strings.Builder

	b.WriteString(styles.AccentText.Bold(true).Render(displayTitle(c)))
	b.WriteString("\n")
	b.WriteString(styles.SuccessText.Render(displayPrice(c)))
	b.WriteString("\n\n")

	labelStyle := styles.MutedText.Width(10)
	for _, row := range detailRows(c) {
		b.WriteString(labelStyle.Render(row.label))
		b.WriteString(styles.Text.Render(row.value))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Description"))
	b.WriteString("\n")
	descStyle := styles.Text
	if width > 4 {
		descStyle = descStyle.Width(width - 2)
	}
	b.WriteString(descStyle.Render(displayDescription(c)))

	if img := strings.TrimSpace(c.ImageURL); img != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.MutedText.Render("Image"))
		b.WriteString("\n")
		b.WriteString(styles.InfoText.Render(img))
	}
	if c.ID != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.FaintText.Render("id " + c.ID.String()))
	}
	return b.String()
}

// errorMessage converts an error to the text shown to the user.
func errorMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if fields := carapi.FieldErrors(err); len(fields) > 0 {
		// Field messages are listed separately.
		var apiErr *carapi.Error
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			msg = apiErr.Message
		}
	}
	return msg
}

// recoveryHint names the action that may get past err.
func recoveryHint(err error, canGoBack bool) string {
	switch {
	case errors.Is(err, carapi.ErrNotFound):
		if canGoBack {
			return "esc: back to the list"
		}
		return "r: reload"
	case errors.Is(err, carapi.ErrAuth):
		return "check api_key in the config file, then r: retry"
	}
	if canGoBack {
		return "r: retry  esc: back"
	}
	return "r: retry"
}

// renderErrorPanel renders err with a recovery action.
func renderErrorPanel(theme Theme, err error, hint string, width int) string {
	styles := theme.Styles()
	inner := max(min(width-4, 72), 20)

	body := styles.DangerText.Render("Error") + "\n" +
		styles.Text.Width(inner).Render(errorMessage(err))
	for _, field := range carapi.FieldErrors(err) {
		body += "\n" + styles.WarningText.Render("• "+field)
	}
	body += "\n\n" + styles.MutedText.Render(hint)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Danger)).
		Padding(0, 1).
		Render(body)
}

// renderLoading renders a spinner frame followed by label.
func renderLoading(theme Theme, spinnerView, label string) string {
	styles := theme.Styles()
	return spinnerView + " " + styles.MutedText.Render(label)
}
