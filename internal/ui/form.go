package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/carview/internal/carapi"
	"github.com/five82/carview/internal/state"
)

// formField describes one input of the create form.
type formField struct {
	label       string
	placeholder string
	charLimit   int
}

var formFields = []formField{
	{"Brand", "e.g. Toyota", 50},
	{"Model", "e.g. Corolla", 50},
	{"Year", "e.g. 2019", 4},
	{"Color", "e.g. Red", 30},
	{"Price", "e.g. 15000", 12},
	{"Mileage", "e.g. 42000", 9},
	{"Description", "optional", 500},
	{"Image URL", "optional, https://...", 300},
}

const (
	fieldBrand = iota
	fieldModel
	fieldYear
	fieldColor
	fieldPrice
	fieldMileage
	fieldDescription
	fieldImageURL
)

// formModel is the create form. gen changes every time the form is opened so
// a delayed close aimed at an earlier opening is ignored.
type formModel struct {
	inputs []textinput.Model
	focus  int
	state  state.CreateForm
	notice string
	gen    int
}

func newFormModel() formModel {
	inputs := make([]textinput.Model, len(formFields))
	for i, f := range formFields {
		ti := textinput.New()
		ti.Placeholder = f.placeholder
		ti.CharLimit = f.charLimit
		ti.Width = 40
		inputs[i] = ti
	}
	inputs[0].Focus()
	return formModel{inputs: inputs}
}

func (f *formModel) setWidth(width int) {
	w := clamp(width-20, 20, 60)
	for i := range f.inputs {
		f.inputs[i].Width = w
	}
}

// draft collects the form as typed.
func (f formModel) draft() carapi.Draft {
	v := func(i int) string { return f.inputs[i].Value() }
	return carapi.Draft{
		Brand:       v(fieldBrand),
		Model:       v(fieldModel),
		Year:        v(fieldYear),
		Color:       v(fieldColor),
		Price:       v(fieldPrice),
		Mileage:     v(fieldMileage),
		Description: v(fieldDescription),
		ImageURL:    v(fieldImageURL),
	}
}

// clearInputs empties every input and focuses the first one.
func (f *formModel) clearInputs() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.focus = 0
	f.inputs[0].Focus()
}

func (f *formModel) focusField(i int) {
	f.inputs[f.focus].Blur()
	f.focus = (i + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

// update forwards msg to the focused input. Typing is ignored while a
// submission is in flight.
func (f formModel) update(msg tea.Msg) (formModel, tea.Cmd) {
	if f.state.Busy() {
		return f, nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

// openForm shows an empty create form. A submission still in flight keeps
// its state so the second submit stays blocked.
func (m Model) openForm() (Model, tea.Cmd) {
	m.form.gen++
	if !m.form.state.Busy() {
		m.form.state.Reset()
		m.form.notice = ""
		m.form.clearInputs()
	}
	m.currentView = ViewForm
	return m, textinput.Blink
}

// handleFormKey processes keyboard input for the create form.
func (m Model) handleFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.currentView = ViewList
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m.submitForm()

	case key.Matches(msg, m.keys.Open):
		if m.form.focus == len(m.form.inputs)-1 {
			return m.submitForm()
		}
		m.form.focusField(m.form.focus + 1)
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		m.form.focusField(m.form.focus + 1)
		return m, nil

	case key.Matches(msg, m.keys.PrevField):
		m.form.focusField(m.form.focus - 1)
		return m, nil
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

// submitForm validates the draft locally and, only when valid, sends it.
// A submit while one is in flight is ignored.
func (m Model) submitForm() (Model, tea.Cmd) {
	if !m.form.state.BeginSubmit() {
		return m, nil
	}
	m.form.notice = ""

	draft := m.form.draft()
	if _, err := carapi.ValidateDraft(draft); err != nil {
		m.form.state.Reject(carapi.FieldErrors(err))
		return m, nil
	}
	if m.api == nil {
		m.form.state.Reject([]string{"no API configured"})
		return m, nil
	}

	m.form.state.Submit()
	return m, tea.Batch(createCarCmd(m.ctx, m.api, draft), m.spinner.Tick)
}

func (m Model) handleCarCreated(msg carCreatedMsg) (Model, tea.Cmd) {
	if msg.err != nil {
		m.log.Warn("create car failed", zap.Error(msg.err))
		m.form.state.Failed(msg.err, carapi.FieldErrors(msg.err))
		if m.currentView != ViewForm {
			// The form is closed, so the failure goes on the list.
			m.notice = notice{text: "Create failed: " + errorMessage(msg.err), isErr: true}
		}
		return m, nil
	}

	m.form.state.Created()
	m.form.clearInputs()
	m.form.notice = "Car created: " + displayTitle(msg.car)
	m.notice = notice{text: m.form.notice}
	m.log.Info("car created", zap.String("id", msg.car.ID.String()))

	gen := m.form.gen
	m, reload := m.reloadList()
	closeLater := tea.Tick(CreateCloseDelay, func(time.Time) tea.Msg {
		return closeFormMsg{gen: gen}
	})
	return m, tea.Batch(reload, closeLater)
}

// renderForm renders the create form with its messages.
func (m Model) renderForm() string {
	styles := m.theme.Styles()
	var b strings.Builder

	b.WriteString(styles.AccentText.Bold(true).Render("New car"))
	b.WriteString("\n\n")

	labelStyle := styles.MutedText.Width(14)
	for i, f := range formFields {
		label := f.label
		if i == m.form.focus {
			b.WriteString(styles.AccentText.Width(14).Render(label))
		} else {
			b.WriteString(labelStyle.Render(label))
		}
		b.WriteString(m.form.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch m.form.state.Phase() {
	case state.FormSubmitting:
		b.WriteString(renderLoading(m.theme, m.spinner.View(), "Saving..."))
	case state.FormInvalid:
		b.WriteString(styles.DangerText.Render("Please fix the following:"))
		for _, p := range m.form.state.Problems() {
			b.WriteString("\n")
			b.WriteString(styles.WarningText.Render("• " + p))
		}
	case state.FormFailed:
		b.WriteString(renderErrorPanel(m.theme, m.form.state.Err(), "ctrl+s: try again  esc: cancel", m.width))
	case state.FormCreated:
		b.WriteString(styles.SuccessText.Render(m.form.notice))
	default:
		b.WriteString(styles.FaintText.Render("enter: next field  ctrl+s: submit  esc: cancel"))
	}

	return b.String()
}
