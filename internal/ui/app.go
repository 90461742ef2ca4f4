package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/carview/internal/carapi"
	"github.com/five82/carview/internal/prefs"
	"github.com/five82/carview/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewList View = iota
	ViewDetail
	ViewForm
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Cars      carapi.CarService
	Logger    *zap.Logger
	APILabel  string // shown in the header, usually the API base URL
	ThemeName string
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	api       carapi.CarService
	log       *zap.Logger
	keys      keyMap
	prefsPath string
	apiLabel  string

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	spinner     spinner.Model
	showHelp    bool
	modal       Modal
	notice      notice

	// List view
	list     state.Load
	cars     []carapi.Car
	selected int
	removing map[carapi.ID]bool

	// Detail view
	detail         state.Load
	detailID       carapi.ID
	detailCar      carapi.Car
	detailCancel   context.CancelFunc
	detailViewport viewport.Model

	// Create form
	form formModel

	// Delete flow
	deletes state.DeleteFlow
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = ThemeNames()[0]
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	theme := GetTheme(themeName)
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent))

	return Model{
		ctx:         ctx,
		api:         opts.Cars,
		log:         logger,
		keys:        DefaultKeyMap(),
		prefsPath:   prefsPath,
		apiLabel:    opts.APILabel,
		theme:       theme,
		currentView: ViewList,
		spinner:     sp,
		removing:    make(map[carapi.ID]bool),
		form:        newFormModel(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		func() tea.Msg { return reloadMsg{} },
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.detailViewport = viewport.New(msg.Width, m.bodyHeight())
		}
		m.ready = true
		m.resizeDetailViewport()
		m.form.setWidth(msg.Width)
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case reloadMsg:
		return m.reloadList()

	case listLoadedMsg:
		return m.handleListLoaded(msg)

	case detailLoadedMsg:
		return m.handleDetailLoaded(msg)

	case carCreatedMsg:
		return m.handleCarCreated(msg)

	case closeFormMsg:
		if m.currentView == ViewForm && msg.gen == m.form.gen && !m.form.state.Busy() {
			m.currentView = ViewList
		}
		return m, nil

	case confirmDeleteMsg:
		return m.confirmDelete()

	case carDeletedMsg:
		return m.handleCarDeleted(msg)

	case fadeDoneMsg:
		m.removeCar(msg.id)
		return m, nil
	}

	if m.currentView == ViewForm {
		var cmd tea.Cmd
		m.form, cmd = m.form.update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}

	return m.renderMain()
}

// handleKey processes keyboard input. Overlays take precedence over the view
// underneath, and the create form keeps every printable key for its inputs.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		modal, cmd, closed := m.modal.Update(msg, m.keys)
		m.modal = modal
		if closed {
			m.modal = nil
			m.deletes.Dismiss()
		}
		return m, cmd
	}

	if m.currentView == ViewForm {
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		return m.handleFormKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
		if m.prefsPath != "" {
			if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
				m.log.Warn("save prefs failed", zap.Error(err))
			}
		}
		m.updateDetailViewport()
		return m, nil
	}

	switch m.currentView {
	case ViewDetail:
		return m.handleDetailKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

// busy reports whether any request is in flight, which keeps the spinner
// ticking.
func (m Model) busy() bool {
	return m.list.Phase == state.Loading ||
		m.detail.Phase == state.Loading ||
		m.form.state.Busy() ||
		m.deletes.Confirming()
}

// bodyHeight is the number of rows below the header and command bar.
func (m Model) bodyHeight() int {
	return max(m.height-chromeHeight, 1)
}

// renderMain renders the header, command bar and active view.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n\n")
	b.WriteString(m.renderContent())

	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewDetail:
		return m.renderDetailView()
	case ViewForm:
		return m.renderForm()
	default:
		return m.renderListView()
	}
}

// notice is a one-line status message shown above the list.
type notice struct {
	text  string
	isErr bool
}

func (n notice) render(styles Styles) string {
	if n.isErr {
		return styles.DangerText.Render(n.text)
	}
	return styles.SuccessText.Render(n.text)
}

// Messages

type reloadMsg struct{}

type listLoadedMsg struct {
	seq  uint64
	cars []carapi.Car
	err  error
}

type detailLoadedMsg struct {
	seq uint64
	id  carapi.ID
	car carapi.Car
	err error
}

type carCreatedMsg struct {
	car carapi.Car
	err error
}

type closeFormMsg struct{ gen int }

type confirmDeleteMsg struct{}

type carDeletedMsg struct {
	id  carapi.ID
	err error
}

type fadeDoneMsg struct{ id carapi.ID }

// Commands

func fetchListCmd(ctx context.Context, api carapi.CarService, seq uint64) tea.Cmd {
	return func() tea.Msg {
		cars, err := api.ListCars(ctx)
		return listLoadedMsg{seq: seq, cars: cars, err: err}
	}
}

func fetchDetailCmd(ctx context.Context, api carapi.CarService, id carapi.ID, seq uint64) tea.Cmd {
	return func() tea.Msg {
		car, err := api.GetCar(ctx, id)
		return detailLoadedMsg{seq: seq, id: id, car: car, err: err}
	}
}

func createCarCmd(ctx context.Context, api carapi.CarService, draft carapi.Draft) tea.Cmd {
	return func() tea.Msg {
		car, err := api.CreateCar(ctx, draft)
		return carCreatedMsg{car: car, err: err}
	}
}

func deleteCarCmd(ctx context.Context, api carapi.CarService, id carapi.ID) tea.Cmd {
	return func() tea.Msg {
		_, err := api.DeleteCar(ctx, id)
		return carDeletedMsg{id: id, err: err}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	final, err := p.Run()
	if fm, ok := final.(Model); ok && fm.detailCancel != nil {
		fm.detailCancel()
	}
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		// Interrupted by a signal, not a failure.
		return nil
	}
	return err
}
