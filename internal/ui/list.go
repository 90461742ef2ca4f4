package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/carview/internal/carapi"
	"github.com/five82/carview/internal/state"
)

// reloadList starts a new list request. Any older one still in flight is
// superseded.
func (m Model) reloadList() (Model, tea.Cmd) {
	if m.api == nil {
		return m, nil
	}
	seq := m.list.Begin()
	return m, tea.Batch(fetchListCmd(m.ctx, m.api, seq), m.spinner.Tick)
}

func (m Model) handleListLoaded(msg listLoadedMsg) (Model, tea.Cmd) {
	if msg.err != nil {
		if !m.list.Fail(msg.seq, msg.err) {
			return m, nil
		}
		m.log.Warn("list cars failed", zap.Error(msg.err))
		return m, nil
	}
	if !m.list.Succeed(msg.seq) {
		m.log.Debug("dropped stale list result", zap.Uint64("seq", msg.seq))
		return m, nil
	}
	m.cars = msg.cars
	clear(m.removing)
	m.selected = clamp(m.selected, 0, len(m.cars)-1)
	m.log.Debug("list cars loaded", zap.Int("count", len(m.cars)))
	return m, nil
}

// handleListKey processes keyboard input for the list view.
func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Reload):
		m.notice = notice{}
		return m.reloadList()

	case key.Matches(msg, m.keys.New):
		return m.openForm()
	}

	count := len(m.cars)
	if count == 0 || !m.cardsShown() {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.selected < count-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Top):
		m.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selected = count - 1
	case key.Matches(msg, m.keys.HalfPageDown):
		m.selected = clamp(m.selected+m.visibleCards()/2, 0, count-1)
	case key.Matches(msg, m.keys.HalfPageUp):
		m.selected = clamp(m.selected-m.visibleCards()/2, 0, count-1)
	case key.Matches(msg, m.keys.Open):
		if car, ok := m.selectedCar(); ok {
			return m.openDetail(car.ID)
		}
	case key.Matches(msg, m.keys.Delete):
		if car, ok := m.selectedCar(); ok {
			return m.requestDelete(car)
		}
	}
	return m, nil
}

// cardsShown reports whether the list region is showing cards, as opposed
// to a spinner or the error panel.
func (m Model) cardsShown() bool {
	switch m.list.Phase {
	case state.Loaded:
		return true
	case state.Loading:
		return len(m.cars) > 0
	}
	return false
}

func (m Model) selectedCar() (carapi.Car, bool) {
	if m.selected < 0 || m.selected >= len(m.cars) {
		return carapi.Car{}, false
	}
	car := m.cars[m.selected]
	if m.removing[car.ID] {
		return carapi.Car{}, false
	}
	return car, true
}

// requestDelete opens the confirmation modal for car.
func (m Model) requestDelete(car carapi.Car) (Model, tea.Cmd) {
	if car.ID == "" || !m.deletes.Request(car.ID) {
		return m, nil
	}
	m.modal = newConfirmModal(car, m.deletes)
	return m, nil
}

// confirmDelete sends the delete request for the pending car.
func (m Model) confirmDelete() (Model, tea.Cmd) {
	id, ok := m.deletes.Confirm()
	if !ok || m.api == nil {
		return m, nil
	}
	m.refreshConfirmModal()
	return m, tea.Batch(deleteCarCmd(m.ctx, m.api, id), m.spinner.Tick)
}

func (m Model) handleCarDeleted(msg carDeletedMsg) (Model, tea.Cmd) {
	if msg.err != nil {
		m.log.Warn("delete car failed", zap.String("id", msg.id.String()), zap.Error(msg.err))
		if m.deletes.Fail(msg.id, msg.err) {
			m.refreshConfirmModal()
		} else {
			m.notice = notice{text: fmt.Sprintf("Delete failed: %s", errorMessage(msg.err)), isErr: true}
		}
		return m, nil
	}

	if m.deletes.Succeed(msg.id) {
		m.modal = nil
	}
	if m.currentView == ViewDetail && m.detailID == msg.id {
		m = m.closeDetail()
	}
	m.notice = notice{text: "Car deleted"}
	if !m.hasCar(msg.id) {
		return m, nil
	}
	m.removing[msg.id] = true
	return m, fadeCmd(msg.id)
}

// refreshConfirmModal rebuilds the open confirmation modal from the delete
// flow.
func (m *Model) refreshConfirmModal() {
	if cm, ok := m.modal.(confirmModal); ok {
		cm.flow = m.deletes
		m.modal = cm
	}
}

func (m Model) hasCar(id carapi.ID) bool {
	for _, c := range m.cars {
		if c.ID == id {
			return true
		}
	}
	return false
}

// removeCar drops a faded card from the list.
func (m *Model) removeCar(id carapi.ID) {
	delete(m.removing, id)
	kept := m.cars[:0:0]
	for _, c := range m.cars {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	m.cars = kept
	m.selected = clamp(m.selected, 0, len(m.cars)-1)
}

func fadeCmd(id carapi.ID) tea.Cmd {
	return tea.Tick(FadeDuration, func(time.Time) tea.Msg {
		return fadeDoneMsg{id: id}
	})
}

// visibleCards is how many cards fit in the body.
func (m Model) visibleCards() int {
	return max((m.bodyHeight()-2)/cardHeight, 1)
}

// renderListView renders the list region according to its phase.
func (m Model) renderListView() string {
	width := min(m.width, CardMaxWidth)

	var body string
	switch m.list.Phase {
	case state.Idle:
		body = ""
	case state.Loading:
		if len(m.cars) == 0 {
			return renderLoading(m.theme, m.spinner.View(), "Loading cars...")
		}
		body = m.renderCards(width)
	case state.Failed:
		body = renderErrorPanel(m.theme, m.list.Err, recoveryHint(m.list.Err, false), m.width)
	default:
		body = m.renderCards(width)
	}

	if m.notice.text != "" {
		body = m.notice.render(m.theme.Styles()) + "\n" + body
	}
	return body
}

func (m Model) renderCards(width int) string {
	visible := m.visibleCards()
	start := 0
	if m.selected >= visible {
		start = m.selected - visible + 1
	}
	return renderCarList(m.theme, m.cars, width, m.selected, start, start+visible, m.removing)
}
