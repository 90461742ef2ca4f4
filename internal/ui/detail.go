package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/carview/internal/carapi"
	"github.com/five82/carview/internal/state"
)

// openDetail switches to the detail view and requests car id.
func (m Model) openDetail(id carapi.ID) (Model, tea.Cmd) {
	m = m.closeDetail()
	m.currentView = ViewDetail
	m.detailID = id
	m.detailCar = carapi.Car{}
	return m.fetchDetail()
}

// fetchDetail (re)requests the current detail car under a fresh context so
// leaving the view can abort it.
func (m Model) fetchDetail() (Model, tea.Cmd) {
	if m.api == nil {
		return m, nil
	}
	if m.detailCancel != nil {
		m.detailCancel()
	}
	ctx, cancel := context.WithCancel(m.ctx)
	m.detailCancel = cancel
	seq := m.detail.Begin()
	m.detailViewport.GotoTop()
	return m, tea.Batch(fetchDetailCmd(ctx, m.api, m.detailID, seq), m.spinner.Tick)
}

// closeDetail leaves the detail view, aborting its request.
func (m Model) closeDetail() Model {
	if m.detailCancel != nil {
		m.detailCancel()
		m.detailCancel = nil
	}
	m.detail.Abandon()
	if m.currentView == ViewDetail {
		m.currentView = ViewList
	}
	return m
}

func (m Model) handleDetailLoaded(msg detailLoadedMsg) (Model, tea.Cmd) {
	if msg.err != nil {
		if !m.detail.Fail(msg.seq, msg.err) {
			return m, nil
		}
		m.log.Warn("get car failed", zap.String("id", msg.id.String()), zap.Error(msg.err))
		return m, nil
	}
	if !m.detail.Succeed(msg.seq) {
		m.log.Debug("dropped stale detail result", zap.String("id", msg.id.String()))
		return m, nil
	}
	m.detailCar = msg.car
	m.updateDetailViewport()
	return m, nil
}

// handleDetailKey processes keyboard input for the detail view.
func (m Model) handleDetailKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), msg.String() == "backspace", msg.String() == "q":
		return m.closeDetail(), nil

	case key.Matches(msg, m.keys.Reload):
		return m.fetchDetail()

	case key.Matches(msg, m.keys.Delete):
		if m.detail.Phase == state.Loaded {
			car := m.detailCar
			if car.ID == "" {
				car.ID = m.detailID
			}
			return m.requestDelete(car)
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.detailViewport.LineDown(1)
	case key.Matches(msg, m.keys.Up):
		m.detailViewport.LineUp(1)
	case key.Matches(msg, m.keys.HalfPageDown):
		m.detailViewport.HalfViewDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		m.detailViewport.HalfViewUp()
	case key.Matches(msg, m.keys.Top):
		m.detailViewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.detailViewport.GotoBottom()
	}
	return m, nil
}

func (m *Model) resizeDetailViewport() {
	m.detailViewport.Width = m.width
	m.detailViewport.Height = m.bodyHeight() - 1
	m.updateDetailViewport()
}

func (m *Model) updateDetailViewport() {
	if m.detail.Phase != state.Loaded {
		return
	}
	m.detailViewport.SetContent(renderDetail(m.theme, m.detailCar, min(m.width, CardMaxWidth)))
}

// renderDetailView renders the detail region according to its phase.
func (m Model) renderDetailView() string {
	switch m.detail.Phase {
	case state.Loading:
		return renderLoading(m.theme, m.spinner.View(), "Loading car "+m.detailID.String()+"...")
	case state.Failed:
		return renderErrorPanel(m.theme, m.detail.Err, recoveryHint(m.detail.Err, true), m.width)
	case state.Loaded:
		return m.detailViewport.View()
	default:
		return ""
	}
}
