package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/bidtrack/internal/models"
	"github.com/julianstephens/bidtrack/internal/scenario"
	"github.com/julianstephens/bidtrack/internal/scheduler"
	"github.com/julianstephens/bidtrack/internal/utils"
)

func demoModel(t *testing.T) Model {
	t.Helper()
	now := time.Date(2026, 1, 19, 12, 0, 0, 0, time.UTC)
	clock := utils.FixedClock{At: now}
	bids, err := scenario.Replay(scenario.Demo(now), scenario.WithClock(clock))
	require.NoError(t, err)
	return NewModel(scheduler.New(scheduler.WithClock(clock)).DailyActions(bids))
}

func press(m Model, msg tea.KeyMsg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func selectedBid(m Model) *models.Bid {
	return m.detail.Bid()
}

func TestNewModel(t *testing.T) {
	m := demoModel(t)

	assert.Equal(t, "All", m.Active())
	assert.Equal(t, 2, m.table.Len())
	require.NotNil(t, selectedBid(m))
	assert.Equal(t, "737", selectedBid(m).ID)

	view := m.View()
	assert.Contains(t, view, "Daily actions – January 19, 2026 (2 items)")
	assert.Contains(t, view, "All (2)")
	assert.Contains(t, view, "AWAITING INPUT (1)")
	assert.Contains(t, view, "Office Building Reno")
}

func TestNavigation(t *testing.T) {
	m := demoModel(t)

	m = press(m, tea.KeyMsg{Type: tea.KeyDown})
	require.NotNil(t, selectedBid(m))
	assert.Equal(t, "738", selectedBid(m).ID)

	m = press(m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "737", selectedBid(m).ID)
}

func TestSectionFilter(t *testing.T) {
	m := demoModel(t)

	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "AWAITING INPUT", m.Active())
	assert.Equal(t, 1, m.table.Len())

	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "READY TO SUBMIT", m.Active())
	assert.Equal(t, "738", selectedBid(m).ID)

	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "OVERDUE FOLLOW-UPS", m.Active())
	assert.Equal(t, 0, m.table.Len())
	assert.Nil(t, selectedBid(m))
	assert.Contains(t, m.View(), "All clear – nothing in this section.")

	m = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, "READY TO SUBMIT", m.Active())

	for i := 0; i < 4; i++ {
		m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	}
	assert.Equal(t, "All", m.Active())
}

func TestWindowResize(t *testing.T) {
	m := demoModel(t)
	next, cmd := m.Update(tea.WindowSizeMsg{Width: 200, Height: 40})
	assert.Nil(t, cmd)
	m = next.(Model)
	assert.Equal(t, 200, m.width)
	assert.Contains(t, m.View(), "BID #737")
}

func TestQuit(t *testing.T) {
	m := demoModel(t)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, next.(Model).View())
}
