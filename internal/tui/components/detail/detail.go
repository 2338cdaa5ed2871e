package detail

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/bidtrack/internal/models"
	"github.com/julianstephens/bidtrack/internal/report"
)

// Model shows the summary of the selected bid.
type Model struct {
	viewport viewport.Model
	bid      *models.Bid
	now      time.Time
}

func New(width, height int, now time.Time) Model {
	return Model{viewport: viewport.New(width, height), now: now}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.render()
}

func (m *Model) SetBid(bid *models.Bid) {
	m.bid = bid
	m.render()
}

func (m Model) Bid() *models.Bid { return m.bid }

func (m *Model) render() {
	if m.bid == nil {
		m.viewport.SetContent("No bid selected.")
		return
	}
	var b strings.Builder
	if err := report.Summary(&b, m.bid, m.now); err != nil {
		m.viewport.SetContent("Failed to render bid: " + err.Error())
		return
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoTop()
}
