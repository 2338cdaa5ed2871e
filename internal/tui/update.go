package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/bidtrack/internal/tui/components/actions"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		// tabs, help and pane borders
		body := max(msg.Height-6, 3)
		m.table.SetHeight(body)
		m.detail.SetSize(max(msg.Width-actions.Width()-4, 20), body)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.setTab(m.active + 1)
		case key.Matches(msg, m.keys.ShiftTab):
			m.setTab(m.active - 1)
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			m.syncDetail()
			return m, cmd
		}
	}

	return m, nil
}
