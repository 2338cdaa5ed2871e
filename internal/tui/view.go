package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/bidtrack/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	header := headerStyle.Render(fmt.Sprintf("Daily actions – %s (%d items)",
		m.plan.GeneratedAt.Format(constants.LongDateFormat), m.plan.Count()))

	var body string
	if m.table.Len() == 0 {
		body = emptyStyle.Render("All clear – nothing in this section.")
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			paneStyle.Render(m.table.View()),
			paneStyle.Render(m.detail.View()),
		)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		m.viewTabs(),
		body,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, t := range m.tabs {
		title := fmt.Sprintf("%s (%d)", t.title, len(t.items))
		if i == m.active {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}
