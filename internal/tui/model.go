// Package tui is the read-only action board: the day's action items in a
// table, filtered by section, next to the selected bid's summary.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/bidtrack/internal/report"
	"github.com/julianstephens/bidtrack/internal/scheduler"
	"github.com/julianstephens/bidtrack/internal/tui/components/actions"
	"github.com/julianstephens/bidtrack/internal/tui/components/detail"
)

const (
	defaultTableHeight = 12
	defaultDetailWidth = 72
)

// tab is one filter of the board. The first tab shows every section.
type tab struct {
	title string
	items []actions.Item
}

type Model struct {
	plan     scheduler.DailyPlan
	tabs     []tab
	active   int
	keys     KeyMap
	help     help.Model
	table    actions.Model
	detail   detail.Model
	quitting bool
	width    int
	height   int
}

func NewModel(plan scheduler.DailyPlan) Model {
	tabs := buildTabs(report.Sections(plan))
	m := Model{
		plan:   plan,
		tabs:   tabs,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		table:  actions.New(tabs[0].items, defaultTableHeight),
		detail: detail.New(defaultDetailWidth, defaultTableHeight, plan.GeneratedAt),
	}
	m.syncDetail()
	return m
}

func buildTabs(sections []report.Section) []tab {
	var all []actions.Item
	var perSection []tab
	for _, s := range sections {
		t := tab{title: s.Title}
		for _, it := range s.Items {
			item := actions.Item{Section: s.Title, Bid: it.Bid, Detail: it.Detail}
			t.items = append(t.items, item)
			all = append(all, item)
		}
		perSection = append(perSection, t)
	}
	return append([]tab{{title: "All", items: all}}, perSection...)
}

func (m Model) ShortHelp() []key.Binding { return m.keys.ShortHelp() }

func (m Model) FullHelp() [][]key.Binding { return m.keys.FullHelp() }

func (m Model) Init() tea.Cmd {
	return nil
}

// Active returns the title of the section filter in use.
func (m Model) Active() string { return m.tabs[m.active].title }

func (m *Model) setTab(i int) {
	m.active = (i + len(m.tabs)) % len(m.tabs)
	m.table.SetItems(m.tabs[m.active].items)
	m.syncDetail()
}

func (m *Model) syncDetail() {
	if it, ok := m.table.Selected(); ok {
		m.detail.SetBid(it.Bid)
		return
	}
	m.detail.SetBid(nil)
}
