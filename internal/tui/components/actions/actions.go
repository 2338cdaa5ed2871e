package actions

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/bidtrack/internal/models"
)

// Item is one row of the board.
type Item struct {
	Section string
	Bid     *models.Bid
	Detail  string
}

var columns = []table.Column{
	{Title: "Section", Width: 16},
	{Title: "Bid", Width: 8},
	{Title: "Project", Width: 24},
	{Title: "Detail", Width: 44},
}

// Width is the table's natural width including cell padding.
func Width() int {
	w := 0
	for _, c := range columns {
		w += c.Width + 2
	}
	return w
}

type Model struct {
	table table.Model
	items []Item
}

func New(items []Item, height int) Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	m := Model{table: t}
	m.SetItems(items)
	return m
}

func (m *Model) SetItems(items []Item) {
	m.items = items
	rows := make([]table.Row, len(items))
	for i, it := range items {
		rows[i] = table.Row{it.Section, "#" + it.Bid.ID, it.Bid.Project, it.Detail}
	}
	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

func (m *Model) SetHeight(h int) { m.table.SetHeight(h) }

// Selected returns the item under the cursor, if any.
func (m Model) Selected() (Item, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.items) {
		return Item{}, false
	}
	return m.items[i], true
}

func (m Model) Len() int { return len(m.items) }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.table.View()
}
