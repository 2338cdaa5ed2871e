package report

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

const ruleWidth = 70

type styles struct {
	title   lipgloss.Style
	heading lipgloss.Style
	muted   lipgloss.Style
	sent    lipgloss.Style
	overdue lipgloss.Style
	pending lipgloss.Style
	blocked lipgloss.Style
	closed  lipgloss.Style
	cell    lipgloss.Style
}

// newStyles binds the palette to w so colour is only emitted on a terminal.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		heading: r.NewStyle().Bold(true),
		muted:   r.NewStyle().Foreground(lipgloss.Color("240")),
		sent:    r.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		overdue: r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		pending: r.NewStyle().Foreground(lipgloss.Color("214")),
		blocked: r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		closed:  r.NewStyle().Foreground(lipgloss.Color("63")).Bold(true),
		cell:    r.NewStyle().Padding(0, 1),
	}
}
