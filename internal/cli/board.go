package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/bidtrack/internal/tui"
)

type BoardCmd struct{}

func (c *BoardCmd) Run(ctx *Context) error {
	plan, err := ctx.Plan()
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.NewModel(plan), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("board exited: %w", err)
	}
	return nil
}
