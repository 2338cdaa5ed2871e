package cli

import (
	"fmt"

	"github.com/julianstephens/bidtrack/internal/logger"
	"github.com/julianstephens/bidtrack/internal/scenario"
)

// ValidateCmd replays the scenario and reports every problem it finds without
// printing any reports.
type ValidateCmd struct{}

func (cmd *ValidateCmd) Run(ctx *Context) error {
	s, err := ctx.LoadScenario()
	if err != nil {
		return err
	}

	errs := scenario.Validate(s, scenario.WithClock(ctx.Clock))
	for _, e := range errs {
		logger.Warn("Scenario problem", "error", e)
		fmt.Fprintf(ctx.Out, "  - %v\n", e)
	}
	if len(errs) > 0 {
		return fmt.Errorf("scenario has %d problem(s)", len(errs))
	}

	fmt.Fprintf(ctx.Out, "Scenario OK: %d bid(s) replayed cleanly\n", len(s.Bids))
	return nil
}
