package cli

import (
	"encoding/json"
	"fmt"
)

type InspectCmd struct {
	Config *InspectConfigCmd `cmd:"" help:"Show the effective configuration."`
	Dump   *InspectDumpCmd   `cmd:"" help:"Dump a replayed bid as JSON."`
}

type InspectConfigCmd struct{}

func (cmd *InspectConfigCmd) Run(ctx *Context) error {
	output := map[string]any{
		"source":           ctx.Config.Source,
		"scenario":         ctx.ScenarioPath,
		"state_dir":        ctx.Config.StateDir,
		"timezone":         ctx.Config.Timezone,
		"close_after_days": ctx.Scheduler.CloseAfterDays(),
		"now":              ctx.Clock.Now(),
		"sender":           ctx.Config.EmailSender(),
	}
	return printJSON(ctx, output)
}

type InspectDumpCmd struct {
	ID string `arg:"" help:"ID of the bid to dump."`
}

func (cmd *InspectDumpCmd) Run(ctx *Context) error {
	bid, err := ctx.Bid(cmd.ID)
	if err != nil {
		return err
	}
	return printJSON(ctx, bid)
}

func printJSON(ctx *Context, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(ctx.Out, string(jsonBytes))
	return err
}
