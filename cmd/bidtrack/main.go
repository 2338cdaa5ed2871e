package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/bidtrack/internal/cli"
	"github.com/julianstephens/bidtrack/internal/config"
	"github.com/julianstephens/bidtrack/internal/constants"
	"github.com/julianstephens/bidtrack/internal/errors"
	"github.com/julianstephens/bidtrack/internal/logger"
	"github.com/julianstephens/bidtrack/internal/utils"
)

var CLI struct {
	Version    kong.VersionFlag
	Config     string `help:"Config file path." type:"path" default:"${config_path}"`
	Scenario   string `help:"Scenario YAML to replay. The built-in demo is used when omitted." type:"path" short:"s"`
	Debug      bool   `help:"Log to stderr at debug level."`
	Now        string `help:"Evaluate as of this time (RFC3339 or YYYY-MM-DD) instead of the system clock."`
	CloseAfter int    `help:"Days after submission before a fully followed-up bid needs closing (overrides config)." name:"close-after"`

	Report   cli.ReportCmd   `cmd:"" help:"Print the daily action report." default:"1"`
	Show     cli.ShowCmd     `cmd:"" help:"Show a bid summary."`
	Audit    cli.AuditCmd    `cmd:"" help:"Show a bid's audit trail."`
	Email    cli.EmailCmd    `cmd:"" help:"Render an internal or GC email for a bid."`
	Board    cli.BoardCmd    `cmd:"" help:"Browse today's actions in an interactive board."`
	Demo     cli.DemoCmd     `cmd:"" help:"Walk a sample bid through its lifecycle."`
	Validate cli.ValidateCmd `cmd:"" help:"Replay the scenario and report problems."`
	Inspect  cli.InspectCmd  `cmd:"" help:"Inspect the effective config or a replayed bid."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Post-submission bid tracking: follow-ups, GC responses and outcomes."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
		},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}
	if CLI.CloseAfter != 0 {
		cfg.CloseAfterDays = CLI.CloseAfter
		if err := cfg.Validate(); err != nil {
			errors.Fatal(fmt.Errorf("--close-after: %w", err))
		}
	}

	if err := logger.Init(logger.Config{Debug: CLI.Debug, StateDir: cfg.StateDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
	logger.Debug("Config loaded", "source", cfg.Source, "close_after_days", cfg.CloseAfterDays, "timezone", cfg.Timezone)

	clock, err := newClock(cfg, CLI.Now)
	if err != nil {
		errors.Fatal(err)
	}

	appCtx := cli.NewContext(cfg, clock, CLI.Scenario)
	errors.Fatal(ctx.Run(appCtx))
}

func newClock(cfg *config.Config, now string) (utils.Clock, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	if now == "" {
		return utils.SystemClock{Location: loc}, nil
	}
	at, err := utils.ParseTimestamp(now, loc)
	if err != nil {
		return nil, fmt.Errorf("--now: %w", err)
	}
	return utils.FixedClock{At: at.In(loc)}, nil
}
