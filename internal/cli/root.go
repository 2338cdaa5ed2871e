package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/bidtrack/internal/config"
	"github.com/julianstephens/bidtrack/internal/email"
	"github.com/julianstephens/bidtrack/internal/logger"
	"github.com/julianstephens/bidtrack/internal/models"
	"github.com/julianstephens/bidtrack/internal/scenario"
	"github.com/julianstephens/bidtrack/internal/scheduler"
	"github.com/julianstephens/bidtrack/internal/utils"
)

var ErrBidNotFound = errors.New("bid not found")

// Context is shared by every command. Bids are replayed from the scenario
// file on first use, or from the built-in demo when no file is set.
type Context struct {
	Config       *config.Config
	Clock        utils.Clock
	Scheduler    *scheduler.Scheduler
	Composer     *email.Composer
	ScenarioPath string
	Out          io.Writer

	bids []*models.Bid
}

// NewContext wires the collaborators from cfg and clock.
func NewContext(cfg *config.Config, clock utils.Clock, scenarioPath string) *Context {
	return &Context{
		Config: cfg,
		Clock:  clock,
		Scheduler: scheduler.New(
			scheduler.WithClock(clock),
			scheduler.WithCloseAfterDays(cfg.CloseAfterDays),
		),
		Composer:     email.NewComposer(cfg.EmailSender()),
		ScenarioPath: scenarioPath,
		Out:          os.Stdout,
	}
}

// LoadScenario reads the configured scenario, falling back to the demo.
func (c *Context) LoadScenario() (*scenario.Scenario, error) {
	if c.ScenarioPath == "" {
		logger.Debug("No scenario given, using demo")
		return scenario.Demo(c.Clock.Now()), nil
	}
	return scenario.LoadFile(c.ScenarioPath)
}

// Bids returns the replayed bids, replaying at most once.
func (c *Context) Bids() ([]*models.Bid, error) {
	if c.bids != nil {
		return c.bids, nil
	}
	s, err := c.LoadScenario()
	if err != nil {
		return nil, err
	}
	bids, err := scenario.Replay(s, scenario.WithClock(c.Clock))
	if err != nil {
		return nil, fmt.Errorf("failed to replay scenario: %w", err)
	}
	c.bids = bids
	return bids, nil
}

// Bid looks up a single bid by id.
func (c *Context) Bid(id string) (*models.Bid, error) {
	bids, err := c.Bids()
	if err != nil {
		return nil, err
	}
	for _, bid := range bids {
		if bid.ID == id {
			return bid, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrBidNotFound, id)
}

// Plan evaluates the daily action list over every bid.
func (c *Context) Plan() (scheduler.DailyPlan, error) {
	bids, err := c.Bids()
	if err != nil {
		return scheduler.DailyPlan{}, err
	}
	return c.Scheduler.DailyActions(bids), nil
}
