package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/julianstephens/bidtrack/internal/email"
	"github.com/julianstephens/bidtrack/internal/models"
	"github.com/julianstephens/bidtrack/internal/report"
	"github.com/julianstephens/bidtrack/internal/scenario"
)

// DemoCmd walks one bid through its whole lifecycle, printing what each step
// produces, then shows the daily report for the demo bids. It ignores
// --scenario.
type DemoCmd struct{}

func (c *DemoCmd) Run(ctx *Context) error {
	now := ctx.Clock.Now()
	w := ctx.Out
	const featured = "736"

	var stepErr error
	observe := func(bid *models.Bid, _ int, ev scenario.Event) {
		if stepErr != nil || bid.ID != featured {
			return
		}
		stepErr = c.step(ctx, w, bid, ev)
	}

	bids, err := scenario.Replay(scenario.Demo(now),
		scenario.WithClock(ctx.Clock),
		scenario.WithObserver(observe))
	if err != nil {
		return err
	}
	if stepErr != nil {
		return stepErr
	}

	banner(w, "EXAMPLE 6: Daily action report")
	return report.DailyReport(w, ctx.Scheduler.DailyActions(bids))
}

func (c *DemoCmd) step(ctx *Context, w io.Writer, bid *models.Bid, ev scenario.Event) error {
	now := ctx.Clock.Now()
	switch ev.Type {
	case scenario.EventBlock:
		banner(w, "EXAMPLE 1: Bid blocked awaiting input")
		return renderMessage(ctx, w, bid, email.KindAwaitingInput)
	case scenario.EventSubmit:
		banner(w, "EXAMPLE 2: Bid submitted, follow-ups active")
		if err := renderMessage(ctx, w, bid, email.KindSubmitted); err != nil {
			return err
		}
		return report.Summary(w, bid, now)
	case scenario.EventSendFollowUp:
		banner(w, "EXAMPLE 3: Send first follow-up")
		return renderMessage(ctx, w, bid, email.Kind(ev.Kind))
	case scenario.EventGCResponse:
		banner(w, "EXAMPLE 4: Record GC response")
		return report.Summary(w, bid, now)
	case scenario.EventClose:
		banner(w, "EXAMPLE 5: Close as "+strings.ToUpper(string(ev.Outcome)))
		return report.Summary(w, bid, now)
	}
	return nil
}

func renderMessage(ctx *Context, w io.Writer, bid *models.Bid, kind email.Kind) error {
	msg, err := ctx.Composer.Render(bid, kind)
	if err != nil {
		return err
	}
	return printMessage(w, msg)
}

func banner(w io.Writer, title string) {
	rule := strings.Repeat("=", 70)
	fmt.Fprintf(w, "\n%s\n%s\n%s\n\n", rule, title, rule)
}
