package cli

import (
	"fmt"
	"os"

	"github.com/julianstephens/bidtrack/internal/logger"
	"github.com/julianstephens/bidtrack/internal/report"
)

type ReportCmd struct {
	PDF string `help:"Also write the report as a PDF to this path." type:"path" name:"pdf"`
}

func (c *ReportCmd) Run(ctx *Context) error {
	plan, err := ctx.Plan()
	if err != nil {
		return err
	}
	if err := report.DailyReport(ctx.Out, plan); err != nil {
		return err
	}
	if c.PDF == "" {
		return nil
	}

	f, err := os.Create(c.PDF)
	if err != nil {
		return fmt.Errorf("failed to create PDF: %w", err)
	}
	if err := report.WritePDF(f, plan); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}

	logger.Info("Wrote PDF report", "path", c.PDF, "items", plan.Count())
	fmt.Fprintf(ctx.Out, "PDF report written to %s\n", c.PDF)
	return nil
}

type ShowCmd struct {
	ID string `arg:"" help:"Bid ID."`
}

func (c *ShowCmd) Run(ctx *Context) error {
	bid, err := ctx.Bid(c.ID)
	if err != nil {
		return err
	}
	return report.Summary(ctx.Out, bid, ctx.Clock.Now())
}

type AuditCmd struct {
	ID string `arg:"" help:"Bid ID."`
}

func (c *AuditCmd) Run(ctx *Context) error {
	bid, err := ctx.Bid(c.ID)
	if err != nil {
		return err
	}
	return report.AuditTrail(ctx.Out, bid)
}
