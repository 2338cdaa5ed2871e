// Package report renders bids and daily plans for people: plain-text blocks
// for the terminal and a PDF export of the daily action list.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/julianstephens/bidtrack/internal/constants"
	"github.com/julianstephens/bidtrack/internal/models"
	"github.com/julianstephens/bidtrack/internal/scheduler"
	"github.com/julianstephens/bidtrack/internal/tracker"
)

// printer remembers the first write error so the render code stays linear.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) println(s string) { p.printf("%s\n", s) }

func rule(ch string) string { return strings.Repeat(ch, ruleWidth) }

// Summary writes the human-readable block for one bid as of now.
func Summary(w io.Writer, bid *models.Bid, now time.Time) error {
	st := newStyles(w)
	p := &printer{w: w}

	p.println(rule("="))
	p.println(st.title.Render(fmt.Sprintf("BID #%s: %s", bid.ID, bid.Project)))
	p.println(rule("="))
	p.printf("Status: %s\n", bid.Status)
	p.printf("GC: %s / %s\n", bid.GCCompany, bid.Estimator.Name)
	p.printf("Platform: %s\n", bid.Platform)
	if bid.DueAt != nil && !bid.IsSubmitted() {
		p.printf("Due: %s\n", bid.DueAt.Format(constants.DisplayDateTimeFormat))
	}

	if bid.SubmittedAt != nil {
		p.printf("Submitted: %s %s\n",
			bid.SubmittedAt.Format(constants.DisplayDateTimeFormat),
			st.muted.Render("("+humanize.RelTime(*bid.SubmittedAt, now, "ago", "from now")+")"))
		if days, ok := bid.DaysSinceSubmission(now); ok {
			p.printf("Days since submission: %d\n", days)
		}
	}

	if bid.IsBlocked() {
		p.printf("\n%s %s\n", st.blocked.Render("BLOCKED:"), bid.PendingQuestion)
		if bid.PendingDeadline != nil {
			p.printf("   Deadline: %s\n", bid.PendingDeadline.Format(constants.DisplayDateTimeFormat))
		}
	}

	if len(bid.FollowUps) > 0 {
		p.printf("\n%s\n", st.heading.Render("Follow-ups:"))
		for i := range bid.FollowUps {
			fu := &bid.FollowUps[i]
			sent := ""
			if fu.SentAt != nil {
				sent = fmt.Sprintf(" (sent %s)", fu.SentAt.Format(constants.ShortDateFormat))
			}
			p.printf("  %s %-25s scheduled %s%s\n",
				badge(st, fu, now), fu.Kind, fu.ScheduledAt.Format(constants.ShortDateFormat), sent)
		}
	}

	if bid.LastResponse != "" {
		p.printf("\nLast GC Response: %s\n", bid.LastResponse)
		for _, r := range bid.Responses {
			p.printf("  %s\n", r)
		}
	}

	if c := bid.Closure; c != nil {
		p.printf("\n%s\n", rule("─"))
		p.println(st.closed.Render("CLOSED: " + bid.Status.String()))
		if c.AwardAmount != nil {
			p.printf("Award: %s\n", tracker.FormatMoney(*c.AwardAmount))
		}
		if c.Loss != nil {
			p.printf("Reason: %s\n", c.Loss.Reason)
			if c.Loss.Competitor != "" {
				p.printf("Lost to: %s\n", c.Loss.Competitor)
			}
			if c.Loss.WinningPrice != nil && *c.Loss.WinningPrice != 0 {
				p.printf("Winning price: %s\n", tracker.FormatMoney(*c.Loss.WinningPrice))
			}
		}
		if c.Note != "" {
			p.printf("Note: %s\n", c.Note)
		}
	}

	p.printf("%s\n\n", rule("="))
	return p.err
}

func badge(st styles, fu *models.FollowUpRecord, now time.Time) string {
	const width = 7
	label, style := "PENDING", st.pending
	switch {
	case fu.IsComplete():
		label, style = "SENT", st.sent
	case fu.IsOverdue(now):
		label, style = "OVERDUE", st.overdue
	}
	return style.Render(label) + strings.Repeat(" ", width-len(label))
}

// Section is one titled group of the daily action report.
type Section struct {
	Key   string
	Title string
	Items []Item
}

// Item is a single line of a section.
type Item struct {
	Bid    *models.Bid
	Detail string
}

// Sections lays a plan out in report order. Empty sections are kept so that
// callers can show zero counts.
func Sections(plan scheduler.DailyPlan) []Section {
	now := plan.GeneratedAt

	awaiting := Section{Key: "awaiting", Title: "AWAITING INPUT"}
	for _, bid := range plan.AwaitingInput {
		by := "ASAP"
		if bid.PendingDeadline != nil {
			by = bid.PendingDeadline.Format("03:04 PM")
		}
		awaiting.Items = append(awaiting.Items, Item{Bid: bid, Detail: fmt.Sprintf("%s [by %s]", bid.PendingQuestion, by)})
	}

	ready := Section{Key: "ready", Title: "READY TO SUBMIT"}
	for _, bid := range plan.ReadyToSubmit {
		due := "No deadline"
		if bid.DueAt != nil {
			due = bid.DueAt.Format(constants.ShortDateFormat + " at 03:04 PM")
		}
		ready.Items = append(ready.Items, Item{Bid: bid, Detail: "Due: " + due})
	}

	overdue := Section{Key: "overdue", Title: "OVERDUE FOLLOW-UPS"}
	for _, a := range plan.Overdue {
		overdue.Items = append(overdue.Items, Item{
			Bid:    a.Bid,
			Detail: fmt.Sprintf("%s (was due %s)", a.FollowUp.Kind, a.FollowUp.ScheduledAt.Format(constants.ShortDateFormat)),
		})
	}

	dueToday := Section{Key: "today", Title: "DUE TODAY"}
	for _, a := range plan.DueToday {
		dueToday.Items = append(dueToday.Items, Item{Bid: a.Bid, Detail: a.FollowUp.Kind.String()})
	}

	needsClose := Section{Key: "close", Title: "NEEDS CLOSE"}
	for _, bid := range plan.NeedingClose {
		days, _ := bid.DaysSinceSubmission(now)
		needsClose.Items = append(needsClose.Items, Item{
			Bid:    bid,
			Detail: fmt.Sprintf("%d days old, all follow-ups sent", days),
		})
	}

	return []Section{awaiting, ready, overdue, dueToday, needsClose}
}

// DailyReport writes the action list for plan.
func DailyReport(w io.Writer, plan scheduler.DailyPlan) error {
	st := newStyles(w)
	p := &printer{w: w}

	p.println(rule("="))
	p.println(st.title.Render("DAILY ACTION REPORT – " + plan.GeneratedAt.Format(constants.LongDateFormat)))
	p.printf("%s\n\n", rule("="))

	for _, s := range Sections(plan) {
		if len(s.Items) == 0 {
			continue
		}
		p.println(st.heading.Render(fmt.Sprintf("%s (%d):", s.Title, len(s.Items))))
		for _, item := range s.Items {
			p.printf("  - Bid #%s (%s): %s\n", item.Bid.ID, item.Bid.Project, item.Detail)
		}
		p.println("")
	}

	if plan.Empty() {
		p.printf("All clear – no actions due today.\n\n")
	}

	p.printf("%s\n\n", rule("="))
	return p.err
}

// AuditTrail writes the bid's audit log as a table, oldest first.
func AuditTrail(w io.Writer, bid *models.Bid) error {
	st := newStyles(w)
	p := &printer{w: w}

	p.println(st.title.Render(fmt.Sprintf("Audit trail for bid #%s (%d entries)", bid.ID, len(bid.Audit))))
	if len(bid.Audit) == 0 {
		p.println(st.muted.Render("  No entries"))
		return p.err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(st.muted).
		Headers("#", "WHEN", "STATUS", "NOTE").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return st.heading.Padding(0, 1)
			}
			return st.cell
		})
	for i, e := range bid.Audit {
		t.Row(fmt.Sprint(i+1), e.At.Format(constants.DisplayDateTimeFormat), e.Status.String(), e.Note)
	}
	p.println(t.String())
	return p.err
}
