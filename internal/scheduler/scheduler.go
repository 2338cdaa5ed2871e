package scheduler

import (
	"time"

	"github.com/julianstephens/bidtrack/internal/constants"
	"github.com/julianstephens/bidtrack/internal/models"
	"github.com/julianstephens/bidtrack/internal/utils"
)

// Scheduler answers "what needs action now" over a set of bids. It holds no
// state besides its configuration; every call re-reads the clock.
type Scheduler struct {
	clock          utils.Clock
	closeAfterDays int
}

type Option func(*Scheduler)

func WithClock(c utils.Clock) Option {
	return func(s *Scheduler) { s.clock = c }
}

// WithCloseAfterDays sets how long a bid with a fully sent sequence may sit
// before NeedingClose flags it. Non-positive values keep the default.
func WithCloseAfterDays(days int) Option {
	return func(s *Scheduler) {
		if days > 0 {
			s.closeAfterDays = days
		}
	}
}

func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		clock:          utils.SystemClock{},
		closeAfterDays: constants.DefaultCloseAfterDays,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scheduler) Now() time.Time { return s.clock.Now() }

func (s *Scheduler) CloseAfterDays() int { return s.closeAfterDays }

// Action pairs a bid with one of its touchpoints.
type Action struct {
	Bid      *models.Bid
	FollowUp *models.FollowUpRecord
}

// ReadyToSubmit returns bids waiting only on submission.
func (s *Scheduler) ReadyToSubmit(bids []*models.Bid) []*models.Bid {
	return filter(bids, func(b *models.Bid) bool { return b.Status == models.StatusReadyToSubmit })
}

// AwaitingInput returns blocked bids.
func (s *Scheduler) AwaitingInput(bids []*models.Bid) []*models.Bid {
	return filter(bids, func(b *models.Bid) bool { return b.Status == models.StatusAwaitingInput })
}

// OverdueFollowUps returns every unsent touchpoint past its scheduled time on
// open bids. A bid contributes one pair per overdue touchpoint.
func (s *Scheduler) OverdueFollowUps(bids []*models.Bid) []Action {
	now := s.clock.Now()
	var out []Action
	for _, bid := range bids {
		if bid.IsClosed() {
			continue
		}
		for _, fu := range bid.OverdueFollowUps(now) {
			out = append(out, Action{Bid: bid, FollowUp: fu})
		}
	}
	return out
}

// DueToday returns, for each open bid, its next touchpoint when that is
// scheduled on today's calendar date.
func (s *Scheduler) DueToday(bids []*models.Bid) []Action {
	now := s.clock.Now()
	var out []Action
	for _, bid := range bids {
		if bid.IsClosed() {
			continue
		}
		next := bid.NextFollowUp()
		if next != nil && utils.SameDay(next.ScheduledAt, now) {
			out = append(out, Action{Bid: bid, FollowUp: next})
		}
	}
	return out
}

// NeedingClose returns open, submitted bids that have sent every touchpoint
// and are at least CloseAfterDays old. Someone has to close these by hand.
func (s *Scheduler) NeedingClose(bids []*models.Bid) []*models.Bid {
	now := s.clock.Now()
	return filter(bids, func(b *models.Bid) bool {
		if b.IsClosed() || !b.IsSubmitted() || !b.AllFollowUpsSent() {
			return false
		}
		days, _ := b.DaysSinceSubmission(now)
		return days >= s.closeAfterDays
	})
}

// DailyPlan is the full action list for one evaluation of the clock.
type DailyPlan struct {
	GeneratedAt    time.Time
	CloseAfterDays int
	AwaitingInput  []*models.Bid
	ReadyToSubmit  []*models.Bid
	Overdue        []Action
	DueToday       []Action
	NeedingClose   []*models.Bid
}

// Empty reports whether nothing needs attention.
func (p DailyPlan) Empty() bool {
	return len(p.AwaitingInput) == 0 && len(p.ReadyToSubmit) == 0 &&
		len(p.Overdue) == 0 && len(p.DueToday) == 0 && len(p.NeedingClose) == 0
}

// Count is the total number of action items.
func (p DailyPlan) Count() int {
	return len(p.AwaitingInput) + len(p.ReadyToSubmit) + len(p.Overdue) + len(p.DueToday) + len(p.NeedingClose)
}

// DailyActions evaluates every query against a single clock reading.
func (s *Scheduler) DailyActions(bids []*models.Bid) DailyPlan {
	pinned := &Scheduler{clock: utils.FixedClock{At: s.clock.Now()}, closeAfterDays: s.closeAfterDays}
	return DailyPlan{
		GeneratedAt:    pinned.Now(),
		CloseAfterDays: s.closeAfterDays,
		AwaitingInput:  pinned.AwaitingInput(bids),
		ReadyToSubmit:  pinned.ReadyToSubmit(bids),
		Overdue:        pinned.OverdueFollowUps(bids),
		DueToday:       pinned.DueToday(bids),
		NeedingClose:   pinned.NeedingClose(bids),
	}
}

func filter(bids []*models.Bid, keep func(*models.Bid) bool) []*models.Bid {
	var out []*models.Bid
	for _, b := range bids {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}
