package tracker

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/julianstephens/bidtrack/internal/constants"
	"github.com/julianstephens/bidtrack/internal/logger"
	"github.com/julianstephens/bidtrack/internal/models"
	"github.com/julianstephens/bidtrack/internal/utils"
)

// Tracker applies lifecycle transitions to bids. Every operation validates
// all of its preconditions before touching the bid, so a failed call leaves
// the bid exactly as it was.
type Tracker struct {
	clock utils.Clock
	newID func() string
}

type Option func(*Tracker)

// WithClock injects the time source used for audit timestamps and defaults.
func WithClock(c utils.Clock) Option {
	return func(t *Tracker) { t.clock = c }
}

// WithIDGenerator overrides how audit entry IDs are minted.
func WithIDGenerator(fn func() string) Option {
	return func(t *Tracker) { t.newID = fn }
}

func New(opts ...Option) *Tracker {
	t := &Tracker{
		clock: utils.SystemClock{},
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Now returns the tracker's current time.
func (t *Tracker) Now() time.Time { return t.clock.Now() }

// Block marks a not-yet-submitted bid as waiting on an internal decision.
func (t *Tracker) Block(bid *models.Bid, question string, deadline *time.Time) error {
	const op = "block"
	if err := t.require(bid, op, models.StatusAwaitingInput, preSubmission); err != nil {
		return err
	}
	if question == "" {
		return t.reject(bid, op, models.MissingField("pending question"))
	}

	bid.PendingQuestion = question
	bid.PendingDeadline = deadline
	t.record(bid, models.StatusAwaitingInput, "Blocked: "+question)
	return nil
}

// Unblock clears the pending question and returns the bid to ready_to_submit.
func (t *Tracker) Unblock(bid *models.Bid, note string) error {
	const op = "unblock"
	if err := t.require(bid, op, models.StatusReadyToSubmit, preSubmission); err != nil {
		return err
	}
	if note == "" {
		note = constants.NoteReadyToSubmit
	}

	bid.PendingQuestion = ""
	bid.PendingDeadline = nil
	t.record(bid, models.StatusReadyToSubmit, note)
	return nil
}

// Submit records the submission and lays out the follow-up schedule. It is not
// idempotent: a second call fails with ErrAlreadySubmitted.
func (t *Tracker) Submit(bid *models.Bid, at time.Time, proofRef string) error {
	const op = "submit"
	if err := t.require(bid, op, models.StatusSubmitted, preSubmission); err != nil {
		return err
	}

	schedule := models.FollowUpSchedule()
	followUps := make([]models.FollowUpRecord, 0, len(schedule))
	for _, entry := range schedule {
		followUps = append(followUps, models.FollowUpRecord{
			Kind:        entry.Kind,
			ScheduledAt: utils.AddDays(at, entry.OffsetDays),
		})
	}

	submitted := at
	bid.SubmittedAt = &submitted
	bid.ProofRef = proofRef
	bid.PendingQuestion = ""
	bid.PendingDeadline = nil
	bid.FollowUps = followUps

	// Two entries on purpose: the submission itself, then the schedule start.
	t.record(bid, models.StatusSubmitted, "Submitted with proof: "+proofRef)
	t.record(bid, models.StatusFollowUpActive,
		fmt.Sprintf("Follow-up schedule initialized (%d touchpoints)", len(followUps)))
	return nil
}

// ConfirmReceipt records that the GC acknowledged the bid.
func (t *Tracker) ConfirmReceipt(bid *models.Bid, note string) error {
	const op = "confirm receipt"
	if err := t.require(bid, op, models.StatusReceiptConfirmed, postSubmission); err != nil {
		return err
	}
	if note == "" {
		note = constants.NoteReceiptConfirmed
	}
	t.record(bid, models.StatusReceiptConfirmed, note)
	return nil
}

// SendFollowUp marks the touchpoint of kind as sent at the given time, or now
// when at is nil.
func (t *Tracker) SendFollowUp(bid *models.Bid, kind models.FollowUpKind, at *time.Time) error {
	const op = "send follow-up"
	if err := t.require(bid, op, models.StatusFollowUpActive, postSubmission); err != nil {
		return err
	}
	fu := bid.FollowUp(kind)
	if fu == nil {
		return t.reject(bid, op, fmt.Errorf("%w: %s", models.ErrUnknownFollowUpKind, kind))
	}
	if fu.IsComplete() {
		return t.reject(bid, op, fmt.Errorf("%w: %s", models.ErrAlreadySent, kind.Label()))
	}

	sent := t.clock.Now()
	if at != nil {
		sent = *at
	}
	fu.SentAt = &sent
	t.record(bid, models.StatusFollowUpActive, "Follow-up sent: "+kind.Label())
	return nil
}

// RecordGCResponse appends a GC reply to the bid's history.
//
// The reply is attached to the next touchpoint only when that touchpoint is
// already sent and unanswered. Next is the first unsent one, so in practice no
// touchpoint gets linked. Keep it that way until product decides how replies
// map to touchpoints.
func (t *Tracker) RecordGCResponse(bid *models.Bid, responseType models.GCResponseType, note string) error {
	const op = "record GC response"
	if err := t.require(bid, op, models.StatusGCResponseLogged, postSubmission); err != nil {
		return err
	}
	if !responseType.Valid() {
		return t.reject(bid, op, fmt.Errorf("unknown GC response type %q", responseType))
	}

	now := t.clock.Now()
	bid.LastResponse = responseType
	bid.Responses = append(bid.Responses, models.ResponseNote{At: now, Type: responseType, Note: note})

	if fu := bid.NextFollowUp(); fu != nil && fu.IsComplete() && !fu.GCResponded {
		fu.GCResponded = true
		fu.ResponseNote = note
	}

	t.record(bid, models.StatusGCResponseLogged, fmt.Sprintf("%s: %s", responseType.Label(), note))
	return nil
}

// CloseRequest carries the outcome-specific close data. Only the fields for
// Outcome are read.
type CloseRequest struct {
	Outcome     models.Outcome
	AwardAmount float64
	Loss        models.LossDetails
	Note        string
}

// Close moves a submitted bid to its terminal status. Nothing can change a
// closed bid afterwards.
func (t *Tracker) Close(bid *models.Bid, req CloseRequest) error {
	const op = "close"
	target, ok := req.Outcome.Status()
	if !ok {
		if bid.IsClosed() {
			return t.reject(bid, op, models.ErrAlreadyClosed)
		}
		return t.reject(bid, op, fmt.Errorf("%w: unknown outcome %q", models.ErrInvalidTransition, req.Outcome))
	}
	if err := t.require(bid, op, target, postSubmission); err != nil {
		return err
	}

	closure := &models.Closure{
		At:      t.clock.Now(),
		Outcome: req.Outcome,
		Note:    req.Note,
	}

	var note string
	switch req.Outcome {
	case models.OutcomeWon:
		amount := req.AwardAmount
		closure.AwardAmount = &amount
		note = "WON at " + FormatMoney(amount)
	case models.OutcomeLost:
		loss := req.Loss
		if loss.Reason == "" {
			loss.Reason = models.LossReasonUnknown
		}
		if !loss.Reason.Valid() {
			return t.reject(bid, op, fmt.Errorf("unknown loss reason %q", loss.Reason))
		}
		if loss.WinningPrice != nil {
			price := *loss.WinningPrice
			loss.WinningPrice = &price
		}
		closure.Loss = &loss
		note = "LOST: " + describeLoss(loss)
	case models.OutcomeNoResponse:
		if closure.Note == "" {
			closure.Note = constants.NoteNoResponse
		}
		note = closure.Note
	}

	bid.Closure = closure
	t.record(bid, target, note)
	return nil
}

func (t *Tracker) CloseWon(bid *models.Bid, awardAmount float64, note string) error {
	return t.Close(bid, CloseRequest{Outcome: models.OutcomeWon, AwardAmount: awardAmount, Note: note})
}

func (t *Tracker) CloseLost(bid *models.Bid, loss models.LossDetails, note string) error {
	return t.Close(bid, CloseRequest{Outcome: models.OutcomeLost, Loss: loss, Note: note})
}

func (t *Tracker) CloseNoResponse(bid *models.Bid, note string) error {
	return t.Close(bid, CloseRequest{Outcome: models.OutcomeNoResponse, Note: note})
}

// FormatMoney renders an amount as $1,234.50.
func FormatMoney(amount float64) string {
	return "$" + humanize.FormatFloat("#,###.##", amount)
}

func describeLoss(loss models.LossDetails) string {
	s := loss.Reason.Label()
	if loss.Competitor != "" {
		s += fmt.Sprintf(" (lost to %s)", loss.Competitor)
	}
	if loss.WinningPrice != nil && *loss.WinningPrice != 0 {
		s += " at " + FormatMoney(*loss.WinningPrice)
	}
	return s
}

type phase int

const (
	preSubmission phase = iota
	postSubmission
)

// require checks the preconditions shared by every operation: the bid is not
// closed, it is on the right side of submission, and the state machine has
// an edge to target.
func (t *Tracker) require(bid *models.Bid, op string, target models.Status, p phase) error {
	if bid.IsClosed() {
		return t.reject(bid, op, models.ErrAlreadyClosed)
	}
	switch p {
	case preSubmission:
		if bid.IsSubmitted() {
			return t.reject(bid, op, models.ErrAlreadySubmitted)
		}
	case postSubmission:
		if !bid.IsSubmitted() {
			return t.reject(bid, op, models.ErrNotSubmitted)
		}
	}
	if !CanTransition(bid.Status, target) {
		return t.reject(bid, op, fmt.Errorf("%w: %s -> %s", models.ErrInvalidTransition, bid.Status, target))
	}
	return nil
}

func (t *Tracker) reject(bid *models.Bid, op string, err error) error {
	terr := &models.TransitionError{Op: op, BidID: bid.ID, From: bid.Status, Err: err}
	logger.Rejected(bid.ID, op, err)
	return terr
}

// record sets the status and appends the matching audit entry.
func (t *Tracker) record(bid *models.Bid, status models.Status, note string) {
	from := bid.Status
	bid.Status = status
	bid.Audit = append(bid.Audit, models.AuditEntry{
		ID:     t.newID(),
		At:     t.clock.Now(),
		Status: status,
		Note:   note,
	})
	logger.Transition(bid.ID, from.String(), status.String(), note)
}
