package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/julianstephens/bidtrack/internal/constants"
	"github.com/julianstephens/bidtrack/internal/utils"
)

var validate = validator.New()

type Estimator struct {
	Name  string `json:"name" yaml:"name" validate:"required"`
	Email string `json:"email" yaml:"email" validate:"required,email"`
	Phone string `json:"phone,omitempty" yaml:"phone,omitempty"`
}

// Identity is the caller-assigned, immutable part of a bid.
type Identity struct {
	ID        string    `json:"id" validate:"required"`
	Project   string    `json:"project" validate:"required"`
	GCCompany string    `json:"gc_company" validate:"required"`
	Estimator Estimator `json:"estimator"`
	Platform  string    `json:"platform"` // PlanHub, ConstructConnect, Email...
}

// AuditEntry is one immutable line of a bid's history.
type AuditEntry struct {
	ID     string    `json:"id"`
	At     time.Time `json:"at"`
	Status Status    `json:"status"`
	Note   string    `json:"note"`
}

// ResponseNote is one entry in the GC response history.
type ResponseNote struct {
	At   time.Time      `json:"at"`
	Type GCResponseType `json:"type"`
	Note string         `json:"note"`
}

func (r ResponseNote) String() string {
	return fmt.Sprintf("[%s] %s", r.At.Format(constants.DateFormat), r.Note)
}

type LossDetails struct {
	Reason       LossReason `json:"reason"`
	Competitor   string     `json:"competitor,omitempty"`
	WinningPrice *float64   `json:"winning_price,omitempty"`
}

// Closure holds the close data. Only the fields belonging to Outcome are set:
// AwardAmount for won, Loss for lost, and neither for no-response.
type Closure struct {
	At          time.Time    `json:"at"`
	Outcome     Outcome      `json:"outcome"`
	AwardAmount *float64     `json:"award_amount,omitempty"`
	Loss        *LossDetails `json:"loss,omitempty"`
	Note        string       `json:"note,omitempty"`
}

// Bid is the aggregate root for one tracked opportunity. Mutate it only
// through tracker.Tracker; everything else treats it as read-only.
type Bid struct {
	Identity

	CreatedAt   time.Time  `json:"created_at"`
	DueAt       *time.Time `json:"due_at,omitempty"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	ProofRef    string     `json:"proof_ref,omitempty"`

	Status Status `json:"status"`

	PendingQuestion string     `json:"pending_question,omitempty"`
	PendingDeadline *time.Time `json:"pending_deadline,omitempty"`

	FollowUps    []FollowUpRecord `json:"followups"`
	LastResponse GCResponseType   `json:"last_response,omitempty"`
	Responses    []ResponseNote   `json:"responses"`

	Closure *Closure     `json:"closure,omitempty"`
	Audit   []AuditEntry `json:"audit"`
}

// NewBid validates identity and returns a bid in ready_to_submit with empty
// follow-ups, responses and audit log.
func NewBid(id Identity, due *time.Time, createdAt time.Time) (*Bid, error) {
	if id.Platform == "" {
		id.Platform = constants.DefaultPlatform
	}
	if err := ValidateIdentity(id); err != nil {
		return nil, err
	}
	return &Bid{
		Identity:  id,
		CreatedAt: createdAt,
		DueAt:     due,
		Status:    StatusReadyToSubmit,
		FollowUps: []FollowUpRecord{},
		Responses: []ResponseNote{},
		Audit:     []AuditEntry{},
	}, nil
}

// ValidateIdentity checks the required identity fields.
func ValidateIdentity(id Identity) error {
	err := validate.Struct(id)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("invalid bid identity: %w", err)
	}
	fe := verrs[0]
	if fe.Tag() == "required" {
		return MissingField(fe.Namespace())
	}
	return fmt.Errorf("invalid bid identity: %s failed %q validation (value %q)", fe.Namespace(), fe.Tag(), fe.Value())
}

func (b *Bid) IsSubmitted() bool { return b.SubmittedAt != nil }

func (b *Bid) IsClosed() bool { return b.Status.IsClosed() }

func (b *Bid) IsBlocked() bool { return b.Status == StatusAwaitingInput }

// NextFollowUp returns the first unsent touchpoint in schedule order, or nil
// once all of them are sent.
func (b *Bid) NextFollowUp() *FollowUpRecord {
	for i := range b.FollowUps {
		if !b.FollowUps[i].IsComplete() {
			return &b.FollowUps[i]
		}
	}
	return nil
}

// FollowUp returns the record for kind, or nil.
func (b *Bid) FollowUp(kind FollowUpKind) *FollowUpRecord {
	for i := range b.FollowUps {
		if b.FollowUps[i].Kind == kind {
			return &b.FollowUps[i]
		}
	}
	return nil
}

func (b *Bid) OverdueFollowUps(now time.Time) []*FollowUpRecord {
	var out []*FollowUpRecord
	for i := range b.FollowUps {
		if b.FollowUps[i].IsOverdue(now) {
			out = append(out, &b.FollowUps[i])
		}
	}
	return out
}

// AllFollowUpsSent is true only for a submitted bid whose full sequence has been sent.
func (b *Bid) AllFollowUpsSent() bool {
	if len(b.FollowUps) == 0 {
		return false
	}
	for i := range b.FollowUps {
		if !b.FollowUps[i].IsComplete() {
			return false
		}
	}
	return true
}

// DaysSinceSubmission returns whole days elapsed since submission; ok is false
// for unsubmitted bids.
func (b *Bid) DaysSinceSubmission(now time.Time) (days int, ok bool) {
	if b.SubmittedAt == nil {
		return 0, false
	}
	return utils.WholeDaysBetween(*b.SubmittedAt, now), true
}

// CheckInvariants verifies the structural rules that every transition must
// preserve. Scenario validation and tests call it after replay.
func (b *Bid) CheckInvariants() error {
	if !b.Status.Valid() {
		return fmt.Errorf("bid %s: unknown status %q", b.ID, b.Status)
	}
	if b.IsSubmitted() && b.Status.IsPreSubmission() {
		return fmt.Errorf("bid %s: status %s after submission", b.ID, b.Status)
	}
	if !b.IsSubmitted() && !b.Status.IsPreSubmission() && !b.Status.IsClosed() {
		return fmt.Errorf("bid %s: status %s without submission", b.ID, b.Status)
	}
	if b.IsSubmitted() != (len(b.FollowUps) > 0) {
		return fmt.Errorf("bid %s: follow-ups present=%t but submitted=%t", b.ID, len(b.FollowUps) > 0, b.IsSubmitted())
	}
	if b.IsSubmitted() {
		schedule := FollowUpSchedule()
		if len(b.FollowUps) != len(schedule) {
			return fmt.Errorf("bid %s: %d follow-ups, want %d", b.ID, len(b.FollowUps), len(schedule))
		}
		for i, entry := range schedule {
			fu := b.FollowUps[i]
			if fu.Kind != entry.Kind {
				return fmt.Errorf("bid %s: follow-up %d is %s, want %s", b.ID, i, fu.Kind, entry.Kind)
			}
			if !fu.ScheduledAt.Equal(utils.AddDays(*b.SubmittedAt, entry.OffsetDays)) {
				return fmt.Errorf("bid %s: %s scheduled %s, want submission+%dd", b.ID, fu.Kind, fu.ScheduledAt, entry.OffsetDays)
			}
		}
	}
	if b.Status.IsClosed() != (b.Closure != nil) {
		return fmt.Errorf("bid %s: closure present=%t with status %s", b.ID, b.Closure != nil, b.Status)
	}
	if b.Closure != nil {
		want, _ := b.Closure.Outcome.Status()
		if want != b.Status {
			return fmt.Errorf("bid %s: closure outcome %s does not match status %s", b.ID, b.Closure.Outcome, b.Status)
		}
		if (b.Closure.AwardAmount != nil) != (b.Closure.Outcome == OutcomeWon) {
			return fmt.Errorf("bid %s: award amount does not match outcome %s", b.ID, b.Closure.Outcome)
		}
		if (b.Closure.Loss != nil) != (b.Closure.Outcome == OutcomeLost) {
			return fmt.Errorf("bid %s: loss details do not match outcome %s", b.ID, b.Closure.Outcome)
		}
	}
	if len(b.Audit) > 0 && b.Audit[len(b.Audit)-1].Status != b.Status {
		return fmt.Errorf("bid %s: last audit entry %s disagrees with status %s", b.ID, b.Audit[len(b.Audit)-1].Status, b.Status)
	}
	return nil
}
