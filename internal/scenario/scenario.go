// Package scenario replays a YAML description of bids and the real-world
// events that happened to them through the tracker. Scenarios are input only;
// nothing is ever written back.
package scenario

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/bidtrack/internal/logger"
	"github.com/julianstephens/bidtrack/internal/models"
	"github.com/julianstephens/bidtrack/internal/tracker"
	"github.com/julianstephens/bidtrack/internal/utils"
)

type Scenario struct {
	Bids []BidSpec `yaml:"bids"`
}

// BidSpec declares one bid. ID is optional; Created defaults to the first
// event's time.
type BidSpec struct {
	ID        string           `yaml:"id"`
	Project   string           `yaml:"project"`
	GC        string           `yaml:"gc"`
	Estimator models.Estimator `yaml:"estimator"`
	Platform  string           `yaml:"platform"`
	Created   *time.Time       `yaml:"created"`
	Due       *time.Time       `yaml:"due"`
	Events    []Event          `yaml:"events"`
}

type EventType string

const (
	EventBlock          EventType = "block"
	EventUnblock        EventType = "unblock"
	EventSubmit         EventType = "submit"
	EventConfirmReceipt EventType = "confirm_receipt"
	EventSendFollowUp   EventType = "send_followup"
	EventGCResponse     EventType = "gc_response"
	EventClose          EventType = "close"
)

// Event is one step of a bid's history. Only the fields belonging to Type are
// read.
type Event struct {
	Type EventType `yaml:"type"`
	At   time.Time `yaml:"at"`
	Note string    `yaml:"note,omitempty"`

	// block
	Question string     `yaml:"question,omitempty"`
	Deadline *time.Time `yaml:"deadline,omitempty"`

	// submit
	Proof string `yaml:"proof,omitempty"`

	// send_followup
	Kind models.FollowUpKind `yaml:"kind,omitempty"`

	// gc_response
	Response models.GCResponseType `yaml:"response,omitempty"`

	// close
	Outcome    models.Outcome    `yaml:"outcome,omitempty"`
	Amount     float64           `yaml:"amount,omitempty"`
	Reason     models.LossReason `yaml:"reason,omitempty"`
	Competitor string            `yaml:"competitor,omitempty"`
	Price      *float64          `yaml:"price,omitempty"`
}

// Load decodes a scenario. Unknown keys are rejected so typos surface early.
func Load(r io.Reader) (*Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Scenario
	if err := dec.Decode(&s); err != nil {
		if err == io.EOF {
			return &s, nil
		}
		return nil, fmt.Errorf("failed to decode scenario: %w", err)
	}
	return &s, nil
}

// LoadFile opens and decodes path.
func LoadFile(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scenario: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// ReplayError locates a failure inside a scenario. Index is -1 when the bid
// itself is invalid.
type ReplayError struct {
	BidID string
	Index int
	Type  EventType
	Err   error
}

func (e *ReplayError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("bid %s: %v", e.BidID, e.Err)
	}
	return fmt.Sprintf("bid %s event %d (%s): %v", e.BidID, e.Index, e.Type, e.Err)
}

func (e *ReplayError) Unwrap() error { return e.Err }

// Observer is called after each event is applied.
type Observer func(bid *models.Bid, index int, ev Event)

type options struct {
	clock    utils.Clock
	observer Observer
	newID    func() string
}

type Option func(*options)

// WithClock sets the time used for bids that have neither a created time nor
// any events.
func WithClock(c utils.Clock) Option {
	return func(o *options) { o.clock = c }
}

func WithObserver(fn Observer) Option {
	return func(o *options) { o.observer = fn }
}

// WithIDGenerator overrides how missing bid IDs are minted.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) { o.newID = fn }
}

func newOptions(opts []Option) *options {
	o := &options{
		clock: utils.SystemClock{},
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Replay builds every bid and applies its events in order. It stops at the
// first failure.
func Replay(s *Scenario, opts ...Option) ([]*models.Bid, error) {
	o := newOptions(opts)
	seen := make(map[string]bool, len(s.Bids))
	bids := make([]*models.Bid, 0, len(s.Bids))

	for i := range s.Bids {
		spec := s.Bids[i]
		if spec.ID == "" {
			spec.ID = o.newID()
		}
		if seen[spec.ID] {
			return nil, &ReplayError{BidID: spec.ID, Index: -1, Err: fmt.Errorf("duplicate bid id")}
		}
		seen[spec.ID] = true

		bid, err := replayBid(&spec, o)
		if err != nil {
			return nil, err
		}
		bids = append(bids, bid)
	}

	logger.Debug("Scenario replayed", "bids", len(bids))
	return bids, nil
}

// Validate replays every bid independently and checks the result, returning
// all problems found instead of stopping at the first.
func Validate(s *Scenario, opts ...Option) []error {
	o := newOptions(opts)
	seen := make(map[string]bool, len(s.Bids))
	var errs []error

	for i := range s.Bids {
		spec := s.Bids[i]
		if spec.ID == "" {
			spec.ID = o.newID()
		}
		if seen[spec.ID] {
			errs = append(errs, &ReplayError{BidID: spec.ID, Index: -1, Err: fmt.Errorf("duplicate bid id")})
			continue
		}
		seen[spec.ID] = true

		bid, err := replayBid(&spec, o)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := bid.CheckInvariants(); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func replayBid(spec *BidSpec, o *options) (*models.Bid, error) {
	created := o.clock.Now()
	switch {
	case spec.Created != nil:
		created = *spec.Created
	case len(spec.Events) > 0:
		created = spec.Events[0].At
	}

	bid, err := models.NewBid(models.Identity{
		ID:        spec.ID,
		Project:   spec.Project,
		GCCompany: spec.GC,
		Estimator: spec.Estimator,
		Platform:  spec.Platform,
	}, spec.Due, created)
	if err != nil {
		return nil, &ReplayError{BidID: spec.ID, Index: -1, Err: err}
	}

	clock := utils.NewManualClock(created)
	tr := tracker.New(tracker.WithClock(clock))

	prev := created
	for i, ev := range spec.Events {
		if ev.At.IsZero() {
			return nil, &ReplayError{BidID: bid.ID, Index: i, Type: ev.Type, Err: models.MissingField("at")}
		}
		if ev.At.Before(prev) {
			return nil, &ReplayError{BidID: bid.ID, Index: i, Type: ev.Type,
				Err: fmt.Errorf("event at %s precedes %s", ev.At.Format(time.RFC3339), prev.Format(time.RFC3339))}
		}
		prev = ev.At
		clock.Set(ev.At)

		if err := apply(tr, bid, ev); err != nil {
			return nil, &ReplayError{BidID: bid.ID, Index: i, Type: ev.Type, Err: err}
		}
		if o.observer != nil {
			o.observer(bid, i, ev)
		}
	}
	return bid, nil
}

func apply(tr *tracker.Tracker, bid *models.Bid, ev Event) error {
	switch ev.Type {
	case EventBlock:
		return tr.Block(bid, ev.Question, ev.Deadline)
	case EventUnblock:
		return tr.Unblock(bid, ev.Note)
	case EventSubmit:
		return tr.Submit(bid, ev.At, ev.Proof)
	case EventConfirmReceipt:
		return tr.ConfirmReceipt(bid, ev.Note)
	case EventSendFollowUp:
		at := ev.At
		return tr.SendFollowUp(bid, ev.Kind, &at)
	case EventGCResponse:
		response := ev.Response
		if response == "" {
			response = models.GCResponseUnknown
		}
		return tr.RecordGCResponse(bid, response, ev.Note)
	case EventClose:
		return tr.Close(bid, tracker.CloseRequest{
			Outcome:     ev.Outcome,
			AwardAmount: ev.Amount,
			Loss: models.LossDetails{
				Reason:       ev.Reason,
				Competitor:   ev.Competitor,
				WinningPrice: ev.Price,
			},
			Note: ev.Note,
		})
	default:
		return fmt.Errorf("unknown event type %q", ev.Type)
	}
}
