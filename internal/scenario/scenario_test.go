package scenario

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/bidtrack/internal/models"
	"github.com/julianstephens/bidtrack/internal/scheduler"
	"github.com/julianstephens/bidtrack/internal/utils"
)

const walkthrough = `
bids:
  - id: "736"
    project: Example Retail Shell
    gc: Example GC
    estimator: {name: Jane Doe, email: jane@examplegc.com}
    platform: PlanHub
    due: 2026-01-20T14:00:00Z
    events:
      - {type: block, at: 2026-01-15T16:30:00Z, question: "Choose lane: Low / Mid / High (recommend Mid)", deadline: 2026-01-20T14:00:00Z}
      - {type: unblock, at: 2026-01-16T08:45:00Z, note: Sean approved Mid lane}
      - {type: submit, at: 2026-01-16T10:05:00Z, proof: PlanHub confirmation screenshot saved}
      - {type: send_followup, at: 2026-01-18T11:00:00Z, kind: receipt_confirmation}
      - {type: gc_response, at: 2026-01-18T15:00:00Z, response: reviewing, note: "GC confirmed they're reviewing bids this week"}
      - {type: close, at: 2026-01-25T09:00:00Z, outcome: lost, reason: price, competitor: Competitor Steel Co, price: 125000, note: "Lost by $5k"}
  - project: Warehouse Expansion
    gc: FastBuild
    estimator: {name: Mary Johnson, email: mary@fastbuild.com}
`

func TestLoadAndReplay(t *testing.T) {
	s, err := Load(strings.NewReader(walkthrough))
	require.NoError(t, err)
	require.Len(t, s.Bids, 2)

	bids, err := Replay(s, WithIDGenerator(func() string { return "generated-1" }),
		WithClock(utils.FixedClock{At: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)}))
	require.NoError(t, err)
	require.Len(t, bids, 2)

	bid := bids[0]
	assert.Equal(t, "736", bid.ID)
	assert.Equal(t, models.StatusClosedLost, bid.Status)
	require.Len(t, bid.Audit, 7)

	want := []struct {
		status models.Status
		note   string
		at     time.Time
	}{
		{models.StatusAwaitingInput, "Blocked: Choose lane: Low / Mid / High (recommend Mid)", time.Date(2026, 1, 15, 16, 30, 0, 0, time.UTC)},
		{models.StatusReadyToSubmit, "Sean approved Mid lane", time.Date(2026, 1, 16, 8, 45, 0, 0, time.UTC)},
		{models.StatusSubmitted, "Submitted with proof: PlanHub confirmation screenshot saved", time.Date(2026, 1, 16, 10, 5, 0, 0, time.UTC)},
		{models.StatusFollowUpActive, "Follow-up schedule initialized (4 touchpoints)", time.Date(2026, 1, 16, 10, 5, 0, 0, time.UTC)},
		{models.StatusFollowUpActive, "Follow-up sent: RECEIPT_CONFIRMATION", time.Date(2026, 1, 18, 11, 0, 0, 0, time.UTC)},
		{models.StatusGCResponseLogged, "REVIEWING: GC confirmed they're reviewing bids this week", time.Date(2026, 1, 18, 15, 0, 0, 0, time.UTC)},
		{models.StatusClosedLost, "LOST: PRICE (lost to Competitor Steel Co) at $125,000.00", time.Date(2026, 1, 25, 9, 0, 0, 0, time.UTC)},
	}
	for i, w := range want {
		assert.Equal(t, w.status, bid.Audit[i].Status, "entry %d", i)
		assert.Equal(t, w.note, bid.Audit[i].Note, "entry %d", i)
		assert.True(t, w.at.Equal(bid.Audit[i].At), "entry %d at %s", i, bid.Audit[i].At)
	}

	fu := bid.FollowUp(models.FollowUpReceiptConfirmation)
	require.NotNil(t, fu)
	assert.False(t, fu.GCResponded)
	require.NotNil(t, bid.Closure)
	assert.Equal(t, 125000.0, *bid.Closure.Loss.WinningPrice)
	assert.NoError(t, bid.CheckInvariants())

	ready := bids[1]
	assert.Equal(t, "generated-1", ready.ID)
	assert.Equal(t, models.StatusReadyToSubmit, ready.Status)
	assert.Equal(t, "Email", ready.Platform)
	assert.Empty(t, ready.Audit)
}

func TestReplay_GeneratesUUIDs(t *testing.T) {
	s := &Scenario{Bids: []BidSpec{
		{Project: "A", GC: "GC", Estimator: models.Estimator{Name: "N", Email: "n@gc.test"}},
		{Project: "B", GC: "GC", Estimator: models.Estimator{Name: "N", Email: "n@gc.test"}},
	}}
	bids, err := Replay(s)
	require.NoError(t, err)
	assert.Len(t, bids[0].ID, 36)
	assert.NotEqual(t, bids[0].ID, bids[1].ID)
	assert.Empty(t, s.Bids[0].ID, "replay must not write back into the scenario")
}

func TestLoad_RejectsUnknownFields(t *testing.T) {
	_, err := Load(strings.NewReader("bids:\n  - id: x\n    projct: typo\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "projct")
}

func TestLoad_RejectsBadEnums(t *testing.T) {
	tests := map[string]string{
		"kind":     "bids:\n  - events:\n      - {type: send_followup, at: 2026-01-18T11:00:00Z, kind: site_visit}\n",
		"response": "bids:\n  - events:\n      - {type: gc_response, at: 2026-01-18T11:00:00Z, response: maybe}\n",
		"outcome":  "bids:\n  - events:\n      - {type: close, at: 2026-01-18T11:00:00Z, outcome: tied}\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoad_Empty(t *testing.T) {
	s, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, s.Bids)
}

func identity(id string) BidSpec {
	return BidSpec{ID: id, Project: "P", GC: "GC", Estimator: models.Estimator{Name: "N", Email: "n@gc.test"}}
}

func TestReplay_Errors(t *testing.T) {
	t0 := time.Date(2026, 1, 16, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		events []Event
		index  int
		is     error
	}{
		{
			name:   "send before submit",
			events: []Event{{Type: EventSendFollowUp, At: t0, Kind: models.FollowUpStatusCheck}},
			index:  0,
			is:     models.ErrNotSubmitted,
		},
		{
			name: "submit twice",
			events: []Event{
				{Type: EventSubmit, At: t0, Proof: "a"},
				{Type: EventSubmit, At: t0.Add(time.Hour), Proof: "b"},
			},
			index: 1,
			is:    models.ErrAlreadySubmitted,
		},
		{
			name: "after close",
			events: []Event{
				{Type: EventSubmit, At: t0},
				{Type: EventClose, At: t0.Add(time.Hour), Outcome: models.OutcomeWon, Amount: 10},
				{Type: EventGCResponse, At: t0.Add(2 * time.Hour), Response: models.GCResponseReviewing},
			},
			index: 2,
			is:    models.ErrAlreadyClosed,
		},
		{
			name:   "missing at",
			events: []Event{{Type: EventSubmit}},
			index:  0,
			is:     models.ErrMissingRequiredField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := identity("900")
			spec.Events = tt.events
			_, err := Replay(&Scenario{Bids: []BidSpec{spec}})
			require.Error(t, err)

			var rerr *ReplayError
			require.True(t, errors.As(err, &rerr))
			assert.Equal(t, "900", rerr.BidID)
			assert.Equal(t, tt.index, rerr.Index)
			assert.ErrorIs(t, err, tt.is)
		})
	}
}

func TestReplay_OutOfOrderAndUnknownEvents(t *testing.T) {
	t0 := time.Date(2026, 1, 16, 10, 0, 0, 0, time.UTC)

	spec := identity("901")
	spec.Events = []Event{
		{Type: EventSubmit, At: t0},
		{Type: EventConfirmReceipt, At: t0.Add(-time.Minute)},
	}
	_, err := Replay(&Scenario{Bids: []BidSpec{spec}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bid 901 event 1 (confirm_receipt)")
	assert.Contains(t, err.Error(), "precedes")

	spec.Events = []Event{{Type: "archive", At: t0}}
	_, err = Replay(&Scenario{Bids: []BidSpec{spec}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown event type "archive"`)
}

func TestReplay_DuplicateAndInvalidBids(t *testing.T) {
	_, err := Replay(&Scenario{Bids: []BidSpec{identity("1"), identity("1")}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate bid id")

	bad := identity("2")
	bad.Estimator.Email = "not-an-email"
	_, err = Replay(&Scenario{Bids: []BidSpec{bad}})
	require.Error(t, err)
	var rerr *ReplayError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, -1, rerr.Index)
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	t0 := time.Date(2026, 1, 16, 10, 0, 0, 0, time.UTC)
	good := identity("1")
	good.Events = []Event{{Type: EventSubmit, At: t0}}
	broken := identity("2")
	broken.Events = []Event{{Type: EventConfirmReceipt, At: t0}}
	missing := identity("3")
	missing.GC = ""

	errs := Validate(&Scenario{Bids: []BidSpec{good, broken, missing, identity("1")}})
	require.Len(t, errs, 3)
	assert.ErrorIs(t, errs[0], models.ErrNotSubmitted)
	assert.ErrorIs(t, errs[1], models.ErrMissingRequiredField)
	assert.Contains(t, errs[2].Error(), "duplicate bid id")

	assert.Empty(t, Validate(&Scenario{Bids: []BidSpec{good}}))
}

func TestObserver(t *testing.T) {
	var seen []EventType
	_, err := Replay(Demo(time.Date(2026, 1, 19, 12, 0, 0, 0, time.UTC)),
		WithObserver(func(_ *models.Bid, _ int, ev Event) { seen = append(seen, ev.Type) }))
	require.NoError(t, err)
	assert.Equal(t, []EventType{
		EventBlock, EventUnblock, EventSubmit, EventSendFollowUp, EventGCResponse, EventClose,
		EventBlock,
		EventUnblock,
	}, seen)
}

func TestDemo(t *testing.T) {
	for _, now := range []time.Time{
		time.Date(2026, 1, 19, 12, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 1, 0, 5, 0, 0, time.UTC),
	} {
		clock := utils.FixedClock{At: now}
		bids, err := Replay(Demo(now), WithClock(clock))
		require.NoError(t, err, now)
		require.Len(t, bids, 3)

		assert.Equal(t, models.StatusClosedLost, bids[0].Status)
		assert.Equal(t, models.StatusAwaitingInput, bids[1].Status)
		assert.Equal(t, models.StatusReadyToSubmit, bids[2].Status)
		for _, bid := range bids {
			assert.NoError(t, bid.CheckInvariants())
		}

		plan := scheduler.New(scheduler.WithClock(clock)).DailyActions(bids)
		require.Len(t, plan.AwaitingInput, 1)
		assert.Equal(t, "737", plan.AwaitingInput[0].ID)
		require.Len(t, plan.ReadyToSubmit, 1)
		assert.Equal(t, "738", plan.ReadyToSubmit[0].ID)
		assert.Empty(t, plan.Overdue)
		assert.Empty(t, plan.NeedingClose)
	}
}
