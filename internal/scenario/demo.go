package scenario

import (
	"time"

	"github.com/julianstephens/bidtrack/internal/models"
	"github.com/julianstephens/bidtrack/internal/utils"
)

// Demo returns the walkthrough used by the demo command, anchored on now: one
// bid taken from a blocked decision through submission, a follow-up, a GC
// reply and a loss, plus one blocked bid and one ready to submit.
func Demo(now time.Time) *Scenario {
	day := utils.StartOfDay(now)
	at := func(daysAgo, hour, minute int) time.Time {
		return utils.AddDays(day, -daysAgo).Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
	}

	due := at(-1, 14, 0)
	submitted := at(3, 10, 5)
	price := 125000.0
	railingDeadline := now.Add(2 * time.Hour)

	return &Scenario{Bids: []BidSpec{
		{
			ID:        "736",
			Project:   "Example Retail Shell",
			GC:        "Example GC",
			Estimator: models.Estimator{Name: "Jane Doe", Email: "jane@examplegc.com"},
			Platform:  "PlanHub",
			Created:   ptr(at(5, 9, 0)),
			Due:       &due,
			Events: []Event{
				{Type: EventBlock, At: at(4, 16, 30), Question: "Choose lane: Low / Mid / High (recommend Mid)", Deadline: &due},
				{Type: EventUnblock, At: at(3, 8, 45), Note: "Sean approved Mid lane"},
				{Type: EventSubmit, At: submitted, Proof: "PlanHub confirmation screenshot saved"},
				{Type: EventSendFollowUp, At: now.Add(-time.Hour), Kind: models.FollowUpReceiptConfirmation},
				{Type: EventGCResponse, At: now.Add(-30 * time.Minute), Response: models.GCResponseReviewing, Note: "GC confirmed they're reviewing bids this week"},
				{Type: EventClose, At: now, Outcome: models.OutcomeLost, Reason: models.LossReasonPrice,
					Competitor: "Competitor Steel Co", Price: &price, Note: "Lost by $5k, GC mentioned price was main factor"},
			},
		},
		{
			ID:        "737",
			Project:   "Office Building Reno",
			GC:        "BuildRight",
			Estimator: models.Estimator{Name: "John Smith", Email: "john@buildright.com"},
			Events: []Event{
				{Type: EventBlock, At: now, Question: "Approve custom railing exclusion", Deadline: &railingDeadline},
			},
		},
		{
			ID:        "738",
			Project:   "Warehouse Expansion",
			GC:        "FastBuild",
			Estimator: models.Estimator{Name: "Mary Johnson", Email: "mary@fastbuild.com"},
			Events: []Event{
				{Type: EventUnblock, At: now},
			},
		},
	}}
}

func ptr[T any](v T) *T { return &v }
