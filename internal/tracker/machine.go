package tracker

import "github.com/julianstephens/bidtrack/internal/models"

// edges is the bid state machine. A transition not listed here is rejected.
// Besides the lifecycle path it allows re-block, repeated receipt
// confirmations and repeated GC responses from any open post-submission
// status; the operations accept all of them.
var edges = map[models.Status][]models.Status{
	models.StatusReadyToSubmit: {
		models.StatusAwaitingInput,
		models.StatusReadyToSubmit,
		models.StatusSubmitted,
	},
	models.StatusAwaitingInput: {
		models.StatusAwaitingInput,
		models.StatusReadyToSubmit,
		models.StatusSubmitted,
	},
	models.StatusSubmitted: {
		models.StatusFollowUpActive,
		models.StatusReceiptConfirmed,
		models.StatusGCResponseLogged,
		models.StatusClosedWon, models.StatusClosedLost, models.StatusClosedNoResponse,
	},
	models.StatusFollowUpActive: {
		models.StatusReceiptConfirmed,
		models.StatusFollowUpActive,
		models.StatusGCResponseLogged,
		models.StatusClosedWon, models.StatusClosedLost, models.StatusClosedNoResponse,
	},
	models.StatusReceiptConfirmed: {
		models.StatusReceiptConfirmed,
		models.StatusFollowUpActive,
		models.StatusGCResponseLogged,
		models.StatusClosedWon, models.StatusClosedLost, models.StatusClosedNoResponse,
	},
	models.StatusGCResponseLogged: {
		models.StatusReceiptConfirmed,
		models.StatusFollowUpActive,
		models.StatusGCResponseLogged,
		models.StatusClosedWon, models.StatusClosedLost, models.StatusClosedNoResponse,
	},
}

// CanTransition reports whether the state machine has an edge from -> to.
// Closed statuses have no outgoing edges.
func CanTransition(from, to models.Status) bool {
	for _, s := range edges[from] {
		if s == to {
			return true
		}
	}
	return false
}
