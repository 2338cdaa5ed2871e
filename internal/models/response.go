package models

import (
	"fmt"
	"strings"
)

// GCResponseType categorises a reply from the general contractor.
type GCResponseType string

const (
	GCResponseReviewing          GCResponseType = "reviewing"
	GCResponseAwarded            GCResponseType = "awarded"
	GCResponseNeedRevision       GCResponseType = "need_revision"
	GCResponseScopeClarification GCResponseType = "scope_clarification"
	GCResponseInviteToSubmit     GCResponseType = "invite_to_submit"
	GCResponseNoResponse         GCResponseType = "no_response"
	GCResponseUnknown            GCResponseType = "unknown"
)

var gcResponseTypes = []GCResponseType{
	GCResponseReviewing,
	GCResponseAwarded,
	GCResponseNeedRevision,
	GCResponseScopeClarification,
	GCResponseInviteToSubmit,
	GCResponseNoResponse,
	GCResponseUnknown,
}

func (r GCResponseType) Valid() bool {
	for _, known := range gcResponseTypes {
		if r == known {
			return true
		}
	}
	return false
}

func (r GCResponseType) Label() string { return strings.ToUpper(string(r)) }

func ParseGCResponseType(v string) (GCResponseType, error) {
	r := GCResponseType(normalizeEnum(v))
	if !r.Valid() {
		return "", fmt.Errorf("unknown GC response type %q", v)
	}
	return r, nil
}

func (r *GCResponseType) UnmarshalText(text []byte) error {
	parsed, err := ParseGCResponseType(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// LossReason records why a bid was lost.
type LossReason string

const (
	LossReasonPrice        LossReason = "price"
	LossReasonScope        LossReason = "scope"
	LossReasonSchedule     LossReason = "schedule"
	LossReasonRelationship LossReason = "relationship"
	LossReasonUnknown      LossReason = "unknown"
)

var lossReasons = []LossReason{
	LossReasonPrice,
	LossReasonScope,
	LossReasonSchedule,
	LossReasonRelationship,
	LossReasonUnknown,
}

func (r LossReason) Valid() bool {
	for _, known := range lossReasons {
		if r == known {
			return true
		}
	}
	return false
}

func (r LossReason) Label() string { return strings.ToUpper(string(r)) }

func ParseLossReason(v string) (LossReason, error) {
	r := LossReason(normalizeEnum(v))
	if !r.Valid() {
		return "", fmt.Errorf("unknown loss reason %q", v)
	}
	return r, nil
}

func (r *LossReason) UnmarshalText(text []byte) error {
	parsed, err := ParseLossReason(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Outcome is the terminal result of a bid.
type Outcome string

const (
	OutcomeWon        Outcome = "won"
	OutcomeLost       Outcome = "lost"
	OutcomeNoResponse Outcome = "no_response"
)

// Status maps an outcome to its closed status.
func (o Outcome) Status() (Status, bool) {
	switch o {
	case OutcomeWon:
		return StatusClosedWon, true
	case OutcomeLost:
		return StatusClosedLost, true
	case OutcomeNoResponse:
		return StatusClosedNoResponse, true
	default:
		return "", false
	}
}

func ParseOutcome(v string) (Outcome, error) {
	o := Outcome(normalizeEnum(v))
	if _, ok := o.Status(); !ok {
		return "", fmt.Errorf("unknown outcome %q (must be won, lost, or no_response)", v)
	}
	return o, nil
}

func (o *Outcome) UnmarshalText(text []byte) error {
	parsed, err := ParseOutcome(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}
