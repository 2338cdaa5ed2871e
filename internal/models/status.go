package models

import (
	"fmt"
	"strings"
)

type Status string

const (
	StatusReadyToSubmit    Status = "ready_to_submit"
	StatusAwaitingInput    Status = "awaiting_input"
	StatusSubmitted        Status = "submitted"
	StatusReceiptConfirmed Status = "receipt_confirmed"
	StatusFollowUpActive   Status = "followup_active"
	StatusGCResponseLogged Status = "gc_response_logged"
	StatusClosedWon        Status = "closed_won"
	StatusClosedLost       Status = "closed_lost"
	StatusClosedNoResponse Status = "closed_no_response"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{
	StatusReadyToSubmit,
	StatusAwaitingInput,
	StatusSubmitted,
	StatusReceiptConfirmed,
	StatusFollowUpActive,
	StatusGCResponseLogged,
	StatusClosedWon,
	StatusClosedLost,
	StatusClosedNoResponse,
}

// IsClosed reports whether s is one of the terminal statuses.
func (s Status) IsClosed() bool {
	switch s {
	case StatusClosedWon, StatusClosedLost, StatusClosedNoResponse:
		return true
	default:
		return false
	}
}

// IsPreSubmission reports whether s is only reachable before submission.
func (s Status) IsPreSubmission() bool {
	return s == StatusReadyToSubmit || s == StatusAwaitingInput
}

func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Label is the upper-case form used in reports and audit notes.
func (s Status) Label() string {
	return strings.ToUpper(string(s))
}

func (s Status) String() string { return string(s) }

func ParseStatus(v string) (Status, error) {
	s := Status(normalizeEnum(v))
	if !s.Valid() {
		return "", fmt.Errorf("unknown status %q", v)
	}
	return s, nil
}

func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s), nil
}

// normalizeEnum accepts READY_TO_SUBMIT, ready-to-submit and ready_to_submit alike.
func normalizeEnum(v string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(v)), "-", "_")
}
