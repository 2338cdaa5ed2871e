package models

import (
	"fmt"
	"strings"
	"time"
)

type FollowUpKind string

const (
	FollowUpReceiptConfirmation FollowUpKind = "receipt_confirmation"
	FollowUpStatusCheck         FollowUpKind = "status_check"
	FollowUpValueTouch          FollowUpKind = "value_touch"
	FollowUpCloseoutRequest     FollowUpKind = "closeout_request"
)

// ScheduleEntry pairs a follow-up kind with its offset in days after submission.
type ScheduleEntry struct {
	Kind       FollowUpKind
	OffsetDays int
}

// followUpSchedule is the touchpoint sequence, in order. Read it through
// FollowUpSchedule so callers can't mutate the table.
var followUpSchedule = [...]ScheduleEntry{
	{Kind: FollowUpReceiptConfirmation, OffsetDays: 2},
	{Kind: FollowUpStatusCheck, OffsetDays: 7},
	{Kind: FollowUpValueTouch, OffsetDays: 14},
	{Kind: FollowUpCloseoutRequest, OffsetDays: 28},
}

// FollowUpSchedule returns a copy of the touchpoint schedule in order.
func FollowUpSchedule() []ScheduleEntry {
	out := make([]ScheduleEntry, len(followUpSchedule))
	copy(out, followUpSchedule[:])
	return out
}

// FollowUpCount is the number of touchpoints created at submission.
const FollowUpCount = len(followUpSchedule)

// Offset returns the day offset for kind.
func (k FollowUpKind) Offset() (int, bool) {
	for _, e := range followUpSchedule {
		if e.Kind == k {
			return e.OffsetDays, true
		}
	}
	return 0, false
}

func (k FollowUpKind) Valid() bool {
	_, ok := k.Offset()
	return ok
}

func (k FollowUpKind) Label() string {
	return strings.ToUpper(string(k))
}

func (k FollowUpKind) String() string { return string(k) }

func ParseFollowUpKind(v string) (FollowUpKind, error) {
	k := FollowUpKind(normalizeEnum(v))
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownFollowUpKind, v)
	}
	return k, nil
}

func (k *FollowUpKind) UnmarshalText(text []byte) error {
	parsed, err := ParseFollowUpKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func (k FollowUpKind) MarshalText() ([]byte, error) {
	return []byte(k), nil
}

// FollowUpRecord is one scheduled touchpoint on a submitted bid.
type FollowUpRecord struct {
	Kind         FollowUpKind `json:"kind"`
	ScheduledAt  time.Time    `json:"scheduled_at"`
	SentAt       *time.Time   `json:"sent_at,omitempty"`
	GCResponded  bool         `json:"gc_responded"`
	ResponseNote string       `json:"response_note,omitempty"`
}

// IsComplete reports whether the touchpoint has been sent.
func (f *FollowUpRecord) IsComplete() bool {
	return f.SentAt != nil
}

// IsOverdue reports whether the touchpoint is unsent and its scheduled time has passed.
func (f *FollowUpRecord) IsOverdue(now time.Time) bool {
	return f.SentAt == nil && now.After(f.ScheduledAt)
}
