package models

import (
	"errors"
	"fmt"
)

// Precondition violations. None of them is transient; a caller that hits one
// has to fix its input, not retry.
var (
	ErrInvalidTransition    = errors.New("invalid transition")
	ErrAlreadySubmitted     = errors.New("bid already submitted")
	ErrNotSubmitted         = errors.New("bid not submitted")
	ErrAlreadySent          = errors.New("follow-up already sent")
	ErrUnknownFollowUpKind  = errors.New("unknown follow-up kind")
	ErrAlreadyClosed        = errors.New("bid already closed")
	ErrMissingRequiredField = errors.New("missing required field")
)

// TransitionError reports a rejected state machine operation. It matches both
// its cause and ErrInvalidTransition under errors.Is.
type TransitionError struct {
	Op    string
	BidID string
	From  Status
	Err   error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s bid %s (status %s): %v", e.Op, e.BidID, e.From, e.Err)
}

func (e *TransitionError) Unwrap() []error {
	if errors.Is(e.Err, ErrInvalidTransition) {
		return []error{e.Err}
	}
	return []error{e.Err, ErrInvalidTransition}
}

// MissingFieldError names the field a renderer or constructor needed.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%v: %s", ErrMissingRequiredField, e.Field)
}

func (e *MissingFieldError) Unwrap() error { return ErrMissingRequiredField }

// MissingField builds a MissingFieldError for field.
func MissingField(field string) error {
	return &MissingFieldError{Field: field}
}
