// Package email renders the internal and GC-facing messages for a bid. It only
// reads bid state; sending is someone else's job.
package email

import (
	"bytes"
	"fmt"

	"github.com/julianstephens/bidtrack/internal/constants"
	"github.com/julianstephens/bidtrack/internal/models"
)

// Message is a rendered email.
type Message struct {
	Subject string
	Body    string
	To      string
}

// Sender identifies who writes the messages and who approves bids internally.
type Sender struct {
	Name           string
	Company        string
	PrincipalName  string
	PrincipalEmail string
}

// DefaultSender returns the sender used when no config overrides it.
func DefaultSender() Sender {
	return Sender{
		Name:           constants.DefaultSenderName,
		Company:        constants.DefaultSenderCompany,
		PrincipalName:  constants.DefaultPrincipalName,
		PrincipalEmail: constants.DefaultPrincipalEmail,
	}
}

// Kind names a message template.
type Kind string

const (
	KindAwaitingInput Kind = "awaiting_input"
	KindSubmitted     Kind = "submitted"
)

// Kinds lists every message the composer can render, internal ones first.
func Kinds() []Kind {
	kinds := []Kind{KindAwaitingInput, KindSubmitted}
	for _, entry := range models.FollowUpSchedule() {
		kinds = append(kinds, Kind(entry.Kind))
	}
	return kinds
}

type Composer struct {
	sender Sender
}

func NewComposer(sender Sender) *Composer {
	return &Composer{sender: sender}
}

// Render dispatches on kind.
func (c *Composer) Render(bid *models.Bid, kind Kind) (Message, error) {
	switch kind {
	case KindAwaitingInput:
		return c.AwaitingInput(bid)
	case KindSubmitted:
		return c.Submitted(bid)
	default:
		fk, err := models.ParseFollowUpKind(string(kind))
		if err != nil {
			return Message{}, err
		}
		return c.FollowUp(bid, fk)
	}
}

// AwaitingInput tells the principal the bid is blocked on their decision.
func (c *Composer) AwaitingInput(bid *models.Bid) (Message, error) {
	if bid.PendingQuestion == "" {
		return Message{}, models.MissingField("pending question")
	}
	deadline := "ASAP"
	if bid.PendingDeadline != nil {
		deadline = bid.PendingDeadline.Format(constants.DisplayDateTimeFormat)
	}
	return c.render(awaitingInputTmpl, bid, map[string]string{"Deadline": deadline}, c.sender.PrincipalEmail)
}

// Submitted confirms a submission to the principal.
func (c *Composer) Submitted(bid *models.Bid) (Message, error) {
	if bid.SubmittedAt == nil {
		return Message{}, models.MissingField("submission time")
	}
	proof := bid.ProofRef
	if proof == "" {
		proof = "saved"
	}
	extra := map[string]string{
		"SubmittedAt": bid.SubmittedAt.Format(constants.DisplayDateTimeFormat),
		"Proof":       proof,
		"Offsets":     scheduleDays(),
	}
	return c.render(submittedTmpl, bid, extra, c.sender.PrincipalEmail)
}

// FollowUp renders the GC-facing touchpoint for kind, addressed to the estimator.
func (c *Composer) FollowUp(bid *models.Bid, kind models.FollowUpKind) (Message, error) {
	tmpl, ok := followUpTmpls[kind]
	if !ok {
		return Message{}, fmt.Errorf("%w: %s", models.ErrUnknownFollowUpKind, kind)
	}
	if bid.Estimator.Email == "" {
		return Message{}, models.MissingField("estimator email")
	}
	return c.render(tmpl, bid, nil, bid.Estimator.Email)
}

type templateData struct {
	Bid    *models.Bid
	Sender Sender
	Extra  map[string]string
}

func (c *Composer) render(t *messageTemplate, bid *models.Bid, extra map[string]string, to string) (Message, error) {
	data := templateData{Bid: bid, Sender: c.sender, Extra: extra}

	var subject, body bytes.Buffer
	if err := t.subject.Execute(&subject, data); err != nil {
		return Message{}, fmt.Errorf("failed to render %s subject: %w", t.name, err)
	}
	if err := t.body.Execute(&body, data); err != nil {
		return Message{}, fmt.Errorf("failed to render %s body: %w", t.name, err)
	}
	return Message{Subject: subject.String(), Body: body.String(), To: to}, nil
}

func scheduleDays() string {
	s := "Day "
	for i, entry := range models.FollowUpSchedule() {
		if i > 0 {
			s += "/"
		}
		s += fmt.Sprint(entry.OffsetDays)
	}
	return s
}
