package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/bidtrack/internal/email"
	"github.com/julianstephens/bidtrack/internal/models"
)

type EmailCmd struct {
	ID   string `arg:"" help:"Bid ID."`
	Kind string `help:"Message to render: awaiting_input, submitted, or a follow-up kind. Prompts when omitted." short:"k"`

	pick func(bid *models.Bid) (email.Kind, error)
}

func (c *EmailCmd) Run(ctx *Context) error {
	bid, err := ctx.Bid(c.ID)
	if err != nil {
		return err
	}

	kind := email.Kind(strings.ToLower(strings.TrimSpace(c.Kind)))
	if kind == "" {
		pick := c.pick
		if pick == nil {
			pick = pickKind
		}
		if kind, err = pick(bid); err != nil {
			return err
		}
	}

	msg, err := ctx.Composer.Render(bid, kind)
	if err != nil {
		return err
	}
	return printMessage(ctx.Out, msg)
}

func printMessage(w io.Writer, msg email.Message) error {
	_, err := fmt.Fprintf(w, "To: %s\nSubject: %s\n\n%s\n", msg.To, msg.Subject, msg.Body)
	return err
}

// pickKind asks interactively which message to render, preselecting the one
// that fits the bid's current state.
func pickKind(bid *models.Bid) (email.Kind, error) {
	var options []huh.Option[email.Kind]
	for _, k := range email.Kinds() {
		options = append(options, huh.NewOption(kindLabel(k), k))
	}

	selected := suggestedKind(bid)
	err := huh.NewSelect[email.Kind]().
		Title(fmt.Sprintf("Message for bid #%s – %s", bid.ID, bid.Project)).
		Options(options...).
		Value(&selected).
		Run()
	if err != nil {
		return "", fmt.Errorf("message selection cancelled: %w", err)
	}
	return selected, nil
}

func kindLabel(k email.Kind) string {
	switch k {
	case email.KindAwaitingInput:
		return "Internal: awaiting input"
	case email.KindSubmitted:
		return "Internal: submitted"
	default:
		offset, _ := models.FollowUpKind(k).Offset()
		return fmt.Sprintf("GC: %s (day %d)", strings.ReplaceAll(string(k), "_", " "), offset)
	}
}

func suggestedKind(bid *models.Bid) email.Kind {
	switch {
	case bid.IsBlocked():
		return email.KindAwaitingInput
	case !bid.IsSubmitted():
		return email.KindSubmitted
	}
	if next := bid.NextFollowUp(); next != nil {
		return email.Kind(next.Kind)
	}
	return email.KindSubmitted
}
