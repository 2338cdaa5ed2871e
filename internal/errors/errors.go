package errors

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/bidtrack/internal/logger"
	"github.com/julianstephens/bidtrack/internal/models"
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

var hints = []struct {
	target error
	hint   string
}{
	{models.ErrAlreadyClosed, "closed bids are final; nothing can change them"},
	{models.ErrAlreadySubmitted, "a bid is submitted once; block and unblock only apply before submission"},
	{models.ErrNotSubmitted, "record the submission before follow-ups, GC responses or closing"},
	{models.ErrAlreadySent, "each follow-up can only be sent once"},
	{models.ErrUnknownFollowUpKind, "follow-up kinds are " + followUpKinds()},
	{models.ErrMissingRequiredField, "check the scenario file for the missing value"},
}

func followUpKinds() string {
	var kinds []string
	for _, entry := range models.FollowUpSchedule() {
		kinds = append(kinds, entry.Kind.String())
	}
	return strings.Join(kinds, ", ")
}

// Hint returns a one-line suggestion for the precondition err violates, or ""
// when there is nothing more useful to say than the error itself.
func Hint(err error) string {
	for _, h := range hints {
		if stderrors.Is(err, h.target) {
			return h.hint
		}
	}
	return ""
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		if hint := Hint(err); hint != "" {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
