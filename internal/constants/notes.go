package constants

// Default audit and close notes recorded when the caller supplies none.
const (
	NoteReadyToSubmit    = "Ready to submit"
	NoteReceiptConfirmed = "GC confirmed receipt"
	NoteNoResponse       = "GC never responded after full follow-up sequence"
)
