package constants

const (
	AppName           = "bidtrack"
	Version           = "v0.2.0"
	DefaultConfigPath = "~/.config/bidtrack/config.yaml"
	DefaultStateDir   = "~/.local/state/bidtrack"
	EnvPrefix         = "BIDTRACK"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// DisplayDateTimeFormat is used for deadlines and submission times in emails and summaries
	DisplayDateTimeFormat = "Jan 02, 2006 at 03:04 PM"

	// ShortDateFormat is used for follow-up schedule lines
	ShortDateFormat = "Jan 02"

	// LongDateFormat is used for report headers
	LongDateFormat = "January 02, 2006"

	DefaultPlatform = "Email"
)
