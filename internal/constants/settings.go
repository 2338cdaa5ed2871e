package constants

const (
	// Config keys
	SettingSenderName     = "sender.name"
	SettingSenderCompany  = "sender.company"
	SettingPrincipalName  = "principal.name"
	SettingPrincipalEmail = "principal.email"
	SettingCloseAfterDays = "close_after_days"
	SettingTimezone       = "timezone"
	SettingStateDir       = "state_dir"

	// Default config values
	DefaultSenderName     = "Arron"
	DefaultSenderCompany  = "GritForge Consultants"
	DefaultPrincipalName  = "Sean"
	DefaultPrincipalEmail = "sean@example.com"
	DefaultCloseAfterDays = 30
	DefaultTimezone       = "Local" // Use system local timezone by default
)
