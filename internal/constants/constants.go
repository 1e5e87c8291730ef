package constants

import "time"

const (
	AppName            = "sprout"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/sprout/sprout.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// DefaultNotificationTime is assigned when a habit is created without
	// an explicit schedule.
	DefaultNotificationTime = "09:00"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "sprout-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "io.sprouthq.sprout"

	// Task priority bounds
	MinPriority = 1
	MaxPriority = 4
)
