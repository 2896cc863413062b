package constants

import "time"

// Database pool settings
const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
)

// Scan pipeline defaults
const (
	DefaultFetchConcurrency    = 3
	DefaultFetchRetryCeiling   = 3
	DefaultScanIntervalSeconds = 60
	FetchTimeout               = 15 * time.Second
)

// Provider constants for the booking widget and cart deep links.
const (
	WidgetBaseURL   = "https://widgets.mindbodyonline.com/widgets/appointments"
	CartBaseURL     = "https://cart.mindbodyonline.com/sites/%s/cart/add_booking?"
	DefaultWidgetID = "8f25324d818"
	DefaultSiteID   = "19060"

	// The provider models each court as a staff member; staff id = court + offset.
	CourtStaffIDOffset = 3
	MboLocationID      = 1
)

// Scan status cache keys
const (
	ScanLockKey      = "scan:lock"
	ScanStatusKey    = "scan:status"
	ScanLockTTL      = 10 * time.Minute
	ScanStatusTTL    = 24 * time.Hour
	ScanTaskTypeName = "scan:run"
	ScanQueueName    = "default"
)

// Notification settings
const (
	NotificationSubject = "new court openings!"
	NotificationWindow  = 7 * 24 * time.Hour
)
