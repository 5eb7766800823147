// boatd/config/config.go
package config

import "time"

const (
	AppVersion = "1.2.0"

	// Bootstrap Defaults
	DefaultPort       = "3000"
	DefaultAdminToken = "bytt-meg"
	DefaultDBPath     = "./boatd.db?_journal_mode=WAL&_foreign_keys=on"

	// Form & Field Limits
	MaxTitleLen       = 120
	MaxNameLen        = 75
	MaxLocationLen    = 80
	MaxPhoneLen       = 32
	MaxDescriptionLen = 4000
	MaxBodyLen        = 8000

	// Admin Session
	AdminSessionTTL = 12 * time.Hour

	// Outbound Mail
	MailTimeout = 10 * time.Second
)
