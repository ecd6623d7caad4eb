package domain

import "time"

// AuthEventType names an entry in the authentication audit trail.
type AuthEventType string

const (
	EventSignup      AuthEventType = "signup"
	EventLogin       AuthEventType = "login"
	EventLoginFailed AuthEventType = "login_failed"
	EventRefresh     AuthEventType = "refresh"
	EventLogout      AuthEventType = "logout"
)

// AuthEvent records a state change (or failed attempt) on a user's token pair.
// UserID is empty for failed logins against unknown emails; Email is kept so
// those attempts are still attributable.
type AuthEvent struct {
	Type      AuthEventType
	UserID    string
	Email     string
	Timestamp time.Time
}
