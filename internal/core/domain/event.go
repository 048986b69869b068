package domain

import "time"

// UserEventAction enumerates the lifecycle actions recorded in the audit trail.
type UserEventAction string

const (
	EventSignedUp UserEventAction = "signed_up"
	EventModified UserEventAction = "modified"
	EventEnabled  UserEventAction = "enabled"
	EventDisabled UserEventAction = "disabled"
	EventDeleted  UserEventAction = "deleted"
)

// UserEvent is a single audit-trail entry for a user record mutation.
type UserEvent struct {
	UserID    string          `json:"user_id"`
	Username  string          `json:"username"`
	Action    UserEventAction `json:"action"`
	Actor     string          `json:"actor,omitempty"` // requester username, empty when anonymous
	Timestamp time.Time       `json:"timestamp"`
}
