package domain

import "time"

// Notification is the transient status message shown to the user.
// Only one notification can be live at a time
type Notification struct {
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Active reports whether the notification still has to be shown at t
func (n Notification) Active(t time.Time) bool {
	return n.Message != "" && t.Before(n.ExpiresAt)
}
