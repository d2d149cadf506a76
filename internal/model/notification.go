package model

import "time"

// Notification is a single user-facing event record. ID and CreatedAt are set
// once at creation and never reassigned; IsRead and WasDismissed are the only
// mutable fields. The JSON field names are the service's wire format.
type Notification struct {
	ID           string    `json:"notification_id"`
	AccountID    string    `json:"account_id"`
	IsRead       bool      `json:"is_read"`
	WasDismissed bool      `json:"was_dismissed"`
	Label        string    `json:"label"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"date"`
	Kind         string    `json:"type,omitempty"`
	Icon         string    `json:"icon,omitempty"`
	Priority     string    `json:"priority,omitempty"`
	Category     string    `json:"category,omitempty"`
	ActionURL    string    `json:"action_url,omitempty"`
}
