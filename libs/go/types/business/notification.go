package business

import "time"

// NotificationStatus is the flavour of a toast
type NotificationStatus string

const (
	NotificationPending NotificationStatus = "pending"
	NotificationSuccess NotificationStatus = "success"
	NotificationError   NotificationStatus = "error"
)

// Notification is the single transient toast shown to the user
type Notification struct {
	Visible   bool               `json:"visible"`
	Status    NotificationStatus `json:"status,omitempty"`
	Message   string             `json:"message,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}
