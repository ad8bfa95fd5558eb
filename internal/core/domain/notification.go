package domain

import "time"

// NotificationType tags the payload variant carried by a notification.
type NotificationType string

const (
	NotifyShift        NotificationType = "shift"
	NotifyShiftSwap    NotificationType = "shift_swap"
	NotifyChat         NotificationType = "chat"
	NotifyAchievement  NotificationType = "achievement"
	NotifyAnnouncement NotificationType = "announcement"
)

// EmailWorthy reports whether this notification type fans out as an email.
// Only shift-related notifications do.
func (t NotificationType) EmailWorthy() bool {
	return t == NotifyShift || t == NotifyShiftSwap
}

// NotificationData is the tagged payload union, keyed by NotificationType.
// Exactly one field is set, matching the type tag.
type NotificationData struct {
	SwapRequestID string `json:"swap_request_id,omitempty"` // shift, shift_swap
	PeerID        string `json:"peer_id,omitempty"`         // chat
	Badge         string `json:"badge,omitempty"`           // achievement
}

// Notification is delivered to a single recipient. Read transitions
// one-way from false to true.
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Read      bool             `json:"read"`
	Data      NotificationData `json:"data,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}
