package ports

import (
	"context"

	"github.com/xxtryitxx/horizontos/internal/core/domain"
)

// NotificationService creates and delivers per-user notifications.
// Shift-related notifications additionally fan out as email, best effort.
type NotificationService interface {
	Notify(ctx context.Context, userID string, typ domain.NotificationType, title, message string, data domain.NotificationData) error
	MarkRead(ctx context.Context, userID, id string) error
	ListFor(ctx context.Context, userID string) ([]*domain.Notification, error)
}
