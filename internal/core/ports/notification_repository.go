package ports

import (
	"context"

	"github.com/xxtryitxx/horizontos/internal/core/domain"
)

// NotificationRepository persists per-recipient notifications.
type NotificationRepository interface {
	Insert(ctx context.Context, n *domain.Notification) error
	// MarkRead flips read to true; already-read is a no-op. The update is
	// scoped to userID so nobody can flip another recipient's flag.
	MarkRead(ctx context.Context, userID, id string) error
	ListByUser(ctx context.Context, userID string, limit int64) ([]*domain.Notification, error)
}
