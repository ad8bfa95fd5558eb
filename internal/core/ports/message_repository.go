package ports

import (
	"context"

	"github.com/xxtryitxx/horizontos/internal/core/domain"
)

// MessageRepository persists direct messages. The store must be able to
// express the OR-of-ANDs conversation predicate natively.
type MessageRepository interface {
	Insert(ctx context.Context, msg *domain.Message) error

	// Conversation returns the union of "a sent to b" and "b sent to a",
	// ordered by timestamp ascending.
	Conversation(ctx context.Context, a, b string, limit int64) ([]domain.Message, error)
}
