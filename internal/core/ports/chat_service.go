package ports

import (
	"context"

	"github.com/xxtryitxx/horizontos/internal/core/domain"
)

// ChatService resolves two-party conversations and sends messages.
type ChatService interface {
	// Conversation returns the ordered message set for (me, peer). For the
	// assistant peer it returns the seeded greeting; nothing is queried.
	Conversation(ctx context.Context, me, peer string, limit int64) ([]domain.Message, error)

	// Send persists a message to peer and returns the appended turns. For
	// the assistant peer the user turn plus the generated reply are
	// returned; neither is persisted.
	Send(ctx context.Context, me, peer, text string) ([]domain.Message, error)
}
