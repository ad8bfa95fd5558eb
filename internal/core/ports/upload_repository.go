package ports

import (
	"context"

	"github.com/xxtryitxx/horizontos/internal/core/domain"
)

// UploadRepository persists metadata for objects stored out-of-band.
type UploadRepository interface {
	InsertVoice(ctx context.Context, msg *domain.VoiceMessage) error
	ListVoiceByReceiver(ctx context.Context, receiverID string) ([]*domain.VoiceMessage, error)

	InsertFile(ctx context.Context, file *domain.FileShare) error
	ListFiles(ctx context.Context, limit int64) ([]*domain.FileShare, error)
}
