package ports

import (
	"context"
	"io"

	"github.com/xxtryitxx/horizontos/internal/core/domain"
)

// UploadService pushes binary uploads to the object store and records
// their metadata.
type UploadService interface {
	// UploadAvatar stores the image and updates the profile's avatar URL.
	UploadAvatar(ctx context.Context, userID string, data io.Reader) (string, error)
	UploadVoice(ctx context.Context, senderID, receiverID string, duration int, mimeType string, data io.Reader) (*domain.VoiceMessage, error)
	ShareFile(ctx context.Context, uploaderID, name, mimeType, conversationID string, size int64, data io.Reader) (*domain.FileShare, error)
	VoiceInboxFor(ctx context.Context, userID string) ([]*domain.VoiceMessage, error)
	SharedFiles(ctx context.Context) ([]*domain.FileShare, error)
}
