package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/xxtryitxx/horizontos/internal/core/domain"
	"github.com/xxtryitxx/horizontos/internal/core/ports"
)

const fileListLimit = 50

// UploadService stores binary uploads in the object store and persists
// their metadata.
type UploadService struct {
	store ports.ObjectStore
	repo  ports.UploadRepository
	users ports.UserRepository
	log   zerolog.Logger
}

func NewUploadService(store ports.ObjectStore, repo ports.UploadRepository, users ports.UserRepository, log zerolog.Logger) *UploadService {
	return &UploadService{store: store, repo: repo, users: users, log: log}
}

// UploadAvatar replaces the user's profile picture.
func (s *UploadService) UploadAvatar(ctx context.Context, userID string, data io.Reader) (string, error) {
	if userID == "" {
		return "", domain.ErrValidation
	}
	url, err := s.store.Put(ctx, fmt.Sprintf("profiles/%s/avatar", userID), data)
	if err != nil {
		return "", err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if err := s.users.UpdateProfile(ctx, userID, user.Name, url, user.Birthday); err != nil {
		return "", err
	}
	return url, nil
}

// UploadVoice stores an audio clip and records it for the receiver.
func (s *UploadService) UploadVoice(ctx context.Context, senderID, receiverID string, duration int, mimeType string, data io.Reader) (*domain.VoiceMessage, error) {
	if senderID == "" || duration <= 0 {
		return nil, domain.ErrValidation
	}
	sender, err := s.users.FindByID(ctx, senderID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	url, err := s.store.Put(ctx, fmt.Sprintf("voice/%s/%d", senderID, now.UnixNano()), data)
	if err != nil {
		return nil, err
	}

	msg := &domain.VoiceMessage{
		SenderID:   senderID,
		SenderName: sender.Name,
		ReceiverID: receiverID,
		Duration:   duration,
		URL:        url,
		MimeType:   mimeType,
		CreatedAt:  now,
	}
	if err := s.repo.InsertVoice(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// ShareFile stores an arbitrary file and records its metadata.
func (s *UploadService) ShareFile(ctx context.Context, uploaderID, name, mimeType, conversationID string, size int64, data io.Reader) (*domain.FileShare, error) {
	if uploaderID == "" || name == "" {
		return nil, domain.ErrValidation
	}

	now := time.Now().UTC()
	url, err := s.store.Put(ctx, fmt.Sprintf("files/%s/%d-%s", uploaderID, now.UnixNano(), name), data)
	if err != nil {
		return nil, err
	}

	file := &domain.FileShare{
		Name:           name,
		Size:           size,
		MimeType:       mimeType,
		URL:            url,
		UploadedBy:     uploaderID,
		ConversationID: conversationID,
		UploadedAt:     now,
	}
	if err := s.repo.InsertFile(ctx, file); err != nil {
		return nil, err
	}
	return file, nil
}

// VoiceInboxFor lists voice messages addressed to the user.
func (s *UploadService) VoiceInboxFor(ctx context.Context, userID string) ([]*domain.VoiceMessage, error) {
	return s.repo.ListVoiceByReceiver(ctx, userID)
}

// SharedFiles lists the newest shared files.
func (s *UploadService) SharedFiles(ctx context.Context) ([]*domain.FileShare, error) {
	return s.repo.ListFiles(ctx, fileListLimit)
}
