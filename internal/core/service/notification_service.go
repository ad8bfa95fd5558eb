package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/xxtryitxx/horizontos/internal/api/metrics"
	"github.com/xxtryitxx/horizontos/internal/core/domain"
	"github.com/xxtryitxx/horizontos/internal/core/ports"
)

const notificationListLimit = 50

// NotificationService delivers per-user notifications. Shift-related
// notifications additionally fan out as email; email failures are logged
// and never block the triggering write.
type NotificationService struct {
	repo   ports.NotificationRepository
	users  ports.UserRepository
	mailer ports.Mailer
	bus    ports.EventBus
	log    zerolog.Logger
}

func NewNotificationService(repo ports.NotificationRepository, users ports.UserRepository, mailer ports.Mailer, bus ports.EventBus, log zerolog.Logger) *NotificationService {
	return &NotificationService{repo: repo, users: users, mailer: mailer, bus: bus, log: log}
}

// Notify persists the notification, publishes it to the recipient's live
// channel, and fans out email for shift types.
func (s *NotificationService) Notify(ctx context.Context, userID string, typ domain.NotificationType, title, message string, data domain.NotificationData) error {
	if userID == "" || title == "" {
		return domain.ErrValidation
	}

	n := &domain.Notification{
		UserID:    userID,
		Type:      typ,
		Title:     title,
		Message:   message,
		Read:      false,
		Data:      data,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, n); err != nil {
		return err
	}

	if payload, err := json.Marshal(n); err == nil {
		if err := s.bus.Publish(ctx, "notify:"+userID, payload); err != nil {
			s.log.Warn().Err(err).Str("user", userID).Msg("notification publish failed")
		}
	}

	if typ.EmailWorthy() && s.mailer != nil {
		go s.sendEmail(context.WithoutCancel(ctx), userID, title, message)
	}
	return nil
}

// MarkRead flips the one-way read flag on one of userID's own notifications.
func (s *NotificationService) MarkRead(ctx context.Context, userID, id string) error {
	return s.repo.MarkRead(ctx, userID, id)
}

// ListFor returns the recipient's newest notifications.
func (s *NotificationService) ListFor(ctx context.Context, userID string) ([]*domain.Notification, error) {
	return s.repo.ListByUser(ctx, userID, notificationListLimit)
}

func (s *NotificationService) sendEmail(ctx context.Context, userID, subject, text string) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil || user.Email == "" {
		s.log.Warn().Err(err).Str("user", userID).Msg("no recipient email, skipping notification mail")
		metrics.NotificationEmailsTotal.WithLabelValues("skipped").Inc()
		return
	}
	if err := s.mailer.SendEmail(ctx, user.Email, subject, text); err != nil {
		s.log.Warn().Err(err).Str("user", userID).Msg("notification email failed")
		metrics.NotificationEmailsTotal.WithLabelValues("error").Inc()
		return
	}
	metrics.NotificationEmailsTotal.WithLabelValues("sent").Inc()
}
