package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/xxtryitxx/horizontos/internal/core/domain"
	"github.com/xxtryitxx/horizontos/internal/core/ports"
)

// SickLeaveService handles sick-leave submissions and admin review.
type SickLeaveService struct {
	repo   ports.SickLeaveRepository
	claims ports.ClaimsRepository
	users  ports.UserRepository
	log    zerolog.Logger
}

func NewSickLeaveService(repo ports.SickLeaveRepository, claims ports.ClaimsRepository, users ports.UserRepository, log zerolog.Logger) *SickLeaveService {
	return &SickLeaveService{repo: repo, claims: claims, users: users, log: log}
}

// Submit files a pending sick-leave entry for the caller.
func (s *SickLeaveService) Submit(ctx context.Context, userID, startDate, endDate string) (*domain.SickLeaveEntry, error) {
	if userID == "" || startDate == "" || endDate == "" {
		return nil, domain.ErrValidation
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	entry := &domain.SickLeaveEntry{
		UserID:    userID,
		UserName:  user.Name,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    domain.SickLeavePending,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Review approves or rejects a pending entry. The actor's admin claim is
// re-checked against the claims store.
func (s *SickLeaveService) Review(ctx context.Context, actorID, entryID string, status domain.SickLeaveStatus) error {
	if actorID == "" {
		return domain.ErrUnauthenticated
	}
	trust, err := s.claims.Get(ctx, actorID)
	if err != nil || !trust.IsAdmin() {
		return domain.ErrPermissionDenied
	}

	entry, err := s.repo.FindByID(ctx, entryID)
	if err != nil {
		return err
	}
	if !entry.Status.CanTransitionTo(status) {
		return fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, entry.Status, status)
	}
	return s.repo.UpdateStatus(ctx, entryID, status)
}

// ListFor returns all entries for admins, or the caller's own otherwise.
func (s *SickLeaveService) ListFor(ctx context.Context, userID string, isAdmin bool) ([]*domain.SickLeaveEntry, error) {
	if isAdmin {
		return s.repo.ListAll(ctx)
	}
	return s.repo.ListByUser(ctx, userID)
}
