package ports

import (
	"context"

	"github.com/xxtryitxx/horizontos/internal/core/domain"
)

// SickLeaveService records and reviews sick-leave submissions.
type SickLeaveService interface {
	Submit(ctx context.Context, userID, startDate, endDate string) (*domain.SickLeaveEntry, error)
	// Review re-checks the actor's admin claim before any status change.
	Review(ctx context.Context, actorID, entryID string, status domain.SickLeaveStatus) error
	ListFor(ctx context.Context, userID string, isAdmin bool) ([]*domain.SickLeaveEntry, error)
}
