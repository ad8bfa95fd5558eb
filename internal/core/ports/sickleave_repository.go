package ports

import (
	"context"

	"github.com/xxtryitxx/horizontos/internal/core/domain"
)

// SickLeaveRepository persists sick-leave submissions.
type SickLeaveRepository interface {
	Insert(ctx context.Context, entry *domain.SickLeaveEntry) error
	FindByID(ctx context.Context, id string) (*domain.SickLeaveEntry, error)
	UpdateStatus(ctx context.Context, id string, status domain.SickLeaveStatus) error
	ListByUser(ctx context.Context, userID string) ([]*domain.SickLeaveEntry, error)
	ListAll(ctx context.Context) ([]*domain.SickLeaveEntry, error)
}
