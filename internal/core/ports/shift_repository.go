package ports

import (
	"context"

	"github.com/xxtryitxx/horizontos/internal/core/domain"
)

// SwapRepository persists shift-swap requests.
type SwapRepository interface {
	Insert(ctx context.Context, req *domain.ShiftSwapRequest) error
	FindByID(ctx context.Context, id string) (*domain.ShiftSwapRequest, error)
	UpdateStatus(ctx context.Context, id string, status domain.SwapStatus) error
	ListByRecipient(ctx context.Context, recipientID string) ([]*domain.ShiftSwapRequest, error)
}

// TradeRepository persists open shift trades.
type TradeRepository interface {
	Insert(ctx context.Context, trade *domain.ShiftTrade) error
	FindByID(ctx context.Context, id string) (*domain.ShiftTrade, error)
	// AddVolunteer appends once; re-volunteering is a no-op.
	AddVolunteer(ctx context.Context, id, userID string) error
	Assign(ctx context.Context, id, userID string, status domain.TradeStatus) error
	UpdateStatus(ctx context.Context, id string, status domain.TradeStatus) error
	ListOpen(ctx context.Context) ([]*domain.ShiftTrade, error)
}
