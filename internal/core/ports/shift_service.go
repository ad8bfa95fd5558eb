package ports

import (
	"context"

	"github.com/xxtryitxx/horizontos/internal/core/domain"
)

// ShiftService handles swap requests and open trades.
type ShiftService interface {
	RequestSwap(ctx context.Context, requesterID, recipientID, shiftTime string) (*domain.ShiftSwapRequest, error)
	// ApproveSwap and RejectSwap may only be called by the recipient.
	ApproveSwap(ctx context.Context, actorID, requestID string) error
	RejectSwap(ctx context.Context, actorID, requestID string) error
	SwapsFor(ctx context.Context, recipientID string) ([]*domain.ShiftSwapRequest, error)

	OpenTrade(ctx context.Context, requesterID, shiftDate, description string) (*domain.ShiftTrade, error)
	Volunteer(ctx context.Context, tradeID, userID string) error
	// AssignTrade picks a volunteer; only the requester may assign.
	AssignTrade(ctx context.Context, actorID, tradeID, volunteerID string) error
	CompleteTrade(ctx context.Context, actorID, tradeID string) error
	OpenTrades(ctx context.Context) ([]*domain.ShiftTrade, error)
}
