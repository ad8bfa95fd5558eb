package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/xxtryitxx/horizontos/internal/core/domain"
	"github.com/xxtryitxx/horizontos/internal/core/ports"
)

// ShiftService handles directed swap requests and open trades. Status
// transitions are one-directional; terminal states never revive.
type ShiftService struct {
	swaps  ports.SwapRepository
	trades ports.TradeRepository
	users  ports.UserRepository
	notify ports.NotificationService
	scores ports.ScoreService
	log    zerolog.Logger
}

func NewShiftService(
	swaps ports.SwapRepository,
	trades ports.TradeRepository,
	users ports.UserRepository,
	notify ports.NotificationService,
	scores ports.ScoreService,
	log zerolog.Logger,
) *ShiftService {
	return &ShiftService{swaps: swaps, trades: trades, users: users, notify: notify, scores: scores, log: log}
}

// RequestSwap creates a pending request and notifies the recipient. The
// notification is best effort.
func (s *ShiftService) RequestSwap(ctx context.Context, requesterID, recipientID, shiftTime string) (*domain.ShiftSwapRequest, error) {
	if requesterID == "" || recipientID == "" || shiftTime == "" {
		return nil, domain.ErrValidation
	}
	requester, err := s.users.FindByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	recipient, err := s.users.FindByID(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	req := &domain.ShiftSwapRequest{
		RequesterID:   requesterID,
		RequesterName: requester.Name,
		RecipientID:   recipientID,
		RecipientName: recipient.Name,
		ShiftTime:     shiftTime,
		Status:        domain.SwapPending,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.swaps.Insert(ctx, req); err != nil {
		return nil, err
	}

	s.bestEffortNotify(ctx, recipientID, domain.NotifyShiftSwap,
		"Schichttausch-Anfrage",
		fmt.Sprintf("%s hat eine Tausch-Anfrage für %s gesendet.", requester.Name, shiftTime),
		domain.NotificationData{SwapRequestID: req.ID})

	return req, nil
}

// ApproveSwap moves a pending request to approved. Only the recipient may
// decide; the approval earns them helper points.
func (s *ShiftService) ApproveSwap(ctx context.Context, actorID, requestID string) error {
	req, err := s.decideSwap(ctx, actorID, requestID, domain.SwapApproved)
	if err != nil {
		return err
	}

	s.bestEffortNotify(ctx, req.RequesterID, domain.NotifyShiftSwap,
		"Schichttausch genehmigt",
		fmt.Sprintf("Deine Anfrage an %s wurde genehmigt.", req.RecipientName),
		domain.NotificationData{SwapRequestID: req.ID})

	if _, err := s.scores.Award(ctx, actorID, domain.EventSwapHelped); err != nil {
		s.log.Warn().Err(err).Str("user", actorID).Msg("swap helper award failed")
	}
	return nil
}

// RejectSwap moves a pending request to rejected.
func (s *ShiftService) RejectSwap(ctx context.Context, actorID, requestID string) error {
	req, err := s.decideSwap(ctx, actorID, requestID, domain.SwapRejected)
	if err != nil {
		return err
	}

	s.bestEffortNotify(ctx, req.RequesterID, domain.NotifyShiftSwap,
		"Schichttausch abgelehnt",
		fmt.Sprintf("Deine Anfrage an %s wurde abgelehnt.", req.RecipientName),
		domain.NotificationData{SwapRequestID: req.ID})
	return nil
}

func (s *ShiftService) decideSwap(ctx context.Context, actorID, requestID string, next domain.SwapStatus) (*domain.ShiftSwapRequest, error) {
	req, err := s.swaps.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.RecipientID != actorID {
		return nil, domain.ErrPermissionDenied
	}
	if !req.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, req.Status, next)
	}
	if err := s.swaps.UpdateStatus(ctx, requestID, next); err != nil {
		return nil, err
	}
	req.Status = next
	return req, nil
}

// SwapsFor lists requests addressed to the recipient.
func (s *ShiftService) SwapsFor(ctx context.Context, recipientID string) ([]*domain.ShiftSwapRequest, error) {
	return s.swaps.ListByRecipient(ctx, recipientID)
}

// OpenTrade publishes a shift to the volunteer pool.
func (s *ShiftService) OpenTrade(ctx context.Context, requesterID, shiftDate, description string) (*domain.ShiftTrade, error) {
	if requesterID == "" || shiftDate == "" {
		return nil, domain.ErrValidation
	}
	requester, err := s.users.FindByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	trade := &domain.ShiftTrade{
		RequesterID:   requesterID,
		RequesterName: requester.Name,
		ShiftDate:     shiftDate,
		Description:   description,
		Volunteers:    []string{},
		Status:        domain.TradeOpen,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.trades.Insert(ctx, trade); err != nil {
		return nil, err
	}
	return trade, nil
}

// Volunteer adds a user to an open trade's pool. Re-volunteering is a
// no-op at the storage layer.
func (s *ShiftService) Volunteer(ctx context.Context, tradeID, userID string) error {
	trade, err := s.trades.FindByID(ctx, tradeID)
	if err != nil {
		return err
	}
	if trade.Status != domain.TradeOpen {
		return fmt.Errorf("%w (trade is %s)", domain.ErrInvalidTransition, trade.Status)
	}
	if trade.RequesterID == userID {
		return domain.ErrValidation
	}
	return s.trades.AddVolunteer(ctx, tradeID, userID)
}

// AssignTrade hands the shift to one of the volunteers. Only the requester
// may assign.
func (s *ShiftService) AssignTrade(ctx context.Context, actorID, tradeID, volunteerID string) error {
	trade, err := s.trades.FindByID(ctx, tradeID)
	if err != nil {
		return err
	}
	if trade.RequesterID != actorID {
		return domain.ErrPermissionDenied
	}
	if !trade.Status.CanTransitionTo(domain.TradeAssigned) {
		return fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, trade.Status, domain.TradeAssigned)
	}
	if !contains(trade.Volunteers, volunteerID) {
		return domain.ErrValidation
	}
	if err := s.trades.Assign(ctx, tradeID, volunteerID, domain.TradeAssigned); err != nil {
		return err
	}

	s.bestEffortNotify(ctx, volunteerID, domain.NotifyShift,
		"Schicht zugewiesen",
		fmt.Sprintf("Du übernimmst die Schicht am %s von %s.", trade.ShiftDate, trade.RequesterName),
		domain.NotificationData{SwapRequestID: trade.ID})
	return nil
}

// CompleteTrade closes an assigned trade and credits the volunteer.
func (s *ShiftService) CompleteTrade(ctx context.Context, actorID, tradeID string) error {
	trade, err := s.trades.FindByID(ctx, tradeID)
	if err != nil {
		return err
	}
	if trade.RequesterID != actorID {
		return domain.ErrPermissionDenied
	}
	if !trade.Status.CanTransitionTo(domain.TradeCompleted) {
		return fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, trade.Status, domain.TradeCompleted)
	}
	if err := s.trades.UpdateStatus(ctx, tradeID, domain.TradeCompleted); err != nil {
		return err
	}

	if trade.AssignedTo != "" {
		if _, err := s.scores.Award(ctx, trade.AssignedTo, domain.EventSwapHelped); err != nil {
			s.log.Warn().Err(err).Str("user", trade.AssignedTo).Msg("trade helper award failed")
		}
	}
	return nil
}

// OpenTrades lists trades still accepting volunteers.
func (s *ShiftService) OpenTrades(ctx context.Context) ([]*domain.ShiftTrade, error) {
	return s.trades.ListOpen(ctx)
}

func (s *ShiftService) bestEffortNotify(ctx context.Context, userID string, typ domain.NotificationType, title, message string, data domain.NotificationData) {
	if err := s.notify.Notify(ctx, userID, typ, title, message, data); err != nil {
		s.log.Warn().Err(err).Str("user", userID).Msg("notification failed")
	}
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
