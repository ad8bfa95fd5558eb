package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/xxtryitxx/horizontos/internal/core/domain"
)

func shiftFixture() (*ShiftService, *stubUserRepo, *stubSwapRepo, *stubTradeRepo, *stubNotifier) {
	users := newStubUserRepo()
	users.add(&domain.User{ID: "u1", Name: "Anna"})
	users.add(&domain.User{ID: "u2", Name: "Ben"})
	users.add(&domain.User{ID: "u3", Name: "Clara"})

	swaps := newStubSwapRepo()
	trades := newStubTradeRepo()
	notifier := &stubNotifier{}
	scores := NewScoreService(users, zerolog.Nop())

	svc := NewShiftService(swaps, trades, users, notifier, scores, zerolog.Nop())
	return svc, users, swaps, trades, notifier
}

func TestRequestSwap_NotifiesRecipient(t *testing.T) {
	svc, _, swaps, _, notifier := shiftFixture()

	req, err := svc.RequestSwap(context.Background(), "u1", "u2", "Mo 06:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Status != domain.SwapPending {
		t.Errorf("status = %s, want pending", req.Status)
	}
	if req.RequesterName != "Anna" || req.RecipientName != "Ben" {
		t.Errorf("names = %q/%q, want resolved from profiles", req.RequesterName, req.RecipientName)
	}
	if len(swaps.swaps) != 1 {
		t.Error("request not persisted")
	}
	if len(notifier.calls) != 1 || notifier.calls[0].userID != "u2" || notifier.calls[0].typ != domain.NotifyShiftSwap {
		t.Errorf("notify calls = %+v, want one shift_swap to u2", notifier.calls)
	}
}

func TestRequestSwap_UnknownRecipient(t *testing.T) {
	svc, _, _, _, _ := shiftFixture()

	if _, err := svc.RequestSwap(context.Background(), "u1", "ghost", "Mo 06:00"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("got %v, want ErrUserNotFound", err)
	}
}

func TestApproveSwap_OnlyRecipientDecides(t *testing.T) {
	svc, _, _, _, _ := shiftFixture()
	req, _ := svc.RequestSwap(context.Background(), "u1", "u2", "Mo 06:00")

	if err := svc.ApproveSwap(context.Background(), "u3", req.ID); !errors.Is(err, domain.ErrPermissionDenied) {
		t.Errorf("non-recipient: got %v, want ErrPermissionDenied", err)
	}
	if err := svc.ApproveSwap(context.Background(), "u1", req.ID); !errors.Is(err, domain.ErrPermissionDenied) {
		t.Errorf("requester: got %v, want ErrPermissionDenied", err)
	}
}

func TestApproveSwap_AwardsHelperAndNotifiesRequester(t *testing.T) {
	svc, users, swaps, _, notifier := shiftFixture()
	req, _ := svc.RequestSwap(context.Background(), "u1", "u2", "Mo 06:00")

	if err := svc.ApproveSwap(context.Background(), "u2", req.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := swaps.swaps[req.ID].Status; got != domain.SwapApproved {
		t.Errorf("status = %s, want approved", got)
	}
	if got := users.get("u2").Score; got != 20 {
		t.Errorf("helper score = %d, want 20", got)
	}

	var toRequester int
	for _, c := range notifier.calls {
		if c.userID == "u1" {
			toRequester++
		}
	}
	if toRequester != 1 {
		t.Errorf("requester got %d notifications, want 1", toRequester)
	}
}

func TestApproveSwap_TerminalStateStaysTerminal(t *testing.T) {
	svc, _, _, _, _ := shiftFixture()
	req, _ := svc.RequestSwap(context.Background(), "u1", "u2", "Mo 06:00")

	if err := svc.ApproveSwap(context.Background(), "u2", req.ID); err != nil {
		t.Fatalf("first approve: %v", err)
	}
	if err := svc.ApproveSwap(context.Background(), "u2", req.ID); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("second approve: got %v, want ErrInvalidTransition", err)
	}
	if err := svc.RejectSwap(context.Background(), "u2", req.ID); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("reject after approve: got %v, want ErrInvalidTransition", err)
	}
}

func TestRejectSwap(t *testing.T) {
	svc, users, swaps, _, _ := shiftFixture()
	req, _ := svc.RequestSwap(context.Background(), "u1", "u2", "Mo 06:00")

	if err := svc.RejectSwap(context.Background(), "u2", req.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := swaps.swaps[req.ID].Status; got != domain.SwapRejected {
		t.Errorf("status = %s, want rejected", got)
	}
	if got := users.get("u2").Score; got != 0 {
		t.Errorf("rejection must not award points, score = %d", got)
	}
}

func TestTradeLifecycle(t *testing.T) {
	svc, users, _, trades, _ := shiftFixture()
	ctx := context.Background()

	trade, err := svc.OpenTrade(ctx, "u1", "2026-09-01", "Frühschicht")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if trade.Status != domain.TradeOpen || len(trade.Volunteers) != 0 {
		t.Errorf("fresh trade = %+v", trade)
	}

	if err := svc.Volunteer(ctx, trade.ID, "u2"); err != nil {
		t.Fatalf("volunteer: %v", err)
	}
	if err := svc.Volunteer(ctx, trade.ID, "u2"); err != nil {
		t.Fatalf("re-volunteering must be a no-op, got %v", err)
	}
	if got := trades.trades[trade.ID].Volunteers; len(got) != 1 {
		t.Errorf("volunteers = %v, want exactly one entry", got)
	}

	if err := svc.AssignTrade(ctx, "u1", trade.ID, "u2"); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if got := trades.trades[trade.ID]; got.Status != domain.TradeAssigned || got.AssignedTo != "u2" {
		t.Errorf("after assign = %+v", got)
	}

	if err := svc.CompleteTrade(ctx, "u1", trade.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if got := trades.trades[trade.ID].Status; got != domain.TradeCompleted {
		t.Errorf("status = %s, want completed", got)
	}
	if got := users.get("u2").Score; got != 20 {
		t.Errorf("volunteer score = %d, want 20", got)
	}
}

func TestVolunteer_OwnTradeRejected(t *testing.T) {
	svc, _, _, _, _ := shiftFixture()
	trade, _ := svc.OpenTrade(context.Background(), "u1", "2026-09-01", "")

	if err := svc.Volunteer(context.Background(), trade.ID, "u1"); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("got %v, want ErrValidation", err)
	}
}

func TestVolunteer_ClosedTradeRejected(t *testing.T) {
	svc, _, _, _, _ := shiftFixture()
	ctx := context.Background()
	trade, _ := svc.OpenTrade(ctx, "u1", "2026-09-01", "")
	_ = svc.Volunteer(ctx, trade.ID, "u2")
	_ = svc.AssignTrade(ctx, "u1", trade.ID, "u2")

	if err := svc.Volunteer(ctx, trade.ID, "u3"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("got %v, want ErrInvalidTransition", err)
	}
}

func TestAssignTrade_Guards(t *testing.T) {
	svc, _, _, _, _ := shiftFixture()
	ctx := context.Background()
	trade, _ := svc.OpenTrade(ctx, "u1", "2026-09-01", "")
	_ = svc.Volunteer(ctx, trade.ID, "u2")

	if err := svc.AssignTrade(ctx, "u2", trade.ID, "u2"); !errors.Is(err, domain.ErrPermissionDenied) {
		t.Errorf("non-requester assign: got %v, want ErrPermissionDenied", err)
	}
	if err := svc.AssignTrade(ctx, "u1", trade.ID, "u3"); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("assign to non-volunteer: got %v, want ErrValidation", err)
	}
}

func TestCompleteTrade_Guards(t *testing.T) {
	svc, _, _, _, _ := shiftFixture()
	ctx := context.Background()
	trade, _ := svc.OpenTrade(ctx, "u1", "2026-09-01", "")

	if err := svc.CompleteTrade(ctx, "u2", trade.ID); !errors.Is(err, domain.ErrPermissionDenied) {
		t.Errorf("non-requester complete: got %v, want ErrPermissionDenied", err)
	}
	if err := svc.CompleteTrade(ctx, "u1", trade.ID); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("complete open trade: got %v, want ErrInvalidTransition", err)
	}
}

func TestOpenTrades_FiltersByStatus(t *testing.T) {
	svc, _, _, _, _ := shiftFixture()
	ctx := context.Background()

	first, _ := svc.OpenTrade(ctx, "u1", "2026-09-01", "")
	if _, err := svc.OpenTrade(ctx, "u1", "2026-09-02", ""); err != nil {
		t.Fatalf("open: %v", err)
	}
	_ = svc.Volunteer(ctx, first.ID, "u2")
	_ = svc.AssignTrade(ctx, "u1", first.ID, "u2")

	got, err := svc.OpenTrades(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ShiftDate != "2026-09-02" {
		t.Errorf("open trades = %+v, want only the unassigned one", got)
	}
}
