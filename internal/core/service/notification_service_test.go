package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/xxtryitxx/horizontos/internal/core/domain"
)

func notificationFixture() (*NotificationService, *stubNotificationRepo, *stubUserRepo, *stubMailer, *stubBus) {
	repo := &stubNotificationRepo{}
	users := newStubUserRepo()
	users.add(&domain.User{ID: "u1", Email: "anna@example.com"})
	mailer := newStubMailer()
	bus := &stubBus{}
	svc := NewNotificationService(repo, users, mailer, bus, zerolog.Nop())
	return svc, repo, users, mailer, bus
}

func TestNotify_PersistsAndPublishes(t *testing.T) {
	svc, repo, _, _, bus := notificationFixture()

	err := svc.Notify(context.Background(), "u1", domain.NotifyAchievement, "Abzeichen", "helper freigeschaltet", domain.NotificationData{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.notifications) != 1 {
		t.Fatalf("persisted %d notifications, want 1", len(repo.notifications))
	}
	events := bus.events()
	if len(events) != 1 || events[0].channel != "notify:u1" {
		t.Errorf("published to %v, want notify:u1", events)
	}
}

func TestNotify_ShiftTypeFansOutEmail(t *testing.T) {
	svc, _, _, mailer, _ := notificationFixture()

	err := svc.Notify(context.Background(), "u1", domain.NotifyShiftSwap, "Schichttausch-Anfrage", "bitte prüfen", domain.NotificationData{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case got := <-mailer.sent:
		if got != "anna@example.com|Schichttausch-Anfrage" {
			t.Errorf("email = %q", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no email within timeout")
	}
}

func TestNotify_ChatTypeSendsNoEmail(t *testing.T) {
	svc, _, _, mailer, _ := notificationFixture()

	err := svc.Notify(context.Background(), "u1", domain.NotifyChat, "Neue Nachricht", "hallo", domain.NotificationData{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case got := <-mailer.sent:
		t.Errorf("unexpected email %q for chat notification", got)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestNotify_MailerFailureIsInvisible(t *testing.T) {
	svc, repo, _, mailer, _ := notificationFixture()
	mailer.err = errors.New("smtp down")

	err := svc.Notify(context.Background(), "u1", domain.NotifyShift, "Schicht", "morgen früh", domain.NotificationData{})
	if err != nil {
		t.Fatalf("mailer failure must not surface, got %v", err)
	}
	if len(repo.notifications) != 1 {
		t.Error("notification must be persisted regardless of email outcome")
	}
}

func TestNotify_Validation(t *testing.T) {
	svc, _, _, _, _ := notificationFixture()

	if err := svc.Notify(context.Background(), "", domain.NotifyChat, "t", "m", domain.NotificationData{}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("empty user: got %v, want ErrValidation", err)
	}
	if err := svc.Notify(context.Background(), "u1", domain.NotifyChat, "", "m", domain.NotificationData{}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("empty title: got %v, want ErrValidation", err)
	}
}

func TestMarkReadAndList(t *testing.T) {
	svc, repo, _, _, _ := notificationFixture()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := svc.Notify(ctx, "u1", domain.NotifyAnnouncement, "Info", "text", domain.NotificationData{}); err != nil {
			t.Fatalf("notify: %v", err)
		}
	}

	got, err := svc.ListFor(ctx, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("listed %d, want 3", len(got))
	}

	if err := svc.MarkRead(ctx, "u1", got[0].ID); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if !repo.notifications[0].Read {
		t.Error("read flag not persisted")
	}

	if err := svc.MarkRead(ctx, "u1", "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestMarkRead_ForeignNotificationNotFound(t *testing.T) {
	svc, repo, _, _, _ := notificationFixture()
	ctx := context.Background()

	if err := svc.Notify(ctx, "u1", domain.NotifyAnnouncement, "Info", "text", domain.NotificationData{}); err != nil {
		t.Fatalf("notify: %v", err)
	}
	id := repo.notifications[0].ID

	if err := svc.MarkRead(ctx, "u2", id); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
	if repo.notifications[0].Read {
		t.Error("foreign caller flipped the read flag")
	}
}
