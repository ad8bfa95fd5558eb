package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/xxtryitxx/horizontos/internal/core/domain"
)

type stubSickLeaveRepo struct {
	mu      sync.Mutex
	entries map[string]*domain.SickLeaveEntry
	seq     int
}

func newStubSickLeaveRepo() *stubSickLeaveRepo {
	return &stubSickLeaveRepo{entries: make(map[string]*domain.SickLeaveEntry)}
}

func (r *stubSickLeaveRepo) Insert(_ context.Context, entry *domain.SickLeaveEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	entry.ID = "sick_" + strconv.Itoa(r.seq)
	clone := *entry
	r.entries[entry.ID] = &clone
	return nil
}

func (r *stubSickLeaveRepo) FindByID(_ context.Context, id string) (*domain.SickLeaveEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *e
	return &clone, nil
}

func (r *stubSickLeaveRepo) UpdateStatus(_ context.Context, id string, status domain.SickLeaveStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return domain.ErrNotFound
	}
	e.Status = status
	return nil
}

func (r *stubSickLeaveRepo) ListByUser(_ context.Context, userID string) ([]*domain.SickLeaveEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.SickLeaveEntry
	for _, e := range r.entries {
		if e.UserID == userID {
			clone := *e
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubSickLeaveRepo) ListAll(_ context.Context) ([]*domain.SickLeaveEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.SickLeaveEntry
	for _, e := range r.entries {
		clone := *e
		out = append(out, &clone)
	}
	return out, nil
}

func sickLeaveFixture() (*SickLeaveService, *stubSickLeaveRepo, *stubClaimsRepo) {
	repo := newStubSickLeaveRepo()
	claims := newStubClaimsRepo()
	claims.claims["boss"] = domain.TrustClaims{Admin: true}
	users := newStubUserRepo()
	users.add(&domain.User{ID: "u1", Name: "Anna"})
	return NewSickLeaveService(repo, claims, users, zerolog.Nop()), repo, claims
}

func TestSickLeaveSubmit(t *testing.T) {
	svc, repo, _ := sickLeaveFixture()

	entry, err := svc.Submit(context.Background(), "u1", "2026-09-01", "2026-09-03")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Status != domain.SickLeavePending || entry.UserName != "Anna" {
		t.Errorf("entry = %+v", entry)
	}
	if len(repo.entries) != 1 {
		t.Error("entry not persisted")
	}
}

func TestSickLeaveReview_AdminRecheck(t *testing.T) {
	svc, _, claims := sickLeaveFixture()
	entry, _ := svc.Submit(context.Background(), "u1", "2026-09-01", "2026-09-03")

	if err := svc.Review(context.Background(), "u1", entry.ID, domain.SickLeaveApproved); !errors.Is(err, domain.ErrPermissionDenied) {
		t.Errorf("non-admin review: got %v, want ErrPermissionDenied", err)
	}

	claims.getErr = errors.New("claims store down")
	if err := svc.Review(context.Background(), "boss", entry.ID, domain.SickLeaveApproved); !errors.Is(err, domain.ErrPermissionDenied) {
		t.Errorf("claims failure: got %v, want fail-closed denial", err)
	}
	claims.getErr = nil

	if err := svc.Review(context.Background(), "boss", entry.ID, domain.SickLeaveApproved); err != nil {
		t.Fatalf("admin review: %v", err)
	}
	if err := svc.Review(context.Background(), "boss", entry.ID, domain.SickLeaveRejected); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("re-review: got %v, want ErrInvalidTransition", err)
	}
}

func TestSickLeaveListFor_Scoping(t *testing.T) {
	svc, repo, _ := sickLeaveFixture()
	ctx := context.Background()

	if _, err := svc.Submit(ctx, "u1", "2026-09-01", "2026-09-03"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	other := &domain.SickLeaveEntry{UserID: "u9", Status: domain.SickLeavePending}
	if err := repo.Insert(ctx, other); err != nil {
		t.Fatalf("seed: %v", err)
	}

	own, err := svc.ListFor(ctx, "u1", false)
	if err != nil {
		t.Fatalf("list own: %v", err)
	}
	if len(own) != 1 {
		t.Errorf("own entries = %d, want 1", len(own))
	}

	all, err := svc.ListFor(ctx, "boss", true)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("admin entries = %d, want 2", len(all))
	}
}
