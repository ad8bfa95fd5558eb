package ports

import (
	"context"
	"time"

	"github.com/xxtryitxx/horizontos/internal/core/domain"
)

// UserRepository persists profile documents. Display fields are written by
// their owner; role/lock fields only via the role authority. Score and the
// auxiliary counters use server-side atomic increments.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// UpdateProfile writes owner-editable display fields only.
	UpdateProfile(ctx context.Context, id string, name, avatar, birthday string) error

	// UpdateDisplayRole mirrors a role change into the profile document.
	UpdateDisplayRole(ctx context.Context, id string, role string, isAdmin bool) error

	SetLocked(ctx context.Context, id string, locked bool, at time.Time) error
	Delete(ctx context.Context, id string) error

	// IncrementScore atomically adds delta and returns the new score.
	IncrementScore(ctx context.Context, id string, delta int64) (int64, error)
	// AddBadges set-unions badges into the stored list. The write is
	// commutative, so concurrent unlocks never drop each other.
	AddBadges(ctx context.Context, id string, badges []string) error

	SetMentor(ctx context.Context, menteeID, mentorID string) error
	IncrementMentees(ctx context.Context, mentorID string) error
	IncrementGamesPlayed(ctx context.Context, id string) error

	// ListByScore returns up to limit users ordered by score descending.
	ListByScore(ctx context.Context, limit int64) ([]*domain.User, error)
	ListAll(ctx context.Context) ([]*domain.User, error)
}
