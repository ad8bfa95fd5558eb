package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/xxtryitxx/horizontos/internal/core/domain"
	"github.com/xxtryitxx/horizontos/internal/core/ports"
)

// IdentityService reconciles a principal with its profile document. The
// trust claim always wins over the stored isAdmin copy.
type IdentityService struct {
	users  ports.UserRepository
	claims ports.ClaimsRepository
	log    zerolog.Logger
}

func NewIdentityService(users ports.UserRepository, claims ports.ClaimsRepository, log zerolog.Logger) *IdentityService {
	return &IdentityService{users: users, claims: claims, log: log}
}

// Resolve loads the profile for a principal, overwriting its IsAdmin field
// with the live claim (role=="admin" OR admin==true). A missing profile is
// synthesized with defaults and persisted before returning; a failed
// claims fetch fails closed to non-admin.
func (s *IdentityService) Resolve(ctx context.Context, principalID string) (*domain.User, error) {
	if principalID == "" {
		return nil, domain.ErrUnauthenticated
	}

	trust, err := s.claims.Get(ctx, principalID)
	if err != nil {
		s.log.Warn().Err(err).Str("principal", principalID).Msg("trust claim fetch failed, failing closed")
		trust = domain.TrustClaims{}
	}
	isAdmin := trust.IsAdmin()

	user, err := s.users.FindByID(ctx, principalID)
	switch {
	case err == nil:
		user.IsAdmin = isAdmin
		return user, nil
	case errors.Is(err, domain.ErrUserNotFound):
		return s.createDefault(ctx, principalID, isAdmin)
	default:
		return nil, err
	}
}

func (s *IdentityService) createDefault(ctx context.Context, principalID string, isAdmin bool) (*domain.User, error) {
	now := time.Now().UTC()
	user := &domain.User{
		ID:        principalID,
		Name:      domain.DisplayMitarbeiter,
		Role:      domain.DisplayMitarbeiter,
		Avatar:    domain.DefaultAvatarURL(principalID),
		Score:     0,
		IsAdmin:   isAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// Lost race with a concurrent first resolve: load the winner.
		if errors.Is(err, domain.ErrUserExists) {
			existing, findErr := s.users.FindByID(ctx, principalID)
			if findErr != nil {
				return nil, findErr
			}
			existing.IsAdmin = isAdmin
			return existing, nil
		}
		return nil, err
	}

	s.log.Info().Str("principal", principalID).Msg("default profile created")
	return user, nil
}
