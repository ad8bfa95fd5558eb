package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/xxtryitxx/horizontos/internal/api/metrics"
	"github.com/xxtryitxx/horizontos/internal/core/domain"
	"github.com/xxtryitxx/horizontos/internal/core/ports"
)

// RoleService is the server-enforced authorization boundary. The actor's
// privilege is re-verified against the claims store on every call; the
// client-side admin flag is a UX convenience only.
type RoleService struct {
	claims ports.ClaimsRepository
	users  ports.UserRepository
	posts  ports.PostRepository
	log    zerolog.Logger
}

func NewRoleService(claims ports.ClaimsRepository, users ports.UserRepository, posts ports.PostRepository, log zerolog.Logger) *RoleService {
	return &RoleService{claims: claims, users: users, posts: posts, log: log}
}

// requireAdmin verifies the actor holds an admin trust claim right now.
// A claims-store failure fails closed.
func (s *RoleService) requireAdmin(ctx context.Context, actorID string) error {
	if actorID == "" {
		return domain.ErrUnauthenticated
	}
	trust, err := s.claims.Get(ctx, actorID)
	if err != nil {
		s.log.Warn().Err(err).Str("actor", actorID).Msg("claims check failed, denying")
		return domain.ErrPermissionDenied
	}
	if !trust.IsAdmin() {
		return domain.ErrPermissionDenied
	}
	return nil
}

// SetRole elevates or demotes the target. The claims write happens first;
// the profile display write follows, so the worst partial outcome is
// "claim says admin, display lags", reconciled on the target's next
// identity resolve.
func (s *RoleService) SetRole(ctx context.Context, actorID, targetID, role string) error {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return err
	}
	if role != domain.RoleAdmin && role != domain.RoleMitarbeiter {
		return domain.ErrInvalidRole
	}
	if actorID == targetID {
		// No self-elevation or self-demotion.
		return domain.ErrPermissionDenied
	}

	admin := role == domain.RoleAdmin
	if err := s.claims.SetRole(ctx, targetID, role, admin); err != nil {
		return err
	}

	if err := s.users.UpdateDisplayRole(ctx, targetID, domain.DisplayRoleFor(role), admin); err != nil {
		// Claims are authoritative; the display copy catches up on the
		// next identity resolve.
		s.log.Warn().Err(err).Str("target", targetID).Msg("profile display role lagging behind claims")
	}

	metrics.RoleChangesTotal.WithLabelValues(role).Inc()
	s.log.Info().Str("actor", actorID).Str("target", targetID).Str("role", role).Msg("role changed")
	return nil
}

// Lock blocks (or unblocks) all write actions of the target principal.
func (s *RoleService) Lock(ctx context.Context, actorID, targetID string, locked bool) error {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return err
	}
	if actorID == targetID {
		return domain.ErrPermissionDenied
	}
	return s.users.SetLocked(ctx, targetID, locked, time.Now().UTC())
}

// Delete removes the target profile and cascades to its posts. The post
// cleanup is best effort once the profile is gone.
func (s *RoleService) Delete(ctx context.Context, actorID, targetID string) error {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, targetID); err != nil {
		return err
	}
	if err := s.posts.DeleteByAuthor(ctx, targetID); err != nil {
		s.log.Warn().Err(err).Str("target", targetID).Msg("post cascade delete failed")
	}
	s.log.Info().Str("actor", actorID).Str("target", targetID).Msg("user deleted")
	return nil
}
