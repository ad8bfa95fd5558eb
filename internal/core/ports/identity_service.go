package ports

import (
	"context"

	"github.com/xxtryitxx/horizontos/internal/core/domain"
)

// IdentityService maps an authenticated principal to its application user,
// reconciling the stored profile with the live trust claims.
type IdentityService interface {
	Resolve(ctx context.Context, principalID string) (*domain.User, error)
}
