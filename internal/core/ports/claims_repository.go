package ports

import (
	"context"

	"github.com/xxtryitxx/horizontos/internal/core/domain"
)

// ClaimsRepository is the trust-claim store. It is the only place the
// admin flag is authoritative; the profile document merely mirrors it.
type ClaimsRepository interface {
	// Get returns the claims for a principal. A principal with no claims
	// document yields zero-value claims, not an error.
	Get(ctx context.Context, principalID string) (domain.TrustClaims, error)

	// SetRole merges role and admin into the existing claims without
	// touching unrelated fields.
	SetRole(ctx context.Context, principalID, role string, admin bool) error
}
