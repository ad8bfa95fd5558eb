package ports

import (
	"context"

	"github.com/xxtryitxx/horizontos/internal/core/domain"
)

// AuthService implements registration and login against the auth provider.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	// Login returns a signed token carrying the principal's trust claims.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
