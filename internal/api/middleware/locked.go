package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/xxtryitxx/horizontos/internal/core/domain"
)

// UserFinder is the profile lookup the lock gate needs.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// RejectLocked blocks mutating requests from locked principals. The flag is
// re-read from the profile store on every write, so a lock takes effect
// immediately even against tokens minted before it. Reads stay allowed.
func RejectLocked(users UserFinder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !mutating(c.Request().Method) {
				return next(c)
			}
			uid, _ := c.Get("uid").(string)
			if uid == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			user, err := users.FindByID(c.Request().Context(), uid)
			switch {
			case err == nil:
				if user.Locked {
					return domain.ErrUserLocked
				}
			case errors.Is(err, domain.ErrUserNotFound):
				// First contact: the profile is synthesized on resolve
				// and cannot be locked yet.
			default:
				return err
			}
			return next(c)
		}
	}
}

func mutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
