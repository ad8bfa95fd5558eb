package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// AdminOnly hides admin routes from non-admin tokens. This is a UX gate,
// not a security boundary: both token encodings are accepted, and the
// role service re-validates the caller against the claims store anyway.
func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			admin, _ := c.Get("admin").(bool)
			if role != "admin" && !admin {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
