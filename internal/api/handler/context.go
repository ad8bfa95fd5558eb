package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxUID extracts the principal id injected by the Auth middleware. An
// empty id means the middleware did not run on this route; reject with 401
// before any service call.
func ctxUID(c echo.Context) (string, error) {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return uid, nil
}

// ctxIsAdmin reports the token's advisory admin flag. Privileged services
// re-check against the claims store; this only steers read scoping.
func ctxIsAdmin(c echo.Context) bool {
	role, _ := c.Get("role").(string)
	admin, _ := c.Get("admin").(bool)
	return role == "admin" || admin
}
