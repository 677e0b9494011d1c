package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RBAC admits the request when the token's role set intersects the
// endpoint's permitted set, and rejects with 403 otherwise. It relies on
// Auth having stored the "roles" claim in the context.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roles, _ := c.Get("roles").([]string)
			for _, r := range roles {
				if _, ok := allowed[r]; ok {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "forbidden")
		}
	}
}
