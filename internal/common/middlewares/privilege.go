package middlewares

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Role petugas.
const (
	RoleReception = "reception"
	RoleDoctor    = "doctor"
	RoleAdmin     = "admin"
)

// RequireRole memeriksa apakah role pada klaim JWT termasuk yang diizinkan.
// Admin selalu diizinkan.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				return unauthorized(c, "Missing or invalid JWT claims")
			}

			if claims.Role == RoleAdmin {
				return next(c)
			}
			for _, r := range roles {
				if claims.Role == r {
					return next(c)
				}
			}

			return c.JSON(http.StatusForbidden, map[string]interface{}{
				"status":  http.StatusForbidden,
				"message": "Anda tidak memiliki hak akses",
				"data":    nil,
			})
		}
	}
}
