// Package middleware provides shared request processing: bearer-token
// authentication, Redis-backed rate limiting and response caching.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/tareas-service/internal/utils"
)

const (
	ctxUserID = "user_id"
	ctxEmail  = "email"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and stores the verified claims in the request context. Expired tokens get
// a distinct message so clients know to log in again; forged or garbled
// tokens are rejected without detail.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Token de acceso requerido"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			claims, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				if errors.Is(err, utils.ErrTokenExpired) {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "El token ha expirado"})
				}
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Token inválido"})
			}

			c.Set(ctxUserID, claims.UserID)
			c.Set(ctxEmail, claims.Email)
			return next(c)
		}
	}
}

// CurrentUserID returns the authenticated user's id stored by JWTAuth.
// The second result is false on unauthenticated requests.
func CurrentUserID(c echo.Context) (uint64, bool) {
	id, ok := c.Get(ctxUserID).(uint64)
	return id, ok
}

// CurrentEmail returns the authenticated user's email stored by JWTAuth.
func CurrentEmail(c echo.Context) (string, bool) {
	email, ok := c.Get(ctxEmail).(string)
	return email, ok
}
