package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/payment-console/internal/core/domain"
)

// SessionSource reports the console's current session.
type SessionSource interface {
	Session() domain.Session
}

// RequireSession rejects requests unless the console is logged in and injects
// the session identity into the echo context.
func RequireSession(sessions SessionSource) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s := sessions.Session()
			if !s.Authenticated {
				return domain.ErrUnauthenticated
			}

			c.Set("username", s.Username)
			c.Set("role", s.Role)

			return next(c)
		}
	}
}
