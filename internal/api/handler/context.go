package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/payment-console/internal/core/domain"
)

// ctxSession reads the identity injected by the RequireSession middleware.
// An empty role means the middleware did not run for this route.
func ctxSession(c echo.Context) (username string, role domain.Role, err error) {
	role, _ = c.Get("role").(domain.Role)
	if role == "" {
		return "", "", domain.ErrUnauthenticated
	}
	username, _ = c.Get("username").(string)
	return username, role, nil
}
