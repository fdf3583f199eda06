package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/payment-console/internal/core/ports"
)

type UsersHandler struct {
	creds ports.CredentialStore
}

func NewUsersHandler(creds ports.CredentialStore) *UsersHandler {
	return &UsersHandler{creds: creds}
}

// List returns the known accounts without their passwords.
//
// @Summary      List accounts
// @Tags         users
// @Produce      json
// @Success      200  {object}  usersResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/users [get]
func (h *UsersHandler) List(c echo.Context) error {
	if _, _, err := ctxSession(c); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUsersResponse(h.creds.Users(c.Request().Context())))
}
