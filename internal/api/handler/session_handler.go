package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/payment-console/internal/core/ports"
)

type SessionHandler struct {
	sessions ports.SessionService
	state    ports.StateReader
}

func NewSessionHandler(sessions ports.SessionService, state ports.StateReader) *SessionHandler {
	return &SessionHandler{sessions: sessions, state: state}
}

// Login authenticates against the local user list.
//
// @Summary      Log in
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/session/login [post]
func (h *SessionHandler) Login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.sessions.Login(c.Request().Context(), req.Username, req.Password); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{Session: h.sessions.Session()})
}

// Register adds a customer account. It never logs the new user in.
//
// @Summary      Register a customer
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Credentials"
// @Success      201   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/session/register [post]
func (h *SessionHandler) Register(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.sessions.Register(c.Request().Context(), req.Username, req.Password); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, h.current())
}

// Logout clears the session and every payment-related field.
//
// @Summary      Log out
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /v1/session/logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	h.sessions.Logout()
	return c.JSON(http.StatusOK, h.current())
}

// Get returns the current session.
//
// @Summary      Current session
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /v1/session [get]
func (h *SessionHandler) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, h.current())
}

func (h *SessionHandler) current() sessionResponse {
	st := h.state.Snapshot()
	return sessionResponse{Session: st.Session, RegisterMessage: st.RegisterMessage}
}
