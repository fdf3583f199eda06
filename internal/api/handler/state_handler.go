package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/payment-console/internal/core/ports"
)

type StateHandler struct {
	state ports.StateReader
}

func NewStateHandler(state ports.StateReader) *StateHandler {
	return &StateHandler{state: state}
}

// Get returns everything a presentation layer needs to render the console.
//
// @Summary      Console state
// @Tags         state
// @Produce      json
// @Success      200  {object}  domain.ConsoleState
// @Router       /v1/state [get]
func (h *StateHandler) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, h.state.Snapshot())
}
