package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/payment-console/internal/core/ports"
)

type DashboardHandler struct {
	payments ports.PaymentService
	state    ports.StateReader
}

func NewDashboardHandler(payments ports.PaymentService, state ports.StateReader) *DashboardHandler {
	return &DashboardHandler{payments: payments, state: state}
}

// Get returns the cached payment list kept fresh by the poller.
//
// @Summary      Cached dashboard
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dashboardResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/dashboard [get]
func (h *DashboardHandler) Get(c echo.Context) error {
	st := h.state.Snapshot()
	return c.JSON(http.StatusOK, toDashboardResponse(st.Payments, st.DashboardMessage))
}

// Refresh reloads the list from the payment service before answering.
//
// @Summary      Refresh the dashboard
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dashboardResponse
// @Failure      401  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Failure      503  {object}  errorResponse
// @Router       /v1/dashboard/refresh [post]
func (h *DashboardHandler) Refresh(c echo.Context) error {
	payments, err := h.payments.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDashboardResponse(payments, h.state.Snapshot().DashboardMessage))
}
