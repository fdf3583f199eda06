package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/payment-console/internal/core/domain"
	"github.com/99minutos/payment-console/internal/core/ports"
)

// PaymentHandler exposes order creation and status lookup. The outcome of
// every call is also recorded in the console state.
type PaymentHandler struct {
	payments ports.PaymentService
	state    ports.StateReader
}

func NewPaymentHandler(payments ports.PaymentService, state ports.StateReader) *PaymentHandler {
	return &PaymentHandler{payments: payments, state: state}
}

// UpdateForm handles PUT /v1/payments/form.
//
// @Summary      Edit the order form
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body      orderFormRequest  true  "Form fields"
// @Success      200   {object}  domain.OrderForm
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/payments/form [put]
func (h *PaymentHandler) UpdateForm(c echo.Context) error {
	var req orderFormRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	h.payments.UpdateOrderForm(domain.OrderForm{
		Amount:      string(req.Amount),
		Currency:    domain.Currency(req.Currency),
		Description: req.Description,
	})
	return c.JSON(http.StatusOK, h.state.Snapshot().OrderForm)
}

// SubmitForm handles POST /v1/payments/form/submit.
//
// @Summary      Submit the order form
// @Tags         payments
// @Produce      json
// @Success      201  {object}  orderResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Failure      503  {object}  errorResponse
// @Router       /v1/payments/form/submit [post]
func (h *PaymentHandler) SubmitForm(c echo.Context) error {
	p, err := h.payments.SubmitOrder(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, orderResponse{Message: h.state.Snapshot().CreationMessage, Payment: p})
}

// CreateOrder handles POST /v1/payments/order.
//
// @Summary      Create a payment order
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body      createOrderRequest  true  "Order"
// @Success      201   {object}  orderResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /v1/payments/order [post]
func (h *PaymentHandler) CreateOrder(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	p, err := h.payments.CreateOrder(c.Request().Context(), string(req.Amount), domain.Currency(req.Currency), req.Description)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, orderResponse{Message: h.state.Snapshot().CreationMessage, Payment: p})
}

// Status handles GET /v1/payments/status?payment_id=.
//
// @Summary      Query a payment status
// @Tags         payments
// @Produce      json
// @Param        payment_id  query     string  true  "Payment ID"
// @Success      200         {object}  statusResponse
// @Failure      400         {object}  errorResponse
// @Failure      401         {object}  errorResponse
// @Failure      404         {object}  errorResponse
// @Failure      503         {object}  errorResponse
// @Router       /v1/payments/status [get]
func (h *PaymentHandler) Status(c echo.Context) error {
	var q statusQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	id := strings.TrimSpace(q.PaymentID)

	p, err := h.payments.QueryStatus(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{PaymentID: id, Message: h.state.Snapshot().QueryMessage, Payment: p})
}
