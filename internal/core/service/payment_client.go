package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/99minutos/payment-console/internal/core/domain"
	"github.com/99minutos/payment-console/internal/core/ports"
	"github.com/99minutos/payment-console/internal/metrics"
)

const (
	msgProcessing      = "Processing..."
	msgInvalidAmount   = "Please enter a valid amount."
	msgEnterPaymentID  = "Please enter a Payment ID."
	msgFetchingStatus  = "Fetching status..."
	msgLoadingPayments = "Loading payments..."
	prefixCreateError  = "Error creating payment: "
	prefixStatusError  = "Error fetching status: "
	prefixListError    = "Error loading payments: "
	prefixNetwork      = "Network error: "
	prefixNetworkList  = "Network error loading payments: "
)

// Refresher requests an out-of-band dashboard refresh.
type Refresher interface {
	Refresh()
}

// PaymentClient issues the payment service operations and maps each outcome
// onto the console state. Results that arrive after the session changed are
// dropped.
type PaymentClient struct {
	gateway   ports.PaymentGateway
	state     *StateStore
	refresher Refresher
	log       zerolog.Logger
}

func NewPaymentClient(gateway ports.PaymentGateway, state *StateStore, log zerolog.Logger) *PaymentClient {
	return &PaymentClient{gateway: gateway, state: state, log: log}
}

// AttachDashboard sets the refresher asked to reload the list after an order
// is created.
func (c *PaymentClient) AttachDashboard(r Refresher) {
	c.refresher = r
}

// UpdateOrderForm replaces the order form fields.
func (c *PaymentClient) UpdateOrderForm(form domain.OrderForm) {
	if form.Currency == "" {
		form.Currency = domain.DefaultCurrency
	}
	c.state.Begin(func(st *domain.ConsoleState) { st.OrderForm = form })
}

// SubmitOrder creates an order from the current form.
func (c *PaymentClient) SubmitOrder(ctx context.Context) (*domain.Payment, error) {
	form := c.state.Snapshot().OrderForm
	return c.CreateOrder(ctx, form.Amount, form.Currency, form.Description)
}

// CreateOrder submits a new payment order. amount must parse as a decimal;
// positivity and currency membership are left to the payment service.
func (c *PaymentClient) CreateOrder(ctx context.Context, amount string, currency domain.Currency, description string) (*domain.Payment, error) {
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	parsed, parseErr := decimal.NewFromString(strings.TrimSpace(amount))

	epoch := c.state.Begin(func(st *domain.ConsoleState) {
		st.OrderForm = domain.OrderForm{Amount: amount, Currency: currency, Description: description}
		st.Receipt = nil
		if parseErr != nil {
			st.CreationMessage = msgInvalidAmount
			return
		}
		st.CreationMessage = msgProcessing
	})
	if parseErr != nil {
		return nil, fmt.Errorf("%w: amount %q is not a number", domain.ErrValidation, amount)
	}

	p, err := c.gateway.CreateOrder(ctx, domain.OrderRequest{Amount: parsed, Currency: currency, Description: description})
	if err != nil {
		if c.discard(ctx, epoch, "create") {
			return nil, domain.ErrStaleResponse
		}
		msg := failureMessage(err, prefixCreateError, prefixNetwork)
		if !c.state.Apply(epoch, func(st *domain.ConsoleState) { st.CreationMessage = msg }) {
			return nil, c.stale("create")
		}
		c.log.Warn().Err(err).Msg("create order failed")
		return nil, fmt.Errorf("create order: %w", err)
	}

	applied := c.state.Apply(epoch, func(st *domain.ConsoleState) {
		receipt := *p
		st.Receipt = &receipt
		st.CreationMessage = fmt.Sprintf("Payment Order Created! ID: %s. Status: %s", p.ID, p.Status)
		st.OrderForm.Amount = ""
		st.OrderForm.Description = ""
	})
	if !applied {
		c.log.Warn().Str("payment_id", p.ID).Msg("order created after session change, receipt dropped")
		return nil, c.stale("create")
	}

	c.log.Info().Str("payment_id", p.ID).Str("status", string(p.Status)).Msg("payment order created")
	if c.refresher != nil {
		c.refresher.Refresh()
	}
	return p, nil
}

// QueryStatus fetches the status of a single payment. An empty id is
// rejected locally without calling the payment service.
func (c *PaymentClient) QueryStatus(ctx context.Context, paymentID string) (*domain.Payment, error) {
	epoch := c.state.Begin(func(st *domain.ConsoleState) {
		st.QueryID = paymentID
		if paymentID == "" {
			st.QueryMessage = msgEnterPaymentID
			st.QueriedStatus = nil
			return
		}
		st.QueryMessage = msgFetchingStatus
	})
	if paymentID == "" {
		return nil, fmt.Errorf("%w: payment id is required", domain.ErrValidation)
	}

	p, err := c.gateway.GetStatus(ctx, paymentID)
	if err != nil {
		if c.discard(ctx, epoch, "status") {
			return nil, domain.ErrStaleResponse
		}
		msg := failureMessage(err, prefixStatusError, prefixNetwork)
		if !c.state.Apply(epoch, func(st *domain.ConsoleState) {
			st.QueriedStatus = nil
			st.QueryMessage = msg
		}) {
			return nil, c.stale("status")
		}
		return nil, fmt.Errorf("query status: %w", err)
	}

	if !c.state.Apply(epoch, func(st *domain.ConsoleState) {
		status := *p
		st.QueriedStatus = &status
		st.QueryMessage = fmt.Sprintf("Status for ID %s: %s", paymentID, p.Status)
	}) {
		return nil, c.stale("status")
	}
	return p, nil
}

// ListAll reloads the dashboard for the current session.
func (c *PaymentClient) ListAll(ctx context.Context) ([]domain.Payment, error) {
	return c.RefreshDashboard(ctx, c.state.Begin(nil))
}

// RefreshDashboard reloads the payment list on behalf of the session that
// owns epoch. The list is cached newest first.
func (c *PaymentClient) RefreshDashboard(ctx context.Context, epoch uint64) ([]domain.Payment, error) {
	if !c.state.Apply(epoch, func(st *domain.ConsoleState) { st.DashboardMessage = msgLoadingPayments }) {
		return nil, c.stale("list")
	}

	payments, err := c.gateway.List(ctx)
	if err != nil {
		if c.discard(ctx, epoch, "list") {
			return nil, domain.ErrStaleResponse
		}
		msg := failureMessage(err, prefixListError, prefixNetworkList)
		if !c.state.Apply(epoch, func(st *domain.ConsoleState) {
			st.DashboardMessage = msg
			st.Payments = []domain.Payment{}
		}) {
			return nil, c.stale("list")
		}
		return nil, fmt.Errorf("list payments: %w", err)
	}

	if payments == nil {
		payments = []domain.Payment{}
	}
	domain.SortByCreatedDesc(payments)

	if !c.state.Apply(epoch, func(st *domain.ConsoleState) {
		st.Payments = append([]domain.Payment{}, payments...)
		st.DashboardMessage = ""
	}) {
		return nil, c.stale("list")
	}
	return payments, nil
}

// discard reports whether a failed call should be dropped because its
// context was cancelled by a session change rather than failing on its own.
func (c *PaymentClient) discard(ctx context.Context, epoch uint64, op string) bool {
	if ctx.Err() == nil {
		return false
	}
	if c.state.Current(epoch) {
		return false
	}
	metrics.StaleResponsesTotal.WithLabelValues(op).Inc()
	return true
}

func (c *PaymentClient) stale(op string) error {
	metrics.StaleResponsesTotal.WithLabelValues(op).Inc()
	c.log.Debug().Str("operation", op).Msg("stale response discarded")
	return domain.ErrStaleResponse
}

func failureMessage(err error, servicePrefix, networkPrefix string) string {
	var ne *domain.NetworkError
	if errors.As(err, &ne) {
		return networkPrefix + domain.Reason(err)
	}
	return servicePrefix + domain.Reason(err)
}
