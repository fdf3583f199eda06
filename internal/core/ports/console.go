package ports

import (
	"context"

	"github.com/99minutos/payment-console/internal/core/domain"
)

// StateReader exposes a copy of the console state.
type StateReader interface {
	Snapshot() domain.ConsoleState
}

// SessionService drives the login state machine.
type SessionService interface {
	Login(ctx context.Context, username, password string) error
	Register(ctx context.Context, username, password string) error
	Logout()
	Session() domain.Session
}

// PaymentService issues payment requests and applies their outcome to the
// console state.
type PaymentService interface {
	UpdateOrderForm(form domain.OrderForm)
	SubmitOrder(ctx context.Context) (*domain.Payment, error)
	CreateOrder(ctx context.Context, amount string, currency domain.Currency, description string) (*domain.Payment, error)
	QueryStatus(ctx context.Context, paymentID string) (*domain.Payment, error)
	ListAll(ctx context.Context) ([]domain.Payment, error)
}
