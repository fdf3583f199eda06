package ports

import (
	"context"

	"github.com/99minutos/payment-console/internal/core/domain"
)

// PaymentGateway talks to the remote payment service. Transport failures are
// returned as *domain.NetworkError, non-2xx responses as *domain.ServiceError.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, req domain.OrderRequest) (*domain.Payment, error)
	GetStatus(ctx context.Context, paymentID string) (*domain.Payment, error)
	List(ctx context.Context) ([]domain.Payment, error)
}
