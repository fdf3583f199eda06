package ports

import (
	"context"

	"github.com/99minutos/payment-console/internal/core/domain"
)

// CredentialStore holds the known user records.
type CredentialStore interface {
	Register(ctx context.Context, username, password string) error
	Authenticate(ctx context.Context, username, password string) (domain.UserRecord, bool)
	Users(ctx context.Context) []domain.UserRecord
}
