package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/payment-console/internal/core/domain"
	"github.com/99minutos/payment-console/internal/core/ports"
)

// ConsoleOptions tunes a Console. An empty UsersKey or PollInterval falls back
// to its default; a zero AuthDelay disables the simulated login latency.
type ConsoleOptions struct {
	UsersKey     string
	AuthDelay    time.Duration
	PollInterval time.Duration
}

// Console is the root controller: it owns the single console state and wires
// the credential store, session manager, payment client and poller to it.
type Console struct {
	state    *StateStore
	creds    *CredentialStore
	sessions *SessionManager
	payments *PaymentClient
	poller   *DashboardPoller
	log      zerolog.Logger
}

func NewConsole(kv ports.KeyValueStore, gateway ports.PaymentGateway, opts ConsoleOptions, log zerolog.Logger) *Console {
	state := NewStateStore()
	creds := NewCredentialStore(kv, opts.UsersKey, log.With().Str("component", "credentials").Logger())
	payments := NewPaymentClient(gateway, state, log.With().Str("component", "payments").Logger())
	poller := NewDashboardPoller(payments, opts.PollInterval, log.With().Str("component", "poller").Logger())
	payments.AttachDashboard(poller)
	sessions := NewSessionManager(creds, state, poller, opts.AuthDelay, log.With().Str("component", "session").Logger())

	return &Console{
		state:    state,
		creds:    creds,
		sessions: sessions,
		payments: payments,
		poller:   poller,
		log:      log,
	}
}

// Init loads the persisted user records.
func (c *Console) Init(ctx context.Context) error {
	if err := c.creds.Initialize(ctx); err != nil {
		return err
	}
	c.log.Info().Int("users", len(c.creds.Users(ctx))).Msg("console initialized")
	return nil
}

// Close tears the console down: the poller stops and responses still in
// flight are discarded.
func (c *Console) Close() {
	c.sessions.end(nil)
}

func (c *Console) Sessions() *SessionManager { return c.sessions }

func (c *Console) Payments() *PaymentClient { return c.payments }

func (c *Console) Credentials() *CredentialStore { return c.creds }

// Snapshot returns a copy of the console state.
func (c *Console) Snapshot() domain.ConsoleState { return c.state.Snapshot() }
