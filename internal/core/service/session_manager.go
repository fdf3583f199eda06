package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/payment-console/internal/core/domain"
	"github.com/99minutos/payment-console/internal/core/ports"
	"github.com/99minutos/payment-console/internal/metrics"
)

const (
	msgLoggingIn          = "Logging in..."
	msgInvalidCredentials = "Invalid username or password."
	msgRegistering        = "Registering..."
	msgFieldsRequired     = "Username and password are required."
	msgUsernameTaken      = "Username already exists."
	msgRegistered         = "Registration successful! Please log in."
)

// DefaultAuthDelay simulates the latency of a real login round trip.
const DefaultAuthDelay = time.Second

// DashboardLifecycle is the part of the poller the session manager drives.
type DashboardLifecycle interface {
	Start(epoch uint64)
	Stop()
}

// SessionManager runs the Anonymous → Authenticating → Authenticated state
// machine and ties the dashboard poller to it.
type SessionManager struct {
	creds  ports.CredentialStore
	state  *StateStore
	poller DashboardLifecycle
	delay  time.Duration
	log    zerolog.Logger

	// transition pairs every epoch change with its poller call, so a Stop
	// can never run between an Advance and the matching Start.
	transition sync.Mutex
}

func NewSessionManager(creds ports.CredentialStore, state *StateStore, poller DashboardLifecycle, delay time.Duration, log zerolog.Logger) *SessionManager {
	if delay < 0 {
		delay = 0
	}
	return &SessionManager{creds: creds, state: state, poller: poller, delay: delay, log: log}
}

// Session returns a copy of the current session.
func (m *SessionManager) Session() domain.Session {
	return m.state.Snapshot().Session
}

// Login authenticates against the credential store after the simulated delay.
// On success the poller is started for the new session.
func (m *SessionManager) Login(ctx context.Context, username, password string) error {
	var stateErr error
	epoch := m.state.Begin(func(st *domain.ConsoleState) {
		if st.Session.State != domain.StateAnonymous {
			stateErr = fmt.Errorf("%w: session is %s", domain.ErrValidation, st.Session.State)
			return
		}
		st.Session.State = domain.StateAuthenticating
		st.Session.Message = msgLoggingIn
	})
	if stateErr != nil {
		return stateErr
	}

	if err := wait(ctx, m.delay); err != nil {
		m.state.Apply(epoch, func(st *domain.ConsoleState) {
			st.Session.State = domain.StateAnonymous
			st.Session.Message = ""
		})
		return err
	}

	user, ok := m.creds.Authenticate(ctx, username, password)
	if !ok {
		m.state.Apply(epoch, func(st *domain.ConsoleState) {
			st.Session.State = domain.StateAnonymous
			st.Session.Message = msgInvalidCredentials
		})
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		m.log.Info().Str("username", username).Msg("login rejected")
		return domain.ErrAuthFailure
	}

	m.transition.Lock()
	defer m.transition.Unlock()

	sessionEpoch, ok := m.state.Advance(epoch, func(st *domain.ConsoleState) {
		st.Session = domain.Session{
			State:         domain.StateAuthenticated,
			Authenticated: true,
			Username:      user.Username,
			Role:          user.Role,
			Message:       fmt.Sprintf("Login successful as %s!", user.Role),
		}
	})
	if !ok {
		m.log.Warn().Str("username", username).Msg("session changed during login, result discarded")
		return domain.ErrStaleResponse
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	m.log.Info().Str("username", user.Username).Str("role", string(user.Role)).Msg("logged in")
	m.poller.Start(sessionEpoch)
	return nil
}

// Register adds a customer account. It is only available while anonymous and
// never logs the new user in.
func (m *SessionManager) Register(ctx context.Context, username, password string) error {
	var stateErr error
	epoch := m.state.Begin(func(st *domain.ConsoleState) {
		if st.Session.State != domain.StateAnonymous {
			stateErr = fmt.Errorf("%w: log out before registering", domain.ErrValidation)
			return
		}
		st.RegisterMessage = msgRegistering
	})
	if stateErr != nil {
		return stateErr
	}

	if err := wait(ctx, m.delay); err != nil {
		m.state.Apply(epoch, func(st *domain.ConsoleState) { st.RegisterMessage = "" })
		return err
	}

	err := m.creds.Register(ctx, username, password)
	if errors.Is(err, domain.ErrNotPersisted) {
		m.log.Warn().Err(err).Str("username", username).Msg("registered user not persisted")
		err = nil
	}

	var msg, result string
	switch {
	case err == nil:
		msg, result = msgRegistered, "success"
	case errors.Is(err, domain.ErrValidation):
		msg, result = msgFieldsRequired, "invalid"
	case errors.Is(err, domain.ErrDuplicateUsername):
		msg, result = msgUsernameTaken, "duplicate"
	default:
		msg, result = "Registration failed: "+err.Error(), "error"
	}
	metrics.RegistrationsTotal.WithLabelValues(result).Inc()

	m.state.Apply(epoch, func(st *domain.ConsoleState) { st.RegisterMessage = msg })
	return err
}

// Logout ends the session, clears every payment-related field and stops the
// poller. Responses still in flight are discarded by the epoch change.
func (m *SessionManager) Logout() {
	m.end(func(old domain.ConsoleState, fresh *domain.ConsoleState) {
		fresh.OrderForm.Currency = old.OrderForm.Currency
	})
	m.log.Info().Msg("logged out")
}

// end resets the state and stops the poller as one transition.
func (m *SessionManager) end(keep func(old domain.ConsoleState, fresh *domain.ConsoleState)) {
	m.transition.Lock()
	defer m.transition.Unlock()
	m.state.Reset(keep)
	m.poller.Stop()
}

// wait blocks for d or until ctx is done.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
