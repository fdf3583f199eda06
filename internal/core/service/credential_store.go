package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/99minutos/payment-console/internal/core/domain"
	"github.com/99minutos/payment-console/internal/core/ports"
)

// DefaultUsersKey is the storage key the user records live under.
const DefaultUsersKey = "registeredUsers"

// CredentialStore keeps the known user records in memory and writes the full
// set through to the key/value store on every change.
type CredentialStore struct {
	kv  ports.KeyValueStore
	key string
	log zerolog.Logger

	mu    sync.RWMutex
	users []domain.UserRecord
}

func NewCredentialStore(kv ports.KeyValueStore, key string, log zerolog.Logger) *CredentialStore {
	if key == "" {
		key = DefaultUsersKey
	}
	return &CredentialStore{kv: kv, key: key, log: log, users: domain.DefaultUsers()}
}

// Initialize loads the persisted records. Missing or corrupt data falls back
// to the seeded defaults, which are then written back. A failed read is
// returned and leaves storage untouched.
func (s *CredentialStore) Initialize(ctx context.Context) error {
	raw, found, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return fmt.Errorf("read users: %w", err)
	}

	users := domain.DefaultUsers()
	if !found {
		s.log.Info().Str("key", s.key).Msg("no stored users, seeding defaults")
	} else if decoded, err := decodeUsers(raw); err != nil {
		s.log.Warn().Err(err).Str("key", s.key).Msg("stored users corrupt, seeding defaults")
	} else {
		users = decoded
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = users
	if err := s.persistLocked(ctx); err != nil {
		s.log.Error().Err(err).Str("key", s.key).Msg("failed to persist users")
	}
	s.log.Debug().Int("users", len(users)).Msg("credential store initialized")
	return nil
}

func decodeUsers(raw string) ([]domain.UserRecord, error) {
	var users []domain.UserRecord
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	if users == nil {
		return nil, fmt.Errorf("decode users: not an array")
	}
	return users, nil
}

// Register adds a customer record. Usernames are matched exactly. When the
// write fails the record stays in memory and the error wraps
// domain.ErrNotPersisted.
func (s *CredentialStore) Register(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", domain.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			return domain.ErrDuplicateUsername
		}
	}

	s.users = append(s.users, domain.UserRecord{Username: username, Password: password, Role: domain.RoleCustomer})
	if err := s.persistLocked(ctx); err != nil {
		s.log.Error().Err(err).Str("username", username).Msg("failed to persist registered user")
		return fmt.Errorf("%w: %w", domain.ErrNotPersisted, err)
	}
	s.log.Info().Str("username", username).Msg("user registered")
	return nil
}

// Authenticate returns the record matching both username and password.
func (s *CredentialStore) Authenticate(_ context.Context, username, password string) (domain.UserRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username && u.Password == password {
			return u, true
		}
	}
	return domain.UserRecord{}, false
}

// Users returns a copy of every known record.
func (s *CredentialStore) Users(_ context.Context) []domain.UserRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.UserRecord(nil), s.users...)
}

func (s *CredentialStore) persistLocked(ctx context.Context) error {
	b, err := json.Marshal(s.users)
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, string(b)); err != nil {
		return fmt.Errorf("write users: %w", err)
	}
	return nil
}
