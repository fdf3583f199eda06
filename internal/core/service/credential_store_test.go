package service

import (
	"context"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/payment-console/internal/core/domain"
)

func newInitializedStore(t *testing.T, kv *stubKV) *CredentialStore {
	t.Helper()
	s := NewCredentialStore(kv, "", zerolog.Nop())
	require.NoError(t, s.Initialize(context.Background()))
	return s
}

func storedUsers(t *testing.T, kv *stubKV) []domain.UserRecord {
	t.Helper()
	var users []domain.UserRecord
	require.NoError(t, json.Unmarshal([]byte(kv.value(DefaultUsersKey)), &users))
	return users
}

func TestCredentialStore_Initialize(t *testing.T) {
	ctx := context.Background()

	var tests = []struct {
		name     string
		kv       func() *stubKV
		expected []domain.UserRecord
	}{
		{
			name:     "missing key seeds defaults",
			kv:       newStubKV,
			expected: domain.DefaultUsers(),
		},
		{
			name: "corrupt json seeds defaults",
			kv: func() *stubKV {
				kv := newStubKV()
				kv.data[DefaultUsersKey] = "{not json"
				return kv
			},
			expected: domain.DefaultUsers(),
		},
		{
			name: "null seeds defaults",
			kv: func() *stubKV {
				kv := newStubKV()
				kv.data[DefaultUsersKey] = "null"
				return kv
			},
			expected: domain.DefaultUsers(),
		},
		{
			name: "stored users are loaded",
			kv: func() *stubKV {
				kv := newStubKV()
				kv.data[DefaultUsersKey] = `[{"username":"bob","password":"pw","role":"customer"}]`
				return kv
			},
			expected: []domain.UserRecord{{Username: "bob", Password: "pw", Role: domain.RoleCustomer}},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			kv := tt.kv()
			s := newInitializedStore(t, kv)
			require.Equal(t, tt.expected, s.Users(ctx))
			require.Equal(t, tt.expected, storedUsers(t, kv))
		})
	}
}

func TestCredentialStore_InitializeReadErrorKeepsStoredUsers(t *testing.T) {
	ctx := context.Background()
	kv := newStubKV()
	require.NoError(t, newInitializedStore(t, kv).Register(ctx, "alice", "pw"))
	writes := kv.sets

	kv.getErr = errBoom
	s := NewCredentialStore(kv, "", zerolog.Nop())
	require.ErrorIs(t, s.Initialize(ctx), errBoom)
	require.Equal(t, writes, kv.sets)

	kv.getErr = nil
	require.Contains(t, storedUsers(t, kv), domain.UserRecord{Username: "alice", Password: "pw", Role: domain.RoleCustomer})
}

func TestCredentialStore_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("empty fields are rejected", func(t *testing.T) {
		kv := newStubKV()
		s := newInitializedStore(t, kv)
		require.ErrorIs(t, s.Register(ctx, "", "pw"), domain.ErrValidation)
		require.ErrorIs(t, s.Register(ctx, "alice", ""), domain.ErrValidation)
		require.Len(t, s.Users(ctx), 3)
	})

	t.Run("new user is a persisted customer", func(t *testing.T) {
		kv := newStubKV()
		s := newInitializedStore(t, kv)
		require.NoError(t, s.Register(ctx, "alice", "pw1"))

		user, ok := s.Authenticate(ctx, "alice", "pw1")
		require.True(t, ok)
		require.Equal(t, domain.RoleCustomer, user.Role)
		require.Contains(t, storedUsers(t, kv), domain.UserRecord{Username: "alice", Password: "pw1", Role: domain.RoleCustomer})
	})

	t.Run("duplicate never mutates the store", func(t *testing.T) {
		kv := newStubKV()
		s := newInitializedStore(t, kv)
		require.NoError(t, s.Register(ctx, "alice", "pw1"))
		writes := kv.sets

		require.ErrorIs(t, s.Register(ctx, "alice", "pw2"), domain.ErrDuplicateUsername)
		require.ErrorIs(t, s.Register(ctx, "admin", "x"), domain.ErrDuplicateUsername)
		require.Equal(t, writes, kv.sets)

		var alices []domain.UserRecord
		for _, u := range storedUsers(t, kv) {
			if u.Username == "alice" {
				alices = append(alices, u)
			}
		}
		require.Equal(t, []domain.UserRecord{{Username: "alice", Password: "pw1", Role: domain.RoleCustomer}}, alices)
	})

	t.Run("usernames are case sensitive", func(t *testing.T) {
		s := newInitializedStore(t, newStubKV())
		require.NoError(t, s.Register(ctx, "Admin", "pw"))
	})

	t.Run("persist failure keeps the record in memory", func(t *testing.T) {
		kv := newStubKV()
		s := newInitializedStore(t, kv)
		kv.setErr = errBoom
		err := s.Register(ctx, "carol", "pw")
		require.ErrorIs(t, err, domain.ErrNotPersisted)
		require.ErrorIs(t, err, errBoom)
		_, ok := s.Authenticate(ctx, "carol", "pw")
		require.True(t, ok)
	})

	t.Run("concurrent registrations of one name admit exactly one", func(t *testing.T) {
		s := newInitializedStore(t, newStubKV())
		errs := make(chan error, 10)
		for i := 0; i < 10; i++ {
			go func() { errs <- s.Register(ctx, "dave", "pw") }()
		}
		ok := 0
		for i := 0; i < 10; i++ {
			if <-errs == nil {
				ok++
			}
		}
		require.Equal(t, 1, ok)
	})
}

func TestCredentialStore_Authenticate(t *testing.T) {
	ctx := context.Background()
	s := newInitializedStore(t, newStubKV())

	user, ok := s.Authenticate(ctx, "admin", "password")
	require.True(t, ok)
	require.Equal(t, domain.RoleAdmin, user.Role)

	user, ok = s.Authenticate(ctx, "customer1", "password")
	require.True(t, ok)
	require.Equal(t, domain.RoleCustomer, user.Role)

	_, ok = s.Authenticate(ctx, "admin", "wrong")
	require.False(t, ok)

	_, ok = s.Authenticate(ctx, "ghost", "password")
	require.False(t, ok)
}
