package service

import (
	"sync"

	"github.com/99minutos/payment-console/internal/core/domain"
)

// StateStore owns the console state. Every mutation happens under one lock;
// network calls happen outside it. The epoch advances on every session
// transition, and writers that captured an older epoch are rejected so a late
// response can never overwrite the state of a newer session.
type StateStore struct {
	mu    sync.Mutex
	state domain.ConsoleState
	epoch uint64
}

func NewStateStore() *StateStore {
	return &StateStore{state: domain.NewConsoleState()}
}

// Snapshot returns a deep copy of the current state.
func (s *StateStore) Snapshot() domain.ConsoleState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Begin applies fn and returns the epoch the caller must present to Apply.
func (s *StateStore) Begin(fn func(st *domain.ConsoleState)) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fn != nil {
		fn(&s.state)
	}
	return s.epoch
}

// Apply runs fn only if epoch is still current. It reports whether fn ran.
func (s *StateStore) Apply(epoch uint64, fn func(st *domain.ConsoleState)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return false
	}
	fn(&s.state)
	return true
}

// Current reports whether epoch is still the live one.
func (s *StateStore) Current(epoch uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return epoch == s.epoch
}

// Advance moves to a new epoch if epoch is still current, then runs fn.
// It returns the new epoch and whether the transition happened.
func (s *StateStore) Advance(epoch uint64, fn func(st *domain.ConsoleState)) (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return s.epoch, false
	}
	s.epoch++
	fn(&s.state)
	return s.epoch, true
}

// Reset unconditionally moves to a new epoch and restores the initial state.
// keep may copy fields that survive the reset from the old state.
func (s *StateStore) Reset(keep func(old domain.ConsoleState, fresh *domain.ConsoleState)) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	fresh := domain.NewConsoleState()
	if keep != nil {
		keep(s.state, &fresh)
	}
	s.state = fresh
	s.epoch++
	return s.epoch
}
