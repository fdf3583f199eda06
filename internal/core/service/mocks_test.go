package service

import (
	"context"
	"errors"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/99minutos/payment-console/internal/core/domain"
)

type GatewayMock struct {
	mock.Mock
}

func (m *GatewayMock) CreateOrder(ctx context.Context, req domain.OrderRequest) (*domain.Payment, error) {
	ret := m.Called(ctx, req)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(*domain.Payment), ret.Error(1)
}

func (m *GatewayMock) GetStatus(ctx context.Context, paymentID string) (*domain.Payment, error) {
	ret := m.Called(ctx, paymentID)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(*domain.Payment), ret.Error(1)
}

func (m *GatewayMock) List(ctx context.Context) ([]domain.Payment, error) {
	ret := m.Called(ctx)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).([]domain.Payment), ret.Error(1)
}

// stubKV is an in-memory key/value store that can be told to fail.
type stubKV struct {
	mu     sync.Mutex
	data   map[string]string
	getErr error
	setErr error
	sets   int
}

func newStubKV() *stubKV {
	return &stubKV{data: make(map[string]string)}
}

func (s *stubKV) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return "", false, s.getErr
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *stubKV) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	s.data[key] = value
	s.sets++
	return nil
}

func (s *stubKV) Ping(context.Context) error { return nil }

func (s *stubKV) value(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[key]
}

// stubPoller records the lifecycle calls made by the session manager.
type stubPoller struct {
	mu      sync.Mutex
	started []uint64
	stopped int
}

func (p *stubPoller) Start(epoch uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.started = append(p.started, epoch)
}

func (p *stubPoller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopped++
}

type stubRefresher struct {
	mu    sync.Mutex
	calls int
}

func (r *stubRefresher) Refresh() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
}

func (r *stubRefresher) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

var errBoom = errors.New("boom")
