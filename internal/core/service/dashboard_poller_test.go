package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/payment-console/internal/core/domain"
)

// countingLister records every refresh and tracks how many run at once.
type countingLister struct {
	mu       sync.Mutex
	epochs   []uint64
	inFlight int32
	maxSeen  int32
	block    chan struct{}
}

func (l *countingLister) RefreshDashboard(ctx context.Context, epoch uint64) ([]domain.Payment, error) {
	n := atomic.AddInt32(&l.inFlight, 1)
	defer atomic.AddInt32(&l.inFlight, -1)
	for {
		seen := atomic.LoadInt32(&l.maxSeen)
		if n <= seen || atomic.CompareAndSwapInt32(&l.maxSeen, seen, n) {
			break
		}
	}

	l.mu.Lock()
	l.epochs = append(l.epochs, epoch)
	block := l.block
	l.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, nil
}

func (l *countingLister) calls() []uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]uint64(nil), l.epochs...)
}

func TestDashboardPoller_StartRefreshesImmediately(t *testing.T) {
	lister := &countingLister{}
	p := NewDashboardPoller(lister, time.Hour, zerolog.Nop())
	defer p.Stop()

	p.Start(7)

	require.Eventually(t, func() bool { return len(lister.calls()) == 1 }, time.Second, 5*time.Millisecond)
	require.Equal(t, []uint64{7}, lister.calls())
	require.True(t, p.Running())
}

func TestDashboardPoller_Ticks(t *testing.T) {
	lister := &countingLister{}
	p := NewDashboardPoller(lister, 10*time.Millisecond, zerolog.Nop())
	defer p.Stop()

	p.Start(1)

	require.Eventually(t, func() bool { return len(lister.calls()) >= 3 }, time.Second, 5*time.Millisecond)
}

func TestDashboardPoller_NoRefreshAfterStop(t *testing.T) {
	lister := &countingLister{}
	p := NewDashboardPoller(lister, 5*time.Millisecond, zerolog.Nop())

	p.Start(1)
	require.Eventually(t, func() bool { return len(lister.calls()) >= 2 }, time.Second, time.Millisecond)
	p.Stop()

	after := len(lister.calls())
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, after, len(lister.calls()))
	require.False(t, p.Running())

	p.Refresh()
	time.Sleep(10 * time.Millisecond)
	require.Equal(t, after, len(lister.calls()))
}

func TestDashboardPoller_StopCancelsInFlightRefresh(t *testing.T) {
	lister := &countingLister{block: make(chan struct{})}
	p := NewDashboardPoller(lister, time.Hour, zerolog.Nop())

	p.Start(1)
	require.Eventually(t, func() bool { return atomic.LoadInt32(&lister.inFlight) == 1 }, time.Second, time.Millisecond)

	stopped := make(chan struct{})
	go func() {
		p.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return while a refresh was in flight")
	}
	require.Zero(t, atomic.LoadInt32(&lister.inFlight))
}

func TestDashboardPoller_RestartKeepsOneLoop(t *testing.T) {
	lister := &countingLister{}
	p := NewDashboardPoller(lister, 5*time.Millisecond, zerolog.Nop())
	defer p.Stop()

	p.Start(1)
	p.Start(2)
	p.Start(3)

	require.Eventually(t, func() bool { return len(lister.calls()) >= 5 }, time.Second, time.Millisecond)
	p.Stop()

	calls := lister.calls()
	require.Equal(t, uint64(3), calls[len(calls)-1])
	require.LessOrEqual(t, atomic.LoadInt32(&lister.maxSeen), int32(1))

	// Once the loop for epoch 3 runs, no older loop is left to fire.
	var firstThree int
	for i, e := range calls {
		if e == 3 {
			firstThree = i
			break
		}
	}
	for _, e := range calls[firstThree:] {
		require.Equal(t, uint64(3), e)
	}
}

func TestDashboardPoller_RefreshKick(t *testing.T) {
	lister := &countingLister{}
	p := NewDashboardPoller(lister, time.Hour, zerolog.Nop())
	defer p.Stop()

	p.Start(4)
	require.Eventually(t, func() bool { return len(lister.calls()) == 1 }, time.Second, time.Millisecond)

	p.Refresh()
	require.Eventually(t, func() bool { return len(lister.calls()) == 2 }, time.Second, time.Millisecond)
}

func TestDashboardPoller_RefreshWithoutLoop(t *testing.T) {
	lister := &countingLister{}
	p := NewDashboardPoller(lister, time.Hour, zerolog.Nop())

	p.Refresh()
	p.Stop()

	require.Empty(t, lister.calls())
	require.False(t, p.Running())
}
