package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/payment-console/internal/core/domain"
	"github.com/99minutos/payment-console/internal/metrics"
)

// DefaultPollInterval is how often the dashboard is refreshed while logged in.
const DefaultPollInterval = 5 * time.Second

// DashboardLister reloads the payment list for the session owning epoch.
type DashboardLister interface {
	RefreshDashboard(ctx context.Context, epoch uint64) ([]domain.Payment, error)
}

// DashboardPoller keeps the cached payment list fresh while a session is
// authenticated. At most one polling loop runs at a time.
type DashboardPoller struct {
	lister   DashboardLister
	interval time.Duration
	log      zerolog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	kick   chan struct{}
}

func NewDashboardPoller(lister DashboardLister, interval time.Duration, log zerolog.Logger) *DashboardPoller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &DashboardPoller{lister: lister, interval: interval, log: log}
}

// Start replaces any running loop with a new one bound to epoch. The new loop
// refreshes immediately, then on every tick.
func (p *DashboardPoller) Start(epoch uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	kick := make(chan struct{}, 1)
	p.cancel, p.done, p.kick = cancel, done, kick

	go p.run(ctx, epoch, kick, done)
	p.log.Debug().Uint64("epoch", epoch).Dur("interval", p.interval).Msg("dashboard poller started")
}

// Stop cancels the running loop and waits for it to exit. No refresh starts
// after Stop returns.
func (p *DashboardPoller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

// Refresh asks the running loop for an extra refresh. Requests made while a
// refresh is already queued are coalesced; without a loop it is a no-op.
func (p *DashboardPoller) Refresh() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.kick == nil {
		return
	}
	select {
	case p.kick <- struct{}{}:
	default:
	}
}

// Running reports whether a polling loop is active.
func (p *DashboardPoller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

func (p *DashboardPoller) stopLocked() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	<-p.done
	p.cancel, p.done, p.kick = nil, nil, nil
	p.log.Debug().Msg("dashboard poller stopped")
}

func (p *DashboardPoller) run(ctx context.Context, epoch uint64, kick <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	p.poll(ctx, epoch, "initial")

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx, epoch, "tick")
		case <-kick:
			p.poll(ctx, epoch, "manual")
		}
	}
}

func (p *DashboardPoller) poll(ctx context.Context, epoch uint64, trigger string) {
	if ctx.Err() != nil {
		return
	}
	metrics.DashboardPollsTotal.WithLabelValues(trigger).Inc()
	if _, err := p.lister.RefreshDashboard(ctx, epoch); err != nil && !errors.Is(err, domain.ErrStaleResponse) {
		p.log.Warn().Err(err).Str("trigger", trigger).Msg("dashboard refresh failed")
	}
}
