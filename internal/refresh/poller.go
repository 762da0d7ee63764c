package refresh

import (
	"context"
	"sync"
	"time"
)

// DefaultInterval is how often each target is refreshed.
const DefaultInterval = 10 * time.Second

// Poller refreshes every registered target on its own ticker. Ticks do not
// wait for the previous refresh, so a slow API can have several requests for
// one target in flight; the target's sequence guard keeps the newest.
type Poller struct {
	registry *Registry
	interval time.Duration
}

// NewPoller creates a poller. A non-positive interval selects DefaultInterval.
func NewPoller(registry *Registry, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{registry: registry, interval: interval}
}

// Run loads every target once and keeps refreshing until ctx is done. It
// returns after in-flight refreshes have finished.
func (p *Poller) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, t := range p.registry.Targets() {
		wg.Add(1)
		go func(t Target) {
			defer wg.Done()
			p.poll(ctx, t, &wg)
		}(t)
	}
	wg.Wait()
}

func (p *Poller) poll(ctx context.Context, t Target, inflight *sync.WaitGroup) {
	t.Refresh(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			inflight.Add(1)
			go func() {
				defer inflight.Done()
				t.Refresh(ctx)
			}()
		}
	}
}
