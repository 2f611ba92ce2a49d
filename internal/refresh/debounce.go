package refresh

import (
	"context"
	"sync"
	"time"
)

// Debouncer coalesces bursts of invalidation events into a single
// recomputation. Each Trigger cancels the pending timer and restarts the
// window, so a storm of room-change events causes exactly one recompute once
// the burst settles.
//
// The resolver is cheap and pure, so pull consumers recompute on every read;
// the debouncer only protects push-driven consumers (cached grid snapshots,
// live dashboards) from redundant recomputation storms.
type Debouncer struct {
	Window time.Duration
	Fn     func(ctx context.Context)

	mu    sync.Mutex
	timer *time.Timer
}

// Trigger (re)starts the coalescing window. Safe for concurrent use.
func (d *Debouncer) Trigger(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	window := d.Window
	if window <= 0 {
		window = 250 * time.Millisecond
	}
	d.timer = time.AfterFunc(window, func() {
		if ctx.Err() != nil {
			return
		}
		d.Fn(ctx)
	})
}

// Stop cancels any pending window. An already-started recompute is not
// interrupted.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
