package browse

import (
	"context"
	"sync"
	"time"
)

// Debouncer runs the most recently triggered task once the trigger stream
// has been idle for the configured delay. Triggering cancels whatever was
// pending or still running, and a result is delivered only if no newer
// trigger happened in the meantime.
type Debouncer[T any] struct {
	delay   time.Duration
	deliver func(T)

	// deliverMu serializes deliveries; mu guards the fields below and is
	// never held while deliver runs.
	deliverMu sync.Mutex

	mu      sync.Mutex
	gen     uint64
	timer   *time.Timer
	cancel  context.CancelFunc
	stopped bool
}

// NewDebouncer returns a Debouncer that hands results to deliver. Deliveries
// never overlap, and a slow deliver does not hold up Trigger.
func NewDebouncer[T any](delay time.Duration, deliver func(T)) *Debouncer[T] {
	return &Debouncer[T]{delay: delay, deliver: deliver}
}

// Trigger schedules run after the idle delay, superseding any earlier task.
// run should honor ctx; a false second return value suppresses delivery.
func (d *Debouncer[T]) Trigger(run func(ctx context.Context) (T, bool)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.halt()
	d.gen++
	gen := d.gen
	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	d.timer = time.AfterFunc(d.delay, func() {
		v, ok := run(ctx)
		if !ok || ctx.Err() != nil {
			return
		}
		d.deliverMu.Lock()
		defer d.deliverMu.Unlock()
		if !d.current(gen) {
			return
		}
		d.deliver(v)
	})
}

// Stop cancels the pending task. Later triggers are ignored.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.halt()
}

func (d *Debouncer[T]) current(gen uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return !d.stopped && gen == d.gen
}

// halt must be called with mu held.
func (d *Debouncer[T]) halt() {
	if d.timer != nil {
		d.timer.Stop()
	}
	if d.cancel != nil {
		d.cancel()
	}
}
