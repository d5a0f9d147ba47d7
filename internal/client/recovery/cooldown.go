package recovery

import (
	"context"
	"sync"
	"time"
)

// Cooldown counts down once per interval from a starting number of seconds
// to zero. The resend action must stay disabled while IsActive reports true.
//
// Start supersedes any countdown still running; only one countdown ticks at
// a time. Stop cancels the countdown, which is required when the owning
// view is torn down so a stale timer cannot mutate a fresh flow.
type Cooldown struct {
	interval time.Duration

	mu        sync.Mutex
	remaining int
	gen       uint64
	cancel    context.CancelFunc
}

// NewCooldown builds a timer ticking at the given interval, normally one
// second. Tests pass a long interval and drive ticks by hand.
func NewCooldown(interval time.Duration) *Cooldown {
	return &Cooldown{interval: interval}
}

// Start sets the remaining count and begins decrementing. A countdown still
// in flight is cancelled first.
func (c *Cooldown) Start(seconds int) {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.gen++
	gen := c.gen
	c.remaining = seconds

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.mu.Unlock()

	go c.run(ctx, gen)
}

// Stop cancels the running countdown. Further ticks are discarded.
func (c *Cooldown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.gen++
}

// Remaining returns the seconds left until resend is allowed again.
func (c *Cooldown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// IsActive reports whether the countdown is still above zero.
func (c *Cooldown) IsActive() bool {
	return c.Remaining() > 0
}

func (c *Cooldown) run(ctx context.Context, gen uint64) {
	t := time.NewTicker(c.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if !c.tick(gen) {
				return
			}
		}
	}
}

// tick decrements once and reports whether the countdown should continue.
// Ticks from a superseded generation are ignored.
func (c *Cooldown) tick(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return false
	}
	if c.remaining > 0 {
		c.remaining--
	}
	return c.remaining > 0
}
