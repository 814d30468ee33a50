package engine

import (
	"sync/atomic"
	"time"
)

// FrameClock drives a fixed budget of evenly spaced ticks from a single
// goroutine. Ticks fire in strictly increasing frame order and never overlap;
// after the final tick the completion callback fires exactly once. Cancel
// guarantees that neither another tick nor the completion callback runs
// afterwards.
type FrameClock struct {
	interval time.Duration
	budget   int

	alive   atomic.Bool
	started atomic.Bool
	stop    chan struct{}
	done    chan struct{}
}

func NewFrameClock(interval time.Duration, budget int) *FrameClock {
	c := &FrameClock{
		interval: interval,
		budget:   budget,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	c.alive.Store(true)
	return c
}

// Start launches the tick loop. Calling Start twice is a no-op.
func (c *FrameClock) Start(onTick func(frame int), onComplete func()) {
	if !c.started.CompareAndSwap(false, true) {
		return
	}
	go c.run(onTick, onComplete)
}

func (c *FrameClock) run(onTick func(frame int), onComplete func()) {
	defer close(c.done)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for frame := 0; frame < c.budget; frame++ {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
		}
		// Liveness check: a cancel between scheduling and firing turns the
		// tick into a no-op.
		if !c.alive.Load() {
			return
		}
		onTick(frame)
	}

	// Completion races external Cancel on the liveness flag; whoever wins the
	// swap decides, so onComplete can never follow a successful Cancel.
	if c.alive.CompareAndSwap(true, false) {
		onComplete()
	}
}

// Cancel stops all future ticks and suppresses the completion callback. Safe
// to call from tick callbacks and from other goroutines, and idempotent.
func (c *FrameClock) Cancel() {
	if c.alive.CompareAndSwap(true, false) {
		close(c.stop)
	}
}

// Done is closed once the tick loop has fully exited, whether by completion
// or cancellation.
func (c *FrameClock) Done() <-chan struct{} { return c.done }
