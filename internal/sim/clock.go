// Wall-clock driver for the simulation loop.
package sim

import (
	"log/slog"
	"sync"
	"time"
)

// Clock delivers a monotonically increasing elapsed-time delta to the
// bakery once per frame. All engine methods are synchronous and complete
// within the tick they run in. Speed and the running flag are guarded so
// HTTP handlers can steer the clock while it runs.
type Clock struct {
	Interval time.Duration // base frame interval

	mu      sync.Mutex
	speed   float64 // multiplier: 1.0 = real-time, 0 = paused
	running bool

	bakery *Bakery
}

// NewClock creates a clock driving the given bakery at default settings.
func NewClock(b *Bakery) *Clock {
	return &Clock{
		speed:    1.0,
		Interval: 250 * time.Millisecond,
		bakery:   b,
	}
}

// Speed returns the current time multiplier.
func (c *Clock) Speed() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.speed
}

// SetSpeed changes the time multiplier; 0 pauses the loop.
func (c *Clock) SetSpeed(v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.speed = v
}

// Running reports whether the loop is active.
func (c *Clock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Run starts the loop. Blocks until Stop is called or the game reaches a
// terminal phase.
func (c *Clock) Run() {
	c.mu.Lock()
	c.running = true
	c.mu.Unlock()
	slog.Info("simulation clock started", "speed", c.Speed(), "interval", c.Interval)

	for c.Running() {
		speed := c.Speed()
		if speed <= 0 {
			// Paused — sleep briefly and check again.
			time.Sleep(100 * time.Millisecond)
			continue
		}

		start := time.Now()

		c.bakery.AdvanceTick(c.Interval.Seconds() * speed)

		var terminal bool
		c.bakery.View(func() { terminal = c.bakery.Phase().Terminal() })
		if terminal {
			c.Stop()
			break
		}

		// Sleep for the remainder of the frame interval.
		elapsed := time.Since(start)
		if elapsed < c.Interval {
			time.Sleep(c.Interval - elapsed)
		}
	}

	var day int
	c.bakery.View(func() { day = c.bakery.Day() })
	slog.Info("simulation clock stopped", "day", day)
}

// Stop halts the loop after the current frame.
func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = false
}
