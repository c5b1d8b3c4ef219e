package frame

import (
	"time"
)

// Clock measures simulation steps between frames
type Clock struct {
	now      func() time.Time
	maxDelta time.Duration
	last     time.Time
	started  bool
	elapsed  time.Duration
}

// NewClock creates a clock. now defaults to time.Now; maxDelta <= 0 disables clamping.
func NewClock(now func() time.Time, maxDelta time.Duration) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{
		now:      now,
		maxDelta: maxDelta,
	}
}

// Reset sets a new baseline so the next Tick does not include time spent before the reset
func (c *Clock) Reset() {
	c.last = c.now()
	c.started = true
}

// Tick returns the time elapsed since the previous Tick or Reset, clamped to the max delta
func (c *Clock) Tick() time.Duration {
	now := c.now()
	if !c.started {
		c.last = now
		c.started = true
		return 0
	}
	delta := now.Sub(c.last)
	c.last = now
	if delta < 0 {
		delta = 0
	}
	if c.maxDelta > 0 && delta > c.maxDelta {
		delta = c.maxDelta
	}
	c.elapsed += delta
	return delta
}

// Elapsed returns the total simulated time
func (c *Clock) Elapsed() time.Duration {
	return c.elapsed
}

// Now returns the clock's current time
func (c *Clock) Now() time.Time {
	return c.now()
}

// ResetElapsed zeroes the simulated time, used when a new session starts
func (c *Clock) ResetElapsed() {
	c.elapsed = 0
}
