package frame

import (
	"sync/atomic"
	"time"
)

// FPSCounter counts frames per sample interval. Frame is called from the frame routine;
// FPS is safe from any goroutine.
type FPSCounter struct {
	interval    time.Duration
	windowStart time.Time
	frames      int
	fps         int64
}

// NewFPSCounter creates a counter averaging over interval
func NewFPSCounter(interval time.Duration) *FPSCounter {
	return &FPSCounter{interval: interval}
}

// Frame records one frame rendered at now
func (c *FPSCounter) Frame(now time.Time) {
	if c.windowStart.IsZero() {
		c.windowStart = now
	}
	c.frames++
	if span := now.Sub(c.windowStart); span >= c.interval {
		fps := float64(c.frames) * float64(time.Second) / float64(span)
		atomic.StoreInt64(&c.fps, int64(fps+0.5))
		c.frames = 0
		c.windowStart = now
	}
}

// Reset forgets the current window, used after pauses
func (c *FPSCounter) Reset() {
	c.windowStart = time.Time{}
	c.frames = 0
	atomic.StoreInt64(&c.fps, 0)
}

// FPS returns the frame rate of the last complete window
func (c *FPSCounter) FPS() int {
	return int(atomic.LoadInt64(&c.fps))
}
