package frame

import (
	"testing"
	"time"

	"github.com/bmizerany/assert"
)

type fakeTime struct {
	t time.Time
}

func (f *fakeTime) now() time.Time { return f.t }

func (f *fakeTime) advance(d time.Duration) { f.t = f.t.Add(d) }

func TestClockTick(t *testing.T) {
	ft := &fakeTime{t: time.Unix(1000, 0)}
	c := NewClock(ft.now, 100*time.Millisecond)

	assert.Equal(t, time.Duration(0), c.Tick())
	ft.advance(16 * time.Millisecond)
	assert.Equal(t, 16*time.Millisecond, c.Tick())
	ft.advance(time.Second)
	assert.Equal(t, 100*time.Millisecond, c.Tick(), "delta should be clamped")
	assert.Equal(t, 116*time.Millisecond, c.Elapsed())
}

func TestClockResetSkipsGap(t *testing.T) {
	ft := &fakeTime{t: time.Unix(1000, 0)}
	c := NewClock(ft.now, 0)
	c.Reset()
	ft.advance(5 * time.Second)
	c.Reset()
	ft.advance(10 * time.Millisecond)
	assert.Equal(t, 10*time.Millisecond, c.Tick())
}

func TestFPSCounter(t *testing.T) {
	ft := &fakeTime{t: time.Unix(1000, 0)}
	c := NewFPSCounter(time.Second)
	assert.Equal(t, 0, c.FPS())

	for i := 0; i <= 31; i++ {
		c.Frame(ft.now())
		ft.advance(time.Second / 30)
	}
	assert.Tf(t, c.FPS() >= 29 && c.FPS() <= 31, "fps = %d", c.FPS())

	c.Reset()
	assert.Equal(t, 0, c.FPS())
}
