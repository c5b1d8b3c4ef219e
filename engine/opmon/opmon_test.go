package opmon

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/bmizerany/assert"
)

func TestOperation(t *testing.T) {
	now := time.Unix(100, 0)
	monitor := NewMonitorWithClock(func() time.Time { return now })

	op := monitor.StartOperation("frame")
	now = now.Add(10 * time.Millisecond)
	assert.Equal(t, 10*time.Millisecond, op.Finish(time.Second))

	op = monitor.StartOperation("frame")
	now = now.Add(30 * time.Millisecond)
	op.Finish(20 * time.Millisecond)

	info, ok := monitor.Get("frame")
	assert.T(t, ok)
	assert.Equal(t, uint64(2), info.Count)
	assert.Equal(t, 30*time.Millisecond, info.MaxDuration)
	assert.Equal(t, 20*time.Millisecond, info.Avg())

	_, ok = monitor.Get("reload")
	assert.T(t, !ok)
}

func TestDump(t *testing.T) {
	monitor := NewMonitor()
	monitor.StartOperation("b").Finish(0)
	monitor.StartOperation("a").Finish(0)

	var buf bytes.Buffer
	monitor.Dump(&buf)
	out := buf.String()
	assert.T(t, strings.Index(out, "a ") < strings.Index(out, "b "), out)

	_, ok := monitor.Get("a")
	assert.T(t, !ok, "dump should clear")
}
