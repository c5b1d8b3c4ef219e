package input

import (
	"sync"
	"testing"

	"github.com/bmizerany/assert"
)

func kinds(events []TouchEvent) []TouchKind {
	res := make([]TouchKind, len(events))
	for i, e := range events {
		res[i] = e.Kind
	}
	return res
}

func TestDrainOrder(t *testing.T) {
	q := NewQueue()
	q.Push(TouchDown, 10, 10, 0)
	q.Push(TouchMoved, 12, 11, 0)
	q.Push(TouchUp, 12, 11, 0)
	assert.Equal(t, 3, q.Len())

	events := q.Drain()
	assert.Equal(t, []TouchKind{TouchDown, TouchMoved, TouchUp}, kinds(events))
	assert.Equal(t, float32(12), events[1].X)
	assert.Equal(t, float32(11), events[1].Y)
	assert.T(t, events[0].Seq < events[1].Seq && events[1].Seq < events[2].Seq)

	assert.Equal(t, 0, len(q.Drain()))
}

func TestOrphanUpIsKept(t *testing.T) {
	q := NewQueue()
	q.Push(TouchUp, 1, 2, 7)
	events := q.Drain()
	assert.Equal(t, 1, len(events))
	assert.Equal(t, TouchUp, events[0].Kind)
	assert.Equal(t, 7, events[0].Index)
}

func TestClear(t *testing.T) {
	q := NewQueue()
	q.Push(TouchDown, 0, 0, 1)
	q.Push(TouchDown, 0, 0, 2)
	assert.Equal(t, 2, q.Clear())
	assert.Equal(t, 0, q.Len())
}

func TestConcurrentProducersKeepPerIndexOrder(t *testing.T) {
	q := NewQueue()
	const producers = 8
	const perProducer = 200

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Push(TouchMoved, float32(i), 0, index)
			}
		}(p)
	}

	var drained []TouchEvent
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	for finished := false; !finished; {
		select {
		case <-done:
			finished = true
		default:
		}
		drained = append(drained, q.Drain()...)
	}

	assert.Equal(t, producers*perProducer, len(drained))
	last := map[int]float32{}
	for _, e := range drained {
		if prev, ok := last[e.Index]; ok {
			assert.Tf(t, e.X == prev+1, "index %d out of order: %v after %v", e.Index, e.X, prev)
		}
		last[e.Index] = e.X
	}
}

func TestTouchKindString(t *testing.T) {
	assert.Equal(t, "down", TouchDown.String())
	assert.Equal(t, "moved", TouchMoved.String())
	assert.Equal(t, "up", TouchUp.String())
	assert.Equal(t, "TouchKind(9)", TouchKind(9).String())
}
