package input

import (
	"fmt"
	"sync"

	"github.com/lunabridge/lunabridge/engine/consts"
)

// TouchKind is the phase of a touch event
type TouchKind uint8

const (
	// TouchDown is a contact point first touching the screen
	TouchDown TouchKind = iota
	// TouchMoved is a contact point dragging across the screen
	TouchMoved
	// TouchUp is a contact point leaving the screen
	TouchUp
)

func (k TouchKind) String() string {
	switch k {
	case TouchDown:
		return "down"
	case TouchMoved:
		return "moved"
	case TouchUp:
		return "up"
	}
	return fmt.Sprintf("TouchKind(%d)", k)
}

// TouchEvent is one touch reported by the host.
//
// Index is assigned by the host and reused across the down/moved/up events of one contact point.
// It is a plain key: an Up without a prior Down is legal and is delivered as-is.
type TouchEvent struct {
	Index int
	X, Y  float32
	Kind  TouchKind
	Seq   uint64 // enqueue sequence number, increasing within a Queue
}

func (e TouchEvent) String() string {
	return fmt.Sprintf("Touch#%d<%s %d (%.1f, %.1f)>", e.Seq, e.Kind, e.Index, e.X, e.Y)
}

// Queue buffers touch events between host callbacks and the frame routine.
//
// Push never blocks on anything but the queue's own short critical section and never fails.
// Drain is the only read path.
type Queue struct {
	lock    sync.Mutex
	events  []TouchEvent
	nextSeq uint64
}

// NewQueue creates an empty queue
func NewQueue() *Queue {
	return &Queue{
		events: make([]TouchEvent, 0, consts.INPUT_QUEUE_INITIAL_CAP),
	}
}

// Push appends a touch event
func (q *Queue) Push(kind TouchKind, x, y float32, index int) {
	q.lock.Lock()
	q.nextSeq++
	q.events = append(q.events, TouchEvent{
		Index: index,
		X:     x,
		Y:     y,
		Kind:  kind,
		Seq:   q.nextSeq,
	})
	q.lock.Unlock()
}

// Drain returns all events pushed since the previous drain in push order and empties the queue
func (q *Queue) Drain() []TouchEvent {
	q.lock.Lock()
	events := q.events
	q.events = make([]TouchEvent, 0, consts.INPUT_QUEUE_INITIAL_CAP)
	q.lock.Unlock()
	return events
}

// Clear drops all queued events and returns how many were dropped
func (q *Queue) Clear() int {
	q.lock.Lock()
	n := len(q.events)
	q.events = make([]TouchEvent, 0, consts.INPUT_QUEUE_INITIAL_CAP)
	q.lock.Unlock()
	return n
}

// Len returns the number of queued events
func (q *Queue) Len() int {
	q.lock.Lock()
	defer q.lock.Unlock()
	return len(q.events)
}
