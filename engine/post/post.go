package post

import (
	"sync"

	"github.com/lunabridge/lunabridge/engine/lbutils"
)

// PostCallback is the type of functions to be posted
type PostCallback func()

// Queue collects callbacks posted from any goroutine and runs them in the frame routine
type Queue struct {
	lock      sync.Mutex
	callbacks []PostCallback
}

// Post a callback which will be executed when the frame routine ticks the queue
//
// Post might be called from other goroutine, so we use a lock to protect the data
func (q *Queue) Post(f PostCallback) {
	q.lock.Lock()
	q.callbacks = append(q.callbacks, f)
	q.lock.Unlock()
}

// Tick is called by the frame routine to run all posted functions
func (q *Queue) Tick() {
	for { // loop until there is no callbacks posted anymore
		q.lock.Lock() // lock to check number of callbacks
		if len(q.callbacks) == 0 {
			q.lock.Unlock()
			break // all callbacked executed, quit
		}
		// switch callbacks in locked section
		callbacksCopy := q.callbacks
		q.callbacks = make([]PostCallback, 0, len(q.callbacks))
		q.lock.Unlock()

		for _, f := range callbacksCopy {
			lbutils.RunPanicless(f)
		}
	}
}

// Len returns the number of pending callbacks
func (q *Queue) Len() int {
	q.lock.Lock()
	defer q.lock.Unlock()
	return len(q.callbacks)
}

// Clear drops all pending callbacks without running them
func (q *Queue) Clear() int {
	q.lock.Lock()
	n := len(q.callbacks)
	q.callbacks = nil
	q.lock.Unlock()
	return n
}
