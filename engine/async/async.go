package async

import (
	"sync"

	"github.com/lunabridge/lunabridge/engine/consts"
	"github.com/lunabridge/lunabridge/engine/lbutils"
	"github.com/lunabridge/lunabridge/engine/post"
	"github.com/pkg/errors"
)

// ErrShutdown is returned when jobs are appended to a pool that has been shut down
var ErrShutdown = errors.New("async pool is shut down")

// AsyncCallback receives the result of an AsyncRoutine in the frame routine
type AsyncCallback func(res interface{}, err error)

// AsyncRoutine runs in a background worker
type AsyncRoutine func() (res interface{}, err error)

type asyncJobWorker struct {
	jobQueue chan asyncJobItem
}

type asyncJobItem struct {
	routine  AsyncRoutine
	callback AsyncCallback
}

// Pool runs jobs in per-group workers and posts their callbacks to a post.Queue.
// Jobs of the same group run one at a time in append order.
type Pool struct {
	poster *post.Queue

	lock    sync.Mutex
	workers map[string]*asyncJobWorker
	closed  bool
	running sync.WaitGroup
}

// NewPool creates a pool delivering callbacks through poster
func NewPool(poster *post.Queue) *Pool {
	return &Pool{
		poster:  poster,
		workers: map[string]*asyncJobWorker{},
	}
}

func (p *Pool) newAsyncJobWorker() *asyncJobWorker {
	ajw := &asyncJobWorker{
		jobQueue: make(chan asyncJobItem, consts.ASYNC_JOB_QUEUE_MAXLEN),
	}
	p.running.Add(1)
	go p.loop(ajw)
	return ajw
}

func (p *Pool) loop(ajw *asyncJobWorker) {
	defer p.running.Done()
	for item := range ajw.jobQueue {
		var res interface{}
		err := lbutils.CatchPanic(func() (err error) {
			res, err = item.routine()
			return
		})
		if item.callback != nil {
			callback := item.callback
			p.poster.Post(func() {
				callback(res, err)
			})
		}
	}
}

// AppendAsyncJob queues routine in the worker of group
func (p *Pool) AppendAsyncJob(group string, routine AsyncRoutine, callback AsyncCallback) error {
	p.lock.Lock()
	if p.closed {
		p.lock.Unlock()
		return ErrShutdown
	}
	ajw := p.workers[group]
	if ajw == nil {
		ajw = p.newAsyncJobWorker()
		p.workers[group] = ajw
	}
	// send while locked so Shutdown never closes a queue under a pending send
	ajw.jobQueue <- asyncJobItem{routine, callback}
	p.lock.Unlock()
	return nil
}

// Close stops accepting jobs without waiting. Jobs already queued still run and their
// callbacks are still posted.
func (p *Pool) Close() {
	p.lock.Lock()
	defer p.lock.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	for _, ajw := range p.workers {
		close(ajw.jobQueue)
	}
	p.workers = map[string]*asyncJobWorker{}
}

// Shutdown closes the pool and waits for queued jobs to finish
func (p *Pool) Shutdown() {
	p.Close()
	// wait for all job workers to quit
	p.running.Wait()
}
