package subsystem

import (
	"fmt"
	"sync"

	"github.com/lunabridge/lunabridge/engine/lblog"
	"github.com/lunabridge/lunabridge/engine/lbutils"
	"github.com/lunabridge/lunabridge/engine/lifecycle"
	"github.com/pkg/errors"
)

// Subsystem is a resource acquired for the lifetime of one initialized engine session
type Subsystem interface {
	Name() string
	Init(params lifecycle.InitParams) error
	Shutdown() error
}

// Pauser is implemented by subsystems that react to pause and resume
type Pauser interface {
	OnPause()
	OnResume()
}

// Housekeeper is implemented by subsystems that want a slice of time on paused frames
type Housekeeper interface {
	Housekeep()
}

// SubsystemInitError is returned when a subsystem fails to initialize
type SubsystemInitError struct {
	Name string
	Err  error
}

func (e *SubsystemInitError) Error() string {
	return fmt.Sprintf("subsystem %s init failed: %v", e.Name, e.Err)
}

// Cause returns the underlying init error
func (e *SubsystemInitError) Cause() error {
	return e.Err
}

// IsSubsystemInit reports whether err is or wraps a SubsystemInitError
func IsSubsystemInit(err error) bool {
	for err != nil {
		if _, ok := err.(*SubsystemInitError); ok {
			return true
		}
		cause, ok := err.(interface{ Cause() error })
		if !ok {
			return false
		}
		err = cause.Cause()
	}
	return false
}

// Registry acquires subsystems in registration order and releases them in reverse
type Registry struct {
	lock       sync.Mutex
	subsystems []Subsystem
	acquired   []Subsystem
}

// NewRegistry creates a registry of the given subsystems
func NewRegistry(subsystems ...Subsystem) *Registry {
	r := &Registry{}
	for _, s := range subsystems {
		r.Register(s)
	}
	return r
}

// Register appends a subsystem. Registering while acquired takes effect on the next Acquire.
func (r *Registry) Register(s Subsystem) {
	r.lock.Lock()
	r.subsystems = append(r.subsystems, s)
	r.lock.Unlock()
}

// Acquire initializes every registered subsystem. If one fails, the ones already
// initialized are shut down in reverse order and a SubsystemInitError is returned.
func (r *Registry) Acquire(params lifecycle.InitParams) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if len(r.acquired) > 0 {
		return errors.Errorf("subsystems already acquired: %v", names(r.acquired))
	}

	for _, s := range r.subsystems {
		s := s
		err := lbutils.CatchPanic(func() error {
			return s.Init(params)
		})
		if err != nil {
			lblog.Errorf("Subsystem %s init failed: %v, rolling back %d subsystems", s.Name(), err, len(r.acquired))
			r.releaseLocked()
			return &SubsystemInitError{Name: s.Name(), Err: err}
		}
		lblog.Debugf("Subsystem %s initialized", s.Name())
		r.acquired = append(r.acquired, s)
	}
	return nil
}

// Release shuts down acquired subsystems in reverse order. All subsystems are shut down
// even if some fail; the first error is returned.
func (r *Registry) Release() error {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.releaseLocked()
}

func (r *Registry) releaseLocked() error {
	var firstErr error
	for i := len(r.acquired) - 1; i >= 0; i-- {
		s := r.acquired[i]
		err := lbutils.CatchPanic(s.Shutdown)
		if err != nil {
			lblog.Errorf("Subsystem %s shutdown failed: %v", s.Name(), err)
			if firstErr == nil {
				firstErr = errors.Wrapf(err, "shutdown %s", s.Name())
			}
		} else {
			lblog.Debugf("Subsystem %s shut down", s.Name())
		}
	}
	r.acquired = nil
	return firstErr
}

// Acquired returns the names of acquired subsystems in acquisition order
func (r *Registry) Acquired() []string {
	r.lock.Lock()
	defer r.lock.Unlock()
	return names(r.acquired)
}

// Each calls f for every acquired subsystem in acquisition order
func (r *Registry) Each(f func(s Subsystem)) {
	r.lock.Lock()
	acquired := append([]Subsystem(nil), r.acquired...)
	r.lock.Unlock()

	for _, s := range acquired {
		f(s)
	}
}

func names(subsystems []Subsystem) []string {
	res := make([]string, len(subsystems))
	for i, s := range subsystems {
		res[i] = s.Name()
	}
	return res
}
