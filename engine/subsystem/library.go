package subsystem

import (
	"sync"

	"github.com/lunabridge/lunabridge/engine/lifecycle"
	"github.com/pkg/errors"
)

// Library is a native library held open for the lifetime of an engine session.
// Open and Close may be nil for libraries that only need to be tracked.
type Library struct {
	name  string
	open  func(params lifecycle.InitParams) error
	close func() error

	lock sync.Mutex
	refs int
}

// NewLibrary creates a library subsystem
func NewLibrary(name string, open func(params lifecycle.InitParams) error, close func() error) *Library {
	return &Library{
		name:  name,
		open:  open,
		close: close,
	}
}

// Name returns the library name
func (lib *Library) Name() string {
	return lib.name
}

// Init opens the library on first acquisition
func (lib *Library) Init(params lifecycle.InitParams) error {
	lib.lock.Lock()
	defer lib.lock.Unlock()

	if lib.refs == 0 && lib.open != nil {
		if err := lib.open(params); err != nil {
			return errors.Wrapf(err, "open library %s", lib.name)
		}
	}
	lib.refs++
	return nil
}

// Shutdown closes the library when the last acquisition is released
func (lib *Library) Shutdown() error {
	lib.lock.Lock()
	defer lib.lock.Unlock()

	if lib.refs == 0 {
		return errors.Errorf("library %s is not open", lib.name)
	}
	lib.refs--
	if lib.refs == 0 && lib.close != nil {
		return lib.close()
	}
	return nil
}

// IsOpen reports whether the library is currently acquired
func (lib *Library) IsOpen() bool {
	lib.lock.Lock()
	defer lib.lock.Unlock()
	return lib.refs > 0
}
