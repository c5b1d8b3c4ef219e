package subsystem

import (
	"testing"

	"github.com/bmizerany/assert"
	"github.com/lunabridge/lunabridge/engine/lifecycle"
	"github.com/pkg/errors"
)

type recorder struct {
	log []string
}

type fakeSubsystem struct {
	name    string
	rec     *recorder
	initErr error
	panics  bool
}

func (s *fakeSubsystem) Name() string { return s.name }

func (s *fakeSubsystem) Init(params lifecycle.InitParams) error {
	if s.panics {
		panic("init exploded")
	}
	if s.initErr != nil {
		return s.initErr
	}
	s.rec.log = append(s.rec.log, "init "+s.name)
	return nil
}

func (s *fakeSubsystem) Shutdown() error {
	s.rec.log = append(s.rec.log, "shutdown "+s.name)
	return nil
}

var params = lifecycle.InitParams{ScreenWidth: 800, ScreenHeight: 600, AppName: "Demo"}

func TestAcquireRelease(t *testing.T) {
	rec := &recorder{}
	r := NewRegistry(&fakeSubsystem{name: "openal", rec: rec}, &fakeSubsystem{name: "renderer", rec: rec})

	assert.Equal(t, nil, r.Acquire(params))
	assert.Equal(t, []string{"openal", "renderer"}, r.Acquired())
	assert.T(t, r.Acquire(params) != nil, "double acquire should fail")

	assert.Equal(t, nil, r.Release())
	assert.Equal(t, []string{"init openal", "init renderer", "shutdown renderer", "shutdown openal"}, rec.log)
	assert.Equal(t, 0, len(r.Acquired()))
}

func TestAcquireRollsBack(t *testing.T) {
	rec := &recorder{}
	cause := errors.New("no audio device")
	r := NewRegistry(
		&fakeSubsystem{name: "renderer", rec: rec},
		&fakeSubsystem{name: "input", rec: rec},
		&fakeSubsystem{name: "openal", rec: rec, initErr: cause},
		&fakeSubsystem{name: "game", rec: rec},
	)

	err := r.Acquire(params)
	assert.T(t, IsSubsystemInit(err))
	assert.T(t, IsSubsystemInit(errors.Wrap(err, "initialize")))
	initErr := err.(*SubsystemInitError)
	assert.Equal(t, "openal", initErr.Name)
	assert.Equal(t, cause, errors.Cause(err))
	assert.Equal(t, []string{"init renderer", "init input", "shutdown input", "shutdown renderer"}, rec.log)
	assert.Equal(t, 0, len(r.Acquired()))

	// the registry stays usable for a retry
	rec.log = nil
	r2 := NewRegistry(&fakeSubsystem{name: "renderer", rec: rec})
	assert.Equal(t, nil, r2.Acquire(params))
}

func TestAcquireRecoversPanic(t *testing.T) {
	rec := &recorder{}
	r := NewRegistry(&fakeSubsystem{name: "a", rec: rec}, &fakeSubsystem{name: "b", rec: rec, panics: true})
	err := r.Acquire(params)
	assert.T(t, IsSubsystemInit(err))
	assert.Equal(t, []string{"init a", "shutdown a"}, rec.log)
}

func TestLibraryRefCount(t *testing.T) {
	opened, closed := 0, 0
	lib := NewLibrary("luna2d", func(lifecycle.InitParams) error {
		opened++
		return nil
	}, func() error {
		closed++
		return nil
	})

	assert.Equal(t, nil, lib.Init(params))
	assert.Equal(t, nil, lib.Init(params))
	assert.T(t, lib.IsOpen())
	assert.Equal(t, nil, lib.Shutdown())
	assert.Equal(t, 0, closed)
	assert.Equal(t, nil, lib.Shutdown())
	assert.Equal(t, 1, opened)
	assert.Equal(t, 1, closed)
	assert.T(t, !lib.IsOpen())
	assert.T(t, lib.Shutdown() != nil)
}
