package lifecycle

import (
	"testing"

	"github.com/bmizerany/assert"
	"github.com/pkg/errors"
)

func TestMachineHappyPath(t *testing.T) {
	m := NewMachine()
	assert.Equal(t, Uninitialized, m.State())
	assert.T(t, !m.IsInitialized())

	for _, to := range []State{Initializing, Running, Paused, Running, Destroyed, Initializing, Running} {
		assert.Equal(t, nil, m.Transition(to), to)
	}
	assert.T(t, m.IsInitialized())
}

func TestMachineRejectsIllegalTransitions(t *testing.T) {
	m := NewMachine()
	err := m.Transition(Running)
	assert.T(t, IsInvalidStateTransition(err))
	assert.Equal(t, &InvalidStateTransitionError{From: Uninitialized, To: Running}, err)
	assert.Equal(t, Uninitialized, m.State())

	assert.Equal(t, nil, m.Transition(Initializing))
	assert.T(t, IsInvalidStateTransition(m.Transition(Paused)))
	assert.Equal(t, nil, m.Transition(Uninitialized))
}

func TestIsInitializedMatchesState(t *testing.T) {
	for s := Uninitialized; s <= Destroyed; s++ {
		assert.Equal(t, s == Running || s == Paused, s.IsInitialized(), s)
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "Running", Running.String())
	assert.Equal(t, "State(42)", State(42).String())
}

func TestValidateParams(t *testing.T) {
	ok := InitParams{ScreenWidth: 800, ScreenHeight: 600, AppName: "Demo"}
	assert.Equal(t, nil, ok.Validate())

	bad := ok
	bad.ScreenHeight = 0
	assert.Equal(t, ErrInvalidParams, errors.Cause(bad.Validate()))

	bad = ok
	bad.AppName = ""
	assert.Equal(t, ErrInvalidParams, errors.Cause(bad.Validate()))
}

func TestErrorHelpers(t *testing.T) {
	err := errors.Wrap(&AlreadyInitializedError{State: Running}, "initialize")
	assert.T(t, IsAlreadyInitialized(err))
	assert.T(t, !IsInvalidStateTransition(err))
}
