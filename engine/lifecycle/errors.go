package lifecycle

import (
	"fmt"

	"github.com/pkg/errors"
)

// AlreadyInitializedError is returned by Initialize while the engine is Initializing, Running or Paused
type AlreadyInitializedError struct {
	State State
}

func (e *AlreadyInitializedError) Error() string {
	return fmt.Sprintf("engine already initialized (state %s)", e.State)
}

// InvalidStateTransitionError is returned for operations the current state does not allow.
// Op is set when the rejected operation is not itself a transition (e.g. reloadAssets).
type InvalidStateTransitionError struct {
	From State
	To   State
	Op   string
}

func (e *InvalidStateTransitionError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s not allowed in state %s", e.Op, e.From)
	}
	return fmt.Sprintf("invalid state transition %s -> %s", e.From, e.To)
}

// IsAlreadyInitialized reports whether the cause of err is an AlreadyInitializedError
func IsAlreadyInitialized(err error) bool {
	_, ok := errors.Cause(err).(*AlreadyInitializedError)
	return ok
}

// IsInvalidStateTransition reports whether the cause of err is an InvalidStateTransitionError
func IsInvalidStateTransition(err error) bool {
	_, ok := errors.Cause(err).(*InvalidStateTransitionError)
	return ok
}
