package lifecycle

import (
	"fmt"

	"github.com/xiaonanln/go-xnsyncutil/xnsyncutil"
)

// State is the engine lifecycle state
type State int

const (
	// Uninitialized is the state before the first Initialize and after a failed one
	Uninitialized State = iota
	// Initializing is the state while subsystems are being acquired
	Initializing
	// Running is the state in which frames advance the simulation
	Running
	// Paused is the state in which frames only do housekeeping
	Paused
	// Destroyed is the state after Deinitialize
	Destroyed
)

var stateNames = [...]string{
	Uninitialized: "Uninitialized",
	Initializing:  "Initializing",
	Running:       "Running",
	Paused:        "Paused",
	Destroyed:     "Destroyed",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// IsInitialized reports whether s is Running or Paused
func (s State) IsInitialized() bool {
	return s == Running || s == Paused
}

var transitions = map[State][]State{
	Uninitialized: {Initializing},
	Initializing:  {Running, Uninitialized},
	Running:       {Paused, Destroyed},
	Paused:        {Running, Destroyed},
	Destroyed:     {Initializing},
}

// CanTransition reports whether from -> to is a legal transition
func CanTransition(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Machine holds the lifecycle state.
//
// Transition must only be called by the owner of the engine's exclusivity lock.
// State and IsInitialized are lock-free and safe from any goroutine.
type Machine struct {
	state xnsyncutil.AtomicInt
}

// NewMachine creates a machine in Uninitialized state
func NewMachine() *Machine {
	m := &Machine{}
	m.state.Store(int(Uninitialized))
	return m
}

// State returns the current state
func (m *Machine) State() State {
	return State(m.state.Load())
}

// IsInitialized reports whether the engine is Running or Paused
func (m *Machine) IsInitialized() bool {
	return m.State().IsInitialized()
}

// Transition moves the machine to state to, or returns an InvalidStateTransitionError
func (m *Machine) Transition(to State) error {
	from := m.State()
	if !CanTransition(from, to) {
		return &InvalidStateTransitionError{From: from, To: to}
	}
	m.state.Store(int(to))
	return nil
}
