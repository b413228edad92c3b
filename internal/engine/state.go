package engine

import (
	"errors"
	"fmt"
	"sync"
)

// State represents the lifecycle phase of one engine run.
type State int

const (
	// StateLoad is the configuration phase. All registries are mutable.
	StateLoad State = iota
	// StateActive means the orchestrator is running. Registries are frozen.
	StateActive
	// StateTerminated is final. Only the result recorder remains readable.
	StateTerminated
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateLoad:
		return "Load"
	case StateActive:
		return "Active"
	case StateTerminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}

// Guard errors returned by the state machine. ErrTerminated wraps
// ErrInvalidState so errors.Is(err, ErrInvalidState) also holds for it;
// callers that only care about "too late" match ErrTerminated directly.
var (
	ErrUnknownState = errors.New("loopengine: unknown state")
	ErrInvalidState = errors.New("loopengine: invalid state")
	ErrTerminated   = fmt.Errorf("%w: already terminated", ErrInvalidState)
)

// StateMachine enforces the LOAD -> ACTIVE -> TERMINATED lifecycle and
// gates mutation to the phase it belongs to. It is safe for concurrent use:
// the driver and the circuit goroutine both read it.
type StateMachine struct {
	mu  sync.RWMutex
	cur State
}

// NewStateMachine creates a state machine in StateLoad.
func NewStateMachine() *StateMachine {
	return &StateMachine{cur: StateLoad}
}

// Current returns the current state.
func (m *StateMachine) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cur
}

func validState(s State) error {
	switch s {
	case StateLoad, StateActive, StateTerminated:
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrUnknownState, int(s))
	}
}

// requireLocked checks the guard while m.mu is held.
func (m *StateMachine) requireLocked(expected State) error {
	if err := validState(expected); err != nil {
		return err
	}
	if m.cur == expected {
		return nil
	}
	if m.cur == StateTerminated {
		return fmt.Errorf("%w (expected %s)", ErrTerminated, expected)
	}
	return fmt.Errorf("%w: expected %s, actual %s", ErrInvalidState, expected, m.cur)
}

// Maintain runs fn only while the current state equals expected. The lock is
// held for the duration of fn, so fn must not call back into the machine.
func (m *StateMachine) Maintain(expected State, fn func() error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.requireLocked(expected); err != nil {
		return err
	}
	if fn == nil {
		return nil
	}
	return fn()
}

// TransitWith validates that the transition to `to` is one of the two legal
// edges, runs fn while still in the old state, then advances. If fn fails the
// state does not advance.
func (m *StateMachine) TransitWith(to State, fn func() error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := validState(to); err != nil {
		return err
	}
	toActive := m.cur == StateLoad && to == StateActive
	toTerminal := m.cur == StateActive && to == StateTerminated
	if !toActive && !toTerminal {
		return fmt.Errorf("%w: transition %s -> %s", ErrInvalidState, m.cur, to)
	}
	if fn != nil {
		if err := fn(); err != nil {
			return err
		}
	}
	m.cur = to
	return nil
}

// Transit is TransitWith without a side effect.
func (m *StateMachine) Transit(to State) error {
	return m.TransitWith(to, nil)
}
