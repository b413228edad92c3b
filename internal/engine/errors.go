package engine

import (
	"errors"
	"fmt"
)

// ErrBreak is the control signal that ends the circuit loop cleanly. It may
// be returned (or wrapped) by any action or by the action reactor. It is not
// a failure: it never populates a result error slot and the run proceeds to
// STOP_NORMALLY.
var ErrBreak = errors.New("loopengine: break")

// EventReactorError wraps a failure of the event reactor. The handler for the
// event is not invoked when the reactor fails.
type EventReactorError struct {
	Event Event
	Err   error
}

func (e *EventReactorError) Error() string {
	return fmt.Sprintf("loopengine: event reactor failed at %s: %v", e.Event, e.Err)
}

func (e *EventReactorError) Unwrap() error { return e.Err }

// EventHandlerError wraps a failure of a registered event handler.
type EventHandlerError struct {
	Event Event
	Err   error
}

func (e *EventHandlerError) Error() string {
	return fmt.Sprintf("loopengine: event handler failed at %s: %v", e.Event, e.Err)
}

func (e *EventHandlerError) Unwrap() error { return e.Err }

// CircuitError wraps a failure raised inside the circuit: either an action or
// the action reactor. Action names are distinguishable, so the failing step
// is carried along.
type CircuitError struct {
	Action string
	Err    error
}

func (e *CircuitError) Error() string {
	return fmt.Sprintf("loopengine: circuit failed at action %q: %v", e.Action, e.Err)
}

func (e *CircuitError) Unwrap() error { return e.Err }
