package engine

import (
	"context"
	"fmt"
)

// Event identifies one of the nine fixed lifecycle events.
type Event string

const (
	EventStart            Event = "start"
	EventPause            Event = "pause"
	EventResume           Event = "resume"
	EventStopNormally     Event = "stop_normally"
	EventStopCanceled     Event = "stop_canceled"
	EventStopHandlerError Event = "stop_handler_error"
	EventStopCircuitError Event = "stop_circuit_error"
	EventCleanup          Event = "cleanup"
	EventLoopResult       Event = "loop_result"
)

var allEvents = map[Event]struct{}{
	EventStart:            {},
	EventPause:            {},
	EventResume:           {},
	EventStopNormally:     {},
	EventStopCanceled:     {},
	EventStopHandlerError: {},
	EventStopCircuitError: {},
	EventCleanup:          {},
	EventLoopResult:       {},
}

// Valid reports whether e is one of the defined lifecycle events.
func (e Event) Valid() bool {
	_, ok := allEvents[e]
	return ok
}

// AllEvents returns the defined event names in dispatch-relevant order.
func AllEvents() []Event {
	return []Event{
		EventStart, EventPause, EventResume,
		EventStopNormally, EventStopCanceled,
		EventStopHandlerError, EventStopCircuitError,
		EventCleanup, EventLoopResult,
	}
}

// EventHandler is the user function registered per event. It receives the
// event context produced by the event reactor factory. Unregistered events
// are no-ops.
type EventHandler func(ctx context.Context, ec any) (any, error)

// EventRegistry stores handlers for the fixed lifecycle events.
// Registration is gated to StateLoad through the state machine.
type EventRegistry struct {
	sm       *StateMachine
	handlers map[Event]EventHandler
}

// NewEventRegistry creates an empty registry bound to sm.
func NewEventRegistry(sm *StateMachine) *EventRegistry {
	return &EventRegistry{sm: sm, handlers: make(map[Event]EventHandler)}
}

// Set registers handler for event. The event name is membership-checked and
// registration is only allowed in StateLoad.
func (r *EventRegistry) Set(event Event, handler EventHandler) error {
	if !event.Valid() {
		return fmt.Errorf("loopengine: event %q is not defined", string(event))
	}
	return r.sm.Maintain(StateLoad, func() error {
		r.handlers[event] = handler
		return nil
	})
}

// Registered returns the set of events that currently have a handler.
func (r *EventRegistry) Registered() map[Event]struct{} {
	out := make(map[Event]struct{}, len(r.handlers))
	for ev, h := range r.handlers {
		if h != nil {
			out[ev] = struct{}{}
		}
	}
	return out
}

// snapshot returns a copy of the registered handlers for one run.
func (r *EventRegistry) snapshot() map[Event]EventHandler {
	out := make(map[Event]EventHandler, len(r.handlers))
	for ev, h := range r.handlers {
		out[ev] = h
	}
	return out
}

// release clears the registry after termination.
func (r *EventRegistry) release() {
	r.handlers = nil
}
