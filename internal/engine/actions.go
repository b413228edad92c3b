package engine

import (
	"context"
	"fmt"
)

// Action is one named step of the circuit, executed in registration order on
// every iteration. It receives the action context produced by the action
// reactor factory.
type Action func(ctx context.Context, ac any) (any, error)

type actionEntry struct {
	name   string
	fn     Action
	notify bool
}

// ActionRegistry stores the ordered, named operations that form the circuit
// body. Appending is gated to StateLoad; the order of appends is the
// execution order.
type ActionRegistry struct {
	sm      *StateMachine
	entries []actionEntry
	names   map[string]struct{}
}

// NewActionRegistry creates an empty registry bound to sm.
func NewActionRegistry(sm *StateMachine) *ActionRegistry {
	return &ActionRegistry{sm: sm, names: make(map[string]struct{})}
}

// Append registers an action at the end of the circuit body. Names must be
// non-empty and unique so step-slot bookkeeping stays distinguishable. If
// notifyReactor is true the action reactor is invoked with the action's name
// immediately before each execution.
func (r *ActionRegistry) Append(name string, fn Action, notifyReactor bool) error {
	if name == "" {
		return fmt.Errorf("loopengine: action name must not be empty")
	}
	if fn == nil {
		return fmt.Errorf("loopengine: action %q has no function", name)
	}
	return r.sm.Maintain(StateLoad, func() error {
		if _, dup := r.names[name]; dup {
			return fmt.Errorf("loopengine: action %q already registered", name)
		}
		r.names[name] = struct{}{}
		r.entries = append(r.entries, actionEntry{name: name, fn: fn, notify: notifyReactor})
		return nil
	})
}

// Len returns the number of registered actions.
func (r *ActionRegistry) Len() int { return len(r.entries) }

// Names returns the action names in registration order.
func (r *ActionRegistry) Names() []string {
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.name
	}
	return out
}

// NotifyFlags returns the notify-reactor flag per action, in order.
func (r *ActionRegistry) NotifyFlags() []bool {
	out := make([]bool, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.notify
	}
	return out
}

// snapshot copies the entries so the running circuit cannot be affected by
// the registry being released.
func (r *ActionRegistry) snapshot() []actionEntry {
	out := make([]actionEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// release clears the registry after termination.
func (r *ActionRegistry) release() {
	r.entries = nil
	r.names = nil
}
