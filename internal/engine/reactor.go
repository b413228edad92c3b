package engine

// Reactor is an interception hook invoked with the name of the event or
// action about to run. It may mutate its paired context object but does not
// alter control flow; a failure is reclassified by the engine
// (EventReactorError for the event reactor, CircuitError for the action
// reactor).
type Reactor func(nextProc string) error

// ReactorFactory builds a reactor and its context object for one run. One
// pair serves all event dispatch, a second serves all action dispatch. The
// factory receives the run's Control so the context can reach the step slots.
type ReactorFactory func(ctl *Control) (Reactor, any)

func defaultEventReactorFactory(ctl *Control) (Reactor, any) {
	return func(string) error { return nil }, ctl
}

// The default action context reuses the event context, so handlers and
// actions observe the same object unless a factory says otherwise.
func defaultActionReactorFactory(ctl *Control) (Reactor, any) {
	return func(string) error { return nil }, ctl.EventContext()
}

// ReactorRegistry stores the two factory functions. Setters are gated to
// StateLoad; unset factories fall back to no-op reactors.
type ReactorRegistry struct {
	sm            *StateMachine
	eventFactory  ReactorFactory
	actionFactory ReactorFactory

	eventSet  bool
	actionSet bool
}

// NewReactorRegistry creates a registry with the default no-op factories.
func NewReactorRegistry(sm *StateMachine) *ReactorRegistry {
	return &ReactorRegistry{
		sm:            sm,
		eventFactory:  defaultEventReactorFactory,
		actionFactory: defaultActionReactorFactory,
	}
}

// SetEventFactory replaces the factory used for event dispatch.
func (r *ReactorRegistry) SetEventFactory(f ReactorFactory) error {
	return r.sm.Maintain(StateLoad, func() error {
		r.eventFactory = f
		r.eventSet = true
		return nil
	})
}

// SetActionFactory replaces the factory used for action dispatch.
func (r *ReactorRegistry) SetActionFactory(f ReactorFactory) error {
	return r.sm.Maintain(StateLoad, func() error {
		r.actionFactory = f
		r.actionSet = true
		return nil
	})
}

// EventFactorySet reports whether a custom event factory was installed.
func (r *ReactorRegistry) EventFactorySet() bool { return r.eventSet }

// ActionFactorySet reports whether a custom action factory was installed.
func (r *ReactorRegistry) ActionFactorySet() bool { return r.actionSet }

// release clears the factories after termination.
func (r *ReactorRegistry) release() {
	r.eventFactory = nil
	r.actionFactory = nil
}
