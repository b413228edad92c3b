package engine

import "context"

// Control is the per-run dispatch object. It owns the handler snapshot, the
// two reactor/context pairs and the two step slots, and is handed to reactor
// factories so custom contexts can reach the step slots and the break signal.
type Control struct {
	handlers map[Event]EventHandler
	reactors *ReactorRegistry

	eventStep  *StepSlot
	actionStep *StepSlot

	eventReactor Reactor
	eventCtx     any

	actionReactor Reactor
	actionCtx     any
}

// NewControl assembles the dispatch object for one run.
func NewControl(events *EventRegistry, reactors *ReactorRegistry, eventStep, actionStep *StepSlot) *Control {
	return &Control{
		handlers:   events.snapshot(),
		reactors:   reactors,
		eventStep:  eventStep,
		actionStep: actionStep,
	}
}

// Event returns the step slot linking consecutive event invocations.
func (c *Control) Event() *StepSlot { return c.eventStep }

// Action returns the step slot linking consecutive action invocations.
func (c *Control) Action() *StepSlot { return c.actionStep }

// EventContext returns the context object paired with the event reactor.
func (c *Control) EventContext() any { return c.eventCtx }

// ActionContext returns the context object paired with the action reactor.
func (c *Control) ActionContext() any { return c.actionCtx }

// SetupEventContext builds the event reactor/context pair. Must run before
// any event is processed.
func (c *Control) SetupEventContext() {
	c.eventReactor, c.eventCtx = c.reactors.eventFactory(c)
}

// SetupActionContext builds the action reactor/context pair. Must run before
// the circuit starts.
func (c *Control) SetupActionContext() {
	c.actionReactor, c.actionCtx = c.reactors.actionFactory(c)
}

// ProcessEvent dispatches one lifecycle event. With no handler registered it
// is a no-op. Otherwise the event reactor runs first; its failure becomes an
// EventReactorError and the handler is never invoked. A handler failure
// becomes an EventHandlerError. On success the (event, result) pair is
// recorded into the event step slot.
func (c *Control) ProcessEvent(ctx context.Context, event Event) error {
	handler, ok := c.handlers[event]
	if !ok || handler == nil {
		return nil
	}
	if c.eventReactor != nil {
		if err := c.eventReactor(string(event)); err != nil {
			return &EventReactorError{Event: event, Err: err}
		}
	}
	result, err := handler(ctx, c.eventCtx)
	if err != nil {
		return &EventHandlerError{Event: event, Err: err}
	}
	c.eventStep.Record(string(event), result)
	return nil
}

// release drops all per-run references. The step slots are cleared here; the
// recorder is not (it outlives the run).
func (c *Control) release() {
	c.eventStep.release()
	c.actionStep.release()
	c.handlers = nil
	c.eventReactor, c.eventCtx = nil, nil
	c.actionReactor, c.actionCtx = nil, nil
}
