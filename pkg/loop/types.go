package loop

import "github.com/loopforge/loopengine/internal/engine"

// Re-export the engine types that appear in handler, action and reactor
// signatures so embedders only import this package.
type (
	// Event identifies one of the nine lifecycle events.
	Event = engine.Event

	// EventHandler is the pluggable body of a lifecycle event.
	EventHandler = engine.EventHandler

	// Action is one step of the repeating circuit.
	Action = engine.Action

	// Reactor intercepts a dispatch just before the named process runs.
	Reactor = engine.Reactor

	// ReactorFactory builds a run-scoped reactor and its context object.
	ReactorFactory = engine.ReactorFactory

	// Control is the per-run dispatch object handed to reactor factories.
	Control = engine.Control

	// State is a lifecycle state.
	State = engine.State

	// Mode is the interrupt controller's running/pause mode.
	Mode = engine.Mode

	// Task tracks one background run.
	Task = engine.Task

	// Recorder holds the run's final result and classified errors.
	Recorder = engine.Recorder

	// StepSlot links consecutive invocations of a dispatch stream.
	StepSlot = engine.StepSlot

	// Sentinel is an identity-compared marker value.
	Sentinel = engine.Sentinel

	// CircuitError wraps a failure raised by a circuit action or the
	// action reactor.
	CircuitError = engine.CircuitError

	// EventHandlerError wraps a failure raised by an event handler.
	EventHandlerError = engine.EventHandlerError

	// EventReactorError wraps a failure raised by the event reactor.
	EventReactorError = engine.EventReactorError
)

// The nine lifecycle events.
const (
	EventStart            = engine.EventStart
	EventPause            = engine.EventPause
	EventResume           = engine.EventResume
	EventStopNormally     = engine.EventStopNormally
	EventStopCanceled     = engine.EventStopCanceled
	EventStopHandlerError = engine.EventStopHandlerError
	EventStopCircuitError = engine.EventStopCircuitError
	EventCleanup          = engine.EventCleanup
	EventLoopResult       = engine.EventLoopResult
)

// Lifecycle states.
const (
	StateLoad       = engine.StateLoad
	StateActive     = engine.StateActive
	StateTerminated = engine.StateTerminated
)

// Interrupt modes.
const (
	ModeRunning = engine.ModeRunning
	ModePause   = engine.ModePause
)

// Sentinel errors and values.
var (
	// ErrBreak signals orderly circuit termination when returned by an
	// action or the action reactor.
	ErrBreak = engine.ErrBreak

	// ErrInvalidState reports an operation issued in the wrong state.
	ErrInvalidState = engine.ErrInvalidState

	// ErrTerminated reports an operation issued after termination. It
	// matches ErrInvalidState under errors.Is.
	ErrTerminated = engine.ErrTerminated

	// PendingResult is the recorder's value until finalization completes.
	PendingResult = engine.PendingResult

	// NoResult is the recorder's value when result computation failed.
	NoResult = engine.NoResult

	// Unset is the step slot value before the first recorded invocation.
	Unset = engine.Unset
)

// AllEvents returns the nine lifecycle events in dispatch-table order.
func AllEvents() []Event { return engine.AllEvents() }
