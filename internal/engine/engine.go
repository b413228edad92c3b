package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/loopforge/loopengine/pkg/log"
)

// Engine is the orchestrator: it owns the state machine, the registries, the
// interrupt controller and the recorder, and drives one run from START
// through finalization. Exactly one logical execution stream exists per
// instance; the driver interacts with it concurrently through Stop, Pause
// and Resume only.
type Engine struct {
	sm       *StateMachine
	events   *EventRegistry
	actions  *ActionRegistry
	reactors *ReactorRegistry
	irq      *Interrupt
	recorder *Recorder

	eventStep  *StepSlot
	actionStep *StepSlot

	role   string
	logger log.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
}

// New creates an engine in StateLoad. role tags log lines; logger may not be
// nil (pass the noop logger to discard output).
func New(role string, logger log.Logger) *Engine {
	sm := NewStateMachine()
	return &Engine{
		sm:         sm,
		events:     NewEventRegistry(sm),
		actions:    NewActionRegistry(sm),
		reactors:   NewReactorRegistry(sm),
		irq:        NewInterrupt(),
		recorder:   NewRecorder(),
		eventStep:  NewStepSlot(),
		actionStep: NewStepSlot(),
		role:       role,
		logger:     logger,
	}
}

// StateMachine returns the engine's state machine.
func (e *Engine) StateMachine() *StateMachine { return e.sm }

// Events returns the event handler registry.
func (e *Engine) Events() *EventRegistry { return e.events }

// Actions returns the circuit action registry.
func (e *Engine) Actions() *ActionRegistry { return e.actions }

// Reactors returns the reactor factory registry.
func (e *Engine) Reactors() *ReactorRegistry { return e.reactors }

// Interrupt returns the pause/resume controller.
func (e *Engine) Interrupt() *Interrupt { return e.irq }

// Recorder returns the result recorder.
func (e *Engine) Recorder() *Recorder { return e.recorder }

// Role returns the log tag for this engine.
func (e *Engine) Role() string { return e.role }

// Start transitions LOAD -> ACTIVE and launches the run goroutine. The
// returned Task tracks the run; the run's context is derived from ctx and is
// additionally canceled by Stop.
func (e *Engine) Start(ctx context.Context) (*Task, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	if err := e.sm.Transit(StateActive); err != nil {
		cancel()
		return nil, err
	}
	e.cancel = cancel

	runID := uuid.NewString()
	e.logger.Info("loop start",
		log.String("role", e.role),
		log.String("run_id", runID),
		log.Int("actions", e.actions.Len()),
	)

	task := newTask()
	go func() {
		defer cancel()
		task.finish(e.run(runCtx))
	}()
	return task, nil
}

// Stop requests cancellation of the running circuit. The run still performs
// full finalization before terminating.
func (e *Engine) Stop() error {
	// e.mu is released before the state guard runs; Start holds e.mu while
	// transitioning, so nesting them here would invert the lock order.
	e.mu.Lock()
	cancel := e.cancel
	e.mu.Unlock()
	return e.sm.Maintain(StateActive, func() error {
		if cancel != nil {
			cancel()
		}
		return nil
	})
}

// Pause marks the pause intent; the circuit pauses at its next safe point.
func (e *Engine) Pause() error {
	return e.sm.Maintain(StateActive, func() error {
		e.irq.RequestPause()
		return nil
	})
}

// Resume marks the resume intent and unblocks a paused circuit immediately.
func (e *Engine) Resume() error {
	return e.sm.Maintain(StateActive, func() error {
		e.irq.Resume()
		return nil
	})
}

// run drives one engine run to completion. Every failure path converges into
// the same funnel: CLEANUP and LOOP_RESULT always fire, exactly one error
// slot is populated, the state machine reaches TERMINATED and per-run
// working state is released.
func (e *Engine) run(ctx context.Context) error {
	ctl := NewControl(e.events, e.reactors, e.eventStep, e.actionStep)

	// Finalization must outlive cancellation: handlers fired after a stop
	// still get a live context.
	fin := context.WithoutCancel(ctx)

	var canceled bool
	runErr := func() (err error) {
		defer func() {
			if p := recover(); p != nil {
				err = fmt.Errorf("loopengine: panic in run: %v", p)
			}
		}()

		ctl.SetupEventContext()
		if err := ctl.ProcessEvent(ctx, EventStart); err != nil {
			return err
		}
		ctl.SetupActionContext()

		cerr := ctl.runCircuit(ctx, e.actions.snapshot(), e.irq)
		switch {
		case cerr == nil:
			return ctl.ProcessEvent(ctx, EventStopNormally)
		case errors.Is(cerr, context.Canceled) || errors.Is(cerr, context.DeadlineExceeded):
			canceled = true
			e.logger.Info("loop canceled", log.String("role", e.role))
			return ctl.ProcessEvent(fin, EventStopCanceled)
		default:
			return cerr
		}
	}()

	e.dispatchErrorEvent(fin, ctl, runErr)

	// Finalization: CLEANUP then LOOP_RESULT, unconditionally, each once.
	cleanupErr := ctl.ProcessEvent(fin, EventCleanup)
	if cleanupErr != nil {
		e.recorder.SetUnclean()
		e.logger.Error("cleanup dispatch failed", log.String("role", e.role), log.Err(cleanupErr))
	}
	resultErr := ctl.ProcessEvent(fin, EventLoopResult)
	if resultErr != nil {
		e.recorder.SetLoopResult(NoResult)
		e.logger.Error("loop result dispatch failed", log.String("role", e.role), log.Err(resultErr))
	} else {
		_, result := ctl.Event().Prev()
		e.recorder.SetLoopResult(result)
	}

	// A finalization failure surfaces only when nothing failed earlier; it
	// never displaces the original error.
	if runErr == nil {
		if cleanupErr != nil {
			runErr = cleanupErr
		} else if resultErr != nil {
			runErr = resultErr
		}
	}

	e.classify(runErr)

	lastProc, _ := ctl.Event().Prev()
	e.recorder.SetLastProcess(lastProc)

	if err := e.sm.Transit(StateTerminated); err != nil {
		e.logger.Error("terminal transition failed", log.Err(err))
	}

	ctl.release()
	e.events.release()
	e.actions.release()
	e.reactors.release()

	e.logger.Info("loop terminated",
		log.String("role", e.role),
		log.String("last_process", lastProc),
		log.Bool("canceled", canceled),
	)

	if runErr == nil && canceled {
		return context.Canceled
	}
	return runErr
}

// dispatchErrorEvent fires the STOP_CIRCUIT_ERROR / STOP_HANDLER_ERROR event
// matching a failed run. A failure inside these handlers is logged and never
// displaces the original error.
func (e *Engine) dispatchErrorEvent(ctx context.Context, ctl *Control, runErr error) {
	if runErr == nil {
		return
	}
	var (
		circuitErr *CircuitError
		handlerErr *EventHandlerError
	)
	switch {
	case errors.As(runErr, &circuitErr):
		if err := ctl.ProcessEvent(ctx, EventStopCircuitError); err != nil {
			e.logger.Error("stop_circuit_error dispatch failed", log.Err(err))
		}
	case errors.As(runErr, &handlerErr):
		if err := ctl.ProcessEvent(ctx, EventStopHandlerError); err != nil {
			e.logger.Error("stop_handler_error dispatch failed", log.Err(err))
		}
	}
}

// classify records runErr into exactly one recorder slot.
func (e *Engine) classify(runErr error) {
	if runErr == nil {
		return
	}
	var (
		circuitErr *CircuitError
		reactorErr *EventReactorError
		handlerErr *EventHandlerError
	)
	switch {
	case errors.As(runErr, &circuitErr):
		e.recorder.SetCircuitError(runErr)
		e.logger.Error("circuit error", log.String("role", e.role), log.Err(runErr))
	case errors.As(runErr, &reactorErr):
		e.recorder.SetEventReactorError(runErr)
		e.logger.Error("event reactor error", log.String("role", e.role), log.Err(runErr))
	case errors.As(runErr, &handlerErr):
		e.recorder.SetHandlerError(runErr)
		e.logger.Error("event handler error", log.String("role", e.role), log.Err(runErr))
	default:
		e.recorder.SetInternalError(runErr)
		e.logger.Error("internal error", log.String("role", e.role), log.Err(runErr))
	}
}
