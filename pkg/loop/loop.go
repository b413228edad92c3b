package loop

import (
	"context"
	"sync"

	"github.com/loopforge/loopengine/internal/engine"
	"github.com/loopforge/loopengine/pkg/log"
)

// Handle is a configurable loop that can be embedded in other applications.
// Use New() to create an instance, register handlers and actions while it is
// in StateLoad, then Start() to launch the background run. A Handle is
// single-shot: once terminated it cannot be restarted.
type Handle struct {
	opts   options
	eng    *engine.Engine
	logger log.Logger

	plugins []Plugin

	mu   sync.Mutex
	task *Task
}

// New creates a new Handle in StateLoad.
func New(opts ...Option) (*Handle, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	eng := engine.New(o.role, o.logger)
	h := &Handle{
		opts:    o,
		eng:     eng,
		logger:  o.logger,
		plugins: o.plugins,
	}

	if o.eventReactorFactory != nil {
		if err := eng.Reactors().SetEventFactory(o.eventReactorFactory); err != nil {
			return nil, err
		}
	}
	if o.actionReactorFactory != nil {
		if err := eng.Reactors().SetActionFactory(o.actionReactorFactory); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// SetEventHandler registers handler for one of the nine lifecycle events.
// Only allowed in StateLoad.
func (h *Handle) SetEventHandler(event Event, handler EventHandler) error {
	return h.eng.Events().Set(event, handler)
}

// OnStart registers the START handler.
func (h *Handle) OnStart(handler EventHandler) error {
	return h.SetEventHandler(EventStart, handler)
}

// OnPause registers the PAUSE handler.
func (h *Handle) OnPause(handler EventHandler) error {
	return h.SetEventHandler(EventPause, handler)
}

// OnResume registers the RESUME handler.
func (h *Handle) OnResume(handler EventHandler) error {
	return h.SetEventHandler(EventResume, handler)
}

// OnStopNormally registers the STOP_NORMALLY handler.
func (h *Handle) OnStopNormally(handler EventHandler) error {
	return h.SetEventHandler(EventStopNormally, handler)
}

// OnStopCanceled registers the STOP_CANCELED handler.
func (h *Handle) OnStopCanceled(handler EventHandler) error {
	return h.SetEventHandler(EventStopCanceled, handler)
}

// OnStopHandlerError registers the STOP_HANDLER_ERROR handler.
func (h *Handle) OnStopHandlerError(handler EventHandler) error {
	return h.SetEventHandler(EventStopHandlerError, handler)
}

// OnStopCircuitError registers the STOP_CIRCUIT_ERROR handler.
func (h *Handle) OnStopCircuitError(handler EventHandler) error {
	return h.SetEventHandler(EventStopCircuitError, handler)
}

// OnCleanup registers the CLEANUP handler.
func (h *Handle) OnCleanup(handler EventHandler) error {
	return h.SetEventHandler(EventCleanup, handler)
}

// OnLoopResult registers the LOOP_RESULT handler whose return value becomes
// the run's final result.
func (h *Handle) OnLoopResult(handler EventHandler) error {
	return h.SetEventHandler(EventLoopResult, handler)
}

// AppendAction adds a named action to the end of the circuit body. If
// notifyReactor is true the action reactor is invoked before each execution.
// Only allowed in StateLoad.
func (h *Handle) AppendAction(name string, fn Action, notifyReactor bool) error {
	return h.eng.Actions().Append(name, fn, notifyReactor)
}

// SetEventReactorFactory installs the event reactor factory.
// Only allowed in StateLoad.
func (h *Handle) SetEventReactorFactory(factory ReactorFactory) error {
	return h.eng.Reactors().SetEventFactory(factory)
}

// SetActionReactorFactory installs the action reactor factory.
// Only allowed in StateLoad.
func (h *Handle) SetActionReactorFactory(factory ReactorFactory) error {
	return h.eng.Reactors().SetActionFactory(factory)
}

// Start transitions to StateActive and launches the run in the background.
// Returns immediately with the Task tracking the run. Plugins are initialized
// after the transition and shut down automatically when the run terminates.
// The provided context bounds the lifetime of the run.
func (h *Handle) Start(ctx context.Context) (*Task, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	task, err := h.eng.Start(ctx)
	if err != nil {
		return nil, err
	}
	h.task = task

	pluginCfg := PluginConfig{
		Role:       h.eng.Role(),
		Logger:     h.logger,
		Controller: h,
	}
	for _, p := range h.plugins {
		if err := p.Initialize(ctx, pluginCfg); err != nil {
			h.logger.Error("plugin initialization failed",
				log.String("plugin", p.Name()),
				log.Err(err))
			_ = h.eng.Stop()
			_ = task.Wait(context.Background())
			return nil, err
		}
		h.logger.Info("plugin initialized", log.String("plugin", p.Name()))
	}

	if len(h.plugins) > 0 {
		go h.shutdownPluginsOnDone(task)
	}
	return task, nil
}

// shutdownPluginsOnDone shuts plugins down in reverse order once the run has
// fully terminated.
func (h *Handle) shutdownPluginsOnDone(task *Task) {
	<-task.Done()
	shutdownCtx := context.Background()
	for i := len(h.plugins) - 1; i >= 0; i-- {
		p := h.plugins[i]
		if err := p.Shutdown(shutdownCtx); err != nil {
			h.logger.Error("plugin shutdown failed",
				log.String("plugin", p.Name()),
				log.Err(err))
		} else {
			h.logger.Info("plugin shutdown complete", log.String("plugin", p.Name()))
		}
	}
}

// Stop requests cancellation of the running circuit. The run still performs
// full finalization; wait on the Task for termination. Returns
// ErrInvalidState when not in StateActive.
func (h *Handle) Stop() error {
	return h.eng.Stop()
}

// Pause marks the pause intent; the circuit pauses at its next safe point.
// Returns ErrInvalidState when not in StateActive.
func (h *Handle) Pause() error {
	return h.eng.Pause()
}

// Resume schedules a resume and unblocks a paused circuit immediately; the
// RESUME event fires at the next safe point. Returns ErrInvalidState when not
// in StateActive.
func (h *Handle) Resume() error {
	return h.eng.Resume()
}

// Wait blocks until the run terminates or ctx is canceled. Returns
// ErrInvalidState if Start was never called.
func (h *Handle) Wait(ctx context.Context) error {
	h.mu.Lock()
	task := h.task
	h.mu.Unlock()
	if task == nil {
		return engine.ErrInvalidState
	}
	return task.Wait(ctx)
}

// State returns the current lifecycle state.
// Safe to call concurrently from any goroutine.
func (h *Handle) State() State {
	return h.eng.StateMachine().Current()
}

// Mode returns the current interrupt mode (Running or Pause).
// Safe to call concurrently from any goroutine.
func (h *Handle) Mode() Mode {
	return h.eng.Interrupt().Mode()
}

// Result returns the run recorder. Its values are final once the Task is
// done; before that LoopResult reports PendingResult.
func (h *Handle) Result() *Recorder {
	return h.eng.Recorder()
}

// ReleaseResult clears the recorder. Only allowed in StateTerminated.
func (h *Handle) ReleaseResult() error {
	return h.eng.StateMachine().Maintain(engine.StateTerminated, func() error {
		h.eng.Recorder().Release()
		return nil
	})
}
