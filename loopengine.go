// Package loopengine provides a lifecycle-managed loop engine.
//
// Example usage:
//
//	h, err := loopengine.New(loopengine.WithRole("worker"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = h.AppendAction("tick", tick, false)
//	if err := loopengine.Run(context.Background(), h); err != nil {
//	    log.Fatal(err)
//	}
//
// The full API lives in pkg/loop; this package re-exports the common entry
// points for convenient access.
package loopengine

import (
	"context"

	"github.com/loopforge/loopengine/pkg/loop"
)

// Handle is a configurable loop instance.
// Use New() to create one, then Start() or Run() to execute it.
type Handle = loop.Handle

// Option configures optional behavior of a Handle.
type Option = loop.Option

// Event identifies one of the nine fixed lifecycle events.
type Event = loop.Event

// New creates a new Handle in the LOAD state.
func New(opts ...Option) (*Handle, error) {
	return loop.New(opts...)
}

// Run starts the handle and blocks until the run terminates or ctx is
// canceled. It returns the run's terminal error: nil for a clean stop,
// context.Canceled for a canceled run, or the single classified error.
func Run(ctx context.Context, h *Handle) error {
	task, err := h.Start(ctx)
	if err != nil {
		return err
	}
	return task.Wait(context.Background())
}

// WithRole sets the role tag attached to every log line of a handle.
var WithRole = loop.WithRole

// WithLogger sets a custom logger for structured logging.
var WithLogger = loop.WithLogger

// WithPlugin registers a plugin to be initialized when the loop starts.
var WithPlugin = loop.WithPlugin

// ErrBreak signals orderly circuit termination when returned by an action.
var ErrBreak = loop.ErrBreak
