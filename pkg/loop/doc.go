// Package loop provides an embeddable lifecycle-managed loop engine.
//
// A Handle runs a repeating circuit of named actions framed by nine fixed
// lifecycle events. It can be used from the bundled CLI or embedded as a
// library in other Go programs.
//
// # Basic Usage
//
// Configure a handle while it is in [StateLoad], then start it:
//
//	h, err := loop.New(loop.WithRole("worker"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	_ = h.OnStart(func(ctx context.Context, ec any) (any, error) {
//	    return "ready", nil
//	})
//	_ = h.AppendAction("tick", func(ctx context.Context, ac any) (any, error) {
//	    // ... one unit of work; return loop.ErrBreak to finish ...
//	    return nil, loop.ErrBreak
//	}, false)
//
//	task, err := h.Start(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := task.Wait(ctx); err != nil {
//	    log.Printf("run failed: %v", err)
//	}
//
// # Lifecycle
//
// A handle moves through exactly three states: [StateLoad] for registration,
// [StateActive] while the run is in flight, [StateTerminated] once it has
// finished. Registration after Start and any operation after termination fail
// with [ErrInvalidState]; the post-termination case also matches
// [ErrTerminated]. A handle cannot be restarted.
//
// # Events and the Circuit
//
// The nine events ([EventStart] through [EventLoopResult]) are fixed; each
// takes at most one handler, and events without a handler are skipped. The
// circuit body is the ordered list of appended actions, executed repeatedly
// until an action returns [ErrBreak], fails, or the run is canceled. However
// the circuit ends, CLEANUP and LOOP_RESULT always fire before termination.
//
// # Pause and Resume
//
// [Handle.Pause] only marks an intent; the circuit pauses at the safe point
// after the current iteration completes. [Handle.Resume] unblocks a paused
// circuit immediately. Both intents issued within one iteration fire PAUSE
// then RESUME back to back at the safe point.
//
// # Reactors
//
// A [ReactorFactory] installed via [Handle.SetEventReactorFactory] or
// [Handle.SetActionReactorFactory] builds, per run, a [Reactor] that is
// invoked with the name of each event or action about to execute, plus the
// context object handed to handlers and actions.
//
// # Results
//
// [Handle.Result] exposes the recorder: the final loop result (the
// LOOP_RESULT handler's return value), the last dispatched event, and up to
// four independently classified errors. Until the run terminates the result
// reads as [PendingResult].
//
// # Plugins
//
// Plugins attach background behavior to the run:
//
//	import "github.com/loopforge/loopengine/plugins/pausefile"
//	import "github.com/loopforge/loopengine/plugins/interval"
//
//	h, err := loop.New(
//	    loop.WithRole("worker"),
//	    interval.WithInterval(interval.Config{Every: time.Second}),
//	    pausefile.WithPauseFile(pausefile.Config{Path: "/tmp/worker.pause"}),
//	)
package loop
