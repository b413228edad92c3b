package loop_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/loopforge/loopengine/pkg/loop"
)

func breakAfter(n int) loop.Action {
	count := 0
	return func(ctx context.Context, ac any) (any, error) {
		count++
		if count >= n {
			return nil, loop.ErrBreak
		}
		return count, nil
	}
}

func mustWait(t *testing.T, task *loop.Task) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := task.Wait(ctx)
	if errors.Is(err, context.DeadlineExceeded) && task.Running() {
		t.Fatal("run did not terminate")
	}
	return err
}

func TestHandleLifecycle(t *testing.T) {
	h, err := loop.New(loop.WithRole("worker"))
	if err != nil {
		t.Fatal(err)
	}
	if got := h.State(); got != loop.StateLoad {
		t.Fatalf("initial state = %v, want StateLoad", got)
	}

	if err := h.OnLoopResult(func(ctx context.Context, ec any) (any, error) {
		return "done", nil
	}); err != nil {
		t.Fatal(err)
	}
	if err := h.AppendAction("work", breakAfter(2), false); err != nil {
		t.Fatal(err)
	}

	task, err := h.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if err := mustWait(t, task); err != nil {
		t.Fatalf("run error = %v", err)
	}

	if got := h.State(); got != loop.StateTerminated {
		t.Errorf("final state = %v, want StateTerminated", got)
	}
	if got := h.Result().LoopResult(); got != "done" {
		t.Errorf("loop result = %v, want done", got)
	}
	if got := h.Mode(); got != loop.ModeRunning {
		t.Errorf("final mode = %v, want ModeRunning", got)
	}
}

func TestRegistrationGatedToLoad(t *testing.T) {
	h, err := loop.New()
	if err != nil {
		t.Fatal(err)
	}

	release := make(chan struct{})
	started := make(chan struct{})
	var once sync.Once
	if err := h.AppendAction("wait", func(ctx context.Context, ac any) (any, error) {
		once.Do(func() { close(started) })
		<-release
		return nil, loop.ErrBreak
	}, false); err != nil {
		t.Fatal(err)
	}

	task, err := h.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	<-started

	noop := func(ctx context.Context, ec any) (any, error) { return nil, nil }
	if err := h.OnStart(noop); !errors.Is(err, loop.ErrInvalidState) {
		t.Errorf("OnStart while active = %v, want ErrInvalidState", err)
	}
	if err := h.AppendAction("late", breakAfter(1), false); !errors.Is(err, loop.ErrInvalidState) {
		t.Errorf("AppendAction while active = %v, want ErrInvalidState", err)
	}
	if err := h.SetActionReactorFactory(func(ctl *loop.Control) (loop.Reactor, any) {
		return func(string) error { return nil }, nil
	}); !errors.Is(err, loop.ErrInvalidState) {
		t.Errorf("SetActionReactorFactory while active = %v, want ErrInvalidState", err)
	}

	close(release)
	if err := mustWait(t, task); err != nil {
		t.Fatal(err)
	}

	if err := h.OnStart(noop); !errors.Is(err, loop.ErrTerminated) {
		t.Errorf("OnStart after termination = %v, want ErrTerminated", err)
	}
}

func TestDriverOpsBeforeStart(t *testing.T) {
	h, err := loop.New()
	if err != nil {
		t.Fatal(err)
	}
	for name, op := range map[string]func() error{
		"Stop":   h.Stop,
		"Pause":  h.Pause,
		"Resume": h.Resume,
	} {
		if err := op(); !errors.Is(err, loop.ErrInvalidState) {
			t.Errorf("%s before start = %v, want ErrInvalidState", name, err)
		}
	}
	if err := h.Wait(context.Background()); !errors.Is(err, loop.ErrInvalidState) {
		t.Errorf("Wait before start = %v, want ErrInvalidState", err)
	}
}

func TestReleaseResultGatedToTerminated(t *testing.T) {
	h, err := loop.New()
	if err != nil {
		t.Fatal(err)
	}
	if err := h.ReleaseResult(); !errors.Is(err, loop.ErrInvalidState) {
		t.Errorf("ReleaseResult in load = %v, want ErrInvalidState", err)
	}

	if err := h.AppendAction("work", breakAfter(1), false); err != nil {
		t.Fatal(err)
	}
	task, err := h.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if err := mustWait(t, task); err != nil {
		t.Fatal(err)
	}

	if err := h.ReleaseResult(); err != nil {
		t.Fatalf("ReleaseResult after termination = %v", err)
	}
	if got := h.Result().LoopResult(); got != nil {
		t.Errorf("released loop result = %v, want nil", got)
	}
}

// trackingPlugin records its lifecycle calls.
type trackingPlugin struct {
	mu          sync.Mutex
	initialized bool
	shutdown    chan struct{}
	cfg         loop.PluginConfig
	initErr     error
}

func newTrackingPlugin() *trackingPlugin {
	return &trackingPlugin{shutdown: make(chan struct{})}
}

func (p *trackingPlugin) Name() string { return "tracking" }

func (p *trackingPlugin) Initialize(ctx context.Context, cfg loop.PluginConfig) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initErr != nil {
		return p.initErr
	}
	p.initialized = true
	p.cfg = cfg
	return nil
}

func (p *trackingPlugin) Shutdown(ctx context.Context) error {
	close(p.shutdown)
	return nil
}

func TestPluginLifecycle(t *testing.T) {
	plugin := newTrackingPlugin()
	h, err := loop.New(
		loop.WithRole("plugged"),
		loop.WithPlugin(plugin),
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := h.AppendAction("work", breakAfter(1), false); err != nil {
		t.Fatal(err)
	}

	task, err := h.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	plugin.mu.Lock()
	initialized := plugin.initialized
	cfg := plugin.cfg
	plugin.mu.Unlock()
	if !initialized {
		t.Fatal("plugin not initialized by Start")
	}
	if cfg.Role != "plugged" {
		t.Errorf("plugin config role = %q, want plugged", cfg.Role)
	}
	if cfg.Controller == nil {
		t.Error("plugin config has no controller")
	}

	if err := mustWait(t, task); err != nil {
		t.Fatal(err)
	}
	select {
	case <-plugin.shutdown:
	case <-time.After(5 * time.Second):
		t.Fatal("plugin not shut down after termination")
	}
}

func TestPluginInitFailureAbortsStart(t *testing.T) {
	plugin := newTrackingPlugin()
	plugin.initErr = errors.New("missing socket")

	h, err := loop.New(loop.WithPlugin(plugin))
	if err != nil {
		t.Fatal(err)
	}
	if err := h.AppendAction("work", breakAfter(1), false); err != nil {
		t.Fatal(err)
	}

	if _, err := h.Start(context.Background()); !errors.Is(err, plugin.initErr) {
		t.Fatalf("Start = %v, want plugin init error", err)
	}
	// The run was stopped and fully finalized.
	if got := h.State(); got != loop.StateTerminated {
		t.Errorf("state after failed start = %v, want StateTerminated", got)
	}
}

func TestControllerDrivesPauseResume(t *testing.T) {
	h, err := loop.New()
	if err != nil {
		t.Fatal(err)
	}

	var fired []loop.Event
	for _, ev := range []loop.Event{loop.EventPause, loop.EventResume} {
		ev := ev
		if err := h.SetEventHandler(ev, func(ctx context.Context, ec any) (any, error) {
			fired = append(fired, ev)
			return nil, nil
		}); err != nil {
			t.Fatal(err)
		}
	}

	started := make(chan struct{})
	release := make(chan struct{})
	iter := 0
	if err := h.AppendAction("work", func(ctx context.Context, ac any) (any, error) {
		iter++
		if iter == 1 {
			close(started)
			<-release
			return nil, nil
		}
		return nil, loop.ErrBreak
	}, false); err != nil {
		t.Fatal(err)
	}

	task, err := h.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	// Drive through the Controller view, the way a plugin would.
	var ctl loop.Controller = h
	<-started
	if err := ctl.Pause(); err != nil {
		t.Fatal(err)
	}
	if err := ctl.Resume(); err != nil {
		t.Fatal(err)
	}
	close(release)

	if err := mustWait(t, task); err != nil {
		t.Fatal(err)
	}
	if len(fired) != 2 || fired[0] != loop.EventPause || fired[1] != loop.EventResume {
		t.Errorf("fired = %v, want [pause resume]", fired)
	}
}
