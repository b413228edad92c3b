package pausefile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/loopforge/loopengine/pkg/log"
	"github.com/loopforge/loopengine/pkg/loop"
)

// fakeController records pause/resume calls.
type fakeController struct {
	pauses  chan struct{}
	resumes chan struct{}
}

func newFakeController() *fakeController {
	return &fakeController{
		pauses:  make(chan struct{}, 8),
		resumes: make(chan struct{}, 8),
	}
}

func (f *fakeController) Pause() error {
	f.pauses <- struct{}{}
	return nil
}

func (f *fakeController) Resume() error {
	f.resumes <- struct{}{}
	return nil
}

func (f *fakeController) Stop() error { return nil }

func (f *fakeController) State() loop.State { return loop.StateActive }

func (f *fakeController) Mode() loop.Mode { return loop.ModeRunning }

func TestSyncEdgeTriggered(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "worker.pause")

	ctl := newFakeController()
	p := New(Config{Path: path})
	p.ctl = ctl
	p.logger = log.NewNoopLogger()

	// Absent file, nothing paused: no calls.
	p.sync()
	if len(ctl.pauses) != 0 || len(ctl.resumes) != 0 {
		t.Fatal("sync acted without a state change")
	}

	// File appears: exactly one pause, repeated checks do not stack.
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	p.sync()
	p.sync()
	if len(ctl.pauses) != 1 {
		t.Fatalf("pauses = %d, want 1", len(ctl.pauses))
	}

	// File disappears: exactly one resume.
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	p.sync()
	p.sync()
	if len(ctl.resumes) != 1 {
		t.Fatalf("resumes = %d, want 1", len(ctl.resumes))
	}
}

func TestWatchPauseAndResume(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "worker.pause")

	ctl := newFakeController()
	p := New(Config{Path: path, PollInterval: 50 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := p.Initialize(ctx, loop.PluginConfig{
		Role:       "test",
		Logger:     log.NewNoopLogger(),
		Controller: ctl,
	}); err != nil {
		t.Fatal(err)
	}
	defer func() {
		if err := p.Shutdown(context.Background()); err != nil {
			t.Errorf("Shutdown = %v", err)
		}
	}()

	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-ctl.pauses:
	case <-time.After(5 * time.Second):
		t.Fatal("control file creation did not trigger a pause")
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	select {
	case <-ctl.resumes:
	case <-time.After(5 * time.Second):
		t.Fatal("control file removal did not trigger a resume")
	}
}

func TestInitializeWithoutPathIsDisabled(t *testing.T) {
	p := New(Config{})
	if err := p.Initialize(context.Background(), loop.PluginConfig{
		Logger:     log.NewNoopLogger(),
		Controller: newFakeController(),
	}); err != nil {
		t.Fatalf("Initialize = %v", err)
	}
	// No watcher was started; Shutdown must still be safe.
	if err := p.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown = %v", err)
	}
}
