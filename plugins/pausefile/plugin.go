// Package pausefile provides file-based pause control for a loop handle.
// When enabled, it watches a control file: creating the file pauses the
// circuit at its next safe point, removing it resumes.
package pausefile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/loopforge/loopengine/pkg/log"
	"github.com/loopforge/loopengine/pkg/loop"
)

// Plugin implements pause-file monitoring. It pairs each appearance of the
// control file with a Pause and each disappearance with a Resume, so an
// operator can suspend a long-running loop with touch and rm.
type Plugin struct {
	mu sync.Mutex

	// Configuration
	path         string
	pollInterval time.Duration

	// Runtime state
	ctl    loop.Controller
	logger log.Logger
	cancel context.CancelFunc
	wg     sync.WaitGroup
	paused bool
}

// Config holds configuration options for the pause file plugin.
type Config struct {
	// Path is the control file to watch. Required.
	Path string

	// PollInterval is the fallback re-check period used when the watch
	// directory cannot be monitored through fsnotify.
	// Default: 2 seconds
	PollInterval time.Duration
}

// DefaultConfig returns a Config with sensible defaults. Path must still be
// set by the caller.
func DefaultConfig() Config {
	return Config{
		PollInterval: 2 * time.Second,
	}
}

// New creates a new pause file plugin with the given configuration.
func New(cfg Config) *Plugin {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 2 * time.Second
	}
	return &Plugin{
		path:         cfg.Path,
		pollInterval: cfg.PollInterval,
	}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "pausefile"
}

// Initialize starts the control file watcher.
func (p *Plugin) Initialize(ctx context.Context, cfg loop.PluginConfig) error {
	p.mu.Lock()
	p.ctl = cfg.Controller
	p.logger = cfg.Logger
	p.mu.Unlock()

	if p.path == "" {
		p.logger.Warn("pause file plugin disabled: no path configured")
		return nil
	}

	watchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.logger.Info("pause file plugin initialized", log.String("path", p.path))

	p.wg.Add(1)
	go p.watchLoop(watchCtx)

	return nil
}

// Shutdown stops the watcher.
func (p *Plugin) Shutdown(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
	return nil
}

// watchLoop tracks the control file through fsnotify, with a polling ticker
// as safety net for editors and filesystems that bypass the watch.
func (p *Plugin) watchLoop(ctx context.Context) {
	defer p.wg.Done()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		p.logger.Error("pause file: failed to create watcher", log.Err(err))
		p.pollLoop(ctx)
		return
	}
	defer watcher.Close()

	// Watch the parent directory; the control file itself may not exist yet.
	if err := watcher.Add(filepath.Dir(p.path)); err != nil {
		p.logger.Error("pause file: failed to watch directory", log.Err(err))
		p.pollLoop(ctx)
		return
	}

	p.sync()

	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Name != p.path {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			p.sync()

		case <-ticker.C:
			p.sync()

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			p.logger.Error("pause file: watcher error", log.Err(err))
		}
	}
}

// pollLoop is the fsnotify-less fallback.
func (p *Plugin) pollLoop(ctx context.Context) {
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.sync()
		}
	}
}

// sync aligns the loop's pause intent with the file's presence. Transitions
// are edge-triggered so repeated checks do not stack intents.
func (p *Plugin) sync() {
	_, statErr := os.Stat(p.path)
	exists := statErr == nil

	p.mu.Lock()
	defer p.mu.Unlock()

	switch {
	case exists && !p.paused:
		if err := p.ctl.Pause(); err != nil {
			if !errors.Is(err, loop.ErrInvalidState) {
				p.logger.Error("pause file: pause failed", log.Err(err))
			}
			return
		}
		p.paused = true
		p.logger.Info("pause file: pause requested", log.String("path", p.path))

	case !exists && p.paused:
		if err := p.ctl.Resume(); err != nil {
			if !errors.Is(err, loop.ErrInvalidState) {
				p.logger.Error("pause file: resume failed", log.Err(err))
			}
			return
		}
		p.paused = false
		p.logger.Info("pause file: resume requested", log.String("path", p.path))
	}
}

// Ensure Plugin implements loop.Plugin.
var _ loop.Plugin = (*Plugin)(nil)
