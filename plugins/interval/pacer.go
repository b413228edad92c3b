// Package interval provides iteration pacing for a loop handle. Its reactor
// delays each notified action so consecutive firings are at least a fixed
// duration apart, turning a tight circuit into a periodic one.
package interval

import (
	"sync"
	"time"

	"github.com/loopforge/loopengine/pkg/loop"
)

// Pacer spaces out action executions. Install its factory as the action
// reactor; only actions appended with the notify flag are paced.
type Pacer struct {
	every time.Duration

	mu    sync.Mutex
	next  time.Time
	fired map[string]int
}

// Config holds configuration options for the pacer.
type Config struct {
	// Every is the minimum spacing between consecutive paced firings.
	// Default: 1 second
	Every time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Every: time.Second,
	}
}

// New creates a pacer with the given configuration.
func New(cfg Config) *Pacer {
	if cfg.Every <= 0 {
		cfg.Every = time.Second
	}
	return &Pacer{
		every: cfg.Every,
		fired: make(map[string]int),
	}
}

// Factory returns the reactor factory to install via
// loop.WithActionReactorFactory or Handle.SetActionReactorFactory. The
// produced reactor sleeps until the next slot before each notified action;
// the action context is left at its default.
func (p *Pacer) Factory() loop.ReactorFactory {
	return func(ctl *loop.Control) (loop.Reactor, any) {
		reactor := func(nextProc string) error {
			p.wait()
			p.mu.Lock()
			p.fired[nextProc]++
			p.mu.Unlock()
			return nil
		}
		return reactor, ctl.EventContext()
	}
}

// wait sleeps until the next slot and schedules the one after. A pause
// longer than the interval does not cause a burst: the schedule restarts
// from the current time.
func (p *Pacer) wait() {
	p.mu.Lock()
	now := time.Now()
	d := p.next.Sub(now)
	if d < 0 {
		d = 0
		p.next = now.Add(p.every)
	} else {
		p.next = p.next.Add(p.every)
	}
	p.mu.Unlock()

	if d > 0 {
		time.Sleep(d)
	}
}

// Fired returns how many times the named action has been paced.
func (p *Pacer) Fired(action string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fired[action]
}

// Stats returns a copy of the per-action firing counts.
func (p *Pacer) Stats() map[string]int {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[string]int, len(p.fired))
	for k, v := range p.fired {
		out[k] = v
	}
	return out
}
