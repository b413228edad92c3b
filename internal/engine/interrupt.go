package engine

import (
	"context"
	"sync"
)

// Mode is the run-mode token of the interrupt controller.
type Mode int

const (
	ModeRunning Mode = iota
	ModePause
)

// String returns a human-readable representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeRunning:
		return "Running"
	case ModePause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// eventFunc fires one lifecycle event through the engine's event pipeline.
type eventFunc func(ctx context.Context, event Event) error

// Interrupt holds the pause/resume intents, the run-mode token and the
// readiness gate. The protocol is deliberately asymmetric:
//
//   - RequestPause only marks the intent; the circuit keeps running until it
//     reaches its safe point, where ConsumePause fires the PAUSE event and
//     closes the gate.
//   - Resume marks its intent AND opens the gate immediately, so a circuit
//     blocked in WaitResume wakes without waiting for event dispatch; the
//     RESUME event fires at the next safe point via PerformResume.
//
// Intents and the gate are the only engine state touched from two goroutines
// (driver and circuit), hence the mutex.
type Interrupt struct {
	mu              sync.Mutex
	mode            Mode
	pauseRequested  bool
	resumeScheduled bool
	ready           chan struct{}
	readySet        bool
}

// NewInterrupt creates a controller in ModeRunning with the gate open.
func NewInterrupt() *Interrupt {
	ch := make(chan struct{})
	close(ch)
	return &Interrupt{mode: ModeRunning, ready: ch, readySet: true}
}

// Mode returns the current run mode.
func (i *Interrupt) Mode() Mode {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.mode
}

// PauseRequested reports whether a pause intent is pending.
func (i *Interrupt) PauseRequested() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.pauseRequested
}

// ResumeScheduled reports whether a resume intent is pending.
func (i *Interrupt) ResumeScheduled() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.resumeScheduled
}

// RequestPause marks the pause intent. It neither blocks nor interrupts the
// circuit; the flag is consumed at the next safe point.
func (i *Interrupt) RequestPause() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.pauseRequested = true
}

// Resume marks the resume intent and opens the readiness gate right away,
// waking any pending WaitResume. Callable from any goroutine at any time.
func (i *Interrupt) Resume() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.resumeScheduled = true
	i.setReadyLocked()
}

func (i *Interrupt) setReadyLocked() {
	if !i.readySet {
		close(i.ready)
		i.readySet = true
	}
}

func (i *Interrupt) clearReadyLocked() {
	if i.readySet {
		i.ready = make(chan struct{})
		i.readySet = false
	}
}

// ConsumePause runs at the circuit's safe point: clears the pause intent,
// fires the PAUSE event, closes the readiness gate and switches to ModePause.
func (i *Interrupt) ConsumePause(ctx context.Context, fire eventFunc) error {
	i.mu.Lock()
	i.pauseRequested = false
	i.mu.Unlock()

	if err := fire(ctx, EventPause); err != nil {
		return err
	}

	i.mu.Lock()
	i.clearReadyLocked()
	i.mode = ModePause
	i.mu.Unlock()
	return nil
}

// PerformResume runs at the circuit's safe point: clears the resume intent,
// fires the RESUME event and switches back to ModeRunning. The gate is
// reopened here as well; when both intents were pending at the same safe
// point, ConsumePause closed it after Resume had already opened it.
func (i *Interrupt) PerformResume(ctx context.Context, fire eventFunc) error {
	i.mu.Lock()
	i.resumeScheduled = false
	i.mu.Unlock()

	if err := fire(ctx, EventResume); err != nil {
		return err
	}

	i.mu.Lock()
	i.setReadyLocked()
	i.mode = ModeRunning
	i.mu.Unlock()
	return nil
}

// WaitResume blocks until the readiness gate is open or ctx is canceled.
// While running the gate is open, so the common case returns immediately.
func (i *Interrupt) WaitResume(ctx context.Context) error {
	i.mu.Lock()
	ch := i.ready
	i.mu.Unlock()

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
