package engine

import "sync"

// Result sentinels, compared by identity.
var (
	// PendingResult is held by the recorder until the run reaches its
	// finalization block.
	PendingResult = &Sentinel{"<pending_result>"}
	// NoResult replaces the loop result when result computation itself failed.
	NoResult = &Sentinel{"<no_result>"}
)

// Recorder holds the final produced value and up to four independently
// classified errors. Each field is write-once: the first write wins, later
// writes are ignored. It stays readable after TERMINATED until the driver
// releases it.
type Recorder struct {
	mu sync.Mutex

	loopResult    any
	loopResultSet bool
	lastProc      string

	circuitErr      error
	eventReactorErr error
	handlerErr      error
	internalErr     error

	unclean bool
}

// NewRecorder creates a recorder holding PendingResult.
func NewRecorder() *Recorder {
	return &Recorder{loopResult: PendingResult}
}

// SetLoopResult records the final result of the run.
func (r *Recorder) SetLoopResult(v any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.loopResultSet {
		r.loopResult = v
		r.loopResultSet = true
	}
}

// SetLastProcess records the name of the last process executed.
func (r *Recorder) SetLastProcess(proc string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastProc = proc
}

// SetCircuitError records a circuit failure.
func (r *Recorder) SetCircuitError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.circuitErr == nil {
		r.circuitErr = err
	}
}

// SetEventReactorError records an event reactor failure.
func (r *Recorder) SetEventReactorError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.eventReactorErr == nil {
		r.eventReactorErr = err
	}
}

// SetHandlerError records an event handler failure.
func (r *Recorder) SetHandlerError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.handlerErr == nil {
		r.handlerErr = err
	}
}

// SetInternalError records an unclassified engine failure.
func (r *Recorder) SetInternalError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.internalErr == nil {
		r.internalErr = err
	}
}

// SetUnclean marks that the CLEANUP dispatch failed. The state machine still
// reaches TERMINATED; this is the degraded-termination observation.
func (r *Recorder) SetUnclean() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unclean = true
}

// LoopResult returns the recorded final result, PendingResult before the
// finalization block has run, or NoResult if finalization failed.
func (r *Recorder) LoopResult() any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loopResult
}

// LastProcess returns the name of the last process executed.
func (r *Recorder) LastProcess() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastProc
}

// CircuitError returns the recorded circuit error, if any.
func (r *Recorder) CircuitError() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.circuitErr
}

// EventReactorError returns the recorded event reactor error, if any.
func (r *Recorder) EventReactorError() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.eventReactorErr
}

// HandlerError returns the recorded event handler error, if any.
func (r *Recorder) HandlerError() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.handlerErr
}

// InternalError returns the recorded internal error, if any.
func (r *Recorder) InternalError() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.internalErr
}

// Unclean reports whether the CLEANUP dispatch failed.
func (r *Recorder) Unclean() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.unclean
}

// Release clears the recorder. The caller gates this to TERMINATED.
func (r *Recorder) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loopResult = nil
	r.circuitErr = nil
	r.eventReactorErr = nil
	r.handlerErr = nil
	r.internalErr = nil
}
