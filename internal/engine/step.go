package engine

import "sync"

// Sentinel is an opaque marker value compared by identity.
type Sentinel struct{ name string }

func (s *Sentinel) String() string { return s.name }

// Unset marks a step slot that has not recorded a result yet.
var Unset = &Sentinel{"<unset>"}

// StepSlot remembers the name and result of the most recently executed event
// or action, for hand-off to the following step. Two independent slots exist
// per run: one for events, one for actions. The mutex keeps the pair readable
// even while the run is aborting on another goroutine.
type StepSlot struct {
	mu     sync.Mutex
	proc   string
	result any
}

// NewStepSlot creates an empty slot.
func NewStepSlot() *StepSlot {
	return &StepSlot{proc: Unset.String(), result: Unset}
}

// Record stores the (process name, result) pair of the step that just ran.
func (s *StepSlot) Record(proc string, result any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.proc = proc
	s.result = result
}

// Prev returns the most recently recorded process name and result.
func (s *StepSlot) Prev() (string, any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.proc, s.result
}

// release clears the slot after termination.
func (s *StepSlot) release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.proc = ""
	s.result = nil
}
