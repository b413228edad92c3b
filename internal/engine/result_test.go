package engine

import (
	"errors"
	"testing"
)

func TestRecorderInitialPending(t *testing.T) {
	r := NewRecorder()
	if got := r.LoopResult(); got != PendingResult {
		t.Errorf("initial LoopResult = %v, want PendingResult", got)
	}
}

func TestRecorderFirstWriteWins(t *testing.T) {
	r := NewRecorder()
	r.SetLoopResult(42)
	r.SetLoopResult(43)
	if got := r.LoopResult(); got != 42 {
		t.Errorf("LoopResult = %v, want 42", got)
	}

	first := errors.New("first")
	r.SetCircuitError(first)
	r.SetCircuitError(errors.New("second"))
	if got := r.CircuitError(); got != first {
		t.Errorf("CircuitError = %v, want first", got)
	}
}

func TestRecorderNilResultIsRecorded(t *testing.T) {
	r := NewRecorder()
	r.SetLoopResult(nil)
	if got := r.LoopResult(); got != nil {
		t.Errorf("LoopResult = %v, want nil", got)
	}
	// nil counts as a write; a later value must not displace it.
	r.SetLoopResult(7)
	if got := r.LoopResult(); got != nil {
		t.Errorf("LoopResult after second write = %v, want nil", got)
	}
}

func TestRecorderErrorSlotsAreIndependent(t *testing.T) {
	r := NewRecorder()
	circuitErr := errors.New("circuit")
	handlerErr := errors.New("handler")
	r.SetCircuitError(circuitErr)
	r.SetHandlerError(handlerErr)

	if r.CircuitError() != circuitErr {
		t.Error("circuit slot lost its error")
	}
	if r.HandlerError() != handlerErr {
		t.Error("handler slot lost its error")
	}
	if r.EventReactorError() != nil || r.InternalError() != nil {
		t.Error("untouched slots must stay nil")
	}
}

func TestRecorderUnclean(t *testing.T) {
	r := NewRecorder()
	if r.Unclean() {
		t.Error("new recorder reports unclean")
	}
	r.SetUnclean()
	if !r.Unclean() {
		t.Error("SetUnclean not observed")
	}
}
