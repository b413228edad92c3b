package engine

import (
	"context"
	"errors"
	"testing"
)

func TestEventValid(t *testing.T) {
	for _, ev := range AllEvents() {
		if !ev.Valid() {
			t.Errorf("event %q reported invalid", ev)
		}
	}
	if Event("shutdown").Valid() {
		t.Error("undefined event reported valid")
	}
}

func TestEventRegistrySet(t *testing.T) {
	noop := func(ctx context.Context, ec any) (any, error) { return nil, nil }

	tests := []struct {
		name    string
		event   Event
		state   State
		wantErr error
	}{
		{"valid event in load", EventStart, StateLoad, nil},
		{"undefined event", Event("shutdown"), StateLoad, nil}, // wantErr checked separately
		{"registration after start", EventStart, StateActive, ErrInvalidState},
		{"registration after termination", EventStart, StateTerminated, ErrTerminated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm := NewStateMachine()
			if tt.state >= StateActive {
				if err := sm.Transit(StateActive); err != nil {
					t.Fatal(err)
				}
			}
			if tt.state == StateTerminated {
				if err := sm.Transit(StateTerminated); err != nil {
					t.Fatal(err)
				}
			}
			reg := NewEventRegistry(sm)
			err := reg.Set(tt.event, noop)

			if !tt.event.Valid() {
				if err == nil {
					t.Error("Set accepted an undefined event")
				}
				return
			}
			if tt.wantErr == nil && err != nil {
				t.Errorf("Set() = %v, want nil", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Set() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestEventRegistryRegistered(t *testing.T) {
	sm := NewStateMachine()
	reg := NewEventRegistry(sm)
	noop := func(ctx context.Context, ec any) (any, error) { return nil, nil }

	if err := reg.Set(EventStart, noop); err != nil {
		t.Fatal(err)
	}
	if err := reg.Set(EventCleanup, noop); err != nil {
		t.Fatal(err)
	}

	got := reg.Registered()
	if len(got) != 2 {
		t.Fatalf("Registered() has %d entries, want 2", len(got))
	}
	for _, ev := range []Event{EventStart, EventCleanup} {
		if _, ok := got[ev]; !ok {
			t.Errorf("Registered() missing %q", ev)
		}
	}
}
