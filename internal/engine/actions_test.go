package engine

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestActionRegistryAppend(t *testing.T) {
	noop := func(ctx context.Context, ac any) (any, error) { return nil, nil }

	tests := []struct {
		name    string
		reg     func(r *ActionRegistry) error
		wantErr bool
	}{
		{
			"append unique names",
			func(r *ActionRegistry) error {
				if err := r.Append("a", noop, false); err != nil {
					return err
				}
				return r.Append("b", noop, true)
			},
			false,
		},
		{
			"duplicate name rejected",
			func(r *ActionRegistry) error {
				if err := r.Append("a", noop, false); err != nil {
					return err
				}
				return r.Append("a", noop, false)
			},
			true,
		},
		{
			"empty name rejected",
			func(r *ActionRegistry) error { return r.Append("", noop, false) },
			true,
		},
		{
			"nil function rejected",
			func(r *ActionRegistry) error { return r.Append("a", nil, false) },
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewActionRegistry(NewStateMachine())
			err := tt.reg(r)
			if (err != nil) != tt.wantErr {
				t.Errorf("error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestActionRegistryOrder(t *testing.T) {
	noop := func(ctx context.Context, ac any) (any, error) { return nil, nil }
	r := NewActionRegistry(NewStateMachine())
	for _, name := range []string{"fetch", "transform", "store"} {
		if err := r.Append(name, noop, name == "transform"); err != nil {
			t.Fatal(err)
		}
	}

	if got, want := r.Names(), []string{"fetch", "transform", "store"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	if got, want := r.NotifyFlags(), []bool{false, true, false}; !reflect.DeepEqual(got, want) {
		t.Errorf("NotifyFlags() = %v, want %v", got, want)
	}
	if r.Len() != 3 {
		t.Errorf("Len() = %d, want 3", r.Len())
	}
}

func TestActionRegistryGatedToLoad(t *testing.T) {
	noop := func(ctx context.Context, ac any) (any, error) { return nil, nil }
	sm := NewStateMachine()
	r := NewActionRegistry(sm)
	if err := sm.Transit(StateActive); err != nil {
		t.Fatal(err)
	}
	if err := r.Append("late", noop, false); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Append after start = %v, want ErrInvalidState", err)
	}
}
