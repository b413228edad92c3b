package engine

import (
	"context"
	"errors"
)

// runCircuit executes the repeating circuit body: every iteration invokes the
// registered actions in order, then reaches the single safe point where
// pending pause/resume intents are consumed (pause before resume) and the
// readiness gate is awaited.
//
// Returns nil when an action or the action reactor signals ErrBreak, the
// context error when the run is canceled, a *CircuitError for any other
// action/reactor failure, and event-classified errors raised while firing
// PAUSE/RESUME at the safe point.
func (c *Control) runCircuit(ctx context.Context, actions []actionEntry, irq *Interrupt) error {
	for {
		for _, a := range actions {
			if a.notify && c.actionReactor != nil {
				if err := c.actionReactor(a.name); err != nil {
					if errors.Is(err, ErrBreak) {
						return nil
					}
					return &CircuitError{Action: a.name, Err: err}
				}
			}
			result, err := a.fn(ctx, c.actionCtx)
			if err != nil {
				if errors.Is(err, ErrBreak) {
					return nil
				}
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				return &CircuitError{Action: a.name, Err: err}
			}
			c.actionStep.Record(a.name, result)
		}

		// Safe point. Pause is consumed before resume so a pause+resume pair
		// issued mid-iteration fires PAUSE then RESUME here, in that order.
		if irq.PauseRequested() {
			if err := irq.ConsumePause(ctx, c.ProcessEvent); err != nil {
				return err
			}
		}
		if irq.ResumeScheduled() {
			if err := irq.PerformResume(ctx, c.ProcessEvent); err != nil {
				return err
			}
		}
		if err := irq.WaitResume(ctx); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}
