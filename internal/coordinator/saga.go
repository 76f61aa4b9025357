// Package coordinator provides the saga engine used by order creation.
//
// A saga is a sequence of Steps executed in order. When a step fails, every
// previously successful step is compensated in LIFO order, and the failing
// step's error is returned to the caller. Every transition attempt is
// recorded in the saga log so an operator can reconstruct what happened,
// including the known gap where a payment succeeds but the process dies
// before the status write.
package coordinator

import (
	"context"
	"log/slog"

	"github.com/berkeshop/ecommerce-orders/internal/coordinator/sagalog"
)

// Step is a single unit of work in the saga. Compensate undoes (or records
// the failure of) a previously successful Execute; steps without a
// meaningful compensation return nil.
type Step interface {
	Name() string
	Execute(ctx context.Context) error
	Compensate(ctx context.Context) error
}

// Orchestrator runs a collection of Steps for one saga instance.
type Orchestrator struct {
	sagaID  string
	payload string
	steps   []Step
	log     sagalog.Repository // nil-safe: transitions are not persisted if nil
}

// NewOrchestrator builds an orchestrator for one saga execution. sagaID is
// the business identifier (the order reference) and payload the serialized
// input, stored once on the STARTED row.
func NewOrchestrator(sagaID, payload string, steps []Step, log sagalog.Repository) *Orchestrator {
	return &Orchestrator{
		sagaID:  sagaID,
		payload: payload,
		steps:   steps,
		log:     log,
	}
}

// Start runs the steps sequentially. On failure it compensates all previously
// successful steps (LIFO) and returns the original step error. Saga-log write
// failures are logged and swallowed: the audit trail must never fail the
// business transaction.
func (o *Orchestrator) Start(ctx context.Context) error {
	o.record(ctx, sagalog.NewEntry(ctx, o.sagaID, sagalog.StatusStarted, "", o.payload, nil))

	var done []Step
	for _, step := range o.steps {
		slog.InfoContext(ctx, "executing saga step", "saga_id", o.sagaID, "step", step.Name())

		if err := step.Execute(ctx); err != nil {
			slog.ErrorContext(ctx, "saga step failed, compensating",
				"saga_id", o.sagaID, "step", step.Name(), "error", err)

			errMsgs := []string{step.Name() + ": " + err.Error()}
			o.record(ctx, sagalog.NewEntry(ctx, o.sagaID, sagalog.StatusCompensating, step.Name(), "", errMsgs))

			errMsgs = append(errMsgs, o.rollback(ctx, done)...)
			o.record(ctx, sagalog.NewEntry(ctx, o.sagaID, sagalog.StatusFailed, step.Name(), "", errMsgs))
			return err
		}

		done = append(done, step)
		o.record(ctx, sagalog.NewEntry(ctx, o.sagaID, sagalog.StatusStepDone, step.Name(), "", nil))
	}

	o.record(ctx, sagalog.NewEntry(ctx, o.sagaID, sagalog.StatusCompleted, "", "", nil))
	slog.InfoContext(ctx, "saga completed", "saga_id", o.sagaID)
	return nil
}

// rollback compensates steps in reverse order and returns the messages of
// any compensations that themselves failed.
func (o *Orchestrator) rollback(ctx context.Context, steps []Step) []string {
	var failures []string
	for i := len(steps) - 1; i >= 0; i-- {
		step := steps[i]
		slog.InfoContext(ctx, "compensating saga step", "saga_id", o.sagaID, "step", step.Name())
		if err := step.Compensate(ctx); err != nil {
			slog.ErrorContext(ctx, "CRITICAL: saga compensation failed",
				"saga_id", o.sagaID, "step", step.Name(), "error", err)
			failures = append(failures, "compensation of "+step.Name()+": "+err.Error())
		}
	}
	return failures
}

func (o *Orchestrator) record(ctx context.Context, entry *sagalog.SagaLog) {
	if o.log == nil {
		return
	}
	if err := o.log.Save(ctx, entry); err != nil {
		slog.ErrorContext(ctx, "failed to write saga log entry",
			"saga_id", o.sagaID, "status", entry.Status, "error", err)
	}
}
