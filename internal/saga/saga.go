// Package saga runs multi-step business transactions with explicit
// compensating actions instead of a single atomic database transaction.
package saga

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jcmexdev/restaurant-orders/internal/saga/sagalog"
)

// Step represents a single unit of work in the saga.
// Each step must have a compensating action to undo its effects.
type Step interface {
	Name() string
	Execute(ctx context.Context) error
	Compensate(ctx context.Context) error
}

// Orchestrator manages the execution of a collection of Steps, recording
// every state transition in the saga log.
type Orchestrator struct {
	sagaID  string
	steps   []Step
	logRepo sagalog.Repository // nil-safe: logging skipped if nil
	payload string
}

// NewOrchestrator builds an orchestrator for one saga execution. The saga ID
// is typically the order ID so log rows can be joined with business data.
func NewOrchestrator(sagaID string, steps []Step, repo sagalog.Repository) *Orchestrator {
	return &Orchestrator{sagaID: sagaID, steps: steps, logRepo: repo}
}

// WithPayload attaches the serialized input stored on the STARTED entry so
// the saga can be replayed from the log.
func (o *Orchestrator) WithPayload(payload string) *Orchestrator {
	o.payload = payload
	return o
}

// Start runs the saga steps sequentially. If a step fails, it triggers the
// compensation of all previously successful steps in LIFO order and returns
// the original failure.
func (o *Orchestrator) Start(ctx context.Context) error {
	o.record(ctx, sagalog.StatusStarted, "", o.payload, nil)

	var completed []Step
	for _, step := range o.steps {
		slog.InfoContext(ctx, "executing saga step", "saga_id", o.sagaID, "step", step.Name())
		if err := step.Execute(ctx); err != nil {
			slog.ErrorContext(ctx, "saga step failed, starting rollback",
				"saga_id", o.sagaID, "step", step.Name(), "error", err)

			errs := []string{fmt.Sprintf("step %s failed: %v", step.Name(), err)}
			o.record(ctx, sagalog.StatusCompensating, step.Name(), "", errs)
			errs = o.rollback(ctx, completed, errs)
			o.record(ctx, sagalog.StatusFailed, step.Name(), "", errs)
			return err
		}
		completed = append(completed, step)
		o.record(ctx, sagalog.StatusStepDone, step.Name(), "", nil)
	}

	o.record(ctx, sagalog.StatusCompleted, "", "", nil)
	return nil
}

// rollback compensates completed steps in reverse order. Compensation errors
// are collected, not propagated: the saga already failed.
func (o *Orchestrator) rollback(ctx context.Context, steps []Step, errs []string) []string {
	for i := len(steps) - 1; i >= 0; i-- {
		step := steps[i]
		slog.InfoContext(ctx, "compensating saga step", "saga_id", o.sagaID, "step", step.Name())
		if err := step.Compensate(ctx); err != nil {
			errs = append(errs, fmt.Sprintf("compensation of %s failed: %v", step.Name(), err))
			slog.ErrorContext(ctx, "CRITICAL: failed to compensate saga step",
				"saga_id", o.sagaID, "step", step.Name(), "error", err)
		}
	}
	return errs
}

func (o *Orchestrator) record(ctx context.Context, status sagalog.Status, step, payload string, errs []string) {
	if o.logRepo == nil {
		return
	}
	entry := sagalog.NewEntry(ctx, o.sagaID, status, step, payload, errs)
	if err := o.logRepo.Save(ctx, entry); err != nil {
		slog.WarnContext(ctx, "failed to persist saga log entry", "saga_id", o.sagaID, "error", err)
	}
}
