package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/scan"
	"backoffice/internal/core/domain/services"
	"backoffice/internal/pkg/errs"
)

var (
	// ErrTransitionRejected wraps the gate failures when a requested
	// transition does not pass validation. The joined error also matches
	// the individual reasons (services.ErrIllegalTransition,
	// services.ErrExplanationRequired, services.ErrScanIncomplete).
	ErrTransitionRejected = errors.New("transition rejected")

	// ErrConcurrentModification is returned when another transition
	// committed between loading the order and writing it back. Nothing was
	// changed; the caller should reload and re-evaluate.
	ErrConcurrentModification = errors.New("order was modified concurrently")
)

// ApplyTransitionCommandHandler executes a status transition end to end: it
// re-verifies the move server-side, applies it to the aggregate, runs the
// target status's entry effects, and commits everything as one transaction.
//
// The handler trusts nothing the client asserted. The transition graph, the
// explanation gate, and the scanning gate are all re-checked against the
// persisted order; the client's scan tally is replayed through a fresh
// session rather than believed. The final write is conditional on the
// version the order was loaded with, so two operators racing the same order
// produce exactly one committed transition.
type ApplyTransitionCommandHandler struct {
	uowFactory UoWFactory
}

// NewApplyTransitionCommandHandler creates a handler for transition
// operations. Requires a UoWFactory spanning orders, the status registry,
// the inventory ledger, and the notification outbox.
func NewApplyTransitionCommandHandler(uowFactory UoWFactory) ApplyTransitionCommandHandler {
	return ApplyTransitionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the transition command.
//
// Returns:
//   - ErrTransitionRejected (wrapping the specific gates) when validation fails
//   - ErrConcurrentModification when another transition won the version race
//   - errs.ErrObjectNotFound when the order or target status does not exist
//   - the underlying error when an entry effect or the commit fails; the
//     transaction is rolled back and the status change is discarded with it
func (h ApplyTransitionCommandHandler) Handle(ctx context.Context, cmd ApplyTransitionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	graph, err := uow.StatusRepository().GetGraph(ctx)
	if err != nil {
		return err
	}

	session, err := scan.NewSession(aggregate.ID(), kernel.NewUUID(), aggregate.Items())
	if err != nil {
		return err
	}
	session.Replay(cmd.ScannedCounts())

	result, err := services.NewTransitionValidator().Validate(
		aggregate, graph, cmd.ToStatusID(), cmd.Explanation(), session)
	if err != nil {
		return err
	}
	if !result.OK() {
		return fmt.Errorf("%w: %w", ErrTransitionRejected, result.Err())
	}

	now := time.Now().UTC()
	if _, err = aggregate.ApplyTransition(result.Target, cmd.UpdatedBy(), cmd.Explanation(), now); err != nil {
		return err
	}

	effects := services.NewEffectPlanner().Plan(result.Target.Actions())
	if err = executeEffects(ctx, uow, effects, aggregate, result.Target, now); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		if errors.Is(err, errs.ErrVersionConflict) {
			return ErrConcurrentModification
		}
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
