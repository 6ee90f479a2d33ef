package commands

import (
	"errors"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/guard"
)

var ErrApplyTransitionCommandIsNotConstructed = errors.New(
	"ApplyTransitionCommand must be created via NewApplyTransitionCommand constructor",
)

// ApplyTransitionCommand represents a request to move an order into another
// status. It carries everything the server needs to re-verify the move
// independently of the client: the target status, the operator's written
// explanation, and the scan tally accumulated in the dialog.
//
// ScannedCounts is the client's claim, not the authority: the handler
// replays it through a fresh scan session built from the order's persisted
// line items, so a fabricated tally cannot satisfy the scanning gate.
//
// Example:
//
//	cmd, err := NewApplyTransitionCommand(
//	    orderID, shippedStatusID, staffID,
//	    "", map[string]int{"1001": 2},
//	)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewApplyTransitionCommandHandler(uowFactory)
//	err = handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrTransitionRejected):
//	    // 422: surface the gate failures to the operator
//	case errors.Is(err, ErrConcurrentModification):
//	    // 409: another transition won the race, reload the order
//	}
type ApplyTransitionCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	toStatusID    kernel.UUID
	updatedBy     kernel.UUID
	explanation   string
	scannedCounts map[string]int

	guard guard.ConstructorGuard
}

// NewApplyTransitionCommand creates a command to move an order into another
// status.
//
// Parameters:
//   - orderID: The order to move (must be a valid UUID)
//   - toStatusID: The requested target status (must be a valid UUID)
//   - updatedBy: The acting staff member, recorded in the audit entry
//   - explanation: Operator justification; may be empty when not required
//   - scannedCounts: Scan tally per barcode; nil when no scanning happened
func NewApplyTransitionCommand(
	orderID kernel.UUID,
	toStatusID kernel.UUID,
	updatedBy kernel.UUID,
	explanation string,
	scannedCounts map[string]int,
) (ApplyTransitionCommand, error) {
	cmd := ApplyTransitionCommand{
		explanation: explanation,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setToStatusID(toStatusID),
		cmd.setUpdatedBy(updatedBy),
	); err != nil {
		return ApplyTransitionCommand{}, err
	}

	cmd.scannedCounts = make(map[string]int, len(scannedCounts))
	for barcode, count := range scannedCounts {
		cmd.scannedCounts[barcode] = count
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrApplyTransitionCommandIsNotConstructed if validation fails.
func (c ApplyTransitionCommand) Validate() error {
	return c.guard.Validate(ErrApplyTransitionCommandIsNotConstructed)
}

// OrderID returns the order being moved.
func (c ApplyTransitionCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ToStatusID returns the requested target status.
func (c ApplyTransitionCommand) ToStatusID() kernel.UUID {
	return c.toStatusID
}

// UpdatedBy returns the acting staff member.
func (c ApplyTransitionCommand) UpdatedBy() kernel.UUID {
	return c.updatedBy
}

// Explanation returns the operator justification, possibly empty.
func (c ApplyTransitionCommand) Explanation() string {
	return c.explanation
}

// ScannedCounts returns a copy of the client's scan tally per barcode.
func (c ApplyTransitionCommand) ScannedCounts() map[string]int {
	counts := make(map[string]int, len(c.scannedCounts))
	for barcode, count := range c.scannedCounts {
		counts[barcode] = count
	}
	return counts
}

func (c *ApplyTransitionCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ApplyTransitionCommand) setToStatusID(toStatusID kernel.UUID) error {
	if err := toStatusID.Validate(); err != nil {
		return err
	}

	c.toStatusID = toStatusID
	return nil
}

func (c *ApplyTransitionCommand) setUpdatedBy(updatedBy kernel.UUID) error {
	if err := updatedBy.Validate(); err != nil {
		return err
	}

	c.updatedBy = updatedBy
	return nil
}
