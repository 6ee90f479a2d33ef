package status

import (
	"errors"
	"fmt"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"
)

var (
	// ErrTransitionIsNotConstructed is returned when a Transition instance was not
	// created through the NewTransition factory method.
	ErrTransitionIsNotConstructed = errors.New("Transition must be created via NewTransition constructor")
)

// Transition is a directed edge in the status graph permitting an order to
// move from one status to another. Edges are operator-configured data, unique
// per ordered (from, to) pair, and the graph is not required to be symmetric:
// a forward edge does not imply the reverse edge exists.
//
// Label is the action name shown to the operator ("Mark as shipped"),
// deliberately distinct from the target status name ("Shipped").
// IsScanningRequired gates the edge on barcode reconciliation of the order's
// line items before submission.
type Transition struct { //nolint:recvcheck //using for validation
	fromID             kernel.UUID
	toID               kernel.UUID
	label              string
	isScanningRequired bool
	guard              guard.ConstructorGuard
}

// NewTransition creates a validated Transition edge.
//
// Parameters:
//   - fromID: Source status identifier (must be a valid UUID)
//   - toID: Target status identifier (must be a valid UUID, distinct from fromID)
//   - label: Operator-facing action name (must be non-empty)
//   - isScanningRequired: Whether the edge is gated on scan reconciliation
//
// Self-loops are rejected: an edge must actually move the order.
func NewTransition(fromID, toID kernel.UUID, label string, isScanningRequired bool) (Transition, error) {
	t := Transition{
		isScanningRequired: isScanningRequired,
		guard:              guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		t.setEndpoints(fromID, toID),
		t.setLabel(label),
	); err != nil {
		return Transition{}, err
	}

	return t, nil
}

// Validate ensures the Transition was properly constructed.
func (t Transition) Validate() error {
	return t.guard.Validate(ErrTransitionIsNotConstructed)
}

// FromID returns the source status identifier.
func (t Transition) FromID() kernel.UUID {
	return t.fromID
}

// ToID returns the target status identifier.
func (t Transition) ToID() kernel.UUID {
	return t.toID
}

// Label returns the operator-facing action name.
func (t Transition) Label() string {
	return t.label
}

// IsScanningRequired reports whether this edge requires barcode
// reconciliation before it may be submitted.
func (t Transition) IsScanningRequired() bool {
	return t.isScanningRequired
}

// IsEqual compares two transitions by their ordered endpoint pair.
func (t Transition) IsEqual(other Transition) bool {
	return t.fromID.IsEqual(other.fromID) && t.toID.IsEqual(other.toID)
}

// setEndpoints validates and sets the edge endpoints.
func (t *Transition) setEndpoints(fromID, toID kernel.UUID) error {
	if err := errors.Join(fromID.Validate(), toID.Validate()); err != nil {
		return err
	}
	if fromID.IsEqual(toID) {
		return errs.NewValueIsInvalidErrorWithCause("toStatusId",
			fmt.Errorf("transition from %s to itself is not allowed", fromID))
	}
	t.fromID = fromID
	t.toID = toID
	return nil
}

// setLabel validates and sets the action label.
func (t *Transition) setLabel(label string) error {
	if label == "" {
		return errs.NewValueIsRequiredError("label")
	}
	t.label = label
	return nil
}
