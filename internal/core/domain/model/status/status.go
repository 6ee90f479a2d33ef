package status

import (
	"errors"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"
)

var (
	// ErrOrderStatusIsNotConstructed is returned when an OrderStatus instance was not
	// created through the NewOrderStatus factory method.
	ErrOrderStatusIsNotConstructed = errors.New("OrderStatus must be created via NewOrderStatus constructor")
)

// ActionFlags declares the side effects fired when an order enters a status.
// Flags are independent triggers interpreted by the transition applier; they
// are not mutually exclusive and several may fire on the same commit.
//
// Stock flags operate on the inventory ledger:
//   - ReserveStock increments the held counter per product item, physical stock untouched
//   - ReleaseStock decrements the held counter
//   - ReduceStock decrements physical stock by the ordered quantities
//   - IncreaseStock increments physical stock by the ordered quantities
//
// Bookkeeping flags:
//   - MarkAsDelivered stamps the delivery timestamp on the order
//   - MarkAsRefunded stamps the refund timestamp
//   - SendNotification enqueues a status-changed message for the customer
type ActionFlags struct {
	ReserveStock     bool
	ReleaseStock     bool
	ReduceStock      bool
	IncreaseStock    bool
	MarkAsDelivered  bool
	MarkAsRefunded   bool
	SendNotification bool
}

// OrderStatus is an operator-authored state an order can occupy.
// Unlike a compiled enum, statuses are configuration data: operators create
// and edit them at runtime, so the set of statuses is open-ended and every
// status carries its own behavior declaratively through ActionFlags.
//
// An OrderStatus enforces these invariants:
//   - Must have a valid unique identifier and a non-empty name
//   - When IsExplanationRequired is set, ExplanationLabel must carry the prompt text
//   - Can only be created through the NewOrderStatus constructor
//
// Example:
//
//	refunded, err := status.NewOrderStatus(
//	    kernel.NewUUID(),
//	    "Refunded",
//	    "#d9534f",
//	    false,
//	    true, "Reason for refund",
//	    status.ActionFlags{IncreaseStock: true, MarkAsRefunded: true, SendNotification: true},
//	)
type OrderStatus struct {
	// id is the unique, immutable identifier for the status
	id kernel.UUID

	// name is the operator-facing display name
	name string

	// color is a display-only hint for the UI badge
	color string

	// isDefault marks the initial status assigned to newly created orders
	isDefault bool

	// isExplanationRequired gates transitions into this status on a written justification
	isExplanationRequired bool

	// explanationLabel is the prompt shown when an explanation is required
	explanationLabel string

	// actions are the declarative side effects fired on entry
	actions ActionFlags

	// guard ensures the status was created via NewOrderStatus
	guard guard.ConstructorGuard
}

// NewOrderStatus creates a validated OrderStatus.
//
// Parameters:
//   - id: Unique identifier (must be a valid UUID)
//   - name: Display name (must be non-empty)
//   - color: Display-only color hint (may be empty)
//   - isDefault: Whether new orders start in this status
//   - isExplanationRequired: Whether entering this status requires a justification
//   - explanationLabel: Prompt text, required when isExplanationRequired is true
//   - actions: Declarative side-effect flags
//
// Returns the created status or a validation error. Validation errors from
// multiple fields are joined.
func NewOrderStatus(
	id kernel.UUID,
	name string,
	color string,
	isDefault bool,
	isExplanationRequired bool,
	explanationLabel string,
	actions ActionFlags,
) (*OrderStatus, error) {
	s := &OrderStatus{
		color:     color,
		isDefault: isDefault,
		actions:   actions,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setName(name),
		s.setExplanationRequirement(isExplanationRequired, explanationLabel),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate ensures the OrderStatus instance was properly constructed.
// Called when reconstructing statuses from persistence.
func (s *OrderStatus) Validate() error {
	if s == nil {
		return ErrOrderStatusIsNotConstructed
	}
	return s.guard.Validate(ErrOrderStatusIsNotConstructed)
}

// IsEqual compares two statuses by their unique identifiers.
func (s *OrderStatus) IsEqual(other *OrderStatus) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the status identifier.
func (s *OrderStatus) ID() kernel.UUID {
	return s.id
}

// Name returns the operator-facing display name.
func (s *OrderStatus) Name() string {
	return s.name
}

// Color returns the display-only color hint.
func (s *OrderStatus) Color() string {
	return s.color
}

// IsDefault reports whether new orders start in this status.
func (s *OrderStatus) IsDefault() bool {
	return s.isDefault
}

// IsExplanationRequired reports whether entering this status requires
// a written justification from the operator.
func (s *OrderStatus) IsExplanationRequired() bool {
	return s.isExplanationRequired
}

// ExplanationLabel returns the prompt text shown when an explanation
// is required. Empty when IsExplanationRequired is false.
func (s *OrderStatus) ExplanationLabel() string {
	return s.explanationLabel
}

// Actions returns the declarative side-effect flags for this status.
func (s *OrderStatus) Actions() ActionFlags {
	return s.actions
}

// setID validates and sets the status identifier.
func (s *OrderStatus) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

// setName validates and sets the display name.
func (s *OrderStatus) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	s.name = name
	return nil
}

// setExplanationRequirement validates the explanation gate. A status that
// requires an explanation must carry the prompt text for the dialog.
func (s *OrderStatus) setExplanationRequirement(required bool, label string) error {
	if required && label == "" {
		return errs.NewValueIsRequiredError("explanationLabel")
	}
	s.isExplanationRequired = required
	s.explanationLabel = label
	return nil
}
