package order

import (
	"errors"
	"fmt"
	"time"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/status"
	"backoffice/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
)

// Order represents a storefront order in the system. It is the aggregate root
// that owns the order's lifecycle position, line items, and audit history.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and at least one line item
//   - Product item identifiers are unique within the item list
//   - currentStatusID always equals the status of the most recent audit entry,
//     or the default status when the audit log is empty
//   - The audit log is append-only; entries are never edited or removed
//   - Can only be created through NewOrder or RestoreOrder
//
// The status an order occupies is a reference into the operator-configured
// status registry, not a compiled enum. Which moves are legal is decided
// outside the aggregate by the transition graph and validator; ApplyTransition
// performs the mechanical, already-authorized state change.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// currentStatusID references the status the order occupies
	currentStatusID kernel.UUID

	// items are the order's lines; productItemID is unique within the list
	items []Item

	// statusUpdateLogs is the append-only audit history of status changes
	statusUpdateLogs []StatusUpdateLog

	// deliveredAt is stamped when a status with MarkAsDelivered is entered
	deliveredAt *time.Time

	// refundedAt is stamped when a status with MarkAsRefunded is entered
	refundedAt *time.Time

	// version is the optimistic concurrency token, incremented on every apply
	version int

	// isConstructed ensures the order was created via a factory method
	isConstructed bool
}

// NewOrder creates a new Order already placed in the registry's default
// status. This is the only way to create an order: orders are never born in
// an arbitrary status and the audit log starts empty.
//
// Parameters:
//   - id: Unique identifier for the order (must be a valid UUID)
//   - defaultStatus: The registry's default status (must be flagged default)
//   - items: Order lines (at least one; productItemID unique within the list)
//
// Returns:
//   - *Order: The created order if all validations pass
//   - error: Validation error if any parameter is invalid
func NewOrder(id kernel.UUID, defaultStatus *status.OrderStatus, items []Item) (*Order, error) {
	if err := defaultStatus.Validate(); err != nil {
		return nil, err
	}
	if !defaultStatus.IsDefault() {
		return nil, errs.NewValueIsInvalidErrorWithCause("defaultStatus",
			fmt.Errorf("status %s is not flagged as default", defaultStatus.Name()))
	}

	o := &Order{
		currentStatusID: defaultStatus.ID(),
		isConstructed:   true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence, including its audit
// history, lifecycle timestamps, and concurrency version. The audit-chain
// invariant is re-checked: currentStatusID must match the last log entry.
func RestoreOrder(
	id kernel.UUID,
	currentStatusID kernel.UUID,
	items []Item,
	logs []StatusUpdateLog,
	deliveredAt *time.Time,
	refundedAt *time.Time,
	version int,
) (*Order, error) {
	o := &Order{
		deliveredAt:   deliveredAt,
		refundedAt:    refundedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setItems(items),
		o.setCurrentStatusID(currentStatusID),
		o.setStatusUpdateLogs(logs, currentStatusID),
		o.setVersion(version),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory method. Called when reconstructing orders from persistence.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CurrentStatusID returns the identifier of the status the order occupies.
func (o *Order) CurrentStatusID() kernel.UUID {
	return o.currentStatusID
}

// Items returns a copy of the order's line items.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// ItemByBarcode returns the line item carrying the given barcode.
func (o *Order) ItemByBarcode(barcode string) (Item, bool) {
	for _, item := range o.items {
		if item.Barcode() == barcode {
			return item, true
		}
	}
	return Item{}, false
}

// StatusUpdateLogs returns a copy of the append-only audit history,
// oldest first.
func (o *Order) StatusUpdateLogs() []StatusUpdateLog {
	logs := make([]StatusUpdateLog, len(o.statusUpdateLogs))
	copy(logs, o.statusUpdateLogs)
	return logs
}

// DeliveredAt returns when the order was marked delivered, nil if never.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// RefundedAt returns when the order was marked refunded, nil if never.
func (o *Order) RefundedAt() *time.Time {
	return o.refundedAt
}

// Version returns the optimistic concurrency token. The persistence layer
// updates the order conditionally on this value; a mismatch means another
// transition committed first.
func (o *Order) Version() int {
	return o.version
}

// ApplyTransition moves the order into the target status and appends the
// audit entry in one step, keeping the audit-chain invariant intact.
// Delivery and refund timestamps are stamped when the target status declares
// the corresponding action flag.
//
// The caller (the transition applier) is responsible for having validated the
// move against the transition graph, the explanation gate, and scan
// reconciliation before invoking this method; ApplyTransition itself only
// rejects structurally invalid input.
//
// Parameters:
//   - target: The status being entered
//   - updatedBy: Identifier of the acting staff member
//   - explanation: Operator justification (empty when not required)
//   - now: Commit timestamp used for the audit entry and flag stamps
//
// Returns the appended audit entry, or an error if the input is invalid.
func (o *Order) ApplyTransition(
	target *status.OrderStatus,
	updatedBy kernel.UUID,
	explanation string,
	now time.Time,
) (StatusUpdateLog, error) {
	if err := target.Validate(); err != nil {
		return StatusUpdateLog{}, err
	}

	entry, err := NewStatusUpdateLog(updatedBy, now, target.ID(), explanation)
	if err != nil {
		return StatusUpdateLog{}, err
	}

	o.statusUpdateLogs = append(o.statusUpdateLogs, entry)
	o.currentStatusID = target.ID()

	if target.Actions().MarkAsDelivered {
		stamp := now
		o.deliveredAt = &stamp
	}
	if target.Actions().MarkAsRefunded {
		stamp := now
		o.refundedAt = &stamp
	}

	o.version++

	return entry, nil
}

// setID validates and sets the order's unique identifier.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setItems validates and sets the order's line items, enforcing
// productItemID uniqueness within the list.
func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	seen := make(map[kernel.UUID]struct{}, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if _, dup := seen[item.ProductItemID()]; dup {
			return errs.NewValueIsInvalidErrorWithCause("items",
				fmt.Errorf("product item %s appears more than once", item.ProductItemID()))
		}
		seen[item.ProductItemID()] = struct{}{}
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

// setCurrentStatusID validates and sets the occupied status reference.
func (o *Order) setCurrentStatusID(statusID kernel.UUID) error {
	if err := statusID.Validate(); err != nil {
		return err
	}
	o.currentStatusID = statusID
	return nil
}

// setStatusUpdateLogs validates and sets the audit history, re-checking the
// audit-chain invariant against the current status.
func (o *Order) setStatusUpdateLogs(logs []StatusUpdateLog, currentStatusID kernel.UUID) error {
	for _, entry := range logs {
		if err := entry.Validate(); err != nil {
			return err
		}
	}

	if len(logs) > 0 {
		last := logs[len(logs)-1]
		if !last.StatusID().IsEqual(currentStatusID) {
			return errs.NewValueIsInvalidErrorWithCause("statusUpdateLogs",
				fmt.Errorf("current status %s does not match last audit entry %s",
					currentStatusID, last.StatusID()))
		}
	}

	o.statusUpdateLogs = make([]StatusUpdateLog, len(logs))
	copy(o.statusUpdateLogs, logs)
	return nil
}

// setVersion validates and sets the optimistic concurrency token.
func (o *Order) setVersion(version int) error {
	if version < 0 {
		return errs.NewValueIsInvalidErrorWithCause("version",
			fmt.Errorf("%d is negative", version))
	}
	o.version = version
	return nil
}
