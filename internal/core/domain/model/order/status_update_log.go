package order

import (
	"errors"
	"time"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"
)

// ErrStatusUpdateLogIsNotConstructed is returned when a StatusUpdateLog was
// not created through the NewStatusUpdateLog factory method.
var ErrStatusUpdateLogIsNotConstructed = errors.New(
	"StatusUpdateLog must be created via NewStatusUpdateLog constructor")

// StatusUpdateLog is one immutable audit entry recording a status change:
// who moved the order, when, to which status, and with what justification.
// Entries are append-only; once written they are never edited or deleted.
type StatusUpdateLog struct { //nolint:recvcheck //using for validation
	updatedBy   kernel.UUID
	updatedAt   time.Time
	statusID    kernel.UUID
	explanation string
	guard       guard.ConstructorGuard
}

// NewStatusUpdateLog creates a validated audit entry.
//
// Parameters:
//   - updatedBy: Identifier of the acting staff member (must be a valid UUID)
//   - updatedAt: Timestamp of the change (must be non-zero)
//   - statusID: Identifier of the status entered (must be a valid UUID)
//   - explanation: Operator justification; empty unless the status required one
func NewStatusUpdateLog(updatedBy kernel.UUID, updatedAt time.Time, statusID kernel.UUID, explanation string) (StatusUpdateLog, error) {
	entry := StatusUpdateLog{
		explanation: explanation,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		entry.setUpdatedBy(updatedBy),
		entry.setUpdatedAt(updatedAt),
		entry.setStatusID(statusID),
	); err != nil {
		return StatusUpdateLog{}, err
	}

	return entry, nil
}

// Validate ensures the StatusUpdateLog was properly constructed.
func (l StatusUpdateLog) Validate() error {
	return l.guard.Validate(ErrStatusUpdateLogIsNotConstructed)
}

// UpdatedBy returns the identifier of the staff member who made the change.
func (l StatusUpdateLog) UpdatedBy() kernel.UUID {
	return l.updatedBy
}

// UpdatedAt returns when the change was made.
func (l StatusUpdateLog) UpdatedAt() time.Time {
	return l.updatedAt
}

// StatusID returns the identifier of the status the order entered.
func (l StatusUpdateLog) StatusID() kernel.UUID {
	return l.statusID
}

// Explanation returns the operator justification, empty when none was required.
func (l StatusUpdateLog) Explanation() string {
	return l.explanation
}

// setUpdatedBy validates and sets the acting staff identifier.
func (l *StatusUpdateLog) setUpdatedBy(updatedBy kernel.UUID) error {
	if err := updatedBy.Validate(); err != nil {
		return err
	}
	l.updatedBy = updatedBy
	return nil
}

// setUpdatedAt validates and sets the change timestamp.
func (l *StatusUpdateLog) setUpdatedAt(updatedAt time.Time) error {
	if updatedAt.IsZero() {
		return errs.NewValueIsRequiredError("updatedAt")
	}
	l.updatedAt = updatedAt
	return nil
}

// setStatusID validates and sets the entered status identifier.
func (l *StatusUpdateLog) setStatusID(statusID kernel.UUID) error {
	if err := statusID.Validate(); err != nil {
		return err
	}
	l.statusID = statusID
	return nil
}
