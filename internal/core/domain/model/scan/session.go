package scan

import (
	"errors"
	"fmt"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/pkg/guard"
)

// ErrSessionIsNotConstructed is returned when a Session instance was not
// created through the NewSession factory method.
var ErrSessionIsNotConstructed = errors.New("Session must be created via NewSession constructor")

// Outcome classifies the handling of one scan event.
type Outcome int

const (
	// OutcomeAccepted means the barcode matched an order line that still
	// needed units, and its scanned count was incremented.
	OutcomeAccepted Outcome = iota

	// OutcomeUnknownBarcode means the barcode belongs to no line of the
	// order. Counts are unchanged; the session continues.
	OutcomeUnknownBarcode

	// OutcomeAlreadyComplete means the barcode's line is already fully
	// scanned. Counts are unchanged; the session continues.
	OutcomeAlreadyComplete
)

// Result describes the handling of one scan event: the classification, the
// line's counters after the event, and an operator-facing message. Rejections
// are messages, not errors; a scan session never aborts on bad input.
type Result struct {
	Barcode  string
	Outcome  Outcome
	Scanned  int
	Required int
	Message  string
}

// Session is the per-attempt accumulator matching physical barcode scans
// against an order's required line-item quantities. It is scoped to one open
// dialog for one order for one transition attempt: it holds no lock, writes
// nothing, and is simply discarded when the dialog closes. Re-opening the
// dialog constructs a fresh session with all counts back at zero.
//
// Counts never exceed the required quantity per barcode: scanning a satisfied
// line is rejected as already complete and leaves the session unchanged.
type Session struct {
	orderID   kernel.UUID
	attemptID kernel.UUID
	required  map[string]int
	scanned   map[string]int
	guard     guard.ConstructorGuard
}

// NewSession opens a reconciliation session for one transition attempt,
// seeding a zero scanned count for every distinct barcode in the order's
// line items. Lines sharing a barcode pool their required quantities.
//
// Parameters:
//   - orderID: The order being reconciled (must be a valid UUID)
//   - attemptID: Identifier of this transition attempt (must be a valid UUID)
//   - items: The order's line items as of dialog open
func NewSession(orderID, attemptID kernel.UUID, items []order.Item) (*Session, error) {
	if err := errors.Join(orderID.Validate(), attemptID.Validate()); err != nil {
		return nil, err
	}

	s := &Session{
		orderID:   orderID,
		attemptID: attemptID,
		required:  make(map[string]int, len(items)),
		scanned:   make(map[string]int, len(items)),
		guard:     guard.NewConstructorGuard(),
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
		s.required[item.Barcode()] += item.Quantity().Value()
		s.scanned[item.Barcode()] = 0
	}

	return s, nil
}

// Validate ensures the Session was properly constructed.
func (s *Session) Validate() error {
	if s == nil {
		return ErrSessionIsNotConstructed
	}
	return s.guard.Validate(ErrSessionIsNotConstructed)
}

// OrderID returns the order this session reconciles.
func (s *Session) OrderID() kernel.UUID {
	return s.orderID
}

// AttemptID returns the transition attempt this session belongs to.
func (s *Session) AttemptID() kernel.UUID {
	return s.attemptID
}

// Scan records one unit of the given barcode:
//
//  1. A barcode not present in the order is rejected as unknown.
//  2. A barcode whose line still needs units is accepted and counted.
//  3. A barcode whose line is satisfied is rejected as already complete.
//
// All three outcomes leave the session usable; none is an error.
func (s *Session) Scan(barcode string) Result {
	required, known := s.required[barcode]
	if !known {
		return Result{
			Barcode: barcode,
			Outcome: OutcomeUnknownBarcode,
			Message: fmt.Sprintf("barcode %s is not part of this order", barcode),
		}
	}

	if s.scanned[barcode] >= required {
		return Result{
			Barcode:  barcode,
			Outcome:  OutcomeAlreadyComplete,
			Scanned:  s.scanned[barcode],
			Required: required,
			Message:  fmt.Sprintf("barcode %s is already fully scanned (%d of %d)", barcode, s.scanned[barcode], required),
		}
	}

	s.scanned[barcode]++
	return Result{
		Barcode:  barcode,
		Outcome:  OutcomeAccepted,
		Scanned:  s.scanned[barcode],
		Required: required,
		Message:  fmt.Sprintf("barcode %s accepted (%d of %d)", barcode, s.scanned[barcode], required),
	}
}

// Replay feeds a previously accumulated scan tally through the regular Scan
// handling, unit by unit. Used by the transition applier to rebuild a
// session server-side from the counts a client submitted: unknown barcodes
// are dropped and counts are capped at the required quantities, so a
// fabricated tally can never overstate completion.
func (s *Session) Replay(counts map[string]int) {
	for barcode, count := range counts {
		for i := 0; i < count; i++ {
			if r := s.Scan(barcode); r.Outcome != OutcomeAccepted {
				break
			}
		}
	}
}

// IsSubmittable reports whether every line item has been scanned at least as
// many times as its ordered quantity. Recomputed from counts on every call.
func (s *Session) IsSubmittable() bool {
	for barcode, required := range s.required {
		if s.scanned[barcode] < required {
			return false
		}
	}
	return true
}

// Counts returns a copy of the scanned tally per barcode.
func (s *Session) Counts() map[string]int {
	out := make(map[string]int, len(s.scanned))
	for barcode, count := range s.scanned {
		out[barcode] = count
	}
	return out
}
