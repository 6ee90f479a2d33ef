package kernel

import (
	"fmt"

	"backoffice/internal/pkg/errs"
)

const (
	// QuantityMin is the smallest quantity an order line or stock movement may carry.
	QuantityMin = 1
	// QuantityMax bounds a single order line. Guards against wedge-scanner noise
	// and fat-fingered manual entry producing absurd line quantities.
	QuantityMax = 10000
)

// Quantity is a value object representing a positive count of physical units:
// ordered units on an order line, scanned units in a reconciliation session,
// or units moved in a stock mutation.
//
// The zero value of Quantity is invalid and must be constructed via NewQuantity.
// Quantity is immutable and safe for concurrent use.
//
// Example:
//
//	qty, err := kernel.NewQuantity(3)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(qty.Value()) // Output: 3
type Quantity struct {
	value int
}

// NewQuantity creates a Quantity after validating it lies within
// [QuantityMin, QuantityMax]. Returns an error for zero, negative,
// or out-of-bound values.
func NewQuantity(value int) (Quantity, error) {
	if value < QuantityMin || value > QuantityMax {
		return Quantity{}, errs.NewValueIsOutOfRangeError("quantity", value, QuantityMin, QuantityMax)
	}
	return Quantity{value: value}, nil
}

// Value returns the quantity as a plain int.
func (q Quantity) Value() int {
	return q.value
}

// IsEqual compares two quantities by value.
func (q Quantity) IsEqual(other Quantity) bool {
	return q.value == other.value
}

// String implements fmt.Stringer.
func (q Quantity) String() string {
	return fmt.Sprintf("%d", q.value)
}

// Validate checks the Quantity was properly constructed.
// The zero value fails validation because quantities start at QuantityMin.
func (q Quantity) Validate() error {
	if q.value < QuantityMin || q.value > QuantityMax {
		return errs.NewValueIsOutOfRangeError("quantity", q.value, QuantityMin, QuantityMax)
	}
	return nil
}
