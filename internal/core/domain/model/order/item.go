package order

import (
	"errors"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through the NewItem factory method.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is one line of an order: a product item, the ordered quantity, and the
// barcode printed on the physical units. Barcodes drive scan reconciliation,
// so they are restricted to the digit strings a keyboard-wedge scanner emits.
//
// A productItemID may repeat across different orders but is unique within
// one order's item list; the Order constructor enforces the uniqueness.
type Item struct { //nolint:recvcheck //using for validation
	productItemID kernel.UUID
	quantity      kernel.Quantity
	barcode       string
	guard         guard.ConstructorGuard
}

// NewItem creates a validated order line.
//
// Parameters:
//   - productItemID: Identifier of the product item (must be a valid UUID)
//   - quantity: Ordered unit count (must be a constructed Quantity)
//   - barcode: Digit string printed on the physical units (must be non-empty digits)
func NewItem(productItemID kernel.UUID, quantity kernel.Quantity, barcode string) (Item, error) {
	item := Item{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setProductItemID(productItemID),
		item.setQuantity(quantity),
		item.setBarcode(barcode),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

// Validate ensures the Item was properly constructed.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// ProductItemID returns the product item identifier.
func (i Item) ProductItemID() kernel.UUID {
	return i.productItemID
}

// Quantity returns the ordered unit count.
func (i Item) Quantity() kernel.Quantity {
	return i.quantity
}

// Barcode returns the barcode printed on the physical units.
func (i Item) Barcode() string {
	return i.barcode
}

// setProductItemID validates and sets the product item identifier.
func (i *Item) setProductItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.productItemID = id
	return nil
}

// setQuantity validates and sets the ordered quantity.
func (i *Item) setQuantity(quantity kernel.Quantity) error {
	if err := quantity.Validate(); err != nil {
		return err
	}
	i.quantity = quantity
	return nil
}

// setBarcode validates and sets the barcode. Only digit strings are accepted
// because the scan tokenizer accumulates digits exclusively; a barcode the
// scanner cannot produce would make its line impossible to reconcile.
func (i *Item) setBarcode(barcode string) error {
	if barcode == "" {
		return errs.NewValueIsRequiredError("barcode")
	}
	for _, r := range barcode {
		if r < '0' || r > '9' {
			return errs.NewValueIsInvalidError("barcode")
		}
	}
	i.barcode = barcode
	return nil
}
