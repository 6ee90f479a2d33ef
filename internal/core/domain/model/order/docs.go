// Package order provides domain entities and business logic for storefront
// orders. It implements the Order aggregate root with its line items and the
// append-only audit history of status changes.
//
// The package includes:
//   - Order: The aggregate root owning identity, items, status reference, and audit log
//   - Item: A value object for one order line (product item, quantity, barcode)
//   - StatusUpdateLog: An immutable audit entry for one status change
//
// Key business rules:
//   - Orders must have a valid unique identifier and at least one line item
//   - An order's current status always matches the last audit entry, or the
//     default status when no entry exists yet
//   - Orders are mutated exclusively through the transition applier and are
//     never deleted; they only accumulate audit history
//   - An optimistic concurrency version serializes concurrent transitions
//     against the same order
package order
