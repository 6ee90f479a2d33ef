// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery retrieves one order together with everything the order
// detail screen needs: current status, line items, and the transitions
// available from the current status.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetOrderQueryHandler(db)
//
//	order, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // 404
//	}
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query to retrieve one order by its identifier.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	query := GetOrderQuery{guard: guard.NewConstructorGuard()}

	if err := query.setOrderID(orderID); err != nil {
		return GetOrderQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderQueryIsNotConstructed if validation fails.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the order to retrieve.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q *GetOrderQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	q.orderID = orderID
	return nil
}

// OrderStatusResponse is the status badge shown on the order screen.
type OrderStatusResponse struct {
	ID    kernel.UUID
	Name  string
	Color string
}

// OrderItemResponse is one order line in the read model.
type OrderItemResponse struct {
	ProductItemID kernel.UUID
	Quantity      int
	Barcode       string
}

// AvailableTransitionResponse is one action the operator may take from the
// order's current status, with everything the dialog needs to open: the
// target status, whether an explanation is demanded and under which prompt,
// and whether the scanning gate applies.
type AvailableTransitionResponse struct {
	ToStatusID            kernel.UUID
	ToStatusName          string
	Label                 string
	IsScanningRequired    bool
	IsExplanationRequired bool
	ExplanationLabel      string
}

// GetOrderQueryResponse is the order detail read model. An order in a status
// with no outbound transitions has an empty AvailableTransitions list and
// the screen offers no actions.
type GetOrderQueryResponse struct {
	ID                   kernel.UUID
	Status               OrderStatusResponse
	Items                []OrderItemResponse
	AvailableTransitions []AvailableTransitionResponse
	DeliveredAt          *time.Time
	RefundedAt           *time.Time
	Version              int
}
