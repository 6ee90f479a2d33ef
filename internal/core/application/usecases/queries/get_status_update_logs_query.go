package queries

import (
	"errors"
	"time"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"
)

var (
	ErrGetStatusUpdateLogsQueryIsNotConstructed = errors.New(
		"GetStatusUpdateLogsQuery must be created via NewGetStatusUpdateLogsQuery constructor",
	)
)

const (
	// DefaultStatusLogsLimit is the page size used when the caller does not
	// specify one.
	DefaultStatusLogsLimit = 20

	// MaxStatusLogsLimit caps the page size a caller may request.
	MaxStatusLogsLimit = 100
)

// GetStatusUpdateLogsQuery retrieves a page of an order's audit history,
// newest entries first. The history can grow without bound, so it is never
// returned whole.
//
// Example:
//
//	query, err := NewGetStatusUpdateLogsQuery(orderID, 1, 20)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetStatusUpdateLogsQueryHandler(db)
//
//	page, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("showing %d of %d entries\n", len(page.Logs), page.Total)
type GetStatusUpdateLogsQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	page    int
	limit   int

	guard guard.ConstructorGuard
}

// NewGetStatusUpdateLogsQuery creates a query for one page of an order's
// audit history. Page numbering starts at 1; page 0 selects the first page.
// A zero limit selects DefaultStatusLogsLimit; limits above
// MaxStatusLogsLimit are rejected.
func NewGetStatusUpdateLogsQuery(orderID kernel.UUID, page, limit int) (GetStatusUpdateLogsQuery, error) {
	query := GetStatusUpdateLogsQuery{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		query.setOrderID(orderID),
		query.setPage(page),
		query.setLimit(limit),
	); err != nil {
		return GetStatusUpdateLogsQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetStatusUpdateLogsQueryIsNotConstructed if validation fails.
func (q GetStatusUpdateLogsQuery) Validate() error {
	return q.guard.Validate(ErrGetStatusUpdateLogsQueryIsNotConstructed)
}

// OrderID returns the order whose history is requested.
func (q GetStatusUpdateLogsQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Page returns the requested page number, starting at 1.
func (q GetStatusUpdateLogsQuery) Page() int {
	return q.page
}

// Limit returns the page size.
func (q GetStatusUpdateLogsQuery) Limit() int {
	return q.limit
}

// Offset returns the number of entries to skip for the requested page.
func (q GetStatusUpdateLogsQuery) Offset() int {
	return (q.page - 1) * q.limit
}

func (q *GetStatusUpdateLogsQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	q.orderID = orderID
	return nil
}

func (q *GetStatusUpdateLogsQuery) setPage(page int) error {
	if page < 0 {
		return errs.NewValueIsInvalidError("page")
	}
	if page == 0 {
		page = 1
	}

	q.page = page
	return nil
}

func (q *GetStatusUpdateLogsQuery) setLimit(limit int) error {
	if limit < 0 || limit > MaxStatusLogsLimit {
		return errs.NewValueIsOutOfRangeError("limit", limit, 0, MaxStatusLogsLimit)
	}
	if limit == 0 {
		limit = DefaultStatusLogsLimit
	}

	q.limit = limit
	return nil
}

// StatusUpdateLogResponse is one audit entry in the read model.
type StatusUpdateLogResponse struct {
	UpdatedBy   kernel.UUID
	UpdatedAt   time.Time
	StatusID    kernel.UUID
	StatusName  string
	Explanation string
}

// GetStatusUpdateLogsQueryResponse is one page of an order's audit history,
// newest first, together with the total entry count for pagination.
type GetStatusUpdateLogsQueryResponse struct {
	Logs  []StatusUpdateLogResponse
	Total int
}
