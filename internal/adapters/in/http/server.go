// Package http provides the inbound HTTP adapter: an echo server exposing
// the order lifecycle operations to the back-office clients.
package http

import (
	"errors"
	"net/http"
	"time"

	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/application/usecases/queries"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/services"
	"backoffice/internal/core/ports"
	"backoffice/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler     commands.CreateOrderCommandHandler
	applyTransitionHandler commands.ApplyTransitionCommandHandler

	// Query handlers
	getOrderHandler            queries.GetOrderQueryHandler
	getStatusesHandler         queries.GetStatusesQueryHandler
	getStatusUpdateLogsHandler queries.GetStatusUpdateLogsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	applyTransitionHandler commands.ApplyTransitionCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getStatusesHandler queries.GetStatusesQueryHandler,
	getStatusUpdateLogsHandler queries.GetStatusUpdateLogsQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:         createOrderHandler,
		applyTransitionHandler:     applyTransitionHandler,
		getOrderHandler:            getOrderHandler,
		getStatusesHandler:         getStatusesHandler,
		getStatusUpdateLogsHandler: getStatusUpdateLogsHandler,
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:id", s.GetOrder)
	api.GET("/orders/:id/status-logs", s.GetStatusUpdateLogs)
	api.POST("/orders/:id/transitions", s.ApplyTransition)
	api.GET("/statuses", s.GetStatuses)
}

// ErrorResponse is the uniform error body. Reasons carries the gate
// failure codes on transition rejections and stays empty otherwise.
type ErrorResponse struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Reasons []string `json:"reasons,omitempty"`
}

// Gate failure reason codes surfaced on 422 responses.
const (
	ReasonIllegalTransition   = "illegal_transition"
	ReasonExplanationRequired = "explanation_required"
	ReasonScanIncomplete      = "scan_incomplete"
)

// NewOrderItem is one requested order line in the creation request.
type NewOrderItem struct {
	ProductItemID string `json:"productItemId"`
	Quantity      int    `json:"quantity"`
	Barcode       string `json:"barcode"`
}

// NewOrder is the order creation request body.
type NewOrder struct {
	Items []NewOrderItem `json:"items"`
}

// NewTransition is the transition request body. ScannedCounts is the scan
// tally per barcode accumulated in the client dialog; the server replays it
// against the persisted order and never trusts a completion flag.
type NewTransition struct {
	ToStatusID    string         `json:"toStatusId"`
	UpdatedBy     string         `json:"updatedBy"`
	Explanation   string         `json:"explanation"`
	ScannedCounts map[string]int `json:"scannedCounts"`
}

// CreatedOrder is the creation response body.
type CreatedOrder struct {
	ID string `json:"id"`
}

// OrderStatus is the status badge in order responses.
type OrderStatus struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// OrderItem is one order line in responses.
type OrderItem struct {
	ProductItemID string `json:"productItemId"`
	Quantity      int    `json:"quantity"`
	Barcode       string `json:"barcode"`
}

// AvailableTransition is one action the operator may take from the order's
// current status.
type AvailableTransition struct {
	ToStatusID            string `json:"toStatusId"`
	ToStatusName          string `json:"toStatusName"`
	Label                 string `json:"label"`
	IsScanningRequired    bool   `json:"isScanningRequired"`
	IsExplanationRequired bool   `json:"isExplanationRequired"`
	ExplanationLabel      string `json:"explanationLabel,omitempty"`
}

// Order is the order detail response body.
type Order struct {
	ID                   string                `json:"id"`
	Status               OrderStatus           `json:"status"`
	Items                []OrderItem           `json:"items"`
	AvailableTransitions []AvailableTransition `json:"availableTransitions"`
	DeliveredAt          *string               `json:"deliveredAt"`
	RefundedAt           *string               `json:"refundedAt"`
	Version              int                   `json:"version"`
}

// StatusTransition is one outbound edge in the registry response.
type StatusTransition struct {
	ToStatusID         string `json:"toStatusId"`
	Label              string `json:"label"`
	IsScanningRequired bool   `json:"isScanningRequired"`
}

// Status is one configured status in the registry response.
type Status struct {
	ID                    string             `json:"id"`
	Name                  string             `json:"name"`
	Color                 string             `json:"color"`
	IsDefault             bool               `json:"isDefault"`
	IsExplanationRequired bool               `json:"isExplanationRequired"`
	ExplanationLabel      string             `json:"explanationLabel,omitempty"`
	ReserveStock          bool               `json:"reserveStock"`
	ReleaseStock          bool               `json:"releaseStock"`
	ReduceStock           bool               `json:"reduceStock"`
	IncreaseStock         bool               `json:"increaseStock"`
	MarkAsDelivered       bool               `json:"markAsDelivered"`
	MarkAsRefunded        bool               `json:"markAsRefunded"`
	SendNotification      bool               `json:"sendNotification"`
	Transitions           []StatusTransition `json:"transitions"`
}

// StatusUpdateLog is one audit entry in the history response.
type StatusUpdateLog struct {
	UpdatedBy   string `json:"updatedBy"`
	UpdatedAt   string `json:"updatedAt"`
	StatusID    string `json:"statusId"`
	StatusName  string `json:"statusName"`
	Explanation string `json:"explanation,omitempty"`
}

// StatusUpdateLogPage is one page of an order's audit history.
type StatusUpdateLogPage struct {
	Logs  []StatusUpdateLog `json:"logs"`
	Total int               `json:"total"`
}

// CreateOrder handles POST /api/v1/orders - registers a new order, which
// enters the registry's default status.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	items := make([]commands.CreateOrderItem, 0, len(body.Items))
	for _, line := range body.Items {
		productItemID, err := kernel.UUIDFromString(line.ProductItemID)
		if err != nil {
			return badRequest(ctx, "Invalid product item ID: "+line.ProductItemID)
		}
		items = append(items, commands.CreateOrderItem{
			ProductItemID: productItemID,
			Quantity:      line.Quantity,
			Barcode:       line.Barcode,
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, items)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.mapCommandError(ctx, err, "Failed to create order")
	}

	return ctx.JSON(http.StatusCreated, CreatedOrder{ID: orderID.String()})
}

// GetOrder handles GET /api/v1/orders/:id - retrieves one order with its
// status badge, line items, and available transitions.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	response, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return notFound(ctx, "Order not found")
		}
		return internalError(ctx, "Failed to retrieve order")
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(response))
}

// GetStatusUpdateLogs handles GET /api/v1/orders/:id/status-logs - retrieves
// one page of an order's audit history, newest first.
func (s *Server) GetStatusUpdateLogs(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	var params struct {
		Page  int `query:"page"`
		Limit int `query:"limit"`
	}
	if err := ctx.Bind(&params); err != nil {
		return badRequest(ctx, "Invalid pagination parameters")
	}

	query, err := queries.NewGetStatusUpdateLogsQuery(orderID, params.Page, params.Limit)
	if err != nil {
		return badRequest(ctx, "Invalid pagination parameters: "+err.Error())
	}

	page, err := s.getStatusUpdateLogsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve status history")
	}

	response := StatusUpdateLogPage{
		Logs:  make([]StatusUpdateLog, 0, len(page.Logs)),
		Total: page.Total,
	}
	for _, entry := range page.Logs {
		response.Logs = append(response.Logs, StatusUpdateLog{
			UpdatedBy:   entry.UpdatedBy.String(),
			UpdatedAt:   entry.UpdatedAt.UTC().Format(time.RFC3339),
			StatusID:    entry.StatusID.String(),
			StatusName:  entry.StatusName,
			Explanation: entry.Explanation,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// ApplyTransition handles POST /api/v1/orders/:id/transitions - moves an
// order into another status after server-side re-verification of all gates.
func (s *Server) ApplyTransition(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	var body NewTransition
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	toStatusID, err := kernel.UUIDFromString(body.ToStatusID)
	if err != nil {
		return badRequest(ctx, "Invalid target status ID")
	}
	updatedBy, err := kernel.UUIDFromString(body.UpdatedBy)
	if err != nil {
		return badRequest(ctx, "Invalid staff member ID")
	}

	cmd, err := commands.NewApplyTransitionCommand(
		orderID, toStatusID, updatedBy, body.Explanation, body.ScannedCounts)
	if err != nil {
		return badRequest(ctx, "Invalid transition data: "+err.Error())
	}

	if err := s.applyTransitionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.mapTransitionError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetStatuses handles GET /api/v1/statuses - retrieves the status registry
// with flags and outbound transitions.
func (s *Server) GetStatuses(ctx echo.Context) error {
	query := queries.NewGetStatusesQuery()

	statuses, err := s.getStatusesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve statuses")
	}

	response := make([]Status, 0, len(statuses))
	for _, entry := range statuses {
		transitions := make([]StatusTransition, 0, len(entry.Transitions))
		for _, t := range entry.Transitions {
			transitions = append(transitions, StatusTransition{
				ToStatusID:         t.ToStatusID.String(),
				Label:              t.Label,
				IsScanningRequired: t.IsScanningRequired,
			})
		}

		response = append(response, Status{
			ID:                    entry.ID.String(),
			Name:                  entry.Name,
			Color:                 entry.Color,
			IsDefault:             entry.IsDefault,
			IsExplanationRequired: entry.IsExplanationRequired,
			ExplanationLabel:      entry.ExplanationLabel,
			ReserveStock:          entry.ReserveStock,
			ReleaseStock:          entry.ReleaseStock,
			ReduceStock:           entry.ReduceStock,
			IncreaseStock:         entry.IncreaseStock,
			MarkAsDelivered:       entry.MarkAsDelivered,
			MarkAsRefunded:        entry.MarkAsRefunded,
			SendNotification:      entry.SendNotification,
			Transitions:           transitions,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// mapTransitionError translates transition failures into HTTP semantics:
// gate failures are the operator's problem (422 with reason codes), a lost
// version race means reload and retry (409), missing objects are 404, and
// side-effect failures are server trouble (500).
func (s *Server) mapTransitionError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, commands.ErrTransitionRejected):
		return ctx.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Code:    http.StatusUnprocessableEntity,
			Message: "Transition rejected",
			Reasons: transitionReasons(err),
		})
	case errors.Is(err, commands.ErrConcurrentModification):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: "Order was modified concurrently, reload and retry",
		})
	case errors.Is(err, errs.ErrObjectNotFound):
		return notFound(ctx, "Order or status not found")
	default:
		return internalError(ctx, "Failed to apply transition")
	}
}

// mapCommandError translates creation failures, keeping not-found and
// validation cases distinguishable from server trouble.
func (s *Server) mapCommandError(ctx echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return notFound(ctx, "Referenced object not found")
	case errors.Is(err, ports.ErrInsufficientStock):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: "Insufficient stock for one of the order lines",
		})
	default:
		return internalError(ctx, fallback)
	}
}

// transitionReasons extracts the gate failure codes from a rejection error.
func transitionReasons(err error) []string {
	var reasons []string
	if errors.Is(err, services.ErrIllegalTransition) {
		reasons = append(reasons, ReasonIllegalTransition)
	}
	if errors.Is(err, services.ErrExplanationRequired) {
		reasons = append(reasons, ReasonExplanationRequired)
	}
	if errors.Is(err, services.ErrScanIncomplete) {
		reasons = append(reasons, ReasonScanIncomplete)
	}
	return reasons
}

// toOrderResponse converts the query read model to the wire representation.
func toOrderResponse(r queries.GetOrderQueryResponse) Order {
	items := make([]OrderItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, OrderItem{
			ProductItemID: item.ProductItemID.String(),
			Quantity:      item.Quantity,
			Barcode:       item.Barcode,
		})
	}

	transitions := make([]AvailableTransition, 0, len(r.AvailableTransitions))
	for _, t := range r.AvailableTransitions {
		transitions = append(transitions, AvailableTransition{
			ToStatusID:            t.ToStatusID.String(),
			ToStatusName:          t.ToStatusName,
			Label:                 t.Label,
			IsScanningRequired:    t.IsScanningRequired,
			IsExplanationRequired: t.IsExplanationRequired,
			ExplanationLabel:      t.ExplanationLabel,
		})
	}

	return Order{
		ID:                   r.ID.String(),
		Status:               OrderStatus{ID: r.Status.ID.String(), Name: r.Status.Name, Color: r.Status.Color},
		Items:                items,
		AvailableTransitions: transitions,
		DeliveredAt:          formatTimestamp(r.DeliveredAt),
		RefundedAt:           formatTimestamp(r.RefundedAt),
		Version:              r.Version,
	}
}

func formatTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.UTC().Format(time.RFC3339)
	return &formatted
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func notFound(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusNotFound, ErrorResponse{
		Code:    http.StatusNotFound,
		Message: message,
	})
}

func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
		Code:    http.StatusInternalServerError,
		Message: message,
	})
}
