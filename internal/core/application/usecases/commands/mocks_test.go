package commands_test

import (
	"context"
	"testing"

	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/model/status"
	"backoffice/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockStatusRepository struct{ mock.Mock }

func (m *MockStatusRepository) GetGraph(ctx context.Context) (*status.Graph, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*status.Graph), args.Error(1)
}
func (m *MockStatusRepository) SaveStatus(ctx context.Context, s *status.OrderStatus) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
func (m *MockStatusRepository) SaveTransition(ctx context.Context, t status.Transition) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

type MockStockRepository struct{ mock.Mock }

func (m *MockStockRepository) Reserve(ctx context.Context, id kernel.UUID, q kernel.Quantity) error {
	args := m.Called(ctx, id, q)
	return args.Error(0)
}
func (m *MockStockRepository) Release(ctx context.Context, id kernel.UUID, q kernel.Quantity) error {
	args := m.Called(ctx, id, q)
	return args.Error(0)
}
func (m *MockStockRepository) Reduce(ctx context.Context, id kernel.UUID, q kernel.Quantity) error {
	args := m.Called(ctx, id, q)
	return args.Error(0)
}
func (m *MockStockRepository) Increase(ctx context.Context, id kernel.UUID, q kernel.Quantity) error {
	args := m.Called(ctx, id, q)
	return args.Error(0)
}

type MockNotificationOutbox struct{ mock.Mock }

func (m *MockNotificationOutbox) Enqueue(ctx context.Context, n ports.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}
func (m *MockNotificationOutbox) GetPending(ctx context.Context, limit int) ([]ports.Notification, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.Notification), args.Error(1)
}
func (m *MockNotificationOutbox) MarkDispatched(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockNotificationPublisher struct{ mock.Mock }

func (m *MockNotificationPublisher) Publish(ctx context.Context, n ports.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}
func (m *MockUoW) StatusRepository() ports.StatusRepository {
	args := m.Called()
	return args.Get(0).(ports.StatusRepository)
}
func (m *MockUoW) StockRepository() ports.StockRepository {
	args := m.Called()
	return args.Get(0).(ports.StockRepository)
}
func (m *MockUoW) NotificationOutbox() ports.NotificationOutbox {
	args := m.Called()
	return args.Get(0).(ports.NotificationOutbox)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

// workflow is the configured registry used across handler tests:
//
//	Placed (default, reserves stock)
//	  --("Ship", scan required)--> Shipped (reduces + releases stock, notifies)
//	  --("Cancel")--> Cancelled (explanation required, releases stock)
type workflow struct {
	graph     *status.Graph
	placed    *status.OrderStatus
	shipped   *status.OrderStatus
	cancelled *status.OrderStatus
}

func newWorkflow(t *testing.T) workflow {
	t.Helper()

	placed, err := status.NewOrderStatus(
		kernel.NewUUID(), "Placed", "#0275d8", true, false, "",
		status.ActionFlags{ReserveStock: true})
	require.NoError(t, err)

	shipped, err := status.NewOrderStatus(
		kernel.NewUUID(), "Shipped", "#5bc0de", false, false, "",
		status.ActionFlags{ReduceStock: true, ReleaseStock: true, SendNotification: true})
	require.NoError(t, err)

	cancelled, err := status.NewOrderStatus(
		kernel.NewUUID(), "Cancelled", "#d9534f", false, true, "Reason for cancellation",
		status.ActionFlags{ReleaseStock: true})
	require.NoError(t, err)

	ship, err := status.NewTransition(placed.ID(), shipped.ID(), "Ship", true)
	require.NoError(t, err)
	cancel, err := status.NewTransition(placed.ID(), cancelled.ID(), "Cancel", false)
	require.NoError(t, err)

	graph, err := status.NewGraph(
		[]*status.OrderStatus{placed, shipped, cancelled},
		[]status.Transition{ship, cancel},
	)
	require.NoError(t, err)

	return workflow{graph: graph, placed: placed, shipped: shipped, cancelled: cancelled}
}

// placedOrder builds an order sitting in the default status with a single
// line: two units of barcode 1001.
func placedOrder(t *testing.T, w workflow) *order.Order {
	t.Helper()

	quantity, err := kernel.NewQuantity(2)
	require.NoError(t, err)
	item, err := order.NewItem(kernel.NewUUID(), quantity, "1001")
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), w.placed, []order.Item{item})
	require.NoError(t, err)

	return o
}
