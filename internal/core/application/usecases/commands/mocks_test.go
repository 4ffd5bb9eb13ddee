package commands_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"notapos/internal/core/application/usecases/commands"
	"notapos/internal/core/domain/model/kernel"
	"notapos/internal/core/domain/model/orderitem"
	"notapos/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderItemRepository struct{ mock.Mock }

func (m *MockOrderItemRepository) Add(ctx context.Context, item *orderitem.OrderItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockOrderItemRepository) Update(ctx context.Context, item *orderitem.OrderItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockOrderItemRepository) Get(ctx context.Context, id kernel.UUID) (*orderitem.OrderItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderitem.OrderItem), args.Error(1)
}

func (m *MockOrderItemRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*orderitem.OrderItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderitem.OrderItem), args.Error(1)
}

func (m *MockOrderItemRepository) Remove(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderItemRepository) GetByOrderAndStatus(
	ctx context.Context,
	orderID kernel.UUID,
	status orderitem.Status,
) ([]*orderitem.OrderItem, error) {
	args := m.Called(ctx, orderID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*orderitem.OrderItem), args.Error(1)
}

func (m *MockOrderItemRepository) GetExpiredUnlocked(
	ctx context.Context,
	now time.Time,
) ([]*orderitem.OrderItem, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*orderitem.OrderItem), args.Error(1)
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

func (m *MockUoW) OrderItemRepository() ports.OrderItemRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderItemRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockPrepStationNotifier struct{ mock.Mock }

func (m *MockPrepStationNotifier) NotifyDispatched(ctx context.Context, item *orderitem.OrderItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

// fixedClock pins handler time so tests can assert exact expiry deadlines.
type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testTime() time.Time {
	return time.Date(2025, 6, 15, 18, 30, 0, 0, time.UTC)
}

func mustPrice(s string) kernel.Price {
	price, err := kernel.PriceFromString(s)
	if err != nil {
		panic(err)
	}
	return price
}

func newDraftItem(delaySeconds int) *orderitem.OrderItem {
	item, err := orderitem.NewOrderItem(
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		2,
		mustPrice("12.50"),
		"no onions",
		delaySeconds,
	)
	if err != nil {
		panic(err)
	}
	return item
}

func newPendingItem(delaySeconds int, sentAt time.Time) *orderitem.OrderItem {
	item := newDraftItem(delaySeconds)
	if err := item.Send(sentAt); err != nil {
		panic(err)
	}
	return item
}

func newDispatchedItem(at time.Time) *orderitem.OrderItem {
	item := newPendingItem(0, at)
	if err := item.Dispatch(at); err != nil {
		panic(err)
	}
	return item
}
