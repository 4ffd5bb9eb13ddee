package commands_test

import (
	"errors"
	"testing"
	"time"

	"notapos/internal/core/application/usecases/commands"
	"notapos/internal/core/domain/model/orderitem"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDispatchExpiredItemsCommandHandler_Handle_DispatchesExpired(t *testing.T) {
	ctx := t.Context()
	sentAt := testTime()
	now := sentAt.Add(time.Minute)
	first := newPendingItem(30, sentAt)
	second := newPendingItem(45, sentAt)
	expired := []*orderitem.OrderItem{first, second}

	cmd, err := commands.NewDispatchExpiredItemsCommand()
	require.NoError(t, err)

	queryRepo := new(MockOrderItemRepository)
	queryUoW := new(MockUoW)
	mock.InOrder(
		queryUoW.On("Begin", ctx).Return(nil).Once(),
		queryUoW.On("OrderItemRepository").Return(queryRepo).Once(),
		queryRepo.On("GetExpiredUnlocked", ctx, now).Return(expired, nil).Once(),
		queryUoW.On("Commit", ctx).Return(nil).Once(),
		queryUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	firstRepo := new(MockOrderItemRepository)
	firstUoW := new(MockUoW)
	mock.InOrder(
		firstUoW.On("Begin", ctx).Return(nil).Once(),
		firstUoW.On("OrderItemRepository").Return(firstRepo).Once(),
		firstRepo.On("GetForUpdate", ctx, first.ID()).Return(first, nil).Once(),
		firstRepo.On("Update", ctx, first).Return(nil).Once(),
		firstUoW.On("Commit", ctx).Return(nil).Once(),
		firstUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	secondRepo := new(MockOrderItemRepository)
	secondUoW := new(MockUoW)
	mock.InOrder(
		secondUoW.On("Begin", ctx).Return(nil).Once(),
		secondUoW.On("OrderItemRepository").Return(secondRepo).Once(),
		secondRepo.On("GetForUpdate", ctx, second.ID()).Return(second, nil).Once(),
		secondRepo.On("Update", ctx, second).Return(nil).Once(),
		secondUoW.On("Commit", ctx).Return(nil).Once(),
		secondUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(queryUoW).Once()
	factory.On("Create").Return(firstUoW).Once()
	factory.On("Create").Return(secondUoW).Once()

	notifier := new(MockPrepStationNotifier)
	notifier.On("NotifyDispatched", ctx, first).Return(nil).Once()
	notifier.On("NotifyDispatched", ctx, second).Return(nil).Once()

	handler := commands.NewDispatchExpiredItemsCommandHandler(
		factory, fixedClock{now: now}, notifier, discardLogger(),
	)
	dispatched, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 2, dispatched)
	for _, item := range expired {
		assert.Equal(t, orderitem.Dispatched, item.Status())
		assert.True(t, item.IsLocked())
		assert.Nil(t, item.ExpiresAt())
		require.NotNil(t, item.DispatchedAt())
		assert.Equal(t, now, *item.DispatchedAt())
	}
	notifier.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestDispatchExpiredItemsCommandHandler_Handle_NoCandidates(t *testing.T) {
	ctx := t.Context()
	now := testTime()

	cmd, err := commands.NewDispatchExpiredItemsCommand()
	require.NoError(t, err)

	repo := new(MockOrderItemRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderItemRepository").Return(repo).Once(),
		repo.On("GetExpiredUnlocked", ctx, now).Return([]*orderitem.OrderItem{}, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockPrepStationNotifier)

	handler := commands.NewDispatchExpiredItemsCommandHandler(
		factory, fixedClock{now: now}, notifier, discardLogger(),
	)
	dispatched, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Zero(t, dispatched)
	notifier.AssertNotCalled(t, "NotifyDispatched", mock.Anything, mock.Anything)
}

func TestDispatchExpiredItemsCommandHandler_Handle_SkipsLockedCandidate(t *testing.T) {
	ctx := t.Context()
	sentAt := testTime()
	now := sentAt.Add(time.Minute)

	// The query saw the item as pending, but a manual send-now locked it
	// before the sweep could take the row lock.
	raced := newDispatchedItem(sentAt.Add(30 * time.Second))

	cmd, err := commands.NewDispatchExpiredItemsCommand()
	require.NoError(t, err)

	queryRepo := new(MockOrderItemRepository)
	queryUoW := new(MockUoW)
	mock.InOrder(
		queryUoW.On("Begin", ctx).Return(nil).Once(),
		queryUoW.On("OrderItemRepository").Return(queryRepo).Once(),
		queryRepo.On("GetExpiredUnlocked", ctx, now).Return([]*orderitem.OrderItem{raced}, nil).Once(),
		queryUoW.On("Commit", ctx).Return(nil).Once(),
		queryUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	itemRepo := new(MockOrderItemRepository)
	itemUoW := new(MockUoW)
	mock.InOrder(
		itemUoW.On("Begin", ctx).Return(nil).Once(),
		itemUoW.On("OrderItemRepository").Return(itemRepo).Once(),
		itemRepo.On("GetForUpdate", ctx, raced.ID()).Return(raced, nil).Once(),
		itemUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(queryUoW).Once()
	factory.On("Create").Return(itemUoW).Once()

	notifier := new(MockPrepStationNotifier)

	handler := commands.NewDispatchExpiredItemsCommandHandler(
		factory, fixedClock{now: now}, notifier, discardLogger(),
	)
	dispatched, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Zero(t, dispatched)
	itemRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "NotifyDispatched", mock.Anything, mock.Anything)
	assert.Equal(t, sentAt.Add(30*time.Second), *raced.DispatchedAt(), "sweep must not re-dispatch")
}

func TestDispatchExpiredItemsCommandHandler_Handle_SkipsResetTimer(t *testing.T) {
	ctx := t.Context()
	sentAt := testTime()
	now := sentAt.Add(time.Minute)

	// An edit restarted the holding window between the query and the lock,
	// so under the lock the item is no longer expired.
	refreshed := newPendingItem(30, sentAt)
	newDelay := 600
	require.NoError(t, refreshed.Edit(orderitem.Changes{DelaySeconds: &newDelay}, now))

	cmd, err := commands.NewDispatchExpiredItemsCommand()
	require.NoError(t, err)

	queryRepo := new(MockOrderItemRepository)
	queryUoW := new(MockUoW)
	mock.InOrder(
		queryUoW.On("Begin", ctx).Return(nil).Once(),
		queryUoW.On("OrderItemRepository").Return(queryRepo).Once(),
		queryRepo.On("GetExpiredUnlocked", ctx, now).Return([]*orderitem.OrderItem{refreshed}, nil).Once(),
		queryUoW.On("Commit", ctx).Return(nil).Once(),
		queryUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	itemRepo := new(MockOrderItemRepository)
	itemUoW := new(MockUoW)
	mock.InOrder(
		itemUoW.On("Begin", ctx).Return(nil).Once(),
		itemUoW.On("OrderItemRepository").Return(itemRepo).Once(),
		itemRepo.On("GetForUpdate", ctx, refreshed.ID()).Return(refreshed, nil).Once(),
		itemUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(queryUoW).Once()
	factory.On("Create").Return(itemUoW).Once()

	notifier := new(MockPrepStationNotifier)

	handler := commands.NewDispatchExpiredItemsCommandHandler(
		factory, fixedClock{now: now}, notifier, discardLogger(),
	)
	dispatched, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Zero(t, dispatched)
	assert.Equal(t, orderitem.Pending, refreshed.Status())
	itemRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDispatchExpiredItemsCommandHandler_Handle_ItemFailureDoesNotStopSweep(t *testing.T) {
	ctx := t.Context()
	sentAt := testTime()
	now := sentAt.Add(time.Minute)
	failing := newPendingItem(30, sentAt)
	healthy := newPendingItem(30, sentAt)
	expired := []*orderitem.OrderItem{failing, healthy}

	cmd, err := commands.NewDispatchExpiredItemsCommand()
	require.NoError(t, err)

	queryRepo := new(MockOrderItemRepository)
	queryUoW := new(MockUoW)
	mock.InOrder(
		queryUoW.On("Begin", ctx).Return(nil).Once(),
		queryUoW.On("OrderItemRepository").Return(queryRepo).Once(),
		queryRepo.On("GetExpiredUnlocked", ctx, now).Return(expired, nil).Once(),
		queryUoW.On("Commit", ctx).Return(nil).Once(),
		queryUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	failRepo := new(MockOrderItemRepository)
	failUoW := new(MockUoW)
	mock.InOrder(
		failUoW.On("Begin", ctx).Return(nil).Once(),
		failUoW.On("OrderItemRepository").Return(failRepo).Once(),
		failRepo.On("GetForUpdate", ctx, failing.ID()).Return(failing, nil).Once(),
		failRepo.On("Update", ctx, failing).Return(errors.New("update error")).Once(),
		failUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	okRepo := new(MockOrderItemRepository)
	okUoW := new(MockUoW)
	mock.InOrder(
		okUoW.On("Begin", ctx).Return(nil).Once(),
		okUoW.On("OrderItemRepository").Return(okRepo).Once(),
		okRepo.On("GetForUpdate", ctx, healthy.ID()).Return(healthy, nil).Once(),
		okRepo.On("Update", ctx, healthy).Return(nil).Once(),
		okUoW.On("Commit", ctx).Return(nil).Once(),
		okUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(queryUoW).Once()
	factory.On("Create").Return(failUoW).Once()
	factory.On("Create").Return(okUoW).Once()

	notifier := new(MockPrepStationNotifier)
	notifier.On("NotifyDispatched", ctx, healthy).Return(nil).Once()

	handler := commands.NewDispatchExpiredItemsCommandHandler(
		factory, fixedClock{now: now}, notifier, discardLogger(),
	)
	dispatched, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 1, dispatched)
	assert.Equal(t, orderitem.Dispatched, healthy.Status())
	notifier.AssertExpectations(t)
}

func TestDispatchExpiredItemsCommandHandler_Handle_QueryError(t *testing.T) {
	ctx := t.Context()
	now := testTime()

	cmd, err := commands.NewDispatchExpiredItemsCommand()
	require.NoError(t, err)

	repo := new(MockOrderItemRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderItemRepository").Return(repo).Once(),
		repo.On("GetExpiredUnlocked", ctx, now).Return(nil, errors.New("database error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockPrepStationNotifier)

	handler := commands.NewDispatchExpiredItemsCommandHandler(
		factory, fixedClock{now: now}, notifier, discardLogger(),
	)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "database error")
}

func TestDispatchExpiredItemsCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.DispatchExpiredItemsCommand{} // not constructed properly

	factory := new(MockUoWFactory)
	notifier := new(MockPrepStationNotifier)
	handler := commands.NewDispatchExpiredItemsCommandHandler(
		factory, fixedClock{now: testTime()}, notifier, discardLogger(),
	)
	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrDispatchExpiredItemsCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
