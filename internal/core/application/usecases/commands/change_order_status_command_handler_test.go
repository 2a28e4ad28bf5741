package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"traiteur/internal/core/application/usecases/commands"
	"traiteur/internal/core/domain/model/kernel"
	"traiteur/internal/core/domain/model/order"
	"traiteur/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestOrder(t *testing.T, customerID kernel.UUID, menuID kernel.UUID, statut order.Status) *order.Order {
	t.Helper()
	id := customerID
	return order.RestoreOrder(
		kernel.NewUUID(), order.NewNumero(), &id, menuID,
		"12 rue des Lilas, Lyon",
		time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC), "18:30", 4,
		decimal.RequireFromString("50.00"), decimal.RequireFromString("5.00"),
		decimal.RequireFromString("55.00"),
		statut, nil, time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
		nil, nil, nil, nil,
	)
}

func TestChangeOrderStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := context.Background()
	employee := newTestActor(t, "ROLE_EMPLOYEE")
	menuID := kernel.NewUUID()
	aggregate := newTestOrder(t, kernel.NewUUID(), menuID, order.StatusEnAttente)

	cmd, err := commands.NewChangeOrderStatusCommand(aggregate.ID(), employee, order.StatusAcceptee)
	require.NoError(t, err)

	bookedMenu := newTestMenu(t, intPtr(10), false)
	orderRepo := new(MockOrderRepository)
	menuRepo := new(MockMenuRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, cmd.OrderID()).Return(aggregate, nil).Once(),
		uow.On("MenuRepository").Return(menuRepo).Once(),
		menuRepo.On("Get", ctx, menuID).Return(bookedMenu, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Update", ctx, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)
	h := commands.NewChangeOrderStatusCommandHandler(factory, notifier, discardLogger())
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.StatusAcceptee, aggregate.Statut())
	notifier.AssertNotCalled(t, "EquipmentReturnRequested", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_NotStaff(t *testing.T) {
	ctx := context.Background()
	customer := newTestActor(t, "ROLE_USER")
	cmd, err := commands.NewChangeOrderStatusCommand(kernel.NewUUID(), customer, order.StatusAcceptee)
	require.NoError(t, err)

	factory := new(MockUoWFactory)
	h := commands.NewChangeOrderStatusCommandHandler(factory, new(MockNotifier), discardLogger())

	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrNotAuthorized)
	factory.AssertNotCalled(t, "Create")
}

func TestChangeOrderStatusCommandHandler_Handle_AnnuleeRejected(t *testing.T) {
	ctx := context.Background()
	admin := newTestActor(t, "ROLE_ADMIN")
	cmd, err := commands.NewChangeOrderStatusCommand(kernel.NewUUID(), admin, order.StatusAnnulee)
	require.NoError(t, err)

	factory := new(MockUoWFactory)
	h := commands.NewChangeOrderStatusCommandHandler(factory, new(MockNotifier), discardLogger())

	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrNotAuthorized)
	factory.AssertNotCalled(t, "Create")
}

func TestChangeOrderStatusCommandHandler_Handle_IllegalTransition(t *testing.T) {
	ctx := context.Background()
	employee := newTestActor(t, "ROLE_EMPLOYEE")
	menuID := kernel.NewUUID()
	aggregate := newTestOrder(t, kernel.NewUUID(), menuID, order.StatusEnAttente)

	cmd, err := commands.NewChangeOrderStatusCommand(aggregate.ID(), employee, order.StatusLivree)
	require.NoError(t, err)

	bookedMenu := newTestMenu(t, intPtr(10), false)
	orderRepo := new(MockOrderRepository)
	menuRepo := new(MockMenuRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, cmd.OrderID()).Return(aggregate, nil).Once(),
		uow.On("MenuRepository").Return(menuRepo).Once(),
		menuRepo.On("Get", ctx, menuID).Return(bookedMenu, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewChangeOrderStatusCommandHandler(factory, new(MockNotifier), discardLogger())
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrConflict)

	var conflictErr *errs.ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, "en_attente", conflictErr.Details["statut_actuel"])
	assert.ElementsMatch(t, []string{"acceptee", "refusee"}, conflictErr.Details["statuts_suivants"])

	assert.Equal(t, order.StatusEnAttente, aggregate.Statut())
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestChangeOrderStatusCommandHandler_Handle_RetourMaterielNotifies(t *testing.T) {
	ctx := context.Background()
	employee := newTestActor(t, "ROLE_EMPLOYEE")
	menuID := kernel.NewUUID()
	aggregate := newTestOrder(t, kernel.NewUUID(), menuID, order.StatusLivree)

	cmd, err := commands.NewChangeOrderStatusCommand(aggregate.ID(), employee, order.StatusRetourMateriel)
	require.NoError(t, err)

	bookedMenu := newTestMenu(t, intPtr(10), true)
	orderRepo := new(MockOrderRepository)
	menuRepo := new(MockMenuRepository)
	uow := new(MockUoW)
	notifier := new(MockNotifier)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, cmd.OrderID()).Return(aggregate, nil).Once(),
		uow.On("MenuRepository").Return(menuRepo).Once(),
		menuRepo.On("Get", ctx, menuID).Return(bookedMenu, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Update", ctx, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
		notifier.On("EquipmentReturnRequested", ctx, aggregate).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewChangeOrderStatusCommandHandler(factory, notifier, discardLogger())
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.StatusRetourMateriel, aggregate.Statut())
	require.NotNil(t, aggregate.RetourMaterielAt())
	notifier.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_NotificationFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	employee := newTestActor(t, "ROLE_EMPLOYEE")
	menuID := kernel.NewUUID()
	aggregate := newTestOrder(t, kernel.NewUUID(), menuID, order.StatusLivree)

	cmd, err := commands.NewChangeOrderStatusCommand(aggregate.ID(), employee, order.StatusRetourMateriel)
	require.NoError(t, err)

	bookedMenu := newTestMenu(t, intPtr(10), true)
	orderRepo := new(MockOrderRepository)
	menuRepo := new(MockMenuRepository)
	uow := new(MockUoW)
	notifier := new(MockNotifier)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, cmd.OrderID()).Return(aggregate, nil).Once(),
		uow.On("MenuRepository").Return(menuRepo).Once(),
		menuRepo.On("Get", ctx, menuID).Return(bookedMenu, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Update", ctx, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
		notifier.On("EquipmentReturnRequested", ctx, aggregate).Return(errors.New("broker down")).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewChangeOrderStatusCommandHandler(factory, notifier, discardLogger())
	require.NoError(t, h.Handle(ctx, cmd))
}
