package commands_test

import (
	"testing"

	"notapos/internal/core/application/usecases/commands"
	"notapos/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddOrderItemCommand(t *testing.T) {
	itemID := kernel.NewUUID()
	orderID := kernel.NewUUID()
	menuItemID := kernel.NewUUID()

	cmd, err := commands.NewAddOrderItemCommand(itemID, orderID, menuItemID, 2, mustPrice("9.99"), "rare", 45)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, itemID, cmd.OrderItemID())
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Equal(t, menuItemID, cmd.MenuItemID())
	assert.Equal(t, 2, cmd.Quantity())
	assert.Equal(t, "9.99", cmd.UnitPrice().String())
	assert.Equal(t, "rare", cmd.Instructions())
	assert.Equal(t, 45, cmd.DelaySeconds())
}

func TestNewAddOrderItemCommand_EmptyIDs(t *testing.T) {
	_, err := commands.NewAddOrderItemCommand(
		kernel.UUID{}, kernel.NewUUID(), kernel.NewUUID(), 1, mustPrice("1.00"), "", 0,
	)
	require.Error(t, err)

	_, err = commands.NewAddOrderItemCommand(
		kernel.NewUUID(), kernel.UUID{}, kernel.NewUUID(), 1, mustPrice("1.00"), "", 0,
	)
	require.Error(t, err)

	_, err = commands.NewAddOrderItemCommand(
		kernel.NewUUID(), kernel.NewUUID(), kernel.UUID{}, 1, mustPrice("1.00"), "", 0,
	)
	require.Error(t, err)
}

func TestNewAddOrderItemCommand_InvalidPrice(t *testing.T) {
	_, err := commands.NewAddOrderItemCommand(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 1, kernel.Price{}, "", 0,
	)
	require.Error(t, err)
}

func TestAddOrderItemCommand_Validate_ZeroValue(t *testing.T) {
	var cmd commands.AddOrderItemCommand
	require.ErrorIs(t, cmd.Validate(), commands.ErrAddOrderItemCommandIsNotConstructed)
}
