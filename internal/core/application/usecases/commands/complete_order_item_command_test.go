package commands_test

import (
	"testing"

	"notapos/internal/core/application/usecases/commands"
	"notapos/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCompleteOrderItemCommand(t *testing.T) {
	id := kernel.NewUUID()

	cmd, err := commands.NewCompleteOrderItemCommand(id)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, id, cmd.OrderItemID())
}

func TestNewCompleteOrderItemCommand_EmptyID(t *testing.T) {
	_, err := commands.NewCompleteOrderItemCommand(kernel.UUID{})
	require.Error(t, err)
}

func TestCompleteOrderItemCommand_Validate_ZeroValue(t *testing.T) {
	var cmd commands.CompleteOrderItemCommand
	require.ErrorIs(t, cmd.Validate(), commands.ErrCompleteOrderItemCommandIsNotConstructed)
}
