package commands_test

import (
	"testing"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, s string) kernel.Money {
	t.Helper()
	money, err := kernel.NewMoneyFromString(s)
	require.NoError(t, err)
	return money
}

func mustCartLine(t *testing.T, quantity int, unitPrice string) commands.CartLine {
	t.Helper()
	line, err := commands.NewCartLine(kernel.NewUUID(), quantity, mustMoney(t, unitPrice))
	require.NoError(t, err)
	return line
}

func TestNewCartLine(t *testing.T) {
	t.Run("should create valid cart line", func(t *testing.T) {
		productID := kernel.NewUUID()
		unitPrice := mustMoney(t, "10.00")

		line, err := commands.NewCartLine(productID, 2, unitPrice)

		require.NoError(t, err)
		require.NoError(t, line.Validate())
		assert.True(t, line.ProductID().IsEqual(productID))
		assert.Equal(t, 2, line.Quantity())
		assert.True(t, line.UnitPrice().IsEqual(unitPrice))
	})

	t.Run("should reject invalid product id", func(t *testing.T) {
		var invalidID kernel.UUID

		_, err := commands.NewCartLine(invalidID, 1, mustMoney(t, "10.00"))

		require.Error(t, err)
	})

	t.Run("should reject non-positive quantity", func(t *testing.T) {
		for _, quantity := range []int{0, -1} {
			_, err := commands.NewCartLine(kernel.NewUUID(), quantity, mustMoney(t, "10.00"))

			require.Error(t, err)
			assert.Contains(t, err.Error(), "quantity")
		}
	})

	t.Run("should reject unconstructed unit price", func(t *testing.T) {
		var invalidPrice kernel.Money

		_, err := commands.NewCartLine(kernel.NewUUID(), 1, invalidPrice)

		require.Error(t, err)
	})

	t.Run("should reject zero-value cart line", func(t *testing.T) {
		var line commands.CartLine

		err := line.Validate()

		require.Error(t, err)
		assert.Equal(t, commands.ErrCartLineIsNotConstructed, err)
	})
}

func TestNewPlaceOrderCommand(t *testing.T) {
	t.Run("should create valid command", func(t *testing.T) {
		ownerID := kernel.NewUUID()
		lines := []commands.CartLine{
			mustCartLine(t, 1, "9.50"),
			mustCartLine(t, 2, "1.75"),
		}

		cmd, err := commands.NewPlaceOrderCommand(ownerID, lines)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, cmd.OwnerID().IsEqual(ownerID))
		assert.Len(t, cmd.Lines(), 2)
	})

	t.Run("should reject invalid owner id", func(t *testing.T) {
		var invalidOwner kernel.UUID

		_, err := commands.NewPlaceOrderCommand(invalidOwner, []commands.CartLine{
			mustCartLine(t, 1, "9.50"),
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "ownerId")
	})

	t.Run("should reject empty cart", func(t *testing.T) {
		_, err := commands.NewPlaceOrderCommand(kernel.NewUUID(), nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "items")
	})

	t.Run("should reject unconstructed cart lines", func(t *testing.T) {
		_, err := commands.NewPlaceOrderCommand(kernel.NewUUID(), []commands.CartLine{{}})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "items[0]")
	})

	t.Run("should reject zero-value command", func(t *testing.T) {
		var cmd commands.PlaceOrderCommand

		err := cmd.Validate()

		require.Error(t, err)
		assert.Equal(t, commands.ErrPlaceOrderCommandIsNotConstructed, err)
	})
}
