package order_test

import (
	"testing"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLine(t *testing.T, name, unitPrice string, quantity int) order.Line {
	t.Helper()
	line, err := order.NewLine(kernel.NewUUID(), name, mustMoney(t, unitPrice), quantity)
	require.NoError(t, err)
	return line
}

func TestNewOrder(t *testing.T) {
	t.Run("should create pending order with computed total", func(t *testing.T) {
		id := kernel.NewUUID()
		ownerID := kernel.NewUUID()
		lines := []order.Line{
			mustLine(t, "Margherita Pizza", "9.50", 2),
			mustLine(t, "Sparkling Water", "1.75", 2),
		}

		o, err := order.NewOrder(id, ownerID, lines)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.True(t, o.OwnerID().IsEqual(ownerID))
		assert.Equal(t, order.Pending, o.Status())
		assert.Len(t, o.Lines(), 2)
		assert.Equal(t, "22.50", o.TotalAmount().String())
	})

	t.Run("should sum fractional prices without drift", func(t *testing.T) {
		lines := []order.Line{
			mustLine(t, "Item A", "0.10", 1),
			mustLine(t, "Item B", "0.20", 1),
		}

		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), lines)

		require.NoError(t, err)
		assert.Equal(t, "0.30", o.TotalAmount().String())
	})

	t.Run("should set creation and update timestamps", func(t *testing.T) {
		before := time.Now().UTC()

		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []order.Line{
			mustLine(t, "Item", "1.00", 1),
		})

		after := time.Now().UTC()
		require.NoError(t, err)
		assert.False(t, o.CreatedAt().Before(before))
		assert.False(t, o.CreatedAt().After(after))
		assert.Equal(t, o.CreatedAt(), o.UpdatedAt())
	})

	t.Run("should reject empty line list", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "items")
	})

	t.Run("should reject unconstructed lines", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []order.Line{{}})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "items[0]")
	})

	t.Run("should reject invalid owner id", func(t *testing.T) {
		var invalidOwner kernel.UUID

		_, err := order.NewOrder(kernel.NewUUID(), invalidOwner, []order.Line{
			mustLine(t, "Item", "1.00", 1),
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "ownerId")
	})
}

func TestOrder_Lines(t *testing.T) {
	t.Run("should return a copy of the lines", func(t *testing.T) {
		original := mustLine(t, "Item", "1.00", 1)
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []order.Line{original})
		require.NoError(t, err)

		lines := o.Lines()
		lines[0] = order.Line{}

		assert.NoError(t, o.Lines()[0].Validate())
	})
}

func TestOrder_AdvanceTo(t *testing.T) {
	newPendingOrder := func(t *testing.T) *order.Order {
		t.Helper()
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []order.Line{
			mustLine(t, "Item", "1.00", 1),
		})
		require.NoError(t, err)
		return o
	}

	t.Run("should walk the full fulfillment chain", func(t *testing.T) {
		o := newPendingOrder(t)

		for _, next := range []order.Status{
			order.Confirmed,
			order.Preparing,
			order.OutForDelivery,
			order.Delivered,
		} {
			require.NoError(t, o.AdvanceTo(next))
			assert.Equal(t, next, o.Status())
		}
	})

	t.Run("should reject skipping a stage", func(t *testing.T) {
		o := newPendingOrder(t)

		err := o.AdvanceTo(order.Preparing)

		require.ErrorIs(t, err, order.ErrInvalidStatusTransition)
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("should allow cancellation of a pending order", func(t *testing.T) {
		o := newPendingOrder(t)

		require.NoError(t, o.AdvanceTo(order.Cancelled))
		assert.Equal(t, order.Cancelled, o.Status())
	})

	t.Run("should freeze delivered orders", func(t *testing.T) {
		o := newPendingOrder(t)
		for _, next := range []order.Status{
			order.Confirmed, order.Preparing, order.OutForDelivery, order.Delivered,
		} {
			require.NoError(t, o.AdvanceTo(next))
		}

		err := o.AdvanceTo(order.Cancelled)

		require.ErrorIs(t, err, order.ErrInvalidStatusTransition)
		assert.Equal(t, order.Delivered, o.Status())
	})

	t.Run("should freeze cancelled orders", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.AdvanceTo(order.Cancelled))

		err := o.AdvanceTo(order.Confirmed)

		require.ErrorIs(t, err, order.ErrInvalidStatusTransition)
		assert.Equal(t, order.Cancelled, o.Status())
	})

	t.Run("should update only status and updatedAt", func(t *testing.T) {
		o := newPendingOrder(t)
		createdAt := o.CreatedAt()
		total := o.TotalAmount()

		require.NoError(t, o.AdvanceTo(order.Confirmed))

		assert.Equal(t, createdAt, o.CreatedAt())
		assert.True(t, total.IsEqual(o.TotalAmount()))
		assert.False(t, o.UpdatedAt().Before(createdAt))
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should restore order with arbitrary status", func(t *testing.T) {
		id := kernel.NewUUID()
		ownerID := kernel.NewUUID()
		lines := []order.Line{mustLine(t, "Item", "5.50", 2)}
		createdAt := time.Now().UTC().Add(-time.Hour)
		updatedAt := time.Now().UTC()

		o, err := order.RestoreOrder(id, ownerID, lines, mustMoney(t, "11.00"),
			order.OutForDelivery, createdAt, updatedAt)

		require.NoError(t, err)
		assert.Equal(t, order.OutForDelivery, o.Status())
		assert.Equal(t, createdAt, o.CreatedAt())
		assert.Equal(t, updatedAt, o.UpdatedAt())
	})

	t.Run("should reject stored total that violates the sum invariant", func(t *testing.T) {
		lines := []order.Line{mustLine(t, "Item", "5.50", 2)}

		_, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), lines,
			mustMoney(t, "12.00"), order.Pending, time.Now().UTC(), time.Now().UTC())

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		assert.Contains(t, err.Error(), "totalAmount")
	})

	t.Run("should reject Unknown status", func(t *testing.T) {
		lines := []order.Line{mustLine(t, "Item", "5.50", 2)}

		_, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), lines,
			mustMoney(t, "11.00"), order.Unknown, time.Now().UTC(), time.Now().UTC())

		require.Error(t, err)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("should reject nil order", func(t *testing.T) {
		var o *order.Order

		err := o.Validate()

		require.Error(t, err)
		assert.Equal(t, order.ErrOrderIsNotConstructed, err)
	})

	t.Run("should reject directly instantiated order", func(t *testing.T) {
		o := &order.Order{}

		err := o.Validate()

		require.Error(t, err)
	})
}

func TestOrder_IsEqual(t *testing.T) {
	t.Run("should compare orders by identifier", func(t *testing.T) {
		id := kernel.NewUUID()
		lines1 := []order.Line{mustLine(t, "Item", "1.00", 1)}
		lines2 := []order.Line{mustLine(t, "Other", "2.00", 1)}

		o1, err := order.NewOrder(id, kernel.NewUUID(), lines1)
		require.NoError(t, err)
		o2, err := order.NewOrder(id, kernel.NewUUID(), lines2)
		require.NoError(t, err)

		assert.True(t, o1.IsEqual(o2))
		assert.False(t, o1.IsEqual(nil))
	})
}
