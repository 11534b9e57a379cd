package trade

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrder(t *testing.T) {
	storeID := uuid.New()
	customerID := uuid.New()

	t.Run("creates order with zero total", func(t *testing.T) {
		o, err := NewOrder(storeID, customerID, "+254712345678", "Moi Avenue 12, Nairobi")

		require.NoError(t, err)
		assert.Equal(t, storeID, o.StoreID)
		assert.Equal(t, customerID, o.CustomerID)
		assert.True(t, o.TotalPrice.IsZero())
		assert.False(t, o.IsPaid)
		assert.False(t, o.IsDelivered)
		assert.Empty(t, o.Items)
	})

	t.Run("fails with nil customer", func(t *testing.T) {
		_, err := NewOrder(storeID, uuid.Nil, "", "")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Customer is required")
	})
}

func TestOrder_AddItem(t *testing.T) {
	o, err := NewOrder(uuid.New(), uuid.New(), "", "")
	require.NoError(t, err)

	t.Run("computes line price and running total", func(t *testing.T) {
		require.NoError(t, o.AddItem(uuid.New(), 3, decimal.NewFromInt(210)))
		require.NoError(t, o.AddItem(uuid.New(), 1, decimal.NewFromFloat(99.50)))

		require.Len(t, o.Items, 2)
		assert.True(t, o.Items[0].Price.Equal(decimal.NewFromInt(630)))
		assert.True(t, o.Items[1].Price.Equal(decimal.NewFromFloat(99.50)))
		assert.True(t, o.TotalPrice.Equal(decimal.NewFromFloat(729.50)))
	})

	t.Run("items carry the order id", func(t *testing.T) {
		for _, item := range o.Items {
			assert.Equal(t, o.ID, item.OrderID)
		}
	})

	t.Run("fails with zero quantity", func(t *testing.T) {
		err := o.AddItem(uuid.New(), 0, decimal.NewFromInt(100))

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Quantity must be positive")
	})

	t.Run("fails with negative price", func(t *testing.T) {
		err := o.AddItem(uuid.New(), 1, decimal.NewFromInt(-5))

		assert.Error(t, err)
	})
}

func TestOrder_Finalize(t *testing.T) {
	t.Run("fails on empty order", func(t *testing.T) {
		o, err := NewOrder(uuid.New(), uuid.New(), "", "")
		require.NoError(t, err)

		err = o.Finalize()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "at least one item")
	})

	t.Run("records creation event", func(t *testing.T) {
		o, err := NewOrder(uuid.New(), uuid.New(), "", "")
		require.NoError(t, err)
		require.NoError(t, o.AddItem(uuid.New(), 2, decimal.NewFromInt(50)))

		require.NoError(t, o.Finalize())

		events := o.GetDomainEvents()
		require.Len(t, events, 1)
		created, ok := events[0].(*OrderCreatedEvent)
		require.True(t, ok)
		assert.True(t, created.TotalPrice.Equal(decimal.NewFromInt(100)))
		assert.Equal(t, 1, created.ItemCount)
	})
}

func TestOrder_StatusUpdates(t *testing.T) {
	o, err := NewOrder(uuid.New(), uuid.New(), "", "")
	require.NoError(t, err)
	require.NoError(t, o.AddItem(uuid.New(), 1, decimal.NewFromInt(100)))
	require.NoError(t, o.Finalize())
	o.ClearDomainEvents()

	o.SetPaid(true)
	assert.True(t, o.IsPaid)
	assert.Len(t, o.GetDomainEvents(), 1)

	// Setting the same value again is a no-op
	version := o.Version
	o.SetPaid(true)
	assert.Equal(t, version, o.Version)

	o.SetDelivered(true)
	assert.True(t, o.IsDelivered)

	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	o.SetDeliveryDate(&date)
	require.NotNil(t, o.DeliveryDate)
	assert.Equal(t, date, *o.DeliveryDate)

	o.SetDeliveryDate(nil)
	assert.Nil(t, o.DeliveryDate)
}
