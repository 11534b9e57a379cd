package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dukahub/backend/internal/domain/shared"
	"github.com/dukahub/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGormOrderRepository_FindByIDForStore(t *testing.T) {
	t.Run("returns not found for an order of another store", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormOrderRepository(db)

		storeID := uuid.New()
		orderID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE store_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(storeID, orderID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		order, err := repo.FindByIDForStore(context.Background(), storeID, orderID)

		assert.Nil(t, order)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderRepository_Save(t *testing.T) {
	t.Run("saves order and items in one transaction", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormOrderRepository(db)

		storeID := uuid.New()
		customerID := uuid.New()
		productID := uuid.New()

		order, err := trade.NewOrder(storeID, customerID, "+254712345678", "Moi Avenue, Nairobi")
		require.NoError(t, err)
		require.NoError(t, order.AddItem(productID, 2, decimal.NewFromFloat(150.00)))

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "orders" SET .*`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM "order_items" WHERE order_id = \$1 AND id NOT IN \(\$2\)`).
			WithArgs(order.ID, order.Items[0].ID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`UPDATE "order_items" SET .*`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = repo.Save(context.Background(), order)

		assert.NoError(t, err)
		assert.Equal(t, order.ID, order.Items[0].OrderID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderRepository_ExistsByProductID(t *testing.T) {
	t.Run("reports referenced product", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormOrderRepository(db)

		productID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "order_items" WHERE product_id = \$1`).
			WithArgs(productID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		exists, err := repo.ExistsByProductID(context.Background(), productID)

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
