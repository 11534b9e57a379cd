package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dukahub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGormProductRepository_DeleteForStore(t *testing.T) {
	t.Run("refuses to delete a product referenced by orders", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormProductRepository(db)

		storeID := uuid.New()
		productID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT count\(\*\) FROM "order_items" WHERE product_id = \$1`).
			WithArgs(productID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectRollback()

		err := repo.DeleteForStore(context.Background(), storeID, productID)

		assert.Equal(t, shared.ErrInvalidState, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("deletes product together with its images", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormProductRepository(db)

		storeID := uuid.New()
		productID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT count\(\*\) FROM "order_items" WHERE product_id = \$1`).
			WithArgs(productID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectExec(`DELETE FROM "images" WHERE product_id = \$1`).
			WithArgs(productID).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`DELETE FROM "products" WHERE store_id = \$1 AND id = \$2`).
			WithArgs(storeID, productID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.DeleteForStore(context.Background(), storeID, productID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
