package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dukahub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGormStoreRepository_FindByIDForOwner(t *testing.T) {
	t.Run("returns not found for a store owned by someone else", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormStoreRepository(db)

		ownerID := uuid.New()
		storeID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "stores" WHERE owner_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(ownerID, storeID, 1).
			WillReturnError(assert.AnError)

		s, err := repo.FindByIDForOwner(context.Background(), ownerID, storeID)

		assert.Nil(t, s)
		assert.Error(t, err)
	})
}

func TestGormStoreRepository_DeleteCascade(t *testing.T) {
	t.Run("deletes every store scoped table in one transaction", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormStoreRepository(db)

		ownerID := uuid.New()
		storeID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "stores" WHERE owner_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(ownerID, storeID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "name"}).
				AddRow(storeID, ownerID, "Duka la Mama Njeri"))
		mock.ExpectExec(`DELETE FROM "order_items" WHERE order_id IN \(SELECT "id" FROM "orders" WHERE store_id = \$1\)`).
			WithArgs(storeID).
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec(`DELETE FROM "orders" WHERE store_id = \$1`).
			WithArgs(storeID).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`DELETE FROM "customers" WHERE store_id = \$1`).
			WithArgs(storeID).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`DELETE FROM "images" WHERE store_id = \$1`).
			WithArgs(storeID).
			WillReturnResult(sqlmock.NewResult(0, 4))
		mock.ExpectExec(`DELETE FROM "products" WHERE store_id = \$1`).
			WithArgs(storeID).
			WillReturnResult(sqlmock.NewResult(0, 5))
		mock.ExpectExec(`DELETE FROM "counties" WHERE store_id = \$1`).
			WithArgs(storeID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM "categories" WHERE store_id = \$1`).
			WithArgs(storeID).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`DELETE FROM "stores" WHERE id = \$1`).
			WithArgs(storeID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.DeleteCascade(context.Background(), ownerID, storeID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when the store is not owned by the caller", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormStoreRepository(db)

		ownerID := uuid.New()
		storeID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "stores" WHERE owner_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(ownerID, storeID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectRollback()

		err := repo.DeleteCascade(context.Background(), ownerID, storeID)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
