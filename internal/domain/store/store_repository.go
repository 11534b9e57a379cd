package store

import (
	"context"

	"github.com/dukahub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// StoreRepository defines persistence operations for stores.
//
// FindByIDForOwner returns shared.ErrNotFound when the store exists but
// belongs to a different user; callers must not be able to tell the two
// cases apart.
type StoreRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Store, error)
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*Store, error)
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]Store, error)
	Save(ctx context.Context, s *Store) error

	// DeleteCascade removes the store and every store-scoped row that
	// references it (categories, counties, products, images, customers,
	// orders, order items) in a single transaction.
	DeleteCascade(ctx context.Context, ownerID, id uuid.UUID) error

	CountForOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
}
