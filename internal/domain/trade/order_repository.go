package trade

import (
	"context"

	"github.com/dukahub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderFilter narrows order listings
type OrderFilter struct {
	shared.Filter
	IsPaid     *bool
	CustomerID *uuid.UUID
}

// OrderRepository defines persistence operations for orders.
// Save persists the order together with its items in one transaction;
// finders populate Items.
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*Order, error)
	FindAllForStore(ctx context.Context, storeID uuid.UUID, filter OrderFilter) ([]Order, error)
	Save(ctx context.Context, o *Order) error
	DeleteForStore(ctx context.Context, storeID, id uuid.UUID) error
	CountForStore(ctx context.Context, storeID uuid.UUID, filter OrderFilter) (int64, error)
	ExistsByProductID(ctx context.Context, productID uuid.UUID) (bool, error)
}
