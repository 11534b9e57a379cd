package catalog

import (
	"context"

	"github.com/dukahub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CategoryRepository defines persistence operations for categories
type CategoryRepository interface {
	shared.StoreScopedRepository[Category]
	ExistsByNameForStore(ctx context.Context, storeID uuid.UUID, name string) (bool, error)
}

// CountyRepository defines persistence operations for delivery counties
type CountyRepository interface {
	shared.StoreScopedRepository[County]
}

// ProductFilter narrows product listings
type ProductFilter struct {
	shared.Filter
	CategoryID *uuid.UUID
	IsArchived *bool
}

// ProductRepository defines persistence operations for products.
// Finders that return products populate the Images slice.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*Product, error)
	FindAllForStore(ctx context.Context, storeID uuid.UUID, filter ProductFilter) ([]Product, error)
	Save(ctx context.Context, p *Product) error

	// SaveWithImages persists the product and replaces its image set in one
	// transaction.
	SaveWithImages(ctx context.Context, p *Product, imageURLs []string) error

	// DeleteForStore removes the product and its images. It fails with
	// ErrInvalidState when order items still reference the product.
	DeleteForStore(ctx context.Context, storeID, id uuid.UUID) error

	CountForStore(ctx context.Context, storeID uuid.UUID, filter ProductFilter) (int64, error)
}

// ImageRepository defines persistence operations for images
type ImageRepository interface {
	FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*Image, error)
	FindAllForProduct(ctx context.Context, productID uuid.UUID) ([]Image, error)
	FindAllForStore(ctx context.Context, storeID uuid.UUID) ([]Image, error)
	Save(ctx context.Context, img *Image) error
	DeleteForStore(ctx context.Context, storeID, id uuid.UUID) error
}
