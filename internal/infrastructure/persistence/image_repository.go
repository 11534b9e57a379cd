package persistence

import (
	"context"
	"errors"

	"github.com/dukahub/backend/internal/domain/catalog"
	"github.com/dukahub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormImageRepository implements ImageRepository using GORM
type GormImageRepository struct {
	db *gorm.DB
}

// NewGormImageRepository creates a new GormImageRepository
func NewGormImageRepository(db *gorm.DB) *GormImageRepository {
	return &GormImageRepository{db: db}
}

// FindByIDForStore finds an image by ID within a store
func (r *GormImageRepository) FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*catalog.Image, error) {
	var image catalog.Image
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND id = ?", storeID, id).
		First(&image).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &image, nil
}

// FindAllForProduct finds all images attached to a product
func (r *GormImageRepository) FindAllForProduct(ctx context.Context, productID uuid.UUID) ([]catalog.Image, error) {
	var images []catalog.Image
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at ASC").
		Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

// FindAllForStore finds all images belonging to a store
func (r *GormImageRepository) FindAllForStore(ctx context.Context, storeID uuid.UUID) ([]catalog.Image, error) {
	var images []catalog.Image
	if err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("created_at ASC").
		Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

// Save creates or updates an image
func (r *GormImageRepository) Save(ctx context.Context, img *catalog.Image) error {
	return r.db.WithContext(ctx).Save(img).Error
}

// DeleteForStore deletes an image within a store
func (r *GormImageRepository) DeleteForStore(ctx context.Context, storeID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Image{}, "store_id = ? AND id = ?", storeID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormImageRepository implements ImageRepository
var _ catalog.ImageRepository = (*GormImageRepository)(nil)
