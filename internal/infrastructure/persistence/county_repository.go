package persistence

import (
	"context"
	"errors"

	"github.com/dukahub/backend/internal/domain/catalog"
	"github.com/dukahub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCountyRepository implements CountyRepository using GORM
type GormCountyRepository struct {
	db *gorm.DB
}

// NewGormCountyRepository creates a new GormCountyRepository
func NewGormCountyRepository(db *gorm.DB) *GormCountyRepository {
	return &GormCountyRepository{db: db}
}

// FindByID finds a county by its ID
func (r *GormCountyRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.County, error) {
	var county catalog.County
	if err := r.db.WithContext(ctx).First(&county, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &county, nil
}

// FindByIDForStore finds a county by ID within a store
func (r *GormCountyRepository) FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*catalog.County, error) {
	var county catalog.County
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND id = ?", storeID, id).
		First(&county).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &county, nil
}

// FindAll finds all counties matching the filter
func (r *GormCountyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.County, error) {
	var counties []catalog.County
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.County{}), filter)

	if err := query.Find(&counties).Error; err != nil {
		return nil, err
	}
	return counties, nil
}

// FindAllForStore finds all delivery counties for a store
func (r *GormCountyRepository) FindAllForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]catalog.County, error) {
	var counties []catalog.County
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&catalog.County{}).Where("store_id = ?", storeID),
		filter,
	)

	if err := query.Find(&counties).Error; err != nil {
		return nil, err
	}
	return counties, nil
}

// Save creates or updates a county
func (r *GormCountyRepository) Save(ctx context.Context, county *catalog.County) error {
	return r.db.WithContext(ctx).Save(county).Error
}

// Delete deletes a county
func (r *GormCountyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.County{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteForStore deletes a county within a store
func (r *GormCountyRepository) DeleteForStore(ctx context.Context, storeID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.County{}, "store_id = ? AND id = ?", storeID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts counties matching the filter
func (r *GormCountyRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&catalog.County{})
	if storeID, ok := filter.Filters["store_id"]; ok {
		query = query.Where("store_id = ?", storeID)
	}
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormCountyRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, CommonSortFields, "name")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// Ensure GormCountyRepository implements CountyRepository
var _ catalog.CountyRepository = (*GormCountyRepository)(nil)
