package persistence

import (
	"context"
	"errors"

	"github.com/dukahub/backend/internal/domain/catalog"
	"github.com/dukahub/backend/internal/domain/partner"
	"github.com/dukahub/backend/internal/domain/shared"
	"github.com/dukahub/backend/internal/domain/store"
	"github.com/dukahub/backend/internal/domain/trade"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStoreRepository implements StoreRepository using GORM
type GormStoreRepository struct {
	db *gorm.DB
}

// NewGormStoreRepository creates a new GormStoreRepository
func NewGormStoreRepository(db *gorm.DB) *GormStoreRepository {
	return &GormStoreRepository{db: db}
}

// FindByID finds a store by ID
func (r *GormStoreRepository) FindByID(ctx context.Context, id uuid.UUID) (*store.Store, error) {
	var s store.Store
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// FindByIDForOwner finds a store by ID owned by the given user
func (r *GormStoreRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*store.Store, error) {
	var s store.Store
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// FindAllForOwner finds all stores owned by the given user
func (r *GormStoreRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]store.Store, error) {
	var stores []store.Store
	query := r.db.WithContext(ctx).Model(&store.Store{}).Where("owner_id = ?", ownerID)

	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	orderBy := ValidateSortField(filter.OrderBy, StoreSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Find(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}

// Save creates or updates a store
func (r *GormStoreRepository) Save(ctx context.Context, s *store.Store) error {
	return r.db.WithContext(ctx).Save(s).Error
}

// DeleteCascade deletes a store together with everything scoped to it.
// Order items go first through an order subquery since they carry no
// store_id of their own; the remaining tables are cleared child-first
// so no foreign key is left dangling mid-transaction.
func (r *GormStoreRepository) DeleteCascade(ctx context.Context, ownerID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("owner_id = ? AND id = ?", ownerID, id).First(&store.Store{})
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return result.Error
		}

		orderIDs := tx.Model(&trade.Order{}).Select("id").Where("store_id = ?", id)
		if err := tx.Where("order_id IN (?)", orderIDs).
			Delete(&trade.OrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("store_id = ?", id).Delete(&trade.Order{}).Error; err != nil {
			return err
		}
		if err := tx.Where("store_id = ?", id).Delete(&partner.Customer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("store_id = ?", id).Delete(&catalog.Image{}).Error; err != nil {
			return err
		}
		if err := tx.Where("store_id = ?", id).Delete(&catalog.Product{}).Error; err != nil {
			return err
		}
		if err := tx.Where("store_id = ?", id).Delete(&catalog.County{}).Error; err != nil {
			return err
		}
		if err := tx.Where("store_id = ?", id).Delete(&catalog.Category{}).Error; err != nil {
			return err
		}

		return tx.Delete(&store.Store{}, "id = ?", id).Error
	})
}

// CountForOwner counts stores owned by the given user
func (r *GormStoreRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&store.Store{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormStoreRepository implements StoreRepository
var _ store.StoreRepository = (*GormStoreRepository)(nil)
