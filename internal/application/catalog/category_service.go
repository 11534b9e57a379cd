package catalog

import (
	"context"

	"github.com/dukahub/backend/internal/domain/catalog"
	"github.com/dukahub/backend/internal/domain/shared"
	"github.com/dukahub/backend/internal/domain/store"
	"github.com/google/uuid"
)

// CategoryService handles category-related business operations. Every
// operation resolves the store through the acting user first, so a category
// in someone else's store is indistinguishable from a missing one.
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
	storeRepo    store.StoreRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo catalog.CategoryRepository, storeRepo store.StoreRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		storeRepo:    storeRepo,
	}
}

// Create creates a new category in one of the acting user's stores
func (s *CategoryService) Create(ctx context.Context, ownerID, storeID uuid.UUID, req CreateCategoryRequest) (*CategoryResponse, error) {
	if _, err := s.storeRepo.FindByIDForOwner(ctx, ownerID, storeID); err != nil {
		return nil, err
	}

	exists, err := s.categoryRepo.ExistsByNameForStore(ctx, storeID, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Category with this name already exists")
	}

	category, err := catalog.NewCategory(storeID, req.Name)
	if err != nil {
		return nil, err
	}

	if req.Description != "" {
		if err := category.Update(req.Name, req.Description); err != nil {
			return nil, err
		}
	}
	if req.ImageURL != "" {
		if err := category.SetImageURL(req.ImageURL); err != nil {
			return nil, err
		}
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	resp := ToCategoryResponse(category)
	return &resp, nil
}

// GetByID retrieves a category from one of the acting user's stores
func (s *CategoryService) GetByID(ctx context.Context, ownerID, storeID, id uuid.UUID) (*CategoryResponse, error) {
	if _, err := s.storeRepo.FindByIDForOwner(ctx, ownerID, storeID); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.FindByIDForStore(ctx, storeID, id)
	if err != nil {
		return nil, err
	}

	resp := ToCategoryResponse(category)
	return &resp, nil
}

// List retrieves the categories of one of the acting user's stores
func (s *CategoryService) List(ctx context.Context, ownerID, storeID uuid.UUID, filter ListFilter) ([]CategoryResponse, int64, error) {
	if _, err := s.storeRepo.FindByIDForOwner(ctx, ownerID, storeID); err != nil {
		return nil, 0, err
	}

	domainFilter := toDomainFilter(filter)
	domainFilter.Filters["store_id"] = storeID

	categories, err := s.categoryRepo.FindAllForStore(ctx, storeID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.categoryRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToCategoryResponses(categories), total, nil
}

// Update modifies a category in one of the acting user's stores
func (s *CategoryService) Update(ctx context.Context, ownerID, storeID, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	if _, err := s.storeRepo.FindByIDForOwner(ctx, ownerID, storeID); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.FindByIDForStore(ctx, storeID, id)
	if err != nil {
		return nil, err
	}

	name := category.Name
	if req.Name != nil {
		name = *req.Name
	}
	description := category.Description
	if req.Description != nil {
		description = *req.Description
	}

	if req.Name != nil && name != category.Name {
		exists, err := s.categoryRepo.ExistsByNameForStore(ctx, storeID, name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Category with this name already exists")
		}
	}

	if err := category.Update(name, description); err != nil {
		return nil, err
	}
	if req.ImageURL != nil {
		if err := category.SetImageURL(*req.ImageURL); err != nil {
			return nil, err
		}
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	resp := ToCategoryResponse(category)
	return &resp, nil
}

// Delete removes a category from one of the acting user's stores.
// Products keep their rows; their category reference is cleared by the
// database when the category row goes away.
func (s *CategoryService) Delete(ctx context.Context, ownerID, storeID, id uuid.UUID) error {
	if _, err := s.storeRepo.FindByIDForOwner(ctx, ownerID, storeID); err != nil {
		return err
	}

	return s.categoryRepo.DeleteForStore(ctx, storeID, id)
}

func toDomainFilter(filter ListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	domainFilter.Search = filter.Search

	if filter.Page > 0 && filter.PageSize > 0 {
		domainFilter.Page = filter.Page
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}

	return domainFilter
}
