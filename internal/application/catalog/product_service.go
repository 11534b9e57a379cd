package catalog

import (
	"context"
	"errors"

	"github.com/dukahub/backend/internal/domain/catalog"
	"github.com/dukahub/backend/internal/domain/shared"
	"github.com/dukahub/backend/internal/domain/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	storeRepo    store.StoreRepository
	logger       *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	storeRepo store.StoreRepository,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		storeRepo:    storeRepo,
		logger:       logger,
	}
}

// Create creates a new product in one of the acting user's stores
func (s *ProductService) Create(ctx context.Context, ownerID, storeID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	if _, err := s.storeRepo.FindByIDForOwner(ctx, ownerID, storeID); err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(storeID, req.Name, req.Price, req.Quantity)
	if err != nil {
		return nil, err
	}

	if req.Description != "" {
		if err := product.Update(req.Name, req.Description); err != nil {
			return nil, err
		}
	}

	if req.CategoryID != nil {
		if err := s.checkCategory(ctx, storeID, *req.CategoryID); err != nil {
			return nil, err
		}
		product.SetCategory(req.CategoryID)
	}

	if len(req.ImageURLs) > 0 {
		if err := s.productRepo.SaveWithImages(ctx, product, req.ImageURLs); err != nil {
			return nil, err
		}
	} else {
		if err := s.productRepo.Save(ctx, product); err != nil {
			return nil, err
		}
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("store_id", storeID.String()))

	resp := ToProductResponse(product)
	return &resp, nil
}

// GetByID retrieves a product from one of the acting user's stores
func (s *ProductService) GetByID(ctx context.Context, ownerID, storeID, id uuid.UUID) (*ProductResponse, error) {
	if _, err := s.storeRepo.FindByIDForOwner(ctx, ownerID, storeID); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByIDForStore(ctx, storeID, id)
	if err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// List retrieves the products of one of the acting user's stores
func (s *ProductService) List(ctx context.Context, ownerID, storeID uuid.UUID, filter ProductListFilter) ([]ProductResponse, int64, error) {
	if _, err := s.storeRepo.FindByIDForOwner(ctx, ownerID, storeID); err != nil {
		return nil, 0, err
	}

	domainFilter := catalog.ProductFilter{
		Filter:     shared.DefaultFilter(),
		CategoryID: filter.CategoryID,
		IsArchived: filter.IsArchived,
	}
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

	products, err := s.productRepo.FindAllForStore(ctx, storeID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.productRepo.CountForStore(ctx, storeID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToProductResponses(products), total, nil
}

// Update modifies a product in one of the acting user's stores
func (s *ProductService) Update(ctx context.Context, ownerID, storeID, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	if _, err := s.storeRepo.FindByIDForOwner(ctx, ownerID, storeID); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByIDForStore(ctx, storeID, id)
	if err != nil {
		return nil, err
	}

	name := product.Name
	if req.Name != nil {
		name = *req.Name
	}
	description := product.Description
	if req.Description != nil {
		description = *req.Description
	}
	if err := product.Update(name, description); err != nil {
		return nil, err
	}

	if req.Price != nil {
		if err := product.SetPrice(*req.Price); err != nil {
			return nil, err
		}
	}
	if req.Quantity != nil {
		if err := product.SetQuantity(*req.Quantity); err != nil {
			return nil, err
		}
	}
	if req.Rating != nil {
		if err := product.SetRating(*req.Rating); err != nil {
			return nil, err
		}
	}
	if req.CategoryID != nil {
		if err := s.checkCategory(ctx, storeID, *req.CategoryID); err != nil {
			return nil, err
		}
		product.SetCategory(req.CategoryID)
	}
	if req.IsArchived != nil && *req.IsArchived != product.IsArchived {
		if *req.IsArchived {
			err = product.Archive()
		} else {
			err = product.Unarchive()
		}
		if err != nil {
			return nil, err
		}
	}

	if req.ImageURLs != nil {
		if err := s.productRepo.SaveWithImages(ctx, product, *req.ImageURLs); err != nil {
			return nil, err
		}
	} else {
		if err := s.productRepo.Save(ctx, product); err != nil {
			return nil, err
		}
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// Delete removes a product and its images from one of the acting user's
// stores. Products referenced by order items cannot be deleted; archive
// them instead.
func (s *ProductService) Delete(ctx context.Context, ownerID, storeID, id uuid.UUID) error {
	if _, err := s.storeRepo.FindByIDForOwner(ctx, ownerID, storeID); err != nil {
		return err
	}

	return s.productRepo.DeleteForStore(ctx, storeID, id)
}

func (s *ProductService) checkCategory(ctx context.Context, storeID, categoryID uuid.UUID) error {
	if _, err := s.categoryRepo.FindByIDForStore(ctx, storeID, categoryID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_CATEGORY", "Category not found in this store")
		}
		return err
	}
	return nil
}
