package catalog

import (
	"context"

	"github.com/dukahub/backend/internal/domain/catalog"
	"github.com/dukahub/backend/internal/domain/store"
	"github.com/google/uuid"
)

// CountyService handles delivery county operations
type CountyService struct {
	countyRepo catalog.CountyRepository
	storeRepo  store.StoreRepository
}

// NewCountyService creates a new CountyService
func NewCountyService(countyRepo catalog.CountyRepository, storeRepo store.StoreRepository) *CountyService {
	return &CountyService{
		countyRepo: countyRepo,
		storeRepo:  storeRepo,
	}
}

// Create adds a delivery county to one of the acting user's stores
func (s *CountyService) Create(ctx context.Context, ownerID, storeID uuid.UUID, req CreateCountyRequest) (*CountyResponse, error) {
	if _, err := s.storeRepo.FindByIDForOwner(ctx, ownerID, storeID); err != nil {
		return nil, err
	}

	county, err := catalog.NewCounty(storeID, req.Name)
	if err != nil {
		return nil, err
	}
	if req.Description != "" {
		if err := county.Update(req.Name, req.Description); err != nil {
			return nil, err
		}
	}

	if err := s.countyRepo.Save(ctx, county); err != nil {
		return nil, err
	}

	resp := ToCountyResponse(county)
	return &resp, nil
}

// GetByID retrieves a county from one of the acting user's stores
func (s *CountyService) GetByID(ctx context.Context, ownerID, storeID, id uuid.UUID) (*CountyResponse, error) {
	if _, err := s.storeRepo.FindByIDForOwner(ctx, ownerID, storeID); err != nil {
		return nil, err
	}

	county, err := s.countyRepo.FindByIDForStore(ctx, storeID, id)
	if err != nil {
		return nil, err
	}

	resp := ToCountyResponse(county)
	return &resp, nil
}

// List retrieves the delivery counties of one of the acting user's stores
func (s *CountyService) List(ctx context.Context, ownerID, storeID uuid.UUID, filter ListFilter) ([]CountyResponse, int64, error) {
	if _, err := s.storeRepo.FindByIDForOwner(ctx, ownerID, storeID); err != nil {
		return nil, 0, err
	}

	domainFilter := toDomainFilter(filter)
	domainFilter.Filters["store_id"] = storeID

	counties, err := s.countyRepo.FindAllForStore(ctx, storeID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.countyRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToCountyResponses(counties), total, nil
}

// Update modifies a county in one of the acting user's stores
func (s *CountyService) Update(ctx context.Context, ownerID, storeID, id uuid.UUID, req UpdateCountyRequest) (*CountyResponse, error) {
	if _, err := s.storeRepo.FindByIDForOwner(ctx, ownerID, storeID); err != nil {
		return nil, err
	}

	county, err := s.countyRepo.FindByIDForStore(ctx, storeID, id)
	if err != nil {
		return nil, err
	}

	name := county.Name
	if req.Name != nil {
		name = *req.Name
	}
	description := county.Description
	if req.Description != nil {
		description = *req.Description
	}

	if err := county.Update(name, description); err != nil {
		return nil, err
	}

	if err := s.countyRepo.Save(ctx, county); err != nil {
		return nil, err
	}

	resp := ToCountyResponse(county)
	return &resp, nil
}

// Delete removes a county from one of the acting user's stores
func (s *CountyService) Delete(ctx context.Context, ownerID, storeID, id uuid.UUID) error {
	if _, err := s.storeRepo.FindByIDForOwner(ctx, ownerID, storeID); err != nil {
		return err
	}

	return s.countyRepo.DeleteForStore(ctx, storeID, id)
}
