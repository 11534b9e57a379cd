package store

import (
	"context"

	"github.com/dukahub/backend/internal/domain/shared"
	"github.com/dukahub/backend/internal/domain/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StoreService handles store-related business operations. Every operation
// except Create takes the acting user's ID and only touches stores that
// user owns; stores of other users look like they do not exist.
type StoreService struct {
	storeRepo store.StoreRepository
	logger    *zap.Logger
}

// NewStoreService creates a new StoreService
func NewStoreService(storeRepo store.StoreRepository, logger *zap.Logger) *StoreService {
	return &StoreService{storeRepo: storeRepo, logger: logger}
}

// Create creates a new store owned by the acting user
func (s *StoreService) Create(ctx context.Context, ownerID uuid.UUID, req CreateStoreRequest) (*StoreResponse, error) {
	st, err := store.NewStore(ownerID, req.Name)
	if err != nil {
		return nil, err
	}

	if req.Description != "" {
		if err := st.Update(req.Name, req.Description); err != nil {
			return nil, err
		}
	}
	if req.Lat != "" || req.Long != "" {
		st.SetLocation(req.Lat, req.Long)
	}
	if req.Paybill != "" {
		if err := st.SetPaybill(req.Paybill); err != nil {
			return nil, err
		}
	}

	if err := s.storeRepo.Save(ctx, st); err != nil {
		return nil, err
	}

	s.logger.Info("Store created",
		zap.String("store_id", st.ID.String()),
		zap.String("owner_id", ownerID.String()))

	resp := ToStoreResponse(st)
	return &resp, nil
}

// GetByID retrieves one of the acting user's stores
func (s *StoreService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*StoreResponse, error) {
	st, err := s.storeRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	resp := ToStoreResponse(st)
	return &resp, nil
}

// List retrieves the acting user's stores
func (s *StoreService) List(ctx context.Context, ownerID uuid.UUID, filter StoreListFilter) ([]StoreResponse, int64, error) {
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

	stores, err := s.storeRepo.FindAllForOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.storeRepo.CountForOwner(ctx, ownerID)
	if err != nil {
		return nil, 0, err
	}

	return ToStoreResponses(stores), total, nil
}

// Update modifies one of the acting user's stores
func (s *StoreService) Update(ctx context.Context, ownerID, id uuid.UUID, req UpdateStoreRequest) (*StoreResponse, error) {
	st, err := s.storeRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	name := st.Name
	if req.Name != nil {
		name = *req.Name
	}
	description := st.Description
	if req.Description != nil {
		description = *req.Description
	}
	if err := st.Update(name, description); err != nil {
		return nil, err
	}

	if req.Lat != nil || req.Long != nil {
		lat := st.Lat
		long := st.Long
		if req.Lat != nil {
			lat = *req.Lat
		}
		if req.Long != nil {
			long = *req.Long
		}
		st.SetLocation(lat, long)
	}

	if req.Paybill != nil {
		if err := st.SetPaybill(*req.Paybill); err != nil {
			return nil, err
		}
	}

	if err := s.storeRepo.Save(ctx, st); err != nil {
		return nil, err
	}

	resp := ToStoreResponse(st)
	return &resp, nil
}

// Delete removes one of the acting user's stores together with all of its
// categories, counties, products, images, customers and orders.
func (s *StoreService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.storeRepo.DeleteCascade(ctx, ownerID, id); err != nil {
		return err
	}

	s.logger.Info("Store deleted",
		zap.String("store_id", id.String()),
		zap.String("owner_id", ownerID.String()))

	return nil
}

// ResolveOwned returns the store when the acting user owns it. Handlers for
// store-scoped resources call this before touching anything inside the store.
func (s *StoreService) ResolveOwned(ctx context.Context, ownerID, id uuid.UUID) (*store.Store, error) {
	return s.storeRepo.FindByIDForOwner(ctx, ownerID, id)
}
