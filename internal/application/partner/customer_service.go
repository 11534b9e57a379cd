package partner

import (
	"context"

	"github.com/dukahub/backend/internal/domain/partner"
	"github.com/dukahub/backend/internal/domain/shared"
	"github.com/dukahub/backend/internal/domain/store"
	"github.com/google/uuid"
)

// CustomerService handles customer-related business operations
type CustomerService struct {
	customerRepo partner.CustomerRepository
	storeRepo    store.StoreRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository, storeRepo store.StoreRepository) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		storeRepo:    storeRepo,
	}
}

// Create creates a new customer in one of the acting user's stores
func (s *CustomerService) Create(ctx context.Context, ownerID, storeID uuid.UUID, req CreateCustomerRequest) (*CustomerResponse, error) {
	if _, err := s.storeRepo.FindByIDForOwner(ctx, ownerID, storeID); err != nil {
		return nil, err
	}

	exists, err := s.customerRepo.ExistsByEmailForStore(ctx, storeID, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Customer with this email already exists in this store")
	}

	customer, err := partner.NewCustomer(storeID, req.FirstName, req.LastName, req.Email)
	if err != nil {
		return nil, err
	}
	if req.PhoneNumber != "" {
		if err := customer.SetPhoneNumber(req.PhoneNumber); err != nil {
			return nil, err
		}
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// GetByID retrieves a customer from one of the acting user's stores
func (s *CustomerService) GetByID(ctx context.Context, ownerID, storeID, id uuid.UUID) (*CustomerResponse, error) {
	if _, err := s.storeRepo.FindByIDForOwner(ctx, ownerID, storeID); err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.FindByIDForStore(ctx, storeID, id)
	if err != nil {
		return nil, err
	}

	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// List retrieves the customers of one of the acting user's stores
func (s *CustomerService) List(ctx context.Context, ownerID, storeID uuid.UUID, filter CustomerListFilter) ([]CustomerResponse, int64, error) {
	if _, err := s.storeRepo.FindByIDForOwner(ctx, ownerID, storeID); err != nil {
		return nil, 0, err
	}

	domainFilter := shared.DefaultFilter()
	domainFilter.Search = filter.Search
	domainFilter.Filters["store_id"] = storeID

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

	customers, err := s.customerRepo.FindAllForStore(ctx, storeID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.customerRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToCustomerResponses(customers), total, nil
}

// Update modifies a customer in one of the acting user's stores
func (s *CustomerService) Update(ctx context.Context, ownerID, storeID, id uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	if _, err := s.storeRepo.FindByIDForOwner(ctx, ownerID, storeID); err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.FindByIDForStore(ctx, storeID, id)
	if err != nil {
		return nil, err
	}

	firstName := customer.FirstName
	if req.FirstName != nil {
		firstName = *req.FirstName
	}
	lastName := customer.LastName
	if req.LastName != nil {
		lastName = *req.LastName
	}
	if err := customer.Update(firstName, lastName); err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != customer.Email {
		exists, err := s.customerRepo.ExistsByEmailForStore(ctx, storeID, *req.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Customer with this email already exists in this store")
		}
		if err := customer.SetEmail(*req.Email); err != nil {
			return nil, err
		}
	}
	if req.PhoneNumber != nil {
		if err := customer.SetPhoneNumber(*req.PhoneNumber); err != nil {
			return nil, err
		}
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// Delete removes a customer from one of the acting user's stores
func (s *CustomerService) Delete(ctx context.Context, ownerID, storeID, id uuid.UUID) error {
	if _, err := s.storeRepo.FindByIDForOwner(ctx, ownerID, storeID); err != nil {
		return err
	}

	return s.customerRepo.DeleteForStore(ctx, storeID, id)
}
