package trade

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dukahub/backend/internal/domain/catalog"
	"github.com/dukahub/backend/internal/domain/partner"
	"github.com/dukahub/backend/internal/domain/shared"
	"github.com/dukahub/backend/internal/domain/store"
	"github.com/dukahub/backend/internal/domain/trade"
	"github.com/dukahub/backend/internal/infrastructure/notification"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockOrderRepository is a mock implementation of OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*trade.Order, error) {
	args := m.Called(ctx, storeID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAllForStore(ctx context.Context, storeID uuid.UUID, filter trade.OrderFilter) ([]trade.Order, error) {
	args := m.Called(ctx, storeID, filter)
	return args.Get(0).([]trade.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *trade.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) DeleteForStore(ctx context.Context, storeID, id uuid.UUID) error {
	args := m.Called(ctx, storeID, id)
	return args.Error(0)
}

func (m *MockOrderRepository) CountForStore(ctx context.Context, storeID uuid.UUID, filter trade.OrderFilter) (int64, error) {
	args := m.Called(ctx, storeID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) ExistsByProductID(ctx context.Context, productID uuid.UUID) (bool, error) {
	args := m.Called(ctx, productID)
	return args.Bool(0), args.Error(1)
}

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, storeID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAllForStore(ctx context.Context, storeID uuid.UUID, filter catalog.ProductFilter) ([]catalog.Product, error) {
	args := m.Called(ctx, storeID, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, p *catalog.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) SaveWithImages(ctx context.Context, p *catalog.Product, imageURLs []string) error {
	args := m.Called(ctx, p, imageURLs)
	return args.Error(0)
}

func (m *MockProductRepository) DeleteForStore(ctx context.Context, storeID, id uuid.UUID) error {
	args := m.Called(ctx, storeID, id)
	return args.Error(0)
}

func (m *MockProductRepository) CountForStore(ctx context.Context, storeID uuid.UUID, filter catalog.ProductFilter) (int64, error) {
	args := m.Called(ctx, storeID, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockCustomerRepository is a mock implementation of CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, storeID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAllForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, storeID, filter)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByEmailForStore(ctx context.Context, storeID uuid.UUID, email string) (*partner.Customer, error) {
	args := m.Called(ctx, storeID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ExistsByEmailForStore(ctx context.Context, storeID uuid.UUID, email string) (bool, error) {
	args := m.Called(ctx, storeID, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) DeleteForStore(ctx context.Context, storeID, id uuid.UUID) error {
	args := m.Called(ctx, storeID, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockStoreRepository is a mock implementation of StoreRepository
type MockStoreRepository struct {
	mock.Mock
}

func (m *MockStoreRepository) FindByID(ctx context.Context, id uuid.UUID) (*store.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Store), args.Error(1)
}

func (m *MockStoreRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*store.Store, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Store), args.Error(1)
}

func (m *MockStoreRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]store.Store, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).([]store.Store), args.Error(1)
}

func (m *MockStoreRepository) Save(ctx context.Context, s *store.Store) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStoreRepository) DeleteCascade(ctx context.Context, ownerID, id uuid.UUID) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *MockStoreRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

// MockNotifier is a mock implementation of Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyOrderCreated(ctx context.Context, n notification.OrderNotification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

// =============================================================================
// Helpers
// =============================================================================

type orderServiceFixture struct {
	orderRepo    *MockOrderRepository
	productRepo  *MockProductRepository
	customerRepo *MockCustomerRepository
	storeRepo    *MockStoreRepository
	notifier     *MockNotifier
	svc          *OrderService

	ownerID  uuid.UUID
	store    *store.Store
	customer *partner.Customer
}

func newOrderServiceFixture(t *testing.T) *orderServiceFixture {
	t.Helper()

	f := &orderServiceFixture{
		orderRepo:    new(MockOrderRepository),
		productRepo:  new(MockProductRepository),
		customerRepo: new(MockCustomerRepository),
		storeRepo:    new(MockStoreRepository),
		notifier:     new(MockNotifier),
		ownerID:      uuid.New(),
	}

	st, err := store.NewStore(f.ownerID, "Duka la Mama Njeri")
	require.NoError(t, err)
	f.store = st

	customer, err := partner.NewCustomer(st.ID, "Wanjiku", "Kamau", "wanjiku@example.com")
	require.NoError(t, err)
	require.NoError(t, customer.SetPhoneNumber("+254712345678"))
	f.customer = customer

	f.svc = NewOrderService(
		f.orderRepo, f.productRepo, f.customerRepo, f.storeRepo,
		f.notifier, nil, zap.NewNop(),
	)

	return f
}

func (f *orderServiceFixture) newProduct(t *testing.T, price int64, quantity int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(f.store.ID, "Kiondo basket", decimal.NewFromInt(price), quantity)
	require.NoError(t, err)
	return p
}

// =============================================================================
// Tests
// =============================================================================

func TestOrderService_Create(t *testing.T) {
	f := newOrderServiceFixture(t)
	basket := f.newProduct(t, 1200, 5)
	soap, err := catalog.NewProduct(f.store.ID, "Shea soap", decimal.NewFromInt(250), 30)
	require.NoError(t, err)

	f.storeRepo.On("FindByIDForOwner", mock.Anything, f.ownerID, f.store.ID).Return(f.store, nil)
	f.customerRepo.On("FindByIDForStore", mock.Anything, f.store.ID, f.customer.ID).Return(f.customer, nil)
	f.productRepo.On("FindByIDForStore", mock.Anything, f.store.ID, basket.ID).Return(basket, nil)
	f.productRepo.On("FindByIDForStore", mock.Anything, f.store.ID, soap.ID).Return(soap, nil)
	f.orderRepo.On("Save", mock.Anything, mock.AnythingOfType("*trade.Order")).Return(nil)
	f.notifier.On("NotifyOrderCreated", mock.Anything, mock.AnythingOfType("notification.OrderNotification")).Return(nil)

	resp, err := f.svc.Create(context.Background(), f.ownerID, f.store.ID, CreateOrderRequest{
		CustomerID: f.customer.ID,
		Address:    "Moi Avenue, Nairobi",
		Items: []OrderItemInput{
			{ProductID: basket.ID, Quantity: 2},
			{ProductID: soap.ID, Quantity: 3},
		},
	})

	require.NoError(t, err)
	// 2 x 1200 + 3 x 250
	assert.True(t, decimal.NewFromInt(3150).Equal(resp.TotalPrice))
	require.Len(t, resp.Items, 2)
	assert.True(t, decimal.NewFromInt(2400).Equal(resp.Items[0].Price))
	assert.True(t, decimal.NewFromInt(750).Equal(resp.Items[1].Price))
	// Phone fell back to the customer's number
	assert.Equal(t, "+254712345678", resp.Phone)

	f.notifier.AssertCalled(t, "NotifyOrderCreated", mock.Anything, mock.MatchedBy(func(n notification.OrderNotification) bool {
		return n.CustomerPhone == "+254712345678" &&
			n.CustomerEmail == "wanjiku@example.com" &&
			len(n.Items) == 2 &&
			n.Items[0].Name == "Kiondo basket" &&
			n.Items[0].Quantity == 2 &&
			decimal.NewFromInt(2400).Equal(n.Items[0].LineTotal) &&
			decimal.NewFromInt(3150).Equal(n.TotalPrice)
	}))
}

func TestOrderService_CreateNotificationFailureDoesNotFail(t *testing.T) {
	f := newOrderServiceFixture(t)
	basket := f.newProduct(t, 1200, 5)

	f.storeRepo.On("FindByIDForOwner", mock.Anything, f.ownerID, f.store.ID).Return(f.store, nil)
	f.customerRepo.On("FindByIDForStore", mock.Anything, f.store.ID, f.customer.ID).Return(f.customer, nil)
	f.productRepo.On("FindByIDForStore", mock.Anything, f.store.ID, basket.ID).Return(basket, nil)
	f.orderRepo.On("Save", mock.Anything, mock.AnythingOfType("*trade.Order")).Return(nil)
	f.notifier.On("NotifyOrderCreated", mock.Anything, mock.Anything).Return(errors.New("gateway timeout"))

	resp, err := f.svc.Create(context.Background(), f.ownerID, f.store.ID, CreateOrderRequest{
		CustomerID: f.customer.ID,
		Items:      []OrderItemInput{{ProductID: basket.ID, Quantity: 1}},
	})

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1200).Equal(resp.TotalPrice))
}

func TestOrderService_CreateCustomerFromOtherStore(t *testing.T) {
	f := newOrderServiceFixture(t)
	customerID := uuid.New()

	f.storeRepo.On("FindByIDForOwner", mock.Anything, f.ownerID, f.store.ID).Return(f.store, nil)
	f.customerRepo.On("FindByIDForStore", mock.Anything, f.store.ID, customerID).Return(nil, shared.ErrNotFound)

	_, err := f.svc.Create(context.Background(), f.ownerID, f.store.ID, CreateOrderRequest{
		CustomerID: customerID,
		Items:      []OrderItemInput{{ProductID: uuid.New(), Quantity: 1}},
	})

	assert.ErrorIs(t, err, shared.ErrNotFound)
	f.orderRepo.AssertNotCalled(t, "Save")
	f.notifier.AssertNotCalled(t, "NotifyOrderCreated")
}

func TestOrderService_CreateUnknownProduct(t *testing.T) {
	f := newOrderServiceFixture(t)
	productID := uuid.New()

	f.storeRepo.On("FindByIDForOwner", mock.Anything, f.ownerID, f.store.ID).Return(f.store, nil)
	f.customerRepo.On("FindByIDForStore", mock.Anything, f.store.ID, f.customer.ID).Return(f.customer, nil)
	f.productRepo.On("FindByIDForStore", mock.Anything, f.store.ID, productID).Return(nil, shared.ErrNotFound)

	_, err := f.svc.Create(context.Background(), f.ownerID, f.store.ID, CreateOrderRequest{
		CustomerID: f.customer.ID,
		Items:      []OrderItemInput{{ProductID: productID, Quantity: 1}},
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	f.orderRepo.AssertNotCalled(t, "Save")
}

func TestOrderService_CreateArchivedProduct(t *testing.T) {
	f := newOrderServiceFixture(t)
	basket := f.newProduct(t, 1200, 5)
	require.NoError(t, basket.Archive())

	f.storeRepo.On("FindByIDForOwner", mock.Anything, f.ownerID, f.store.ID).Return(f.store, nil)
	f.customerRepo.On("FindByIDForStore", mock.Anything, f.store.ID, f.customer.ID).Return(f.customer, nil)
	f.productRepo.On("FindByIDForStore", mock.Anything, f.store.ID, basket.ID).Return(basket, nil)

	_, err := f.svc.Create(context.Background(), f.ownerID, f.store.ID, CreateOrderRequest{
		CustomerID: f.customer.ID,
		Items:      []OrderItemInput{{ProductID: basket.ID, Quantity: 1}},
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "PRODUCT_ARCHIVED", domainErr.Code)
	f.orderRepo.AssertNotCalled(t, "Save")
}

func TestOrderService_CreateEmptyItems(t *testing.T) {
	f := newOrderServiceFixture(t)

	f.storeRepo.On("FindByIDForOwner", mock.Anything, f.ownerID, f.store.ID).Return(f.store, nil)
	f.customerRepo.On("FindByIDForStore", mock.Anything, f.store.ID, f.customer.ID).Return(f.customer, nil)

	_, err := f.svc.Create(context.Background(), f.ownerID, f.store.ID, CreateOrderRequest{
		CustomerID: f.customer.ID,
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "EMPTY_ORDER", domainErr.Code)
}

func TestOrderService_UpdateOnlyTouchesFlags(t *testing.T) {
	f := newOrderServiceFixture(t)

	order, err := trade.NewOrder(f.store.ID, f.customer.ID, "+254712345678", "Moi Avenue")
	require.NoError(t, err)
	require.NoError(t, order.AddItem(uuid.New(), 1, decimal.NewFromInt(500)))
	originalTotal := order.TotalPrice

	f.storeRepo.On("FindByIDForOwner", mock.Anything, f.ownerID, f.store.ID).Return(f.store, nil)
	f.orderRepo.On("FindByIDForStore", mock.Anything, f.store.ID, order.ID).Return(order, nil)
	f.orderRepo.On("Save", mock.Anything, order).Return(nil)

	paid := true
	deliveryDate := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	resp, err := f.svc.Update(context.Background(), f.ownerID, f.store.ID, order.ID, UpdateOrderRequest{
		IsPaid:       &paid,
		DeliveryDate: &deliveryDate,
	})

	require.NoError(t, err)
	assert.True(t, resp.IsPaid)
	assert.False(t, resp.IsDelivered)
	require.NotNil(t, resp.DeliveryDate)
	assert.Equal(t, deliveryDate, *resp.DeliveryDate)
	assert.True(t, originalTotal.Equal(resp.TotalPrice))
}

func TestOrderService_ListWithPaidFilter(t *testing.T) {
	f := newOrderServiceFixture(t)

	order, err := trade.NewOrder(f.store.ID, f.customer.ID, "", "")
	require.NoError(t, err)
	require.NoError(t, order.AddItem(uuid.New(), 1, decimal.NewFromInt(500)))

	paid := false
	f.storeRepo.On("FindByIDForOwner", mock.Anything, f.ownerID, f.store.ID).Return(f.store, nil)
	f.orderRepo.On("FindAllForStore", mock.Anything, f.store.ID, mock.MatchedBy(func(filter trade.OrderFilter) bool {
		return filter.IsPaid != nil && *filter.IsPaid == false
	})).Return([]trade.Order{*order}, nil)
	f.orderRepo.On("CountForStore", mock.Anything, f.store.ID, mock.Anything).Return(int64(1), nil)

	orders, total, err := f.svc.List(context.Background(), f.ownerID, f.store.ID, OrderListFilter{IsPaid: &paid})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, orders, 1)
	require.Len(t, orders[0].Items, 1)
}

func TestOrderService_Delete(t *testing.T) {
	f := newOrderServiceFixture(t)
	orderID := uuid.New()

	f.storeRepo.On("FindByIDForOwner", mock.Anything, f.ownerID, f.store.ID).Return(f.store, nil)
	f.orderRepo.On("DeleteForStore", mock.Anything, f.store.ID, orderID).Return(nil)

	require.NoError(t, f.svc.Delete(context.Background(), f.ownerID, f.store.ID, orderID))
	f.orderRepo.AssertExpectations(t)
}
