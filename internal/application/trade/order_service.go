package trade

import (
	"context"
	"errors"

	"github.com/dukahub/backend/internal/domain/catalog"
	"github.com/dukahub/backend/internal/domain/partner"
	"github.com/dukahub/backend/internal/domain/shared"
	"github.com/dukahub/backend/internal/domain/store"
	"github.com/dukahub/backend/internal/domain/trade"
	"github.com/dukahub/backend/internal/infrastructure/notification"
	"github.com/dukahub/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderService handles order-related business operations. Creation resolves
// the store and customer, prices every line from the product catalog and
// persists order plus items in one transaction; the customer is notified
// after the order is safely stored.
type OrderService struct {
	orderRepo    trade.OrderRepository
	productRepo  catalog.ProductRepository
	customerRepo partner.CustomerRepository
	storeRepo    store.StoreRepository
	notifier     notification.Notifier
	metrics      *telemetry.BusinessMetrics
	logger       *zap.Logger
}

// NewOrderService creates a new OrderService. metrics may be nil when
// telemetry is disabled.
func NewOrderService(
	orderRepo trade.OrderRepository,
	productRepo catalog.ProductRepository,
	customerRepo partner.CustomerRepository,
	storeRepo store.StoreRepository,
	notifier notification.Notifier,
	metrics *telemetry.BusinessMetrics,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		storeRepo:    storeRepo,
		notifier:     notifier,
		metrics:      metrics,
		logger:       logger,
	}
}

// Create places a new order in one of the acting user's stores
func (s *OrderService) Create(ctx context.Context, ownerID, storeID uuid.UUID, req CreateOrderRequest) (*OrderResponse, error) {
	st, err := s.storeRepo.FindByIDForOwner(ctx, ownerID, storeID)
	if err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.FindByIDForStore(ctx, storeID, req.CustomerID)
	if err != nil {
		return nil, err
	}

	phone := req.Phone
	if phone == "" {
		phone = customer.PhoneNumber
	}

	order, err := trade.NewOrder(storeID, customer.ID, phone, req.Address)
	if err != nil {
		return nil, err
	}

	receipt := make([]notification.OrderLine, 0, len(req.Items))
	for _, line := range req.Items {
		product, err := s.productRepo.FindByIDForStore(ctx, storeID, line.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("NOT_FOUND", "Product not found in this store")
			}
			return nil, err
		}
		if product.IsArchived {
			return nil, shared.NewDomainError("PRODUCT_ARCHIVED", "Archived products cannot be ordered")
		}

		if err := order.AddItem(product.ID, line.Quantity, product.Price); err != nil {
			return nil, err
		}

		receipt = append(receipt, notification.OrderLine{
			Name:      product.Name,
			Quantity:  line.Quantity,
			UnitPrice: product.Price,
			LineTotal: order.Items[len(order.Items)-1].Price,
		})
	}

	if err := order.Finalize(); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("Order created",
		zap.String("order_id", order.ID.String()),
		zap.String("store_id", storeID.String()),
		zap.String("total_price", order.TotalPrice.String()),
		zap.Int("item_count", len(order.Items)))

	if s.metrics != nil {
		s.metrics.RecordOrderCreated(ctx, storeID, order.TotalPrice, len(order.Items))
	}

	s.notifyCustomer(ctx, st, customer, order, receipt)

	resp := ToOrderResponse(order)
	return &resp, nil
}

// GetByID retrieves an order from one of the acting user's stores
func (s *OrderService) GetByID(ctx context.Context, ownerID, storeID, id uuid.UUID) (*OrderResponse, error) {
	if _, err := s.storeRepo.FindByIDForOwner(ctx, ownerID, storeID); err != nil {
		return nil, err
	}

	order, err := s.orderRepo.FindByIDForStore(ctx, storeID, id)
	if err != nil {
		return nil, err
	}

	resp := ToOrderResponse(order)
	return &resp, nil
}

// List retrieves the orders of one of the acting user's stores
func (s *OrderService) List(ctx context.Context, ownerID, storeID uuid.UUID, filter OrderListFilter) ([]OrderResponse, int64, error) {
	if _, err := s.storeRepo.FindByIDForOwner(ctx, ownerID, storeID); err != nil {
		return nil, 0, err
	}

	domainFilter := trade.OrderFilter{
		Filter:     shared.DefaultFilter(),
		IsPaid:     filter.IsPaid,
		CustomerID: filter.CustomerID,
	}

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

	orders, err := s.orderRepo.FindAllForStore(ctx, storeID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.orderRepo.CountForStore(ctx, storeID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToOrderResponses(orders), total, nil
}

// Update applies the delivery and payment flags. Items, customer, address
// and total are immutable after creation.
func (s *OrderService) Update(ctx context.Context, ownerID, storeID, id uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	if _, err := s.storeRepo.FindByIDForOwner(ctx, ownerID, storeID); err != nil {
		return nil, err
	}

	order, err := s.orderRepo.FindByIDForStore(ctx, storeID, id)
	if err != nil {
		return nil, err
	}

	if req.IsPaid != nil {
		order.SetPaid(*req.IsPaid)
	}
	if req.IsDelivered != nil {
		order.SetDelivered(*req.IsDelivered)
	}
	if req.DeliveryDate != nil {
		order.SetDeliveryDate(req.DeliveryDate)
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	resp := ToOrderResponse(order)
	return &resp, nil
}

// Delete removes an order and its items from one of the acting user's stores
func (s *OrderService) Delete(ctx context.Context, ownerID, storeID, id uuid.UUID) error {
	if _, err := s.storeRepo.FindByIDForOwner(ctx, ownerID, storeID); err != nil {
		return err
	}

	return s.orderRepo.DeleteForStore(ctx, storeID, id)
}

// notifyCustomer sends the order confirmation. The order is already
// committed; a failed notification is logged and never surfaces to the
// caller.
func (s *OrderService) notifyCustomer(ctx context.Context, st *store.Store, customer *partner.Customer, order *trade.Order, receipt []notification.OrderLine) {
	err := s.notifier.NotifyOrderCreated(ctx, notification.OrderNotification{
		OrderID:       order.ID,
		StoreName:     st.Name,
		CustomerName:  customer.FullName(),
		CustomerPhone: order.Phone,
		CustomerEmail: customer.Email,
		TotalPrice:    order.TotalPrice,
		Items:         receipt,
	})

	if s.metrics != nil {
		s.metrics.RecordNotification(ctx, order.StoreID, err == nil)
	}

	if err != nil {
		s.logger.Error("Order notification failed",
			zap.String("order_id", order.ID.String()),
			zap.String("store_id", order.StoreID.String()),
			zap.Error(err))
	}
}
