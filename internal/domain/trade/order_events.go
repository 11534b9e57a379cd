package trade

import (
	"github.com/dukahub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeOrder = "Order"

// Event type constants
const (
	EventTypeOrderCreated = "OrderCreated"
	EventTypeOrderPaid    = "OrderPaid"
)

// OrderCreatedEvent is published when an order is finalized
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID    uuid.UUID       `json:"order_id"`
	StoreID    uuid.UUID       `json:"store_id"`
	CustomerID uuid.UUID       `json:"customer_id"`
	TotalPrice decimal.Decimal `json:"total_price"`
	ItemCount  int             `json:"item_count"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(o *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		StoreID:         o.StoreID,
		CustomerID:      o.CustomerID,
		TotalPrice:      o.TotalPrice,
		ItemCount:       len(o.Items),
	}
}

// OrderPaidEvent is published when an order is marked paid
type OrderPaidEvent struct {
	shared.BaseDomainEvent
	OrderID    uuid.UUID       `json:"order_id"`
	StoreID    uuid.UUID       `json:"store_id"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// NewOrderPaidEvent creates a new OrderPaidEvent
func NewOrderPaidEvent(o *Order) *OrderPaidEvent {
	return &OrderPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPaid, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		StoreID:         o.StoreID,
		TotalPrice:      o.TotalPrice,
	}
}
