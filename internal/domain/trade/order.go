package trade

import (
	"strings"
	"time"

	"github.com/dukahub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is the aggregate root for a customer purchase. Items are part of
// the aggregate and are persisted with the order in one transaction; the
// total is always the sum of the item line prices.
type Order struct {
	shared.StoreAggregateRoot
	CustomerID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	IsPaid       bool            `gorm:"not null;default:false"`
	IsDelivered  bool            `gorm:"not null;default:false"`
	Phone        string          `gorm:"type:varchar(20)"`
	Address      string          `gorm:"type:varchar(500)"`
	DeliveryDate *time.Time
	TotalPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`

	Items []OrderItem
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one product line on an order. Price is the line total
// (unit price at order time multiplied by quantity), never taken from
// the client.
type OrderItem struct {
	shared.BaseEntity
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity  int             `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrder creates a new order for a store's customer
func NewOrder(storeID, customerID uuid.UUID, phone, address string) (*Order, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer is required")
	}
	if len(address) > 500 {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Address cannot exceed 500 characters")
	}

	o := &Order{
		StoreAggregateRoot: shared.NewStoreAggregateRoot(storeID),
		CustomerID:         customerID,
		Phone:              strings.TrimSpace(phone),
		Address:            strings.TrimSpace(address),
		TotalPrice:         decimal.Zero,
		Items:              make([]OrderItem, 0),
	}

	return o, nil
}

// AddItem appends a product line priced at the product's current unit
// price and keeps the order total in sync.
func (o *Order) AddItem(productID uuid.UUID, quantity int, unitPrice decimal.Decimal) error {
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product is required")
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	item := OrderItem{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    o.ID,
		ProductID:  productID,
		Quantity:   quantity,
		Price:      unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}

	o.Items = append(o.Items, item)
	o.recalculateTotal()

	return nil
}

// Finalize validates the completed order and records the creation event
func (o *Order) Finalize() error {
	if len(o.Items) == 0 {
		return shared.NewDomainError("EMPTY_ORDER", "Order must contain at least one item")
	}

	o.AddDomainEvent(NewOrderCreatedEvent(o))

	return nil
}

// SetPaid updates the payment flag
func (o *Order) SetPaid(paid bool) {
	if o.IsPaid == paid {
		return
	}
	o.IsPaid = paid
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	if paid {
		o.AddDomainEvent(NewOrderPaidEvent(o))
	}
}

// SetDelivered updates the delivery flag
func (o *Order) SetDelivered(delivered bool) {
	if o.IsDelivered == delivered {
		return
	}
	o.IsDelivered = delivered
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

// SetDeliveryDate sets or clears the planned delivery date
func (o *Order) SetDeliveryDate(date *time.Time) {
	o.DeliveryDate = date
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

func (o *Order) recalculateTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Price)
	}
	o.TotalPrice = total
}
