package trade

import (
	"time"

	"github.com/dukahub/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItemInput is one requested product line. The price is never taken
// from the client; it is computed from the product at order time.
type OrderItemInput struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// CreateOrderRequest represents a request to create a new order
type CreateOrderRequest struct {
	CustomerID uuid.UUID        `json:"customer_id" binding:"required"`
	Phone      string           `json:"phone" binding:"max=20"`
	Address    string           `json:"address" binding:"max=500"`
	Items      []OrderItemInput `json:"items" binding:"required,min=1,dive"`
}

// UpdateOrderRequest carries the only order fields that may change after
// creation. Anything else in the body is ignored.
type UpdateOrderRequest struct {
	IsPaid       *bool      `json:"is_paid"`
	IsDelivered  *bool      `json:"is_delivered"`
	DeliveryDate *time.Time `json:"delivery_date"`
}

// OrderItemResponse represents an order line in API responses
type OrderItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID           uuid.UUID           `json:"id"`
	StoreID      uuid.UUID           `json:"store_id"`
	CustomerID   uuid.UUID           `json:"customer_id"`
	IsPaid       bool                `json:"is_paid"`
	IsDelivered  bool                `json:"is_delivered"`
	Phone        string              `json:"phone"`
	Address      string              `json:"address"`
	DeliveryDate *time.Time          `json:"delivery_date"`
	TotalPrice   decimal.Decimal     `json:"total_price"`
	Items        []OrderItemResponse `json:"items"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	Version      int                 `json:"version"`
}

// OrderListFilter represents filter options for order list
type OrderListFilter struct {
	IsPaid     *bool      `form:"is_paid"`
	CustomerID *uuid.UUID `form:"customer_id"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *trade.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}

	return OrderResponse{
		ID:           o.ID,
		StoreID:      o.StoreID,
		CustomerID:   o.CustomerID,
		IsPaid:       o.IsPaid,
		IsDelivered:  o.IsDelivered,
		Phone:        o.Phone,
		Address:      o.Address,
		DeliveryDate: o.DeliveryDate,
		TotalPrice:   o.TotalPrice,
		Items:        items,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
		Version:      o.Version,
	}
}

// ToOrderResponses converts a slice of domain Orders
func ToOrderResponses(orders []trade.Order) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i])
	}
	return responses
}
