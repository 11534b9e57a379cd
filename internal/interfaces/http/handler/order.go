package handler

import (
	tradeapp "github.com/dukahub/backend/internal/application/trade"
	"github.com/gin-gonic/gin"
)

// OrderHandler handles order API endpoints
type OrderHandler struct {
	BaseHandler
	orderService *tradeapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *tradeapp.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// Create places an order for a customer of the store.
// Line prices and the order total are computed server side from the
// catalog, and the customer is notified after the order is persisted.
func (h *OrderHandler) Create(c *gin.Context) {
	ownerID, storeID, ok := h.storeScope(c)
	if !ok {
		return
	}

	var req tradeapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.orderService.Create(c.Request.Context(), ownerID, storeID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// GetByID retrieves an order with its items
func (h *OrderHandler) GetByID(c *gin.Context) {
	ownerID, storeID, ok := h.storeScope(c)
	if !ok {
		return
	}

	id, err := idParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	result, err := h.orderService.GetByID(c.Request.Context(), ownerID, storeID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// List returns the store's orders
func (h *OrderHandler) List(c *gin.Context) {
	ownerID, storeID, ok := h.storeScope(c)
	if !ok {
		return
	}

	var filter tradeapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	orders, total, err := h.orderService.List(c.Request.Context(), ownerID, storeID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := paginationDefaults(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, orders, total, page, pageSize)
}

// Update patches the fulfilment flags of an order.
// Only isPaid, isDelivered and deliveryDate are writable.
func (h *OrderHandler) Update(c *gin.Context) {
	ownerID, storeID, ok := h.storeScope(c)
	if !ok {
		return
	}

	id, err := idParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req tradeapp.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.orderService.Update(c.Request.Context(), ownerID, storeID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete removes an order and its items
func (h *OrderHandler) Delete(c *gin.Context) {
	ownerID, storeID, ok := h.storeScope(c)
	if !ok {
		return
	}

	id, err := idParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), ownerID, storeID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
