package handler

import (
	partnerapp "github.com/dukahub/backend/internal/application/partner"
	"github.com/gin-gonic/gin"
)

// CustomerHandler handles customer API endpoints
type CustomerHandler struct {
	BaseHandler
	customerService *partnerapp.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *partnerapp.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
	}
}

// Create adds a customer to the store
func (h *CustomerHandler) Create(c *gin.Context) {
	ownerID, storeID, ok := h.storeScope(c)
	if !ok {
		return
	}

	var req partnerapp.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.customerService.Create(c.Request.Context(), ownerID, storeID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// GetByID retrieves a customer
func (h *CustomerHandler) GetByID(c *gin.Context) {
	ownerID, storeID, ok := h.storeScope(c)
	if !ok {
		return
	}

	id, err := idParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	result, err := h.customerService.GetByID(c.Request.Context(), ownerID, storeID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// List returns the store's customers
func (h *CustomerHandler) List(c *gin.Context) {
	ownerID, storeID, ok := h.storeScope(c)
	if !ok {
		return
	}

	var filter partnerapp.CustomerListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customers, total, err := h.customerService.List(c.Request.Context(), ownerID, storeID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := paginationDefaults(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, customers, total, page, pageSize)
}

// Update applies a partial update to a customer
func (h *CustomerHandler) Update(c *gin.Context) {
	ownerID, storeID, ok := h.storeScope(c)
	if !ok {
		return
	}

	id, err := idParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	var req partnerapp.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.customerService.Update(c.Request.Context(), ownerID, storeID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete removes a customer and their orders
func (h *CustomerHandler) Delete(c *gin.Context) {
	ownerID, storeID, ok := h.storeScope(c)
	if !ok {
		return
	}

	id, err := idParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	if err := h.customerService.Delete(c.Request.Context(), ownerID, storeID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
