package handler

import (
	catalogapp "github.com/dukahub/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// CountyHandler handles delivery county API endpoints
type CountyHandler struct {
	BaseHandler
	countyService *catalogapp.CountyService
}

// NewCountyHandler creates a new CountyHandler
func NewCountyHandler(countyService *catalogapp.CountyService) *CountyHandler {
	return &CountyHandler{
		countyService: countyService,
	}
}

// Create adds a delivery county to the store
func (h *CountyHandler) Create(c *gin.Context) {
	ownerID, storeID, ok := h.storeScope(c)
	if !ok {
		return
	}

	var req catalogapp.CreateCountyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.countyService.Create(c.Request.Context(), ownerID, storeID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// GetByID retrieves a county
func (h *CountyHandler) GetByID(c *gin.Context) {
	ownerID, storeID, ok := h.storeScope(c)
	if !ok {
		return
	}

	id, err := idParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid county ID format")
		return
	}

	result, err := h.countyService.GetByID(c.Request.Context(), ownerID, storeID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// List returns the store's delivery counties
func (h *CountyHandler) List(c *gin.Context) {
	ownerID, storeID, ok := h.storeScope(c)
	if !ok {
		return
	}

	var filter catalogapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	counties, total, err := h.countyService.List(c.Request.Context(), ownerID, storeID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := paginationDefaults(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, counties, total, page, pageSize)
}

// Update applies a partial update to a county
func (h *CountyHandler) Update(c *gin.Context) {
	ownerID, storeID, ok := h.storeScope(c)
	if !ok {
		return
	}

	id, err := idParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid county ID format")
		return
	}

	var req catalogapp.UpdateCountyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.countyService.Update(c.Request.Context(), ownerID, storeID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete removes a county
func (h *CountyHandler) Delete(c *gin.Context) {
	ownerID, storeID, ok := h.storeScope(c)
	if !ok {
		return
	}

	id, err := idParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid county ID format")
		return
	}

	if err := h.countyService.Delete(c.Request.Context(), ownerID, storeID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
