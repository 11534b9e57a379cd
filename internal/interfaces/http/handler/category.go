package handler

import (
	catalogapp "github.com/dukahub/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// CategoryHandler handles category API endpoints
type CategoryHandler struct {
	BaseHandler
	categoryService *catalogapp.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *catalogapp.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// Create adds a category to the store
func (h *CategoryHandler) Create(c *gin.Context) {
	ownerID, storeID, ok := h.storeScope(c)
	if !ok {
		return
	}

	var req catalogapp.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.categoryService.Create(c.Request.Context(), ownerID, storeID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// GetByID retrieves a category
func (h *CategoryHandler) GetByID(c *gin.Context) {
	ownerID, storeID, ok := h.storeScope(c)
	if !ok {
		return
	}

	id, err := idParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	result, err := h.categoryService.GetByID(c.Request.Context(), ownerID, storeID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// List returns the store's categories
func (h *CategoryHandler) List(c *gin.Context) {
	ownerID, storeID, ok := h.storeScope(c)
	if !ok {
		return
	}

	var filter catalogapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	categories, total, err := h.categoryService.List(c.Request.Context(), ownerID, storeID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := paginationDefaults(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, categories, total, page, pageSize)
}

// Update applies a partial update to a category
func (h *CategoryHandler) Update(c *gin.Context) {
	ownerID, storeID, ok := h.storeScope(c)
	if !ok {
		return
	}

	id, err := idParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	var req catalogapp.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.categoryService.Update(c.Request.Context(), ownerID, storeID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete removes a category; products keep existing but lose the reference
func (h *CategoryHandler) Delete(c *gin.Context) {
	ownerID, storeID, ok := h.storeScope(c)
	if !ok {
		return
	}

	id, err := idParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), ownerID, storeID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
