package handler

import (
	catalogapp "github.com/dukahub/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ImageHandler handles image API endpoints
type ImageHandler struct {
	BaseHandler
	imageService *catalogapp.ImageService
}

// NewImageHandler creates a new ImageHandler
func NewImageHandler(imageService *catalogapp.ImageService) *ImageHandler {
	return &ImageHandler{
		imageService: imageService,
	}
}

// GenerateUploadURL returns a presigned URL for a direct image upload
func (h *ImageHandler) GenerateUploadURL(c *gin.Context) {
	ownerID, storeID, ok := h.storeScope(c)
	if !ok {
		return
	}

	var req catalogapp.UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.imageService.GenerateUploadURL(c.Request.Context(), ownerID, storeID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Create registers an uploaded image, optionally attached to a product
func (h *ImageHandler) Create(c *gin.Context) {
	ownerID, storeID, ok := h.storeScope(c)
	if !ok {
		return
	}

	var req catalogapp.CreateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.imageService.Create(c.Request.Context(), ownerID, storeID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// GetByID retrieves an image record
func (h *ImageHandler) GetByID(c *gin.Context) {
	ownerID, storeID, ok := h.storeScope(c)
	if !ok {
		return
	}

	id, err := idParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid image ID format")
		return
	}

	result, err := h.imageService.GetByID(c.Request.Context(), ownerID, storeID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// List returns the store's images, optionally filtered by product
func (h *ImageHandler) List(c *gin.Context) {
	ownerID, storeID, ok := h.storeScope(c)
	if !ok {
		return
	}

	var productID *uuid.UUID
	if raw := c.Query("product_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid product ID format")
			return
		}
		productID = &parsed
	}

	images, err := h.imageService.List(c.Request.Context(), ownerID, storeID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, images)
}

// Delete removes an image record and its stored object
func (h *ImageHandler) Delete(c *gin.Context) {
	ownerID, storeID, ok := h.storeScope(c)
	if !ok {
		return
	}

	id, err := idParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid image ID format")
		return
	}

	if err := h.imageService.Delete(c.Request.Context(), ownerID, storeID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
