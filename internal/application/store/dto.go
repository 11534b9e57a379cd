package store

import (
	"time"

	"github.com/dukahub/backend/internal/domain/store"
	"github.com/google/uuid"
)

// CreateStoreRequest represents a request to create a new store
type CreateStoreRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"max=2000"`
	Lat         string `json:"lat" binding:"max=50"`
	Long        string `json:"long" binding:"max=50"`
	Paybill     string `json:"paybill" binding:"max=20"`
}

// UpdateStoreRequest represents a request to update a store
type UpdateStoreRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Lat         *string `json:"lat" binding:"omitempty,max=50"`
	Long        *string `json:"long" binding:"omitempty,max=50"`
	Paybill     *string `json:"paybill" binding:"omitempty,max=20"`
}

// StoreResponse represents a store in API responses
type StoreResponse struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Lat         string    `json:"lat"`
	Long        string    `json:"long"`
	Paybill     string    `json:"paybill"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Version     int       `json:"version"`
}

// StoreListFilter represents filter options for store list
type StoreListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToStoreResponse converts a domain Store to StoreResponse
func ToStoreResponse(s *store.Store) StoreResponse {
	return StoreResponse{
		ID:          s.ID,
		OwnerID:     s.OwnerID,
		Name:        s.Name,
		Description: s.Description,
		Lat:         s.Lat,
		Long:        s.Long,
		Paybill:     s.Paybill,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
		Version:     s.Version,
	}
}

// ToStoreResponses converts a slice of domain Stores to StoreResponses
func ToStoreResponses(stores []store.Store) []StoreResponse {
	responses := make([]StoreResponse, len(stores))
	for i := range stores {
		responses[i] = ToStoreResponse(&stores[i])
	}
	return responses
}
