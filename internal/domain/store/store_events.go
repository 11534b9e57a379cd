package store

import (
	"github.com/dukahub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeStore = "Store"

// Event type constants
const (
	EventTypeStoreCreated = "StoreCreated"
	EventTypeStoreUpdated = "StoreUpdated"
	EventTypeStoreDeleted = "StoreDeleted"
)

// StoreCreatedEvent is published when a new store is created
type StoreCreatedEvent struct {
	shared.BaseDomainEvent
	StoreID uuid.UUID `json:"store_id"`
	OwnerID uuid.UUID `json:"owner_id"`
	Name    string    `json:"name"`
}

// NewStoreCreatedEvent creates a new StoreCreatedEvent
func NewStoreCreatedEvent(s *Store) *StoreCreatedEvent {
	return &StoreCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStoreCreated, AggregateTypeStore, s.ID),
		StoreID:         s.ID,
		OwnerID:         s.OwnerID,
		Name:            s.Name,
	}
}

// StoreUpdatedEvent is published when a store is updated
type StoreUpdatedEvent struct {
	shared.BaseDomainEvent
	StoreID uuid.UUID `json:"store_id"`
	Name    string    `json:"name"`
}

// NewStoreUpdatedEvent creates a new StoreUpdatedEvent
func NewStoreUpdatedEvent(s *Store) *StoreUpdatedEvent {
	return &StoreUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStoreUpdated, AggregateTypeStore, s.ID),
		StoreID:         s.ID,
		Name:            s.Name,
	}
}
