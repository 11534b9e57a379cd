package store

import (
	"strings"
	"time"

	"github.com/dukahub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Store is the aggregate root for a merchant storefront. It is the ownership
// boundary for everything else in the system: categories, counties, products,
// customers, orders and images all hang off a store, and a store hangs off
// the user who created it.
type Store struct {
	shared.BaseAggregateRoot
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:varchar(200);not null"`
	Description string    `gorm:"type:text"`
	Lat         string    `gorm:"type:varchar(50)"`
	Long        string    `gorm:"type:varchar(50)"`
	Paybill     string    `gorm:"type:varchar(20)"`
}

// TableName returns the table name for GORM
func (Store) TableName() string {
	return "stores"
}

// NewStore creates a new store owned by the given user
func NewStore(ownerID uuid.UUID, name string) (*Store, error) {
	if err := validateStoreName(name); err != nil {
		return nil, err
	}
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Store owner is required")
	}

	s := &Store{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OwnerID:           ownerID,
		Name:              strings.TrimSpace(name),
	}

	s.AddDomainEvent(NewStoreCreatedEvent(s))

	return s, nil
}

// Update updates the store's basic information
func (s *Store) Update(name, description string) error {
	if err := validateStoreName(name); err != nil {
		return err
	}

	s.Name = strings.TrimSpace(name)
	s.Description = description
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewStoreUpdatedEvent(s))

	return nil
}

// SetLocation sets the store's coordinates
func (s *Store) SetLocation(lat, long string) {
	s.Lat = strings.TrimSpace(lat)
	s.Long = strings.TrimSpace(long)
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// SetPaybill sets the M-Pesa paybill number. It is display metadata only;
// no payment processing happens here.
func (s *Store) SetPaybill(paybill string) error {
	paybill = strings.TrimSpace(paybill)
	if len(paybill) > 20 {
		return shared.NewDomainError("INVALID_PAYBILL", "Paybill cannot exceed 20 characters")
	}

	s.Paybill = paybill
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// IsOwnedBy reports whether the given user owns this store
func (s *Store) IsOwnedBy(userID uuid.UUID) bool {
	return s.OwnerID == userID
}

func validateStoreName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name is required")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 200 characters")
	}
	return nil
}
