package catalog

import (
	"strings"
	"time"

	"github.com/dukahub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// County is a delivery region a store ships to
type County struct {
	shared.StoreAggregateRoot
	Name        string `gorm:"type:varchar(100);not null"`
	Description string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (County) TableName() string {
	return "counties"
}

// NewCounty creates a new delivery county for a store
func NewCounty(storeID uuid.UUID, name string) (*County, error) {
	if err := validateName(name, "Name"); err != nil {
		return nil, err
	}

	c := &County{
		StoreAggregateRoot: shared.NewStoreAggregateRoot(storeID),
		Name:               strings.TrimSpace(name),
	}

	return c, nil
}

// Update updates the county's information
func (c *County) Update(name, description string) error {
	if err := validateName(name, "Name"); err != nil {
		return err
	}

	c.Name = strings.TrimSpace(name)
	c.Description = description
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}
