package catalog

import (
	"strings"
	"time"

	"github.com/dukahub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Category groups products inside a single store
type Category struct {
	shared.StoreAggregateRoot
	Name        string `gorm:"type:varchar(100);not null"`
	ImageURL    string `gorm:"type:varchar(500)"`
	Description string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category in a store
func NewCategory(storeID uuid.UUID, name string) (*Category, error) {
	if err := validateName(name, "Name"); err != nil {
		return nil, err
	}

	c := &Category{
		StoreAggregateRoot: shared.NewStoreAggregateRoot(storeID),
		Name:               strings.TrimSpace(name),
	}

	c.AddDomainEvent(NewCategoryCreatedEvent(c))

	return c, nil
}

// Update updates the category's basic information
func (c *Category) Update(name, description string) error {
	if err := validateName(name, "Name"); err != nil {
		return err
	}

	c.Name = strings.TrimSpace(name)
	c.Description = description
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetImageURL sets the category's display image
func (c *Category) SetImageURL(url string) error {
	if len(url) > 500 {
		return shared.NewDomainError("INVALID_IMAGE_URL", "Image URL cannot exceed 500 characters")
	}

	c.ImageURL = strings.TrimSpace(url)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

func validateName(name, field string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", field+" is required")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", field+" cannot exceed 100 characters")
	}
	return nil
}
