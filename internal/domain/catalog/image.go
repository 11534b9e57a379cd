package catalog

import (
	"strings"

	"github.com/dukahub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Image is a stored picture URL. Every image belongs to a store; product
// images additionally reference the product they illustrate.
type Image struct {
	shared.StoreAggregateRoot
	ProductID *uuid.UUID `gorm:"type:uuid;index"`
	URL       string     `gorm:"type:varchar(500);not null"`
}

// TableName returns the table name for GORM
func (Image) TableName() string {
	return "images"
}

// NewStoreImage creates an image attached to the store itself
func NewStoreImage(storeID uuid.UUID, url string) (*Image, error) {
	if err := validateImageURL(url); err != nil {
		return nil, err
	}

	return &Image{
		StoreAggregateRoot: shared.NewStoreAggregateRoot(storeID),
		URL:                strings.TrimSpace(url),
	}, nil
}

// NewProductImage creates an image attached to a product
func NewProductImage(storeID, productID uuid.UUID, url string) (*Image, error) {
	if err := validateImageURL(url); err != nil {
		return nil, err
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product is required")
	}

	return &Image{
		StoreAggregateRoot: shared.NewStoreAggregateRoot(storeID),
		ProductID:          &productID,
		URL:                strings.TrimSpace(url),
	}, nil
}

// IsProductImage reports whether the image belongs to a product
func (i *Image) IsProductImage() bool {
	return i.ProductID != nil
}

func validateImageURL(url string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return shared.NewDomainError("INVALID_IMAGE_URL", "Image URL is required")
	}
	if len(url) > 500 {
		return shared.NewDomainError("INVALID_IMAGE_URL", "Image URL cannot exceed 500 characters")
	}
	return nil
}
