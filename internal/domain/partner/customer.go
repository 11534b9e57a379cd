package partner

import (
	"regexp"
	"strings"
	"time"

	"github.com/dukahub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

// Customer is a buyer known to one store. The same person shopping at two
// stores is two customer rows; email uniqueness holds per store.
type Customer struct {
	shared.StoreAggregateRoot
	FirstName   string `gorm:"type:varchar(150);not null"`
	LastName    string `gorm:"type:varchar(150)"`
	Email       string `gorm:"type:varchar(254);not null;uniqueIndex:idx_customer_store_email,priority:2"`
	PhoneNumber string `gorm:"type:varchar(20)"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer for a store
func NewCustomer(storeID uuid.UUID, firstName, lastName, email string) (*Customer, error) {
	if strings.TrimSpace(firstName) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "First name is required")
	}
	if err := validateCustomerEmail(email); err != nil {
		return nil, err
	}

	c := &Customer{
		StoreAggregateRoot: shared.NewStoreAggregateRoot(storeID),
		FirstName:          strings.TrimSpace(firstName),
		LastName:           strings.TrimSpace(lastName),
		Email:              strings.ToLower(strings.TrimSpace(email)),
	}

	c.AddDomainEvent(NewCustomerCreatedEvent(c))

	return c, nil
}

// Update updates the customer's names
func (c *Customer) Update(firstName, lastName string) error {
	if strings.TrimSpace(firstName) == "" {
		return shared.NewDomainError("INVALID_NAME", "First name is required")
	}

	c.FirstName = strings.TrimSpace(firstName)
	c.LastName = strings.TrimSpace(lastName)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetEmail changes the customer's email address
func (c *Customer) SetEmail(email string) error {
	if err := validateCustomerEmail(email); err != nil {
		return err
	}

	c.Email = strings.ToLower(strings.TrimSpace(email))
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetPhoneNumber sets the customer's phone number
func (c *Customer) SetPhoneNumber(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone != "" && !phoneRegex.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Invalid phone number format")
	}

	c.PhoneNumber = phone
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// FullName returns the customer's display name
func (c *Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

func validateCustomerEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email is required")
	}
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}
