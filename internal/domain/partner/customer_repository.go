package partner

import (
	"context"

	"github.com/dukahub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerRepository defines persistence operations for customers
type CustomerRepository interface {
	shared.StoreScopedRepository[Customer]
	FindByEmailForStore(ctx context.Context, storeID uuid.UUID, email string) (*Customer, error)
	ExistsByEmailForStore(ctx context.Context, storeID uuid.UUID, email string) (bool, error)
}
