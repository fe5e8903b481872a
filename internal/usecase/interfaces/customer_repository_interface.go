package interfaces

import (
	"context"

	"amat_hosting/internal/domain/entities"
)

// ICustomerRepository persists customers keyed by username.
type ICustomerRepository interface {
	Upsert(ctx context.Context, c entities.Customer) (entities.Customer, error)
}
