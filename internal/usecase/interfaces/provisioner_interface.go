package interfaces

import (
	"context"

	"amat_hosting/internal/domain/entities"
)

// IProvisioner creates the external server for a paid order.
type IProvisioner interface {
	Provision(ctx context.Context, order entities.Order, pkg entities.Package) (entities.ServerDetails, error)
}
