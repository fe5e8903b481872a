package interfaces

import (
	"context"

	"amat_hosting/internal/domain/entities"
)

type IOrderEventPublisher interface {
	Publish(ctx context.Context, event entities.OrderEvent) error
}
