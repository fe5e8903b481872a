package interfaces

import (
	"context"
	"time"

	"amat_hosting/internal/domain/entities"
)

// IStatusCache holds short-lived deposit status reads. ok is false on a miss.
type IStatusCache interface {
	GetDepositStatus(ctx context.Context, depositRef string) (snap entities.DepositStatusSnapshot, ok bool, err error)
	SetDepositStatus(ctx context.Context, snap entities.DepositStatusSnapshot, ttl time.Duration) error
}
