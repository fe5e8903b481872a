package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"amat_hosting/internal/domain/entities"
	"amat_hosting/internal/usecase/interfaces"
)

const depositStatusKeyPrefix = "deposit-status:"

// DepositStatusCache keeps upstream deposit status reads for a short TTL.
type DepositStatusCache struct {
	store Store
}

var _ interfaces.IStatusCache = (*DepositStatusCache)(nil)

func NewDepositStatusCache(store Store) *DepositStatusCache {
	if store == nil {
		store = NoopStore{}
	}
	return &DepositStatusCache{store: store}
}

func (c *DepositStatusCache) GetDepositStatus(ctx context.Context, depositRef string) (entities.DepositStatusSnapshot, bool, error) {
	raw, err := c.store.Get(ctx, depositStatusKeyPrefix+depositRef)
	if errors.Is(err, ErrCacheMiss) {
		return entities.DepositStatusSnapshot{}, false, nil
	}
	if err != nil {
		return entities.DepositStatusSnapshot{}, false, err
	}
	var snap entities.DepositStatusSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		// Treat an unreadable entry as a miss; the next write replaces it.
		return entities.DepositStatusSnapshot{}, false, nil
	}
	return snap, true, nil
}

func (c *DepositStatusCache) SetDepositStatus(ctx context.Context, snap entities.DepositStatusSnapshot, ttl time.Duration) error {
	if snap.DepositRef == "" {
		return nil
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, depositStatusKeyPrefix+snap.DepositRef, raw, ttl)
}
