package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"amat_hosting/internal/config"
	"amat_hosting/internal/domain/entities"
)

type mapStore struct {
	data map[string][]byte
	ttls map[string]time.Duration
	err  error
}

func newMapStore() *mapStore {
	return &mapStore{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *mapStore) Get(_ context.Context, key string) ([]byte, error) {
	if m.err != nil {
		return nil, m.err
	}
	v, ok := m.data[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	return v, nil
}

func (m *mapStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *mapStore) Close() error { return nil }

func TestDepositStatusCache_RoundTrip(t *testing.T) {
	store := newMapStore()
	c := NewDepositStatusCache(store)
	ctx := context.Background()

	if _, ok, err := c.GetDepositStatus(ctx, "98765"); ok || err != nil {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	snap := entities.DepositStatusSnapshot{DepositRef: "98765", Status: "SUCCESS", Nominal: 550, Method: "QRISFAST"}
	if err := c.SetDepositStatus(ctx, snap, 5*time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.ttls["deposit-status:98765"] != 5*time.Second {
		t.Fatalf("unexpected ttl %v", store.ttls["deposit-status:98765"])
	}

	got, ok, err := c.GetDepositStatus(ctx, "98765")
	if err != nil || !ok || got.Status != "SUCCESS" || got.Nominal != 550 {
		t.Fatalf("unexpected snapshot %+v ok=%v err=%v", got, ok, err)
	}
}

func TestDepositStatusCache_Errors(t *testing.T) {
	store := newMapStore()
	store.data["deposit-status:bad"] = []byte("not-json")
	c := NewDepositStatusCache(store)

	if _, ok, err := c.GetDepositStatus(context.Background(), "bad"); ok || err != nil {
		t.Fatalf("expected corrupt entry to read as miss, got ok=%v err=%v", ok, err)
	}

	boom := errors.New("redis down")
	store.err = boom
	if _, _, err := c.GetDepositStatus(context.Background(), "x"); !errors.Is(err, boom) {
		t.Fatalf("expected %v, got %v", boom, err)
	}
}

func TestNewStore(t *testing.T) {
	s, err := NewStore(context.Background(), config.Cache{Driver: config.CacheDriverNoop}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.Get(context.Background(), "k"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}
	if _, err := NewStore(context.Background(), config.Cache{Driver: "memcached"}, nil); err == nil {
		t.Fatalf("expected unsupported driver error")
	}
}
