package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"amat_hosting/internal/domain/entities"
	"amat_hosting/internal/usecase/interfaces"
)

// Store is a single-process order store. One mutex guards every table so the
// conditional writes behave like the DynamoDB ones.
type Store struct {
	mu          sync.Mutex
	orders      map[string]entities.Order
	depositRefs map[string]string
	customers   map[string]entities.Customer
	promos      map[string]entities.PromoCode
	now         func() time.Time
}

var (
	_ interfaces.IOrderRepository     = (*Store)(nil)
	_ interfaces.ICustomerRepository  = (*Store)(nil)
	_ interfaces.IPromoCodeRepository = (*Store)(nil)
)

func NewStore() *Store {
	return &Store{
		orders:      map[string]entities.Order{},
		depositRefs: map[string]string{},
		customers:   map[string]entities.Customer{},
		promos:      map[string]entities.PromoCode{},
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// PutPromoCode inserts or replaces a promo code.
func (s *Store) PutPromoCode(p entities.PromoCode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.promos[p.Code] = p
}

func (s *Store) Create(_ context.Context, o entities.Order) (entities.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.orders[o.OrderID]; exists {
		return entities.Order{}, fmt.Errorf("order %s already exists", o.OrderID)
	}
	if o.DepositRef != "" {
		if _, exists := s.depositRefs[o.DepositRef]; exists {
			return entities.Order{}, fmt.Errorf("deposit ref %s already exists", o.DepositRef)
		}
		s.depositRefs[o.DepositRef] = o.OrderID
	}
	s.orders[o.OrderID] = cloneOrder(o)
	return o, nil
}

func (s *Store) GetByID(_ context.Context, orderID string) (entities.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	if !ok {
		return entities.Order{}, nil
	}
	return cloneOrder(o), nil
}

func (s *Store) GetByDepositRef(_ context.Context, depositRef string) (entities.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.depositRefs[depositRef]
	if !ok {
		return entities.Order{}, nil
	}
	return cloneOrder(s.orders[id]), nil
}

func (s *Store) Transition(_ context.Context, orderID string, from, to entities.OrderStatus, patch entities.OrderPatch) (entities.Order, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[orderID]
	if !ok || o.Status != from {
		return cloneOrder(o), false, nil
	}
	o = patch.Apply(o, to, s.now())
	s.orders[orderID] = o
	return cloneOrder(o), true, nil
}

func (s *Store) ConfirmPayment(_ context.Context, orderID string, from entities.OrderStatus, depositStatus, promoCode string) (entities.Order, interfaces.ConfirmOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[orderID]
	if !ok || o.Status != from {
		return cloneOrder(o), interfaces.ConfirmStale, nil
	}

	if promoCode != "" {
		p, ok := s.promos[promoCode]
		if !ok || p.Exhausted() {
			return cloneOrder(o), interfaces.ConfirmPromoExhausted, nil
		}
		p.CurrentUsage++
		s.promos[promoCode] = p
	}

	o = entities.OrderPatch{DepositStatus: depositStatus}.Apply(o, entities.OrderStatusPaid, s.now())
	s.orders[orderID] = o
	return cloneOrder(o), interfaces.ConfirmApplied, nil
}

func (s *Store) UpdateDepositStatus(_ context.Context, orderID, depositStatus string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	if !ok {
		return nil
	}
	o.DepositStatus = depositStatus
	o.UpdatedAt = s.now()
	s.orders[orderID] = o
	return nil
}

func (s *Store) Upsert(_ context.Context, c entities.Customer) (entities.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	existing, ok := s.customers[c.Username]
	if !ok {
		c.CreatedAt = now
		c.UpdatedAt = now
		s.customers[c.Username] = c
		return c, nil
	}
	if strings.TrimSpace(c.PhoneNumber) != "" {
		existing.PhoneNumber = c.PhoneNumber
	}
	existing.UpdatedAt = now
	s.customers[c.Username] = existing
	return existing, nil
}

func (s *Store) GetByCode(_ context.Context, code string) (entities.PromoCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.promos[code], nil
}

func cloneOrder(o entities.Order) entities.Order {
	if o.ServerDetails != nil {
		sd := *o.ServerDetails
		o.ServerDetails = &sd
	}
	if o.ActivatedAt != nil {
		at := *o.ActivatedAt
		o.ActivatedAt = &at
	}
	return o
}
