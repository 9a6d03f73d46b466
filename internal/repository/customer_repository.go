package repository

import (
	"context"
	"sync"

	"parametric-service/internal/models"
)

// CustomerStore keeps per-holder aggregates. Entries are upserted on first
// purchase and never removed.
type CustomerStore interface {
	RecordPurchase(ctx context.Context, holderID string) error
	AddClaimed(ctx context.Context, holderID string, amount int64) error
	Get(ctx context.Context, holderID string) (models.Customer, bool, error)
}

type MemoryCustomerStore struct {
	mu        sync.RWMutex
	customers map[string]*models.Customer
}

func NewMemoryCustomerStore() *MemoryCustomerStore {
	return &MemoryCustomerStore{customers: make(map[string]*models.Customer)}
}

func (s *MemoryCustomerStore) RecordPurchase(ctx context.Context, holderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.customers[holderID]
	if !ok {
		s.customers[holderID] = &models.Customer{ID: holderID, TotalPolicies: 1}
		return nil
	}
	c.TotalPolicies++
	return nil
}

// AddClaimed credits the cumulative claimed amount. A negative amount
// reverses a prior credit when a settlement unwinds.
func (s *MemoryCustomerStore) AddClaimed(ctx context.Context, holderID string, amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.customers[holderID]
	if !ok {
		c = &models.Customer{ID: holderID}
		s.customers[holderID] = c
	}
	c.TotalClaimed += amount
	return nil
}

func (s *MemoryCustomerStore) Get(ctx context.Context, holderID string) (models.Customer, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.customers[holderID]
	if !ok {
		return models.Customer{ID: holderID}, false, nil
	}
	return *c, true, nil
}
