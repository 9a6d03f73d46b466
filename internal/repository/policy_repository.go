package repository

import (
	"context"
	"fmt"
	"sync"

	"parametric-service/internal/models"
)

// PolicyStore is the persistence surface for the append-only policy ledger.
// Ids are assigned sequentially from 0 and records are never deleted.
type PolicyStore interface {
	Create(ctx context.Context, policy *models.Policy) (int64, error)
	GetByID(ctx context.Context, id int64) (models.Policy, error)
	GetByHolderID(ctx context.Context, holderID string) ([]models.Policy, error)
	Count(ctx context.Context) (int64, error)
	SetActive(ctx context.Context, id int64, active bool) error
	SetClaimed(ctx context.Context, id int64, claimed bool) error
	SetDryDays(ctx context.Context, id int64, days int) error
}

// MemoryPolicyStore keeps the ledger in process memory. The slice index is
// the policy id, which makes the sequential-id invariant structural.
type MemoryPolicyStore struct {
	mu       sync.RWMutex
	policies []*models.Policy
}

func NewMemoryPolicyStore() *MemoryPolicyStore {
	return &MemoryPolicyStore{}
}

func (s *MemoryPolicyStore) Create(ctx context.Context, policy *models.Policy) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *policy
	stored.ID = int64(len(s.policies))
	s.policies = append(s.policies, &stored)
	policy.ID = stored.ID
	return stored.ID, nil
}

func (s *MemoryPolicyStore) GetByID(ctx context.Context, id int64) (models.Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if id < 0 || id >= int64(len(s.policies)) {
		return models.Policy{}, fmt.Errorf("policy %d: %w", id, models.ErrNotFound)
	}
	return *s.policies[id], nil
}

func (s *MemoryPolicyStore) GetByHolderID(ctx context.Context, holderID string) ([]models.Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Policy
	for _, p := range s.policies {
		if p.HolderID == holderID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *MemoryPolicyStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.policies)), nil
}

func (s *MemoryPolicyStore) SetActive(ctx context.Context, id int64, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id < 0 || id >= int64(len(s.policies)) {
		return fmt.Errorf("policy %d: %w", id, models.ErrNotFound)
	}
	s.policies[id].IsActive = active
	return nil
}

func (s *MemoryPolicyStore) SetClaimed(ctx context.Context, id int64, claimed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id < 0 || id >= int64(len(s.policies)) {
		return fmt.Errorf("policy %d: %w", id, models.ErrNotFound)
	}
	s.policies[id].HasClaimed = claimed
	return nil
}

func (s *MemoryPolicyStore) SetDryDays(ctx context.Context, id int64, days int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id < 0 || id >= int64(len(s.policies)) {
		return fmt.Errorf("policy %d: %w", id, models.ErrNotFound)
	}
	s.policies[id].ConsecutiveDryDays = days
	return nil
}
