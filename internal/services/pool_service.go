package services

import (
	"context"
	"fmt"
	"sync"

	"parametric-service/internal/event"
	"parametric-service/internal/models"
	"parametric-service/internal/payout"

	"github.com/google/uuid"
)

// PoolService owns the shared payout pool. The balance only moves through
// credit and debit, and debit performs its sufficiency check and the
// subtraction under one lock, so the balance can never go negative.
type PoolService struct {
	mu         sync.Mutex
	balance    int64
	payouts    payout.Provider
	emitter    *event.Emitter
	operatorID string
}

func NewPoolService(payouts payout.Provider, emitter *event.Emitter, operatorID string) *PoolService {
	return &PoolService{
		payouts:    payouts,
		emitter:    emitter,
		operatorID: operatorID,
	}
}

// Fund credits the pool with operator money.
func (s *PoolService) Fund(ctx context.Context, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("fund amount must be positive: %w", models.ErrInvalidPayment)
	}

	s.credit(amount)
	s.emitter.Emit(ctx, models.EventPoolFunded, func(e *event.Event) {
		e.Amount = &amount
	})
	return nil
}

// Withdraw moves pool money back to the operator account. The debit happens
// first and is reversed if the transfer fails, so the balance always tracks
// value that actually left.
func (s *PoolService) Withdraw(ctx context.Context, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("withdraw amount must be positive: %w", models.ErrInvalidPayment)
	}
	if err := s.debit(amount); err != nil {
		return err
	}

	reference := uuid.New().String()
	if err := s.payouts.Transfer(ctx, s.operatorID, amount, reference); err != nil {
		s.credit(amount)
		return fmt.Errorf("withdraw transfer failed: %v: %w", err, models.ErrPayoutFailed)
	}

	s.emitter.Emit(ctx, models.EventPoolWithdrawn, func(e *event.Event) {
		e.Amount = &amount
		e.HolderID = s.operatorID
		e.Details = map[string]any{"reference": reference}
	})
	return nil
}

func (s *PoolService) Balance() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balance
}

func (s *PoolService) credit(amount int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balance += amount
}

func (s *PoolService) debit(amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if amount > s.balance {
		return fmt.Errorf("pool balance %d below %d: %w", s.balance, amount, models.ErrInsufficientPool)
	}
	s.balance -= amount
	return nil
}
