package services

import (
	"context"
	"fmt"
	"log/slog"

	"parametric-service/internal/event"
	"parametric-service/internal/models"
	"parametric-service/internal/payout"
	"parametric-service/internal/repository"

	"github.com/google/uuid"
)

// SettlementService is the claims core. Claim holds the policy's lock
// across the whole check-mutate-payout sequence, which is what makes the
// single-payout-per-policy guarantee hold under concurrent attempts.
type SettlementService struct {
	policies    repository.PolicyStore
	customers   repository.CustomerStore
	pool        *PoolService
	eligibility *EligibilityService
	settings    *SettingsService
	payouts     payout.Provider
	emitter     *event.Emitter
	notifier    *event.NotificationPublisher
	locks       *LockTable
}

func NewSettlementService(
	policies repository.PolicyStore,
	customers repository.CustomerStore,
	pool *PoolService,
	eligibility *EligibilityService,
	settings *SettingsService,
	payouts payout.Provider,
	emitter *event.Emitter,
	notifier *event.NotificationPublisher,
	locks *LockTable,
) *SettlementService {
	return &SettlementService{
		policies:    policies,
		customers:   customers,
		pool:        pool,
		eligibility: eligibility,
		settings:    settings,
		payouts:     payouts,
		emitter:     emitter,
		notifier:    notifier,
		locks:       locks,
	}
}

// Claim validates a claim request and, if the policy is eligible, settles
// it: the policy flips to claimed-and-inactive, the pool is debited and the
// compensation is transferred to the holder. Any failure, including a
// failed transfer, leaves every piece of state exactly as it was.
func (s *SettlementService) Claim(ctx context.Context, policyID int64, callerID string) (models.ClaimResponse, error) {
	mu := s.locks.lock(policyID)
	mu.Lock()
	defer mu.Unlock()

	policy, err := s.policies.GetByID(ctx, policyID)
	if err != nil {
		return models.ClaimResponse{}, err
	}
	if !policy.IsActive {
		return models.ClaimResponse{}, fmt.Errorf("policy %d: %w", policyID, models.ErrPolicyInactive)
	}
	if callerID != policy.HolderID {
		return models.ClaimResponse{}, fmt.Errorf("caller is not the policy holder: %w", models.ErrUnauthorized)
	}
	// Deactivation can happen without claiming, so the claimed flag is
	// checked on its own even though active policies are never claimed.
	if policy.HasClaimed {
		return models.ClaimResponse{}, fmt.Errorf("policy %d: %w", policyID, models.ErrAlreadyClaimed)
	}

	eligible, err := s.eligibility.Evaluate(ctx, policy)
	if err != nil {
		return models.ClaimResponse{}, err
	}
	if !eligible {
		return models.ClaimResponse{}, fmt.Errorf("policy %d: %w", policyID, models.ErrThresholdNotMet)
	}

	amount := s.settings.Get().CompensationAmount
	if err := s.pool.debit(amount); err != nil {
		return models.ClaimResponse{}, err
	}

	if err := s.applySettlement(ctx, policyID, policy.HolderID, amount); err != nil {
		s.pool.credit(amount)
		return models.ClaimResponse{}, err
	}

	reference := uuid.New().String()
	if err := s.payouts.Transfer(ctx, policy.HolderID, amount, reference); err != nil {
		s.rollbackSettlement(ctx, policyID, policy.HolderID, amount)
		s.pool.credit(amount)
		return models.ClaimResponse{}, fmt.Errorf("payout of %d to %s failed: %v: %w", amount, policy.HolderID, err, models.ErrPayoutFailed)
	}

	s.emitter.Emit(ctx, models.EventSettlement, func(e *event.Event) {
		e.PolicyID = &policyID
		e.HolderID = policy.HolderID
		e.Amount = &amount
		e.Details = map[string]any{"reference": reference}
	})
	s.notifier.NotifySettlement(ctx, policy.HolderID, policyID, amount)

	return models.ClaimResponse{PolicyID: policyID, PaidOut: amount, Reference: reference}, nil
}

// applySettlement deactivates before marking claimed so a concurrent
// reader never sees a claimed-but-active policy.
func (s *SettlementService) applySettlement(ctx context.Context, policyID int64, holderID string, amount int64) error {
	if err := s.policies.SetActive(ctx, policyID, false); err != nil {
		return fmt.Errorf("failed to deactivate policy: %w", err)
	}
	if err := s.policies.SetClaimed(ctx, policyID, true); err != nil {
		_ = s.policies.SetActive(ctx, policyID, true)
		return fmt.Errorf("failed to mark policy claimed: %w", err)
	}
	if err := s.customers.AddClaimed(ctx, holderID, amount); err != nil {
		_ = s.policies.SetClaimed(ctx, policyID, false)
		_ = s.policies.SetActive(ctx, policyID, true)
		return fmt.Errorf("failed to credit customer aggregate: %w", err)
	}
	return nil
}

func (s *SettlementService) rollbackSettlement(ctx context.Context, policyID int64, holderID string, amount int64) {
	if err := s.customers.AddClaimed(ctx, holderID, -amount); err != nil {
		slog.Error("rollback: failed to reverse customer credit", "policy_id", policyID, "error", err)
	}
	if err := s.policies.SetClaimed(ctx, policyID, false); err != nil {
		slog.Error("rollback: failed to clear claimed flag", "policy_id", policyID, "error", err)
	}
	if err := s.policies.SetActive(ctx, policyID, true); err != nil {
		slog.Error("rollback: failed to reactivate policy", "policy_id", policyID, "error", err)
	}
}
