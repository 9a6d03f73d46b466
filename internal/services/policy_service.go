package services

import (
	"context"
	"fmt"
	"time"

	"parametric-service/internal/event"
	"parametric-service/internal/models"
	"parametric-service/internal/repository"
)

// PolicyService is the policy ledger: purchase, read and deactivation of
// coverage records plus the per-holder aggregates.
type PolicyService struct {
	policies  repository.PolicyStore
	customers repository.CustomerStore
	pool      *PoolService
	settings  *SettingsService
	emitter   *event.Emitter
	locks     *LockTable
}

func NewPolicyService(
	policies repository.PolicyStore,
	customers repository.CustomerStore,
	pool *PoolService,
	settings *SettingsService,
	emitter *event.Emitter,
	locks *LockTable,
) *PolicyService {
	return &PolicyService{
		policies:  policies,
		customers: customers,
		pool:      pool,
		settings:  settings,
		emitter:   emitter,
		locks:     locks,
	}
}

// CreatePolicy purchases coverage. The payment must equal the fixed premium
// exactly; on success the premium flows into the pool and the new policy id
// is returned.
func (s *PolicyService) CreatePolicy(ctx context.Context, holderID string, req models.CreatePolicyRequest) (int64, error) {
	premium := s.settings.Get().PremiumAmount
	if req.Payment != premium {
		return 0, fmt.Errorf("payment %d does not match premium %d: %w", req.Payment, premium, models.ErrInvalidPayment)
	}
	if err := validateSubject(req); err != nil {
		return 0, err
	}

	policy := models.Policy{
		HolderID:      holderID,
		Kind:          req.Kind,
		FlightSubject: req.FlightSubject,
		CropSubject:   req.CropSubject,
		IsActive:      true,
		PremiumPaid:   req.Payment,
		CreatedAt:     time.Now(),
	}
	id, err := s.policies.Create(ctx, &policy)
	if err != nil {
		return 0, fmt.Errorf("failed to store policy: %w", err)
	}
	if err := s.customers.RecordPurchase(ctx, holderID); err != nil {
		return 0, fmt.Errorf("failed to update customer aggregate: %w", err)
	}
	s.pool.credit(req.Payment)

	s.emitter.Emit(ctx, models.EventPolicyCreated, func(e *event.Event) {
		e.PolicyID = &id
		e.HolderID = holderID
		e.Details = map[string]any{"kind": policy.Kind}
	})
	s.emitter.Emit(ctx, models.EventPremiumPaid, func(e *event.Event) {
		e.PolicyID = &id
		e.HolderID = holderID
		e.Amount = &req.Payment
	})
	return id, nil
}

func validateSubject(req models.CreatePolicyRequest) error {
	switch req.Kind {
	case models.KindFlightDelay:
		fs := req.FlightSubject
		if fs == nil || fs.FlightNumber == "" || fs.FlightDate == "" {
			return fmt.Errorf("flight number and date are required: %w", models.ErrInvalidSubject)
		}
	case models.KindCropDrought:
		cs := req.CropSubject
		if cs == nil || cs.CropType == "" || cs.Location == "" || cs.StartDate == "" || cs.EndDate == "" {
			return fmt.Errorf("crop type, location and date range are required: %w", models.ErrInvalidSubject)
		}
		if cs.StartDate > cs.EndDate {
			return fmt.Errorf("start date %s after end date %s: %w", cs.StartDate, cs.EndDate, models.ErrInvalidSubject)
		}
	default:
		return fmt.Errorf("unknown policy kind %q: %w", req.Kind, models.ErrInvalidSubject)
	}
	return nil
}

func (s *PolicyService) GetPolicy(ctx context.Context, id int64) (models.Policy, error) {
	return s.policies.GetByID(ctx, id)
}

func (s *PolicyService) GetPoliciesByHolder(ctx context.Context, holderID string) ([]models.Policy, error) {
	return s.policies.GetByHolderID(ctx, holderID)
}

func (s *PolicyService) GetTotalPolicies(ctx context.Context) (int64, error) {
	return s.policies.Count(ctx)
}

func (s *PolicyService) GetCustomerInfo(ctx context.Context, holderID string) (models.CustomerInfo, error) {
	customer, exists, err := s.customers.Get(ctx, holderID)
	if err != nil {
		return models.CustomerInfo{}, fmt.Errorf("failed to read customer aggregate: %w", err)
	}
	return models.CustomerInfo{Customer: customer, Exists: exists}, nil
}

// Deactivate turns coverage off unconditionally and is idempotent. It takes
// the policy's settlement lock so it cannot interleave with a claim.
func (s *PolicyService) Deactivate(ctx context.Context, id int64) error {
	mu := s.locks.lock(id)
	mu.Lock()
	defer mu.Unlock()

	if _, err := s.policies.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.policies.SetActive(ctx, id, false); err != nil {
		return fmt.Errorf("failed to deactivate policy: %w", err)
	}

	s.emitter.Emit(ctx, models.EventPolicyDeactivated, func(e *event.Event) {
		e.PolicyID = &id
	})
	return nil
}
