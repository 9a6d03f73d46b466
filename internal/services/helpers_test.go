package services

import (
	"context"
	"errors"
	"testing"

	"parametric-service/internal/config"
	"parametric-service/internal/event"
	"parametric-service/internal/models"
	"parametric-service/internal/payout"
	"parametric-service/internal/repository"

	"github.com/stretchr/testify/require"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

func testInsuranceConfig() config.InsuranceConfig {
	return config.InsuranceConfig{
		PremiumAmount:            100,
		CompensationAmount:       500,
		DelayThresholdHours:      2,
		RainfallThresholdMM:      5,
		ConsecutiveDaysThreshold: 3,
	}
}

type testEnv struct {
	policies     *repository.MemoryPolicyStore
	customers    *repository.MemoryCustomerStore
	observations *repository.MemoryObservationStore
	payouts      *payout.Recorder
	eventLog     *event.Log

	settings    *SettingsService
	pool        *PoolService
	policy      *PolicyService
	observation *ObservationService
	eligibility *EligibilityService
	settlement  *SettlementService
}

// newTestEnv wires the full service graph against memory stores. A non-nil
// provider replaces the recording payout provider (used to inject transfer
// failures).
func newTestEnv(provider payout.Provider) *testEnv {
	env := &testEnv{
		policies:     repository.NewMemoryPolicyStore(),
		customers:    repository.NewMemoryCustomerStore(),
		observations: repository.NewMemoryObservationStore(),
		payouts:      payout.NewRecorder(),
		eventLog:     event.NewLog(),
	}

	var payer payout.Provider = env.payouts
	if provider != nil {
		payer = provider
	}

	emitter := event.NewEmitter(env.eventLog)
	locks := NewLockTable()
	env.settings = NewSettingsService(testInsuranceConfig())
	env.pool = NewPoolService(payer, emitter, "operator")
	env.policy = NewPolicyService(env.policies, env.customers, env.pool, env.settings, emitter, locks)
	env.observation = NewObservationService(env.observations, emitter)
	env.eligibility = NewEligibilityService(env.policies, env.observations, env.settings)
	env.settlement = NewSettlementService(
		env.policies, env.customers, env.pool, env.eligibility, env.settings,
		payer, emitter, nil, locks)
	return env
}

func createFlightPolicy(t *testing.T, env *testEnv, holderID, flight, date string) int64 {
	t.Helper()
	id, err := env.policy.CreatePolicy(context.Background(), holderID, models.CreatePolicyRequest{
		Kind:          models.KindFlightDelay,
		Payment:       100,
		FlightSubject: &models.FlightSubject{FlightNumber: flight, FlightDate: date},
	})
	require.NoError(t, err)
	return id
}

func createCropPolicy(t *testing.T, env *testEnv, holderID, start, end string) int64 {
	t.Helper()
	id, err := env.policy.CreatePolicy(context.Background(), holderID, models.CreatePolicyRequest{
		Kind:    models.KindCropDrought,
		Payment: 100,
		CropSubject: &models.CropSubject{
			CropType:  "rice",
			Location:  "delta-7",
			StartDate: start,
			EndDate:   end,
		},
	})
	require.NoError(t, err)
	return id
}

func fundPool(t *testing.T, env *testEnv, amount int64) {
	t.Helper()
	require.NoError(t, env.pool.Fund(context.Background(), amount))
}

// failingPayout always refuses to move value.
type failingPayout struct{}

func (failingPayout) Transfer(ctx context.Context, recipient string, amount int64, reference string) error {
	return errors.New("payment rail unavailable")
}
