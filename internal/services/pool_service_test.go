package services

import (
	"context"
	"sync"
	"testing"

	"parametric-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// TEST SUITE: POOL
// ============================================================================

func TestFund_RejectsNonPositiveAmounts(t *testing.T) {
	env := newTestEnv(nil)
	ctx := context.Background()

	assert.ErrorIs(t, env.pool.Fund(ctx, 0), models.ErrInvalidPayment)
	assert.ErrorIs(t, env.pool.Fund(ctx, -50), models.ErrInvalidPayment)
	assert.Equal(t, int64(0), env.pool.Balance())
}

func TestFundThenWithdraw_RoundTripsExactly(t *testing.T) {
	env := newTestEnv(nil)
	ctx := context.Background()

	fundPool(t, env, 300)
	before := env.pool.Balance()

	require.NoError(t, env.pool.Fund(ctx, 1000))
	require.NoError(t, env.pool.Withdraw(ctx, 1000))

	assert.Equal(t, before, env.pool.Balance())

	records := env.payouts.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "operator", records[0].Recipient)
	assert.Equal(t, int64(1000), records[0].Amount)
}

func TestWithdraw_InsufficientBalance(t *testing.T) {
	env := newTestEnv(nil)
	ctx := context.Background()

	fundPool(t, env, 100)

	err := env.pool.Withdraw(ctx, 101)
	assert.ErrorIs(t, err, models.ErrInsufficientPool)
	assert.Equal(t, int64(100), env.pool.Balance())
	assert.Empty(t, env.payouts.Records())
}

func TestWithdraw_PayoutFailureRestoresBalance(t *testing.T) {
	env := newTestEnv(failingPayout{})
	ctx := context.Background()

	fundPool(t, env, 400)

	err := env.pool.Withdraw(ctx, 250)
	assert.ErrorIs(t, err, models.ErrPayoutFailed)
	assert.Equal(t, int64(400), env.pool.Balance())
}

func TestPool_ConcurrentWithdrawalsNeverOverdraw(t *testing.T) {
	env := newTestEnv(nil)
	ctx := context.Background()

	fundPool(t, env, 500)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := env.pool.Withdraw(ctx, 100); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, succeeded)
	assert.Equal(t, int64(0), env.pool.Balance())
}
