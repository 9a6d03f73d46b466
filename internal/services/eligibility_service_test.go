package services

import (
	"context"
	"testing"

	"parametric-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// TEST SUITE: ELIGIBILITY
// ============================================================================

func TestIsDelayed_FloorsMinutesToHours(t *testing.T) {
	env := newTestEnv(nil)
	ctx := context.Background()

	id := createFlightPolicy(t, env, "alice", "VN123", "2026-03-01")
	policy, err := env.policy.GetPolicy(ctx, id)
	require.NoError(t, err)

	// 150 minutes is 2 full hours, meeting the 2-hour threshold.
	require.NoError(t, env.observation.RecordDelay(ctx, "VN123", "2026-03-01", 150))
	delayed, err := env.eligibility.IsDelayed(ctx, policy)
	require.NoError(t, err)
	assert.True(t, delayed)

	// 119 minutes floors to 1 hour.
	require.NoError(t, env.observation.RecordDelay(ctx, "VN123", "2026-03-01", 119))
	delayed, err = env.eligibility.IsDelayed(ctx, policy)
	require.NoError(t, err)
	assert.False(t, delayed)
}

func TestIsDelayed_UnrecordedFlightReadsZero(t *testing.T) {
	env := newTestEnv(nil)
	ctx := context.Background()

	id := createFlightPolicy(t, env, "alice", "VN999", "2026-03-01")
	policy, err := env.policy.GetPolicy(ctx, id)
	require.NoError(t, err)

	delayed, err := env.eligibility.IsDelayed(ctx, policy)
	require.NoError(t, err)
	assert.False(t, delayed)
}

func TestRecomputeDryDays_FindsLongestRun(t *testing.T) {
	env := newTestEnv(nil)
	ctx := context.Background()

	id := createCropPolicy(t, env, "bob", "2026-01-01", "2026-01-31")

	rainfall := []int64{2, 10, 3, 1, 4}
	dates := []string{"2026-01-05", "2026-01-06", "2026-01-07", "2026-01-08", "2026-01-09"}
	for i, date := range dates {
		require.NoError(t, env.observation.RecordRainfall(ctx, date, rainfall[i]))
	}

	// The wet day in the middle breaks the run: the answer is the trailing
	// three dry days, not five.
	days, err := env.eligibility.RecomputeDryDays(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 3, days)

	policy, err := env.policy.GetPolicy(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 3, policy.ConsecutiveDryDays)
}

func TestRecomputeDryDays_FiltersToCoverageWindow(t *testing.T) {
	env := newTestEnv(nil)
	ctx := context.Background()

	id := createCropPolicy(t, env, "bob", "2026-02-01", "2026-02-28")

	// Dry days outside the window must not count.
	require.NoError(t, env.observation.RecordRainfall(ctx, "2026-01-30", 0))
	require.NoError(t, env.observation.RecordRainfall(ctx, "2026-01-31", 0))
	require.NoError(t, env.observation.RecordRainfall(ctx, "2026-02-01", 1))
	require.NoError(t, env.observation.RecordRainfall(ctx, "2026-02-02", 2))
	require.NoError(t, env.observation.RecordRainfall(ctx, "2026-03-01", 0))

	days, err := env.eligibility.RecomputeDryDays(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, days)
}

func TestRecomputeDryDays_OverwrittenValueCounts(t *testing.T) {
	env := newTestEnv(nil)
	ctx := context.Background()

	id := createCropPolicy(t, env, "bob", "2026-01-01", "2026-01-31")

	require.NoError(t, env.observation.RecordRainfall(ctx, "2026-01-10", 20))
	require.NoError(t, env.observation.RecordRainfall(ctx, "2026-01-11", 0))
	// Correction: the 10th was dry after all.
	require.NoError(t, env.observation.RecordRainfall(ctx, "2026-01-10", 0))

	days, err := env.eligibility.RecomputeDryDays(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, days)
}

func TestRecomputeDryDays_RejectsFlightPolicies(t *testing.T) {
	env := newTestEnv(nil)

	id := createFlightPolicy(t, env, "alice", "VN123", "2026-03-01")
	_, err := env.eligibility.RecomputeDryDays(context.Background(), id)
	assert.ErrorIs(t, err, models.ErrInvalidSubject)
}

func TestIsDroughtMet_UsesCachedCounterOnly(t *testing.T) {
	env := newTestEnv(nil)
	ctx := context.Background()

	id := createCropPolicy(t, env, "bob", "2026-01-01", "2026-01-31")
	for _, date := range []string{"2026-01-05", "2026-01-06", "2026-01-07"} {
		require.NoError(t, env.observation.RecordRainfall(ctx, date, 0))
	}

	// New observations do not move the counter until an explicit recompute.
	policy, err := env.policy.GetPolicy(ctx, id)
	require.NoError(t, err)
	assert.False(t, env.eligibility.IsDroughtMet(policy))

	_, err = env.eligibility.RecomputeDryDays(ctx, id)
	require.NoError(t, err)

	policy, err = env.policy.GetPolicy(ctx, id)
	require.NoError(t, err)
	assert.True(t, env.eligibility.IsDroughtMet(policy))
}
