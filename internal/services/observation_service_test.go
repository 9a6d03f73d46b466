package services

import (
	"context"
	"testing"

	"parametric-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// TEST SUITE: OBSERVATIONS
// ============================================================================

func TestRecordDelay_RejectsEmptyKeyFields(t *testing.T) {
	env := newTestEnv(nil)
	ctx := context.Background()

	assert.ErrorIs(t, env.observation.RecordDelay(ctx, "", "2026-03-01", 60), models.ErrInvalidSubject)
	assert.ErrorIs(t, env.observation.RecordDelay(ctx, "VN123", "", 60), models.ErrInvalidSubject)
}

func TestRecordRainfall_RejectsEmptyDate(t *testing.T) {
	env := newTestEnv(nil)

	assert.ErrorIs(t, env.observation.RecordRainfall(context.Background(), "", 5), models.ErrInvalidSubject)
}

func TestRecordObservations_EmitEvents(t *testing.T) {
	env := newTestEnv(nil)
	ctx := context.Background()

	require.NoError(t, env.observation.RecordDelay(ctx, "VN123", "2026-03-01", 60))
	require.NoError(t, env.observation.RecordRainfall(ctx, "2026-03-01", 12))

	events := env.eventLog.Events()
	require.Len(t, events, 2)
	for _, e := range events {
		assert.Equal(t, models.EventObservationRecorded, e.Type)
	}
}

func TestGetAllWeatherData_ReturnsEntriesInFirstSeenOrder(t *testing.T) {
	env := newTestEnv(nil)
	ctx := context.Background()

	require.NoError(t, env.observation.RecordRainfall(ctx, "2026-01-02", 4))
	require.NoError(t, env.observation.RecordRainfall(ctx, "2026-01-01", 8))

	entries, err := env.observation.GetAllWeatherData(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "2026-01-02", entries[0].Date)
	assert.Equal(t, "2026-01-01", entries[1].Date)
}
