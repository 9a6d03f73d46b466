package services

import (
	"testing"

	"parametric-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_DefaultsFromConfig(t *testing.T) {
	s := NewSettingsService(testInsuranceConfig())

	settings := s.Get()
	assert.Equal(t, int64(100), settings.PremiumAmount)
	assert.Equal(t, int64(500), settings.CompensationAmount)
}

func TestSettings_SetThresholds(t *testing.T) {
	s := NewSettingsService(testInsuranceConfig())

	require.NoError(t, s.SetThresholds(3, 10, 5))
	settings := s.Get()
	assert.Equal(t, int64(3), settings.DelayThresholdHours)
	assert.Equal(t, int64(10), settings.RainfallThresholdMM)
	assert.Equal(t, 5, settings.ConsecutiveDaysThreshold)

	assert.ErrorIs(t, s.SetThresholds(0, 10, 5), models.ErrInvalidPayment)
	assert.ErrorIs(t, s.SetCompensationAmount(-1), models.ErrInvalidPayment)
}
