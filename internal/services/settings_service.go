package services

import (
	"fmt"
	"sync"

	"parametric-service/internal/config"
	"parametric-service/internal/models"
)

// SettingsService guards the operator-tunable constants. Reads are frequent
// (every eligibility evaluation) so it hands out value copies under RWMutex.
type SettingsService struct {
	mu       sync.RWMutex
	settings models.InsuranceSettings
}

func NewSettingsService(cfg config.InsuranceConfig) *SettingsService {
	return &SettingsService{
		settings: models.InsuranceSettings{
			PremiumAmount:            cfg.PremiumAmount,
			CompensationAmount:       cfg.CompensationAmount,
			DelayThresholdHours:      cfg.DelayThresholdHours,
			RainfallThresholdMM:      cfg.RainfallThresholdMM,
			ConsecutiveDaysThreshold: cfg.ConsecutiveDaysThreshold,
		},
	}
}

func (s *SettingsService) Get() models.InsuranceSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

func (s *SettingsService) SetThresholds(delayHours, rainfallMM int64, consecutiveDays int) error {
	if delayHours <= 0 || rainfallMM <= 0 || consecutiveDays <= 0 {
		return fmt.Errorf("thresholds must be positive: %w", models.ErrInvalidPayment)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.DelayThresholdHours = delayHours
	s.settings.RainfallThresholdMM = rainfallMM
	s.settings.ConsecutiveDaysThreshold = consecutiveDays
	return nil
}

func (s *SettingsService) SetCompensationAmount(amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("compensation amount must be positive: %w", models.ErrInvalidPayment)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.CompensationAmount = amount
	return nil
}
