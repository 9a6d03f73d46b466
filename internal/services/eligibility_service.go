package services

import (
	"context"
	"fmt"

	"parametric-service/internal/models"
	"parametric-service/internal/repository"
)

// EligibilityService derives claim-eligibility verdicts from recorded
// observations. The flight-delay rule reads observation state fresh on
// every call; the drought rule reads the policy's cached dry-day counter,
// which only RecomputeDryDays updates.
type EligibilityService struct {
	policies     repository.PolicyStore
	observations repository.ObservationStore
	settings     *SettingsService
}

func NewEligibilityService(
	policies repository.PolicyStore,
	observations repository.ObservationStore,
	settings *SettingsService,
) *EligibilityService {
	return &EligibilityService{
		policies:     policies,
		observations: observations,
		settings:     settings,
	}
}

// Evaluate returns the eligibility verdict for a policy by its kind.
func (s *EligibilityService) Evaluate(ctx context.Context, policy models.Policy) (bool, error) {
	switch policy.Kind {
	case models.KindFlightDelay:
		return s.IsDelayed(ctx, policy)
	case models.KindCropDrought:
		return s.IsDroughtMet(policy), nil
	default:
		return false, fmt.Errorf("unknown policy kind %q: %w", policy.Kind, models.ErrInvalidSubject)
	}
}

// IsDelayed reports whether the policy's flight crossed the delay
// threshold. Integer division floors, so 119 minutes is 1 full hour.
func (s *EligibilityService) IsDelayed(ctx context.Context, policy models.Policy) (bool, error) {
	if policy.FlightSubject == nil {
		return false, fmt.Errorf("policy %d has no flight subject: %w", policy.ID, models.ErrInvalidSubject)
	}

	minutes, err := s.observations.GetDelay(ctx, models.DelayKey{
		FlightNumber: policy.FlightSubject.FlightNumber,
		FlightDate:   policy.FlightSubject.FlightDate,
	})
	if err != nil {
		return false, fmt.Errorf("failed to read delay observation: %w", err)
	}

	return minutes/60 >= s.settings.Get().DelayThresholdHours, nil
}

// IsDroughtMet compares the cached dry-day counter against the threshold.
// The counter is stale until RecomputeDryDays runs.
func (s *EligibilityService) IsDroughtMet(policy models.Policy) bool {
	return policy.ConsecutiveDryDays >= s.settings.Get().ConsecutiveDaysThreshold
}

// RecomputeDryDays scans the full recorded-date history and writes the
// longest run of dry days inside the policy's coverage window back onto the
// policy. The scan is O(recorded dates) and deliberately lives outside the
// claim path: any party may pay its cost before claiming. Dates compare as
// strings, so the window filter relies on ISO date formatting.
func (s *EligibilityService) RecomputeDryDays(ctx context.Context, policyID int64) (int, error) {
	policy, err := s.policies.GetByID(ctx, policyID)
	if err != nil {
		return 0, err
	}
	if policy.Kind != models.KindCropDrought || policy.CropSubject == nil {
		return 0, fmt.Errorf("policy %d is not a crop policy: %w", policyID, models.ErrInvalidSubject)
	}

	entries, err := s.observations.ListWeather(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read rainfall history: %w", err)
	}

	threshold := s.settings.Get().RainfallThresholdMM
	start, end := policy.CropSubject.StartDate, policy.CropSubject.EndDate

	streak, maxStreak := 0, 0
	for _, entry := range entries {
		if entry.Date < start || entry.Date > end {
			continue
		}
		if entry.RainfallMM < threshold {
			streak++
			if streak > maxStreak {
				maxStreak = streak
			}
		} else {
			streak = 0
		}
	}

	if err := s.policies.SetDryDays(ctx, policyID, maxStreak); err != nil {
		return 0, fmt.Errorf("failed to store dry-day counter: %w", err)
	}
	return maxStreak, nil
}
