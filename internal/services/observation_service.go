package services

import (
	"context"
	"fmt"
	"time"

	"parametric-service/internal/event"
	"parametric-service/internal/models"
	"parametric-service/internal/repository"
)

// ObservationService is the trusted-writer front for external facts. Writes
// are last-write-wins; reads of unknown keys return 0, indistinguishable
// from a recorded zero.
type ObservationService struct {
	store   repository.ObservationStore
	emitter *event.Emitter
}

func NewObservationService(store repository.ObservationStore, emitter *event.Emitter) *ObservationService {
	return &ObservationService{store: store, emitter: emitter}
}

func (s *ObservationService) RecordDelay(ctx context.Context, flightNumber, flightDate string, minutes int64) error {
	if flightNumber == "" || flightDate == "" {
		return fmt.Errorf("flight number and date are required: %w", models.ErrInvalidSubject)
	}

	key := models.DelayKey{FlightNumber: flightNumber, FlightDate: flightDate}
	if err := s.store.UpsertDelay(ctx, key, minutes); err != nil {
		return fmt.Errorf("failed to record delay: %w", err)
	}

	s.emitter.Emit(ctx, models.EventObservationRecorded, func(e *event.Event) {
		e.Details = map[string]any{
			"flight_number": flightNumber,
			"flight_date":   flightDate,
			"delay_minutes": minutes,
		}
	})
	return nil
}

func (s *ObservationService) RecordRainfall(ctx context.Context, date string, mm int64) error {
	if date == "" {
		return fmt.Errorf("date is required: %w", models.ErrInvalidSubject)
	}

	if err := s.store.UpsertRainfall(ctx, date, mm, time.Now()); err != nil {
		return fmt.Errorf("failed to record rainfall: %w", err)
	}

	s.emitter.Emit(ctx, models.EventObservationRecorded, func(e *event.Event) {
		e.Details = map[string]any{
			"date":        date,
			"rainfall_mm": mm,
		}
	})
	return nil
}

func (s *ObservationService) GetDelay(ctx context.Context, flightNumber, flightDate string) (int64, error) {
	return s.store.GetDelay(ctx, models.DelayKey{FlightNumber: flightNumber, FlightDate: flightDate})
}

func (s *ObservationService) GetRainfall(ctx context.Context, date string) (int64, error) {
	return s.store.GetRainfall(ctx, date)
}

func (s *ObservationService) ListDates(ctx context.Context) ([]string, error) {
	return s.store.ListDates(ctx)
}

// GetAllWeatherData returns every recorded date with its current rainfall
// value, in first-seen order.
func (s *ObservationService) GetAllWeatherData(ctx context.Context) ([]models.WeatherEntry, error) {
	return s.store.ListWeather(ctx)
}
