package repository

import (
	"context"
	"sync"
	"time"

	"parametric-service/internal/models"
)

// MemoryObservationStore is the default ObservationStore. The dateOrder
// slice records every rainfall date exactly once, in first-seen order;
// re-recording a date only overwrites its value.
type MemoryObservationStore struct {
	mu        sync.RWMutex
	delays    map[models.DelayKey]int64
	rainfall  map[string]models.RainfallRecord
	dateOrder []string
}

func NewMemoryObservationStore() *MemoryObservationStore {
	return &MemoryObservationStore{
		delays:   make(map[models.DelayKey]int64),
		rainfall: make(map[string]models.RainfallRecord),
	}
}

func (s *MemoryObservationStore) UpsertDelay(ctx context.Context, key models.DelayKey, minutes int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delays[key] = minutes
	return nil
}

func (s *MemoryObservationStore) GetDelay(ctx context.Context, key models.DelayKey) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.delays[key], nil
}

func (s *MemoryObservationStore) UpsertRainfall(ctx context.Context, date string, mm int64, recordedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, seen := s.rainfall[date]; !seen {
		s.dateOrder = append(s.dateOrder, date)
	}
	s.rainfall[date] = models.RainfallRecord{RainfallMM: mm, RecordedAt: recordedAt}
	return nil
}

func (s *MemoryObservationStore) GetRainfall(ctx context.Context, date string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rainfall[date].RainfallMM, nil
}

func (s *MemoryObservationStore) ListDates(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dates := make([]string, len(s.dateOrder))
	copy(dates, s.dateOrder)
	return dates, nil
}

func (s *MemoryObservationStore) ListWeather(ctx context.Context) ([]models.WeatherEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]models.WeatherEntry, 0, len(s.dateOrder))
	for _, date := range s.dateOrder {
		rec := s.rainfall[date]
		entries = append(entries, models.WeatherEntry{
			Date:       date,
			RainfallMM: rec.RainfallMM,
			RecordedAt: rec.RecordedAt,
		})
	}
	return entries, nil
}
