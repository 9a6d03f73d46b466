package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"parametric-service/internal/models"

	"github.com/jmoiron/sqlx"
)

// ObservationStore is the persistence surface for externally-reported facts.
// Reads of unknown keys return 0, indistinguishable from a recorded zero.
type ObservationStore interface {
	UpsertDelay(ctx context.Context, key models.DelayKey, minutes int64) error
	GetDelay(ctx context.Context, key models.DelayKey) (int64, error)
	UpsertRainfall(ctx context.Context, date string, mm int64, recordedAt time.Time) error
	GetRainfall(ctx context.Context, date string) (int64, error)
	ListDates(ctx context.Context) ([]string, error)
	ListWeather(ctx context.Context) ([]models.WeatherEntry, error)
}

// PostgresObservationRepository stores observations in Postgres. Composite
// primary keys carry the structured delay key; the rainfall serial column
// preserves first-seen date order across upserts.
type PostgresObservationRepository struct {
	db *sqlx.DB
}

func NewPostgresObservationRepository(db *sqlx.DB) *PostgresObservationRepository {
	return &PostgresObservationRepository{db: db}
}

func (r *PostgresObservationRepository) UpsertDelay(ctx context.Context, key models.DelayKey, minutes int64) error {
	query := `
		INSERT INTO flight_delay (flight_number, flight_date, delay_minutes)
		VALUES ($1, $2, $3)
		ON CONFLICT (flight_number, flight_date)
		DO UPDATE SET delay_minutes = EXCLUDED.delay_minutes
	`

	if _, err := r.db.ExecContext(ctx, query, key.FlightNumber, key.FlightDate, minutes); err != nil {
		return fmt.Errorf("failed to upsert flight delay: %w", err)
	}
	return nil
}

func (r *PostgresObservationRepository) GetDelay(ctx context.Context, key models.DelayKey) (int64, error) {
	var minutes int64
	query := `SELECT delay_minutes FROM flight_delay WHERE flight_number = $1 AND flight_date = $2`

	err := r.db.GetContext(ctx, &minutes, query, key.FlightNumber, key.FlightDate)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get flight delay: %w", err)
	}
	return minutes, nil
}

func (r *PostgresObservationRepository) UpsertRainfall(ctx context.Context, date string, mm int64, recordedAt time.Time) error {
	query := `
		INSERT INTO rainfall_observation (date, rainfall_mm, recorded_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (date)
		DO UPDATE SET rainfall_mm = EXCLUDED.rainfall_mm, recorded_at = EXCLUDED.recorded_at
	`

	if _, err := r.db.ExecContext(ctx, query, date, mm, recordedAt); err != nil {
		return fmt.Errorf("failed to upsert rainfall: %w", err)
	}
	return nil
}

func (r *PostgresObservationRepository) GetRainfall(ctx context.Context, date string) (int64, error) {
	var mm int64
	query := `SELECT rainfall_mm FROM rainfall_observation WHERE date = $1`

	err := r.db.GetContext(ctx, &mm, query, date)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get rainfall: %w", err)
	}
	return mm, nil
}

func (r *PostgresObservationRepository) ListDates(ctx context.Context) ([]string, error) {
	var dates []string
	query := `SELECT date FROM rainfall_observation ORDER BY seq ASC`

	if err := r.db.SelectContext(ctx, &dates, query); err != nil {
		return nil, fmt.Errorf("failed to list rainfall dates: %w", err)
	}
	return dates, nil
}

func (r *PostgresObservationRepository) ListWeather(ctx context.Context) ([]models.WeatherEntry, error) {
	var entries []models.WeatherEntry
	query := `SELECT date, rainfall_mm, recorded_at FROM rainfall_observation ORDER BY seq ASC`

	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("failed to list weather data: %w", err)
	}
	return entries, nil
}
