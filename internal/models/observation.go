package models

import "time"

// ============================================================================
// OBSERVATIONS (TRUSTED-WRITER FACTS)
// ============================================================================

// DelayKey is the structured composite key for a flight-delay observation.
// Using a struct key instead of string concatenation means ("AB","C") and
// ("A","BC") can never collide.
type DelayKey struct {
	FlightNumber string `json:"flight_number" db:"flight_number"`
	FlightDate   string `json:"flight_date" db:"flight_date"`
}

// RainfallRecord is the stored value for one calendar date. Last write wins.
type RainfallRecord struct {
	RainfallMM int64     `json:"rainfall_mm" db:"rainfall_mm"`
	RecordedAt time.Time `json:"recorded_at" db:"recorded_at"`
}

// WeatherEntry pairs a date with its current rainfall record, in the
// first-seen order of the date list.
type WeatherEntry struct {
	Date       string    `json:"date" db:"date"`
	RainfallMM int64     `json:"rainfall_mm" db:"rainfall_mm"`
	RecordedAt time.Time `json:"recorded_at" db:"recorded_at"`
}
