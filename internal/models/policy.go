package models

import "time"

// ============================================================================
// POLICY (APPEND-ONLY LEDGER RECORDS)
// ============================================================================

// Policy is a purchased coverage record tied to one holder and one observable
// subject. Records are append-only: ids are assigned sequentially from 0 and
// a policy is never deleted, only deactivated or settled.
type Policy struct {
	ID            int64          `json:"id" db:"id"`
	HolderID      string         `json:"holder_id" db:"holder_id"`
	Kind          PolicyKind     `json:"kind" db:"kind"`
	FlightSubject *FlightSubject `json:"flight_subject,omitempty"`
	CropSubject   *CropSubject   `json:"crop_subject,omitempty"`
	IsActive      bool           `json:"is_active" db:"is_active"`
	HasClaimed    bool           `json:"has_claimed" db:"has_claimed"`
	PremiumPaid   int64          `json:"premium_paid" db:"premium_paid"`

	// ConsecutiveDryDays is a cached maximum dry-day streak for crop
	// policies. It is stale until RecomputeDryDays runs; the claim path
	// never recomputes it on its own.
	ConsecutiveDryDays int       `json:"consecutive_dry_days" db:"consecutive_dry_days"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
}

// FlightSubject identifies one flight on one date.
type FlightSubject struct {
	FlightNumber string `json:"flight_number" db:"flight_number"`
	FlightDate   string `json:"flight_date" db:"flight_date"`
}

// CropSubject identifies a crop at a location over a coverage window.
// Dates are ISO "YYYY-MM-DD" strings so lexicographic order matches
// calendar order.
type CropSubject struct {
	CropType  string `json:"crop_type" db:"crop_type"`
	Location  string `json:"location" db:"location"`
	StartDate string `json:"start_date" db:"start_date"`
	EndDate   string `json:"end_date" db:"end_date"`
}
