package models

// ============================================================================
// REQUEST / RESPONSE BODIES
// ============================================================================

type CreatePolicyRequest struct {
	Kind          PolicyKind     `json:"kind"`
	Payment       int64          `json:"payment"`
	FlightSubject *FlightSubject `json:"flight_subject,omitempty"`
	CropSubject   *CropSubject   `json:"crop_subject,omitempty"`
}

type CreatePolicyResponse struct {
	PolicyID int64 `json:"policy_id"`
}

type RecordDelayRequest struct {
	FlightNumber string `json:"flight_number"`
	FlightDate   string `json:"flight_date"`
	DelayMinutes int64  `json:"delay_minutes"`
}

type RecordRainfallRequest struct {
	Date       string `json:"date"`
	RainfallMM int64  `json:"rainfall_mm"`
}

type FundRequest struct {
	Amount int64 `json:"amount"`
}

type WithdrawRequest struct {
	Amount int64 `json:"amount"`
}

type SetThresholdsRequest struct {
	DelayThresholdHours      int64 `json:"delay_threshold_hours"`
	RainfallThresholdMM      int64 `json:"rainfall_threshold_mm"`
	ConsecutiveDaysThreshold int   `json:"consecutive_days_threshold"`
}

type SetCompensationRequest struct {
	Amount int64 `json:"amount"`
}

type ClaimResponse struct {
	PolicyID  int64  `json:"policy_id"`
	PaidOut   int64  `json:"paid_out"`
	Reference string `json:"reference"`
}

type EligibilityResponse struct {
	PolicyID int64      `json:"policy_id"`
	Kind     PolicyKind `json:"kind"`
	Eligible bool       `json:"eligible"`
}

type DryDaysResponse struct {
	PolicyID           int64 `json:"policy_id"`
	ConsecutiveDryDays int   `json:"consecutive_dry_days"`
}
