package models

// InsuranceSettings are the operator-tunable constants shared by every
// policy. Premium and compensation are fixed amounts, not computed.
type InsuranceSettings struct {
	PremiumAmount            int64 `json:"premium_amount"`
	CompensationAmount       int64 `json:"compensation_amount"`
	DelayThresholdHours      int64 `json:"delay_threshold_hours"`
	RainfallThresholdMM      int64 `json:"rainfall_threshold_mm"`
	ConsecutiveDaysThreshold int   `json:"consecutive_days_threshold"`
}
