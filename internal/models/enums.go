package models

type PolicyKind string

const (
	KindFlightDelay PolicyKind = "flight_delay"
	KindCropDrought PolicyKind = "crop_drought"
)

type EventType string

const (
	EventPolicyCreated       EventType = "policy_created"
	EventPremiumPaid         EventType = "premium_paid"
	EventObservationRecorded EventType = "observation_recorded"
	EventSettlement          EventType = "settlement"
	EventPoolFunded          EventType = "pool_funded"
	EventPoolWithdrawn       EventType = "pool_withdrawn"
	EventPolicyDeactivated   EventType = "policy_deactivated"
)
