package models

// Customer is the per-holder aggregate, upserted on first policy purchase
// and incremented on later purchases and settlements. Never removed.
type Customer struct {
	ID            string `json:"id" db:"id"`
	TotalPolicies int64  `json:"total_policies" db:"total_policies"`
	TotalClaimed  int64  `json:"total_claimed" db:"total_claimed"`
}

// CustomerInfo is the read-side view of a holder aggregate. Exists is false
// for identities that never purchased a policy.
type CustomerInfo struct {
	Customer
	Exists bool `json:"exists"`
}
