package models

import "errors"

// Failure kinds surfaced by the insurance services. Every failure is
// synchronous and leaves state exactly as it was before the call; handlers
// map these to HTTP codes with errors.Is.
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrNotFound         = errors.New("not found")
	ErrInvalidPayment   = errors.New("invalid payment")
	ErrInvalidSubject   = errors.New("invalid subject")
	ErrPolicyInactive   = errors.New("policy inactive")
	ErrAlreadyClaimed   = errors.New("policy already claimed")
	ErrThresholdNotMet  = errors.New("threshold not met")
	ErrInsufficientPool = errors.New("insufficient pool balance")
	ErrPayoutFailed     = errors.New("payout failed")
)
