package services

import "errors"

// Sentinel errors returned by the domain services. Callers match them with
// errors.Is; wrapped causes are for logs only.
var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrInvalidOTP        = errors.New("invalid otp")
	ErrOTPIssue          = errors.New("failed to issue otp")
	ErrHouseholdNotFound = errors.New("household not found")
	ErrPersistence       = errors.New("persistence failure")
)
