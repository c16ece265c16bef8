package claim

import "errors"

var (
	ErrClaimNotFound = errors.New("claim not found")
	ErrUserNotFound  = errors.New("user not found")
	ErrPlanNotFound  = errors.New("plan not found")
	ErrForbidden     = errors.New("claim not accessible")
	ErrInvalidStatus = errors.New("invalid claim status")
	ErrInvalidAmount = errors.New("amount must not be negative")
)
