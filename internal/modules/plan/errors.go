package plan

import "errors"

var (
	ErrPlanNotFound = errors.New("plan not found")
	ErrInvalidPrice = errors.New("price must be zero or greater")
	ErrPlanInUse    = errors.New("plan has purchases or claims")
)
