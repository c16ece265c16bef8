package purchase

import "errors"

var (
	ErrPurchaseNotFound = errors.New("purchase not found")
	ErrPlanNotFound     = errors.New("plan not found")
	ErrForbidden        = errors.New("purchase belongs to another account")
	ErrInvalidStatus    = errors.New("invalid purchase status")
)
