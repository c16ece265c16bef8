package bill

import "errors"

var (
	ErrInvalidPurchaseDate = errors.New("purchase date must be YYYY-MM-DD or RFC 3339")
	ErrInvalidAmount       = errors.New("total amount must be a non-negative number")
)
