package bill

import (
	"context"

	"warrantyhub/internal/domain"
)

type Repository interface {
	AddBill(ctx context.Context, b *domain.Bill) error
	ListBills(ctx context.Context, userID int64) ([]domain.Bill, error)
}
