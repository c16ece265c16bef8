package claim

import (
	"context"

	"warrantyhub/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, c *domain.Claim) error
	GetByID(ctx context.Context, id int64) (*domain.Claim, error)
	ListVisibleTo(ctx context.Context, pr domain.Principal) ([]domain.Claim, error)
	Save(ctx context.Context, c *domain.Claim) error
	Delete(ctx context.Context, id int64) error
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type PlanReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Plan, error)
}
