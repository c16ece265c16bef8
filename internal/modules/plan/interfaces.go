package plan

import (
	"context"

	"warrantyhub/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, p *domain.Plan) error
	GetForCompany(ctx context.Context, id, companyID int64) (*domain.Plan, error)
	ListByCompany(ctx context.Context, companyID int64) ([]domain.Plan, error)
	Save(ctx context.Context, p *domain.Plan) error
	Delete(ctx context.Context, id, companyID int64) error
	HasDependents(ctx context.Context, id int64) (bool, error)
	ListMarketplace(ctx context.Context) ([]domain.Plan, error)
}
