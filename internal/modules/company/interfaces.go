package company

import (
	"context"

	"warrantyhub/internal/domain"
	"warrantyhub/internal/modules/plan"
)

type Repository interface {
	GetByID(ctx context.Context, id int64) (*domain.Company, error)
	Save(ctx context.Context, c *domain.Company) error
}

// PlanCatalog is the company-scoped plan store. Implemented by plan.Service.
type PlanCatalog interface {
	Create(ctx context.Context, companyID int64, req plan.CreatePlanRequest) (*domain.Plan, error)
	Update(ctx context.Context, companyID, id int64, req plan.UpdatePlanRequest) (*domain.Plan, error)
	Delete(ctx context.Context, companyID, id int64) error
	List(ctx context.Context, companyID int64) ([]domain.Plan, error)
	Marketplace(ctx context.Context) ([]plan.MarketplacePlan, error)
	InvalidateMarketplace(ctx context.Context)
}

type PlanCounter interface {
	CountByCompany(ctx context.Context, companyID int64) (total, active int64, err error)
}

type PurchaseReader interface {
	ListActiveForCompanyPlans(ctx context.Context, companyID int64) ([]domain.Purchase, error)
}
