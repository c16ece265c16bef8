package purchase

import (
	"context"
	"time"

	"warrantyhub/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, p *domain.Purchase) error
	CreateAndActivatePlan(ctx context.Context, p *domain.Purchase) error
	GetByID(ctx context.Context, id int64) (*domain.Purchase, error)
	GetWithCompany(ctx context.Context, id int64) (*domain.Purchase, error)
	ListByOwner(ctx context.Context, owner domain.Principal) ([]domain.Purchase, error)
	ListExpiring(ctx context.Context, owner domain.Principal, from, to time.Time) ([]domain.Purchase, error)
	UpdateStatus(ctx context.Context, id int64, status domain.PurchaseStatus) error
}

type PlanReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Plan, error)
}

// MarketplaceInvalidator drops the cached marketplace feed after a plan changes.
type MarketplaceInvalidator interface {
	InvalidateMarketplace(ctx context.Context)
}

type CertificateRenderer interface {
	Render(p *domain.Purchase) ([]byte, error)
}
