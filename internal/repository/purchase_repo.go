package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"warrantyhub/internal/domain"
)

type PurchaseRepository struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

func scopeOwner(owner domain.Principal) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if owner.IsCompany() {
			return db.Where("purchases.company_id = ?", owner.ID)
		}
		return db.Where("purchases.user_id = ?", owner.ID)
	}
}

func (r *PurchaseRepository) Create(ctx context.Context, p *domain.Purchase) error {
	return mapError(r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error)
}

// CreateAndActivatePlan inserts the purchase and marks its plan active in one transaction.
func (r *PurchaseRepository) CreateAndActivatePlan(ctx context.Context, p *domain.Purchase) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Plan{}).Where("id = ?", p.PlanID).Update("active", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return mapError(tx.Omit(clause.Associations).Create(p).Error)
	})
}

func (r *PurchaseRepository) GetByID(ctx context.Context, id int64) (*domain.Purchase, error) {
	var p domain.Purchase
	err := r.db.WithContext(ctx).
		Preload("Plan").
		Preload("User").
		First(&p, id).Error
	if err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

// GetWithCompany also loads the company that owns the purchased plan.
func (r *PurchaseRepository) GetWithCompany(ctx context.Context, id int64) (*domain.Purchase, error) {
	var p domain.Purchase
	err := r.db.WithContext(ctx).
		Preload("Plan.Company").
		Preload("User").
		First(&p, id).Error
	if err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

func (r *PurchaseRepository) ListByOwner(ctx context.Context, owner domain.Principal) ([]domain.Purchase, error) {
	var out []domain.Purchase
	err := r.db.WithContext(ctx).
		Scopes(scopeOwner(owner)).
		Preload("Plan").
		Preload("User").
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

// ListExpiring returns the owner's active purchases expiring within [from, to], soonest first.
func (r *PurchaseRepository) ListExpiring(ctx context.Context, owner domain.Principal, from, to time.Time) ([]domain.Purchase, error) {
	var out []domain.Purchase
	err := r.db.WithContext(ctx).
		Scopes(scopeOwner(owner)).
		Where("status = ? AND expiry_date >= ? AND expiry_date <= ?", domain.PurchaseStatusActive, from, to).
		Preload("Plan").
		Preload("User").
		Order("expiry_date ASC, id ASC").
		Find(&out).Error
	return out, err
}

func (r *PurchaseRepository) UpdateStatus(ctx context.Context, id int64, status domain.PurchaseStatus) error {
	res := r.db.WithContext(ctx).Model(&domain.Purchase{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListActiveForCompanyPlans returns active purchases of any plan the company owns.
func (r *PurchaseRepository) ListActiveForCompanyPlans(ctx context.Context, companyID int64) ([]domain.Purchase, error) {
	var out []domain.Purchase
	err := r.db.WithContext(ctx).
		Joins("JOIN plans ON plans.id = purchases.plan_id").
		Where("plans.company_id = ? AND purchases.status = ?", companyID, domain.PurchaseStatusActive).
		Preload("Plan").
		Find(&out).Error
	return out, err
}
