package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"warrantyhub/internal/domain"
)

type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

func (r *PlanRepository) Create(ctx context.Context, p *domain.Plan) error {
	return mapError(r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error)
}

func (r *PlanRepository) GetByID(ctx context.Context, id int64) (*domain.Plan, error) {
	var p domain.Plan
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

func (r *PlanRepository) GetForCompany(ctx context.Context, id, companyID int64) (*domain.Plan, error) {
	var p domain.Plan
	err := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		First(&p).Error
	if err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

func (r *PlanRepository) ListByCompany(ctx context.Context, companyID int64) ([]domain.Plan, error) {
	var plans []domain.Plan
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at DESC, id DESC").
		Find(&plans).Error
	return plans, err
}

func (r *PlanRepository) Save(ctx context.Context, p *domain.Plan) error {
	return mapError(r.db.WithContext(ctx).Omit(clause.Associations).Save(p).Error)
}

func (r *PlanRepository) Delete(ctx context.Context, id, companyID int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		Delete(&domain.Plan{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// HasDependents reports whether any purchase or claim still references the plan.
func (r *PlanRepository) HasDependents(ctx context.Context, id int64) (bool, error) {
	db := r.db.WithContext(ctx)

	var n int64
	if err := db.Model(&domain.Purchase{}).Where("plan_id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	if n > 0 {
		return true, nil
	}
	if err := db.Model(&domain.Claim{}).Where("plan_id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListMarketplace returns all plans grouped by company, each with its company loaded.
func (r *PlanRepository) ListMarketplace(ctx context.Context) ([]domain.Plan, error) {
	var plans []domain.Plan
	err := r.db.WithContext(ctx).
		Preload("Company").
		Order("company_id ASC, id ASC").
		Find(&plans).Error
	return plans, err
}

func (r *PlanRepository) CountByCompany(ctx context.Context, companyID int64) (total, active int64, err error) {
	db := r.db.WithContext(ctx).Model(&domain.Plan{})
	if err = db.Where("company_id = ?", companyID).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	err = r.db.WithContext(ctx).Model(&domain.Plan{}).
		Where("company_id = ? AND active = ?", companyID, true).
		Count(&active).Error
	return total, active, err
}
