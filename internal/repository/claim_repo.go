package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"warrantyhub/internal/domain"
)

type ClaimRepository struct {
	db *gorm.DB
}

func NewClaimRepository(db *gorm.DB) *ClaimRepository {
	return &ClaimRepository{db: db}
}

func (r *ClaimRepository) Create(ctx context.Context, c *domain.Claim) error {
	return mapError(r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error)
}

func (r *ClaimRepository) GetByID(ctx context.Context, id int64) (*domain.Claim, error) {
	var c domain.Claim
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Plan").
		First(&c, id).Error
	if err != nil {
		return nil, mapError(err)
	}
	return &c, nil
}

// ListVisibleTo returns the claims a user filed, or the claims against a company's plans.
func (r *ClaimRepository) ListVisibleTo(ctx context.Context, pr domain.Principal) ([]domain.Claim, error) {
	q := r.db.WithContext(ctx).Preload("User").Preload("Plan")
	if pr.IsCompany() {
		q = q.Where("company_id = ?", pr.ID)
	} else {
		q = q.Where("user_id = ?", pr.ID)
	}

	var out []domain.Claim
	err := q.Order("created_at DESC, id DESC").Find(&out).Error
	return out, err
}

func (r *ClaimRepository) Save(ctx context.Context, c *domain.Claim) error {
	return mapError(r.db.WithContext(ctx).Omit(clause.Associations).Save(c).Error)
}

func (r *ClaimRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.Claim{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
