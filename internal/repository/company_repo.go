package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"warrantyhub/internal/domain"
)

type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) Create(ctx context.Context, c *domain.Company) error {
	c.Email = normalizeEmail(c.Email)
	return mapError(r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error)
}

func (r *CompanyRepository) GetByEmail(ctx context.Context, email string) (*domain.Company, error) {
	var c domain.Company
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", normalizeEmail(email)).
		First(&c).Error
	if err != nil {
		return nil, mapError(err)
	}
	return &c, nil
}

func (r *CompanyRepository) GetByID(ctx context.Context, id int64) (*domain.Company, error) {
	var c domain.Company
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, mapError(err)
	}
	return &c, nil
}

func (r *CompanyRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Company{}).
		Where("LOWER(email) = ?", normalizeEmail(email)).
		Count(&n).Error
	return n > 0, err
}

// Save writes every column, so the profile completion hook always runs.
func (r *CompanyRepository) Save(ctx context.Context, c *domain.Company) error {
	return mapError(r.db.WithContext(ctx).Omit(clause.Associations).Save(c).Error)
}
