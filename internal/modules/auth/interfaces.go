package auth

import (
	"context"

	"warrantyhub/internal/domain"
)

// UserRepository is the part of the user store the auth service needs.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type CompanyRepository interface {
	Create(ctx context.Context, c *domain.Company) error
	GetByEmail(ctx context.Context, email string) (*domain.Company, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type TokenIssuer interface {
	GenerateToken(subjectID int64, kind string) (string, error)
}
