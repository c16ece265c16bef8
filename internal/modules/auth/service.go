package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"warrantyhub/internal/domain"
	"warrantyhub/internal/pkg/jwt"
	"warrantyhub/internal/repository"
)

// Service registers and authenticates users and companies.
type Service struct {
	users     UserRepository
	companies CompanyRepository
	tokens    TokenIssuer
	log       *zap.Logger
	hashCost  int
}

func NewService(users UserRepository, companies CompanyRepository, tokens TokenIssuer, log *zap.Logger) *Service {
	return &Service{
		users:     users,
		companies: companies,
		tokens:    tokens,
		log:       log,
		hashCost:  bcrypt.DefaultCost,
	}
}

func (s *Service) Signup(ctx context.Context, req SignupRequest) (*domain.User, string, error) {
	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, "", ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:         strings.TrimSpace(req.Name),
		PhoneNumber:  strings.TrimSpace(req.PhoneNumber),
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, "", ErrEmailAlreadyExists
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.GenerateToken(user.ID, jwt.KindUser)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	s.log.Info("user signed up", zap.Int64("user_id", user.ID))
	return user, token, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrAccountNotFound
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID, jwt.KindUser)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

func (s *Service) RegisterCompany(ctx context.Context, req CompanyRegisterRequest) (*domain.Company, string, error) {
	exists, err := s.companies.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, "", ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	company := &domain.Company{
		Name:         strings.TrimSpace(req.Name),
		Email:        req.Email,
		PasswordHash: string(hash),
		PhoneNumber:  strings.TrimSpace(req.PhoneNumber),
		IsActive:     true,
	}
	if err := s.companies.Create(ctx, company); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, "", ErrEmailAlreadyExists
		}
		return nil, "", fmt.Errorf("create company: %w", err)
	}

	token, err := s.tokens.GenerateToken(company.ID, jwt.KindCompany)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	s.log.Info("company registered", zap.Int64("company_id", company.ID))
	return company, token, nil
}

// LoginCompany checks the account state before the password.
func (s *Service) LoginCompany(ctx context.Context, req LoginRequest) (*domain.Company, string, error) {
	company, err := s.companies.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrAccountNotFound
		}
		return nil, "", fmt.Errorf("find company: %w", err)
	}

	if !company.IsActive {
		return nil, "", ErrAccountDeactivated
	}

	if bcrypt.CompareHashAndPassword([]byte(company.PasswordHash), []byte(req.Password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(company.ID, jwt.KindCompany)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return company, token, nil
}
