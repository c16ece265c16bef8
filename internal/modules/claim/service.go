package claim

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"warrantyhub/internal/domain"
	"warrantyhub/internal/repository"
)

type Service struct {
	claims Repository
	users  UserReader
	plans  PlanReader
	now    func() time.Time
}

func NewService(claims Repository, users UserReader, plans PlanReader) *Service {
	return &Service{
		claims: claims,
		users:  users,
		plans:  plans,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Create files a claim. Users may only file for themselves; companies only against their own plans.
func (s *Service) Create(ctx context.Context, pr domain.Principal, req CreateClaimRequest) (*domain.Claim, error) {
	if req.Amount.IsNegative() {
		return nil, ErrInvalidAmount
	}
	if pr.IsUser() && req.UserID != pr.ID {
		return nil, ErrForbidden
	}

	if _, err := s.users.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	plan, err := s.plans.GetByID(ctx, req.PlanID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("get plan: %w", err)
	}
	if pr.IsCompany() && plan.CompanyID != pr.ID {
		return nil, ErrForbidden
	}

	c := &domain.Claim{
		UserID:           req.UserID,
		PlanID:           plan.ID,
		CompanyID:        plan.CompanyID,
		DeviceDetails:    strings.TrimSpace(req.DeviceDetails),
		IssueDescription: strings.TrimSpace(req.IssueDescription),
		Amount:           *req.Amount,
		Status:           domain.ClaimStatusPending,
		ClaimDate:        s.now(),
		Documents:        req.Documents,
	}
	if err := s.claims.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create claim: %w", err)
	}
	return s.reload(ctx, c.ID)
}

func (s *Service) List(ctx context.Context, pr domain.Principal) ([]domain.Claim, error) {
	out, err := s.claims.ListVisibleTo(ctx, pr)
	if err != nil {
		return nil, fmt.Errorf("list claims: %w", err)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, pr domain.Principal, id int64) (*domain.Claim, error) {
	c, err := s.reload(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.VisibleTo(pr) {
		return nil, ErrForbidden
	}
	return c, nil
}

// Update lets the filing user amend the claim details. Status is left alone.
func (s *Service) Update(ctx context.Context, pr domain.Principal, id int64, req UpdateClaimRequest) (*domain.Claim, error) {
	c, err := s.reload(ctx, id)
	if err != nil {
		return nil, err
	}
	if !pr.IsUser() || c.UserID != pr.ID {
		return nil, ErrForbidden
	}

	if req.DeviceDetails != nil {
		c.DeviceDetails = strings.TrimSpace(*req.DeviceDetails)
	}
	if req.IssueDescription != nil {
		c.IssueDescription = strings.TrimSpace(*req.IssueDescription)
	}
	if req.Amount != nil {
		if req.Amount.IsNegative() {
			return nil, ErrInvalidAmount
		}
		c.Amount = *req.Amount
	}
	if req.Documents != nil {
		c.Documents = req.Documents
	}

	if err := s.claims.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("save claim: %w", err)
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, pr domain.Principal, id int64) error {
	c, err := s.reload(ctx, id)
	if err != nil {
		return err
	}
	if !c.VisibleTo(pr) {
		return ErrForbidden
	}

	if err := s.claims.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrClaimNotFound
		}
		return fmt.Errorf("delete claim: %w", err)
	}
	return nil
}

// UpdateStatus is reserved for the company that owns the claimed plan. Any status can follow any other.
func (s *Service) UpdateStatus(ctx context.Context, pr domain.Principal, id int64, status domain.ClaimStatus) (*domain.Claim, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	c, err := s.reload(ctx, id)
	if err != nil {
		return nil, err
	}
	if !pr.IsCompany() || c.CompanyID != pr.ID {
		return nil, ErrForbidden
	}

	c.Status = status
	if err := s.claims.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("save claim: %w", err)
	}
	return c, nil
}

func (s *Service) reload(ctx context.Context, id int64) (*domain.Claim, error) {
	c, err := s.claims.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClaimNotFound
		}
		return nil, fmt.Errorf("get claim: %w", err)
	}
	return c, nil
}
