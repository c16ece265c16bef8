package company

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"warrantyhub/internal/domain"
	"warrantyhub/internal/modules/plan"
	"warrantyhub/internal/repository"
)

type Service struct {
	companies Repository
	plans     PlanCatalog
	counter   PlanCounter
	purchases PurchaseReader
}

func NewService(companies Repository, plans PlanCatalog, counter PlanCounter, purchases PurchaseReader) *Service {
	return &Service{
		companies: companies,
		plans:     plans,
		counter:   counter,
		purchases: purchases,
	}
}

func (s *Service) GetProfile(ctx context.Context, companyID int64) (*domain.Company, error) {
	c, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return c, nil
}

// UpdateProfile merges the non-empty request fields into the stored profile.
func (s *Service) UpdateProfile(ctx context.Context, companyID int64, req UpdateProfileRequest) (*domain.Company, error) {
	c, err := s.GetProfile(ctx, companyID)
	if err != nil {
		return nil, err
	}

	oldName := c.Name
	setString(&c.Name, req.Name)
	setString(&c.PhoneNumber, req.PhoneNumber)
	setString(&c.Logo, req.Logo)
	setString(&c.Website, req.Website)
	setString(&c.Industry, req.Industry)
	setString(&c.CompanySize, req.CompanySize)
	setString(&c.Description, req.Description)
	setString(&c.ContactPerson, req.ContactPerson)
	setString(&c.ContactEmail, req.ContactEmail)
	setString(&c.ContactPhone, req.ContactPhone)
	if req.FoundedYear != 0 {
		c.FoundedYear = req.FoundedYear
	}

	if a := req.Address; a != nil {
		setString(&c.Address.Street, a.Street)
		setString(&c.Address.City, a.City)
		setString(&c.Address.State, a.State)
		setString(&c.Address.ZipCode, a.ZipCode)
		setString(&c.Address.Country, a.Country)
	}
	if sm := req.SocialMedia; sm != nil {
		setString(&c.SocialMedia.Linkedin, sm.Linkedin)
		setString(&c.SocialMedia.Twitter, sm.Twitter)
		setString(&c.SocialMedia.Facebook, sm.Facebook)
		setString(&c.SocialMedia.Instagram, sm.Instagram)
	}

	if err := s.companies.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("save company: %w", err)
	}

	// marketplace entries carry the company name
	if c.Name != oldName {
		s.plans.InvalidateMarketplace(ctx)
	}
	return c, nil
}

func (s *Service) CreatePlan(ctx context.Context, companyID int64, req plan.CreatePlanRequest) ([]domain.Plan, error) {
	if _, err := s.plans.Create(ctx, companyID, req); err != nil {
		return nil, err
	}
	return s.plans.List(ctx, companyID)
}

func (s *Service) UpdatePlan(ctx context.Context, companyID, planID int64, req plan.UpdatePlanRequest) ([]domain.Plan, error) {
	if _, err := s.plans.Update(ctx, companyID, planID, req); err != nil {
		return nil, err
	}
	return s.plans.List(ctx, companyID)
}

func (s *Service) DeletePlan(ctx context.Context, companyID, planID int64) ([]domain.Plan, error) {
	if err := s.plans.Delete(ctx, companyID, planID); err != nil {
		return nil, err
	}
	return s.plans.List(ctx, companyID)
}

func (s *Service) AllPlans(ctx context.Context) ([]plan.MarketplacePlan, error) {
	return s.plans.Marketplace(ctx)
}

// Stats counts active purchases of the company's plans and sums the plan prices behind them.
func (s *Service) Stats(ctx context.Context, companyID int64) (*Stats, error) {
	total, active, err := s.counter.CountByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("count plans: %w", err)
	}

	purchases, err := s.purchases.ListActiveForCompanyPlans(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("list active purchases: %w", err)
	}

	revenue := decimal.Zero
	for _, p := range purchases {
		if p.Plan != nil {
			revenue = revenue.Add(p.Plan.Price)
		}
	}

	return &Stats{
		TotalPlans:  total,
		ActivePlans: active,
		TotalUsers:  len(purchases),
		Revenue:     revenue,
	}, nil
}

func setString(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}
