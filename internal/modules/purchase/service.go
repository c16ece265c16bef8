package purchase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"warrantyhub/internal/domain"
	"warrantyhub/internal/repository"
)

const (
	FilterWeek  = "week"
	FilterMonth = "month"
)

type Service struct {
	purchases   Repository
	plans       PlanReader
	marketplace MarketplaceInvalidator
	certs       CertificateRenderer
	log         *zap.Logger
	now         func() time.Time
}

func NewService(purchases Repository, plans PlanReader, marketplace MarketplaceInvalidator, certs CertificateRenderer, log *zap.Logger) *Service {
	return &Service{
		purchases:   purchases,
		plans:       plans,
		marketplace: marketplace,
		certs:       certs,
		log:         log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Create buys a plan for the caller. A company purchase also re-activates the plan.
func (s *Service) Create(ctx context.Context, pr domain.Principal, req CreatePurchaseRequest) (*domain.Purchase, error) {
	plan, err := s.plans.GetByID(ctx, req.PlanID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("get plan: %w", err)
	}

	now := s.now()
	p := &domain.Purchase{
		PlanID:          plan.ID,
		CustomerName:    strings.TrimSpace(req.CustomerName),
		CustomerEmail:   strings.TrimSpace(req.CustomerEmail),
		CustomerPhone:   strings.TrimSpace(req.CustomerPhone),
		CustomerAddress: strings.TrimSpace(req.CustomerAddress),
		DeviceDetails:   strings.TrimSpace(req.DeviceDetails),
		PaymentMethod:   req.PaymentMethod,
		Status:          domain.PurchaseStatusActive,
		PurchaseDate:    now,
		ExpiryDate:      domain.ExpiryFor(now, plan.Duration),
		Amount:          plan.Price,
	}

	if pr.IsCompany() {
		id := pr.ID
		p.CompanyID = &id
		if err := s.purchases.CreateAndActivatePlan(ctx, p); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrPlanNotFound
			}
			return nil, fmt.Errorf("create company purchase: %w", err)
		}
		plan.Active = true
		s.marketplace.InvalidateMarketplace(ctx)
	} else {
		id := pr.ID
		p.UserID = &id
		if err := s.purchases.Create(ctx, p); err != nil {
			return nil, fmt.Errorf("create purchase: %w", err)
		}
	}

	p.Plan = plan
	return p, nil
}

func (s *Service) List(ctx context.Context, pr domain.Principal) ([]domain.Purchase, error) {
	out, err := s.purchases.ListByOwner(ctx, pr)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, pr domain.Principal, id int64) (*domain.Purchase, error) {
	p, err := s.purchases.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPurchaseNotFound
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	if !p.OwnedBy(pr) {
		return nil, ErrForbidden
	}
	return p, nil
}

// UpdateStatus sets any canonical status; there is no transition table.
func (s *Service) UpdateStatus(ctx context.Context, pr domain.Principal, id int64, status domain.PurchaseStatus) (*domain.Purchase, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	p, err := s.Get(ctx, pr, id)
	if err != nil {
		return nil, err
	}
	if err := s.purchases.UpdateStatus(ctx, p.ID, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPurchaseNotFound
		}
		return nil, fmt.Errorf("update purchase status: %w", err)
	}

	p.Status = status
	return p, nil
}

// ExpiryWindow returns the inclusive range for an expiring-soon filter:
// start of today through the end of today plus 7 (week), 30 (month) or 0 days.
func ExpiryWindow(now time.Time, filter string) (time.Time, time.Time) {
	now = now.UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	days := 0
	switch filter {
	case FilterWeek:
		days = 7
	case FilterMonth:
		days = 30
	}

	end := start.AddDate(0, 0, days).Add(24*time.Hour - time.Millisecond)
	return start, end
}

func (s *Service) Expiring(ctx context.Context, pr domain.Principal, filter string) ([]domain.Purchase, error) {
	if filter == "" {
		filter = FilterWeek
	}
	from, to := ExpiryWindow(s.now(), filter)

	out, err := s.purchases.ListExpiring(ctx, pr, from, to)
	if err != nil {
		return nil, fmt.Errorf("list expiring purchases: %w", err)
	}
	return out, nil
}

// Certificate renders the warranty certificate PDF for a purchase the caller owns.
func (s *Service) Certificate(ctx context.Context, pr domain.Principal, id int64) (*domain.Purchase, []byte, error) {
	p, err := s.purchases.GetWithCompany(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrPurchaseNotFound
		}
		return nil, nil, fmt.Errorf("get purchase: %w", err)
	}
	if !p.OwnedBy(pr) {
		return nil, nil, ErrForbidden
	}

	pdf, err := s.certs.Render(p)
	if err != nil {
		return nil, nil, fmt.Errorf("render certificate: %w", err)
	}
	return p, pdf, nil
}
