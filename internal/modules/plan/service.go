package plan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"warrantyhub/internal/cache"
	"warrantyhub/internal/domain"
	"warrantyhub/internal/repository"
)

const marketplaceCacheKey = "plans:marketplace:v1"

type Service struct {
	repo     Repository
	cache    cache.Cache
	cacheTTL time.Duration
	log      *zap.Logger
}

func NewService(repo Repository, c cache.Cache, cacheTTL time.Duration, log *zap.Logger) *Service {
	if c == nil {
		c = cache.Noop{}
	}
	return &Service{repo: repo, cache: c, cacheTTL: cacheTTL, log: log}
}

func (s *Service) Create(ctx context.Context, companyID int64, req CreatePlanRequest) (*domain.Plan, error) {
	if req.Price.IsNegative() {
		return nil, ErrInvalidPrice
	}

	p := &domain.Plan{
		CompanyID: companyID,
		Name:      strings.TrimSpace(req.Name),
		Price:     *req.Price,
		Duration:  req.Duration,
		Features:  cleanFeatures(req.Features),
		Coverage:  req.Coverage,
		Terms:     req.Terms,
		URL:       strings.TrimSpace(req.URL),
		Active:    req.Active == nil || *req.Active,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create plan: %w", err)
	}

	s.InvalidateMarketplace(ctx)
	return p, nil
}

// List returns the company's plans, newest first.
func (s *Service) List(ctx context.Context, companyID int64) ([]domain.Plan, error) {
	plans, err := s.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	return plans, nil
}

func (s *Service) Get(ctx context.Context, companyID, id int64) (*domain.Plan, error) {
	p, err := s.repo.GetForCompany(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("get plan: %w", err)
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, companyID, id int64, req UpdatePlanRequest) (*domain.Plan, error) {
	if req.Price != nil && req.Price.IsNegative() {
		return nil, ErrInvalidPrice
	}

	p, err := s.Get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Duration != nil {
		p.Duration = *req.Duration
	}
	if req.Features != nil {
		p.Features = cleanFeatures(req.Features)
	}
	if req.Coverage != nil {
		p.Coverage = *req.Coverage
	}
	if req.Terms != nil {
		p.Terms = *req.Terms
	}
	if req.URL != nil {
		p.URL = strings.TrimSpace(*req.URL)
	}
	if req.Active != nil {
		p.Active = *req.Active
	}

	if err := s.repo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("save plan: %w", err)
	}

	s.InvalidateMarketplace(ctx)
	return p, nil
}

// Delete refuses plans that purchases or claims still point at.
func (s *Service) Delete(ctx context.Context, companyID, id int64) error {
	if _, err := s.Get(ctx, companyID, id); err != nil {
		return err
	}

	inUse, err := s.repo.HasDependents(ctx, id)
	if err != nil {
		return fmt.Errorf("check plan dependents: %w", err)
	}
	if inUse {
		return ErrPlanInUse
	}

	if err := s.repo.Delete(ctx, id, companyID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return fmt.Errorf("delete plan: %w", err)
	}

	s.InvalidateMarketplace(ctx)
	return nil
}

func (s *Service) ToggleStatus(ctx context.Context, companyID, id int64) (*domain.Plan, error) {
	p, err := s.Get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	p.Active = !p.Active
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("toggle plan: %w", err)
	}

	s.InvalidateMarketplace(ctx)
	return p, nil
}

// Marketplace lists every company's plans. Cache failures fall through to the database.
func (s *Service) Marketplace(ctx context.Context) ([]MarketplacePlan, error) {
	if raw, ok, err := s.cache.Get(ctx, marketplaceCacheKey); err != nil {
		s.log.Warn("marketplace cache read failed", zap.Error(err))
	} else if ok {
		var cached []MarketplacePlan
		uerr := json.Unmarshal(raw, &cached)
		if uerr == nil {
			return cached, nil
		}
		s.log.Warn("marketplace cache entry is corrupt", zap.Error(uerr))
	}

	plans, err := s.repo.ListMarketplace(ctx)
	if err != nil {
		return nil, fmt.Errorf("list marketplace: %w", err)
	}

	out := make([]MarketplacePlan, 0, len(plans))
	for _, p := range plans {
		out = append(out, newMarketplacePlan(p))
	}

	if raw, err := json.Marshal(out); err == nil {
		if err := s.cache.Set(ctx, marketplaceCacheKey, raw, s.cacheTTL); err != nil {
			s.log.Warn("marketplace cache write failed", zap.Error(err))
		}
	}
	return out, nil
}

func (s *Service) InvalidateMarketplace(ctx context.Context) {
	if err := s.cache.Delete(ctx, marketplaceCacheKey); err != nil {
		s.log.Warn("marketplace cache invalidation failed", zap.Error(err))
	}
}

func cleanFeatures(in []string) []string {
	out := make([]string, 0, len(in))
	for _, f := range in {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
