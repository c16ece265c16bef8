package plan

import (
	"time"

	"github.com/shopspring/decimal"

	"warrantyhub/internal/domain"
)

type CreatePlanRequest struct {
	Name     string           `json:"name" binding:"required"`
	Price    *decimal.Decimal `json:"price" binding:"required"`
	Duration int              `json:"duration" binding:"required,gte=1"`
	Features []string         `json:"features" binding:"required"`
	Coverage string           `json:"coverage" binding:"required"`
	Terms    string           `json:"terms" binding:"required"`
	URL      string           `json:"url"`
	Active   *bool            `json:"active"`
}

// UpdatePlanRequest changes only the fields that are present.
type UpdatePlanRequest struct {
	Name     *string          `json:"name" binding:"omitempty,min=1"`
	Price    *decimal.Decimal `json:"price"`
	Duration *int             `json:"duration" binding:"omitempty,gte=1"`
	Features []string         `json:"features"`
	Coverage *string          `json:"coverage" binding:"omitempty,min=1"`
	Terms    *string          `json:"terms" binding:"omitempty,min=1"`
	URL      *string          `json:"url"`
	Active   *bool            `json:"active"`
}

type CompanyRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// MarketplacePlan is a plan as listed publicly, tagged with its company.
type MarketplacePlan struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Duration  int             `json:"duration"`
	Features  []string        `json:"features"`
	Coverage  string          `json:"coverage"`
	Terms     string          `json:"terms"`
	URL       string          `json:"url"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"createdAt"`
	Company   CompanyRef      `json:"company"`
}

func newMarketplacePlan(p domain.Plan) MarketplacePlan {
	features := []string(p.Features)
	if features == nil {
		features = []string{}
	}
	mp := MarketplacePlan{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Duration:  p.Duration,
		Features:  features,
		Coverage:  p.Coverage,
		Terms:     p.Terms,
		URL:       p.URL,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
		Company:   CompanyRef{ID: p.CompanyID},
	}
	if p.Company != nil {
		mp.Company.Name = p.Company.Name
	}
	return mp
}
