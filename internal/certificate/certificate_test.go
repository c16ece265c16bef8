package certificate

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warrantyhub/internal/domain"
)

func samplePurchase() *domain.Purchase {
	bought := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	return &domain.Purchase{
		ID:           12,
		PlanID:       3,
		CustomerName: "Asha Rao",
		Status:       domain.PurchaseStatusActive,
		PurchaseDate: bought,
		ExpiryDate:   domain.ExpiryFor(bought, 30),
		Amount:       decimal.NewFromInt(100),
		Plan: &domain.Plan{
			ID:       3,
			Name:     "Screen Guard",
			Coverage: "Accidental screen damage",
			Terms:    "One replacement per year",
			Company:  &domain.Company{ID: 1, Name: "Acme Care", Email: "care@acme.io"},
		},
	}
}

func TestNumber(t *testing.T) {
	assert.Equal(t, "WH-20240101-000012", Number(samplePurchase()))
}

func TestRender_ProducesPDF(t *testing.T) {
	g := NewGenerator()

	out, err := g.Render(samplePurchase())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRender_RequiresPlanAndCompany(t *testing.T) {
	p := samplePurchase()
	p.Plan.Company = nil

	_, err := NewGenerator().Render(p)
	assert.Error(t, err)
}
