package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpiryFor(t *testing.T) {
	bought := time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 1, 31, 10, 30, 0, 0, time.UTC), ExpiryFor(bought, 30))
	assert.Equal(t, time.Date(2025, 1, 1, 10, 30, 0, 0, time.UTC), ExpiryFor(bought, 366))
}

func TestBillWarrantyStatus(t *testing.T) {
	bill := Bill{
		PurchaseDate:         time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		WarrantyPeriodMonths: 12,
	}
	expires := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	require.Equal(t, expires, bill.WarrantyExpiresAt())

	assert.Equal(t, WarrantyActive, bill.WarrantyStatus(expires.AddDate(0, -3, 0)))
	assert.Equal(t, WarrantyExpiring, bill.WarrantyStatus(expires.AddDate(0, 0, -30)))
	assert.Equal(t, WarrantyExpiring, bill.WarrantyStatus(expires.Add(-time.Minute)))
	assert.Equal(t, WarrantyExpired, bill.WarrantyStatus(expires))
}

func TestCompanyProfileCompletion(t *testing.T) {
	c := &Company{Name: "Acme", Email: "a@acme.io", PasswordHash: "x"}
	assert.Equal(t, 21, c.ComputeProfileCompletion())

	c.PhoneNumber = "1"
	c.Logo = "l"
	c.Website = "w"
	c.Address.Street = "s"
	c.Industry = "i"
	c.CompanySize = "10-50"
	c.FoundedYear = 1999
	c.Description = "d"
	c.ContactPerson = "p"
	c.ContactEmail = "e"
	c.ContactPhone = "2"
	assert.Equal(t, 100, c.ComputeProfileCompletion())

	// nested fields other than street do not count
	c.Address.Street = ""
	c.Address.City = "Pune"
	assert.Equal(t, 93, c.ComputeProfileCompletion())
}

func TestPurchaseOwnedBy(t *testing.T) {
	uid := int64(7)
	p := &Purchase{UserID: &uid}

	assert.True(t, p.OwnedBy(Principal{Kind: PrincipalUser, ID: 7}))
	assert.False(t, p.OwnedBy(Principal{Kind: PrincipalUser, ID: 8}))
	assert.False(t, p.OwnedBy(Principal{Kind: PrincipalCompany, ID: 7}))
}

func TestStatusValid(t *testing.T) {
	assert.True(t, PurchaseStatusCancelled.Valid())
	assert.False(t, PurchaseStatus("completed").Valid())
	assert.True(t, ClaimStatusProcessing.Valid())
	assert.False(t, ClaimStatus("closed").Valid())
}

func TestDecimalMarshalsAsNumber(t *testing.T) {
	b, err := json.Marshal(Plan{Price: decimal.NewFromInt(100)})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"price":100`)
}
