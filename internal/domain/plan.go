package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Plan is a warranty offering owned by one company. Duration is in days.
type Plan struct {
	ID        int64                       `json:"id" gorm:"primaryKey"`
	CompanyID int64                       `json:"companyId" gorm:"not null;index"`
	Company   *Company                    `json:"company,omitempty" gorm:"foreignKey:CompanyID"`
	Name      string                      `json:"name" gorm:"not null"`
	Price     decimal.Decimal             `json:"price" gorm:"type:numeric(12,2);not null"`
	Duration  int                         `json:"duration" gorm:"not null"`
	Features  datatypes.JSONSlice[string] `json:"features"`
	Coverage  string                      `json:"coverage" gorm:"not null"`
	Terms     string                      `json:"terms" gorm:"not null"`
	URL       string                      `json:"url"`
	Active    bool                        `json:"active" gorm:"not null;index"`
	CreatedAt time.Time                   `json:"createdAt"`
	UpdatedAt time.Time                   `json:"updatedAt"`
}

func (Plan) TableName() string {
	return "plans"
}

// ExpiryFor returns the end of coverage for a plan bought at purchasedAt.
func ExpiryFor(purchasedAt time.Time, durationDays int) time.Time {
	return purchasedAt.AddDate(0, 0, durationDays)
}
