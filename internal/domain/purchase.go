package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PurchaseStatus string

const (
	PurchaseStatusPending   PurchaseStatus = "pending"
	PurchaseStatusActive    PurchaseStatus = "active"
	PurchaseStatusCancelled PurchaseStatus = "cancelled"
	PurchaseStatusExpired   PurchaseStatus = "expired"
)

func (s PurchaseStatus) Valid() bool {
	switch s {
	case PurchaseStatusPending, PurchaseStatusActive, PurchaseStatusCancelled, PurchaseStatusExpired:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentCard       PaymentMethod = "card"
	PaymentUPI        PaymentMethod = "upi"
	PaymentNetbanking PaymentMethod = "netbanking"
)

// Purchase records a user or a company acquiring a plan. Exactly one of UserID and CompanyID is set.
type Purchase struct {
	ID              int64           `json:"id" gorm:"primaryKey"`
	PlanID          int64           `json:"planId" gorm:"not null;index"`
	Plan            *Plan           `json:"plan,omitempty" gorm:"foreignKey:PlanID"`
	UserID          *int64          `json:"userId,omitempty" gorm:"index"`
	User            *User           `json:"user,omitempty" gorm:"foreignKey:UserID"`
	CompanyID       *int64          `json:"companyId,omitempty" gorm:"index"`
	CustomerName    string          `json:"customerName"`
	CustomerEmail   string          `json:"customerEmail"`
	CustomerPhone   string          `json:"customerPhone"`
	CustomerAddress string          `json:"customerAddress"`
	DeviceDetails   string          `json:"deviceDetails"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod,omitempty" gorm:"type:varchar(16)"`
	Status          PurchaseStatus  `json:"status" gorm:"type:varchar(16);not null;index"`
	PurchaseDate    time.Time       `json:"purchaseDate" gorm:"not null"`
	ExpiryDate      time.Time       `json:"expiryDate" gorm:"not null;index"`
	Amount          decimal.Decimal `json:"amount" gorm:"type:numeric(12,2);not null"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func (Purchase) TableName() string {
	return "purchases"
}

func (p *Purchase) OwnedBy(pr Principal) bool {
	switch pr.Kind {
	case PrincipalUser:
		return p.UserID != nil && *p.UserID == pr.ID
	case PrincipalCompany:
		return p.CompanyID != nil && *p.CompanyID == pr.ID
	}
	return false
}
