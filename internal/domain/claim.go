package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type ClaimStatus string

const (
	ClaimStatusPending    ClaimStatus = "pending"
	ClaimStatusProcessing ClaimStatus = "processing"
	ClaimStatusApproved   ClaimStatus = "approved"
	ClaimStatusRejected   ClaimStatus = "rejected"
)

func (s ClaimStatus) Valid() bool {
	switch s {
	case ClaimStatusPending, ClaimStatusProcessing, ClaimStatusApproved, ClaimStatusRejected:
		return true
	}
	return false
}

type ClaimDocument struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}

// Claim is filed by a user against a plan. CompanyID is copied from the plan at filing time.
type Claim struct {
	ID               int64                              `json:"id" gorm:"primaryKey"`
	UserID           int64                              `json:"userId" gorm:"not null;index"`
	User             *User                              `json:"user,omitempty" gorm:"foreignKey:UserID"`
	PlanID           int64                              `json:"planId" gorm:"not null;index"`
	Plan             *Plan                              `json:"plan,omitempty" gorm:"foreignKey:PlanID"`
	CompanyID        int64                              `json:"companyId" gorm:"not null;index"`
	DeviceDetails    string                             `json:"deviceDetails" gorm:"not null"`
	IssueDescription string                             `json:"issueDescription" gorm:"not null"`
	Amount           decimal.Decimal                    `json:"amount" gorm:"type:numeric(12,2);not null"`
	Status           ClaimStatus                        `json:"status" gorm:"type:varchar(16);not null;index"`
	ClaimDate        time.Time                          `json:"claimDate" gorm:"not null"`
	Documents        datatypes.JSONSlice[ClaimDocument] `json:"documents"`
	CreatedAt        time.Time                          `json:"createdAt"`
	UpdatedAt        time.Time                          `json:"updatedAt"`
}

func (Claim) TableName() string {
	return "claims"
}

// VisibleTo reports whether the principal filed the claim or owns the claimed plan.
func (c *Claim) VisibleTo(pr Principal) bool {
	switch pr.Kind {
	case PrincipalUser:
		return c.UserID == pr.ID
	case PrincipalCompany:
		return c.CompanyID == pr.ID
	}
	return false
}
