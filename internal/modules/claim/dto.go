package claim

import (
	"github.com/shopspring/decimal"

	"warrantyhub/internal/domain"
)

// CreateClaimRequest names the filing user and the claimed plan by id.
type CreateClaimRequest struct {
	UserID           int64                  `json:"user" binding:"required"`
	PlanID           int64                  `json:"plan" binding:"required"`
	DeviceDetails    string                 `json:"deviceDetails" binding:"required"`
	IssueDescription string                 `json:"issueDescription" binding:"required"`
	Amount           *decimal.Decimal       `json:"amount" binding:"required"`
	Documents        []domain.ClaimDocument `json:"documents" binding:"required"`
}

type UpdateClaimRequest struct {
	DeviceDetails    *string                `json:"deviceDetails" binding:"omitempty,min=1"`
	IssueDescription *string                `json:"issueDescription" binding:"omitempty,min=1"`
	Amount           *decimal.Decimal       `json:"amount"`
	Documents        []domain.ClaimDocument `json:"documents"`
}

type UpdateStatusRequest struct {
	Status domain.ClaimStatus `json:"status" binding:"required"`
}
