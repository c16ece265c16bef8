package purchase

import "warrantyhub/internal/domain"

type CreatePurchaseRequest struct {
	PlanID          int64                `json:"planId" binding:"required"`
	CustomerName    string               `json:"customerName"`
	CustomerEmail   string               `json:"customerEmail" binding:"omitempty,email"`
	CustomerPhone   string               `json:"customerPhone"`
	CustomerAddress string               `json:"customerAddress"`
	DeviceDetails   string               `json:"deviceDetails"`
	PaymentMethod   domain.PaymentMethod `json:"paymentMethod" binding:"omitempty,oneof=card upi netbanking"`
}

type UpdateStatusRequest struct {
	Status domain.PurchaseStatus `json:"status" binding:"required"`
}
