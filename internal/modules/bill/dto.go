package bill

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"warrantyhub/internal/domain"
)

// UploadBillForm is the non-file part of the multipart upload.
type UploadBillForm struct {
	ProductName          string `form:"productName" binding:"required"`
	PurchaseDate         string `form:"purchaseDate" binding:"required"`
	WarrantyPeriodMonths int    `form:"warrantyPeriodMonths" binding:"gte=0"`
	ReminderBeforeExpiry int    `form:"reminderBeforeExpiry" binding:"gte=0"`
	StoreName            string `form:"storeName"`
	TotalAmount          string `form:"totalAmount"`
	Notes                string `form:"notes"`
}

var purchaseDateLayouts = []string{"2006-01-02", time.RFC3339}

// Bill turns the form into a bill without owner or file URL.
func (f UploadBillForm) Bill() (*domain.Bill, error) {
	var purchased time.Time
	var err error
	for _, layout := range purchaseDateLayouts {
		if purchased, err = time.Parse(layout, strings.TrimSpace(f.PurchaseDate)); err == nil {
			break
		}
	}
	if err != nil {
		return nil, ErrInvalidPurchaseDate
	}

	amount := decimal.Zero
	if s := strings.TrimSpace(f.TotalAmount); s != "" {
		if amount, err = decimal.NewFromString(s); err != nil || amount.IsNegative() {
			return nil, ErrInvalidAmount
		}
	}

	return &domain.Bill{
		ProductName:          strings.TrimSpace(f.ProductName),
		PurchaseDate:         purchased.UTC(),
		WarrantyPeriodMonths: f.WarrantyPeriodMonths,
		ReminderBeforeExpiry: f.ReminderBeforeExpiry,
		StoreName:            strings.TrimSpace(f.StoreName),
		TotalAmount:          amount,
		Notes:                strings.TrimSpace(f.Notes),
	}, nil
}

// BillResponse is a stored bill plus its derived warranty fields.
type BillResponse struct {
	domain.Bill
	WarrantyExpiresAt time.Time             `json:"warrantyExpiresAt"`
	WarrantyStatus    domain.WarrantyStatus `json:"warrantyStatus"`
}

func NewBillResponse(b domain.Bill, now time.Time) BillResponse {
	return BillResponse{
		Bill:              b,
		WarrantyExpiresAt: b.WarrantyExpiresAt(),
		WarrantyStatus:    b.WarrantyStatus(now),
	}
}

func NewBillResponses(bills []domain.Bill, now time.Time) []BillResponse {
	out := make([]BillResponse, 0, len(bills))
	for _, b := range bills {
		out = append(out, NewBillResponse(b, now))
	}
	return out
}
