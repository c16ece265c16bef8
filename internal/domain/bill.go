package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type WarrantyStatus string

const (
	WarrantyActive   WarrantyStatus = "active"
	WarrantyExpiring WarrantyStatus = "expiring"
	WarrantyExpired  WarrantyStatus = "expired"
)

// WarrantyExpiringWindow is how close to expiry a bill's warranty counts as expiring.
const WarrantyExpiringWindow = 30 * 24 * time.Hour

// Bill is a purchase receipt a user uploads to track a product warranty.
type Bill struct {
	ID                   int64           `json:"id" gorm:"primaryKey"`
	UserID               int64           `json:"userId" gorm:"not null;index"`
	ProductName          string          `json:"productName" gorm:"not null"`
	PurchaseDate         time.Time       `json:"purchaseDate" gorm:"not null"`
	WarrantyPeriodMonths int             `json:"warrantyPeriodMonths" gorm:"not null;default:0"`
	ReminderBeforeExpiry int             `json:"reminderBeforeExpiry" gorm:"not null;default:0"`
	StoreName            string          `json:"storeName"`
	TotalAmount          decimal.Decimal `json:"totalAmount" gorm:"type:numeric(12,2);not null;default:0"`
	Notes                string          `json:"notes"`
	InvoiceFileURL       string          `json:"invoiceFileUrl" gorm:"column:invoice_file_url;not null"`
	CreatedAt            time.Time       `json:"createdAt"`
}

func (Bill) TableName() string {
	return "bills"
}

func (b Bill) WarrantyExpiresAt() time.Time {
	return b.PurchaseDate.AddDate(0, b.WarrantyPeriodMonths, 0)
}

func (b Bill) WarrantyStatus(now time.Time) WarrantyStatus {
	expires := b.WarrantyExpiresAt()
	switch {
	case !now.Before(expires):
		return WarrantyExpired
	case expires.Sub(now) <= WarrantyExpiringWindow:
		return WarrantyExpiring
	default:
		return WarrantyActive
	}
}
