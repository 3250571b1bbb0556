package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment lifecycle statuses.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusConfirmed = "confirmed"
	PaymentStatusFailed    = "failed"
	PaymentStatusExpired   = "expired"
)

// Payment maps to the `payments` table: one row per top-up attempt.
// The primary key is the id sent to the processor, so duplicate status
// webhooks land on the same row and the pending->confirmed flip can
// guard the credit grant.
type Payment struct {
	ID              string          `gorm:"column:id;primaryKey;size:64" json:"id"`
	UserNumID       int64           `gorm:"column:user_num_id;index" json:"user_num_id"`
	AmountUSD       decimal.Decimal `gorm:"column:amount_usd;type:decimal(20,4)" json:"amount_usd"` // charged amount, after discount
	DiscountCode    string          `gorm:"column:discount_code;size:100" json:"discount_code"`
	DiscountPercent int             `gorm:"column:discount_percent;default:0" json:"discount_percent"`
	Credits         decimal.Decimal `gorm:"column:credits;type:decimal(20,4)" json:"credits"`
	Gateway         string          `gorm:"column:gateway;size:50" json:"gateway"` // empty until a webhook confirms
	Status          string          `gorm:"column:status;size:20;default:'pending'" json:"status"`
	RefID           string          `gorm:"column:ref_id;size:100" json:"ref_id"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	ConfirmedAt     *time.Time      `gorm:"column:confirmed_at" json:"confirmed_at,omitempty"`
}

func (Payment) TableName() string {
	return "payments"
}
