package models

import "github.com/shopspring/decimal"

// DiscountCode maps to the `discount_codes` table. Codes are not
// single-use; a code stays valid until an admin deletes it.
type DiscountCode struct {
	ID              uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Code            string `gorm:"column:code;uniqueIndex;size:100" json:"code"`
	DiscountPercent int    `gorm:"column:discount_percent" json:"discount_percent"`
}

func (DiscountCode) TableName() string {
	return "discount_codes"
}

// ConversionRate is a singleton row: Toman per one Dollar.
type ConversionRate struct {
	ID   uint            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Rate decimal.Decimal `gorm:"column:rate;type:decimal(20,4)" json:"rate"`
}

func (ConversionRate) TableName() string {
	return "conversion_rate"
}

// Unit is a singleton row named "default": the price of one credit in
// Dollar cents. It is never seeded; an admin must set it before any
// purchase or top-up can be priced.
type Unit struct {
	ID    uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name  string `gorm:"column:name;uniqueIndex;size:100" json:"name"`
	Value int    `gorm:"column:value" json:"value"`
}

func (Unit) TableName() string {
	return "units"
}
