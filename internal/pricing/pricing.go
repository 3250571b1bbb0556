// Package pricing converts remote service rates and top-up amounts into
// internal credits. One credit costs unitCents Dollar cents; the
// conversion rate is Toman per Dollar.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/Canyildiz1386/SultanPanelBot/internal/shop"
)

var (
	thousand = decimal.NewFromInt(1000)
	hundred  = decimal.NewFromInt(100)
)

// CheckQuantity validates a requested quantity against the bounds the
// panel reports for the service. Runs before any monetary computation.
func CheckQuantity(quantity, min, max int) error {
	if quantity < min || quantity > max {
		return shop.ErrQuantityOutOfRange
	}
	return nil
}

// CreditCost computes the credit price of quantity units of a service.
//
//	tomanCost  = ratePer1000 * quantity / 1000
//	dollarCost = tomanCost / conversionRate
//	credits    = dollarCost * (100 / unitCents)
func CreditCost(ratePer1000 decimal.Decimal, quantity int, conversionRate decimal.Decimal, unitCents int) (decimal.Decimal, error) {
	if unitCents <= 0 {
		return decimal.Zero, shop.ErrPricingNotConfigured
	}
	if conversionRate.Sign() <= 0 {
		return decimal.Zero, shop.ErrPricingNotConfigured
	}

	tomanCost := ratePer1000.Mul(decimal.NewFromInt(int64(quantity))).Div(thousand)
	dollarCost := tomanCost.Div(conversionRate)
	return dollarCost.Mul(hundred).Div(decimal.NewFromInt(int64(unitCents))), nil
}

// CreditsForUSD converts a Dollar top-up amount into credits.
func CreditsForUSD(amountUSD decimal.Decimal, unitCents int) (decimal.Decimal, error) {
	if unitCents <= 0 {
		return decimal.Zero, shop.ErrPricingNotConfigured
	}
	return amountUSD.Mul(hundred).Div(decimal.NewFromInt(int64(unitCents))), nil
}

// ApplyDiscount reduces a Dollar amount by percent. Out-of-range percents
// leave the amount unchanged.
func ApplyDiscount(amountUSD decimal.Decimal, percent int) decimal.Decimal {
	if percent <= 0 || percent > 100 {
		return amountUSD
	}
	factor := hundred.Sub(decimal.NewFromInt(int64(percent))).Div(hundred)
	return amountUSD.Mul(factor)
}

// CreditsToUSD converts a credit balance into Dollars (display only).
func CreditsToUSD(credits decimal.Decimal, unitCents int) decimal.Decimal {
	if unitCents <= 0 {
		return decimal.Zero
	}
	return credits.Mul(decimal.NewFromInt(int64(unitCents))).Div(hundred)
}

// USDToToman converts Dollars to Toman at the given rate (display only).
func USDToToman(amountUSD, conversionRate decimal.Decimal) decimal.Decimal {
	return amountUSD.Mul(conversionRate)
}
