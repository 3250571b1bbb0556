package pricing

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Canyildiz1386/SultanPanelBot/internal/shop"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestCheckQuantity(t *testing.T) {
	cases := []struct {
		name     string
		quantity int
		min, max int
		wantErr  bool
	}{
		{"below min", 99, 100, 10000, true},
		{"at min", 100, 100, 10000, false},
		{"inside", 500, 100, 10000, false},
		{"at max", 10000, 100, 10000, false},
		{"above max", 10001, 100, 10000, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckQuantity(tc.quantity, tc.min, tc.max)
			if tc.wantErr && !errors.Is(err, shop.ErrQuantityOutOfRange) {
				t.Fatalf("quantity %d: want ErrQuantityOutOfRange, got %v", tc.quantity, err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("quantity %d: unexpected error %v", tc.quantity, err)
			}
		})
	}
}

func TestCreditCost(t *testing.T) {
	// rate 1000 Toman per 1000 units, 500 units at 60000 Toman/$ and
	// 10 cents per credit:
	//   toman  = 1000 * 500 / 1000 = 500
	//   dollar = 500 / 60000
	//   credit = dollar * 100 / 10
	cost, err := CreditCost(d("1000"), 500, d("60000"), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := d("500").Div(d("60000")).Mul(d("10"))
	if !cost.Equal(want) {
		t.Fatalf("cost = %s, want %s", cost, want)
	}
}

func TestCreditCostMonotonicInQuantity(t *testing.T) {
	rate := d("2500")
	conv := d("60000")

	prev := decimal.Zero
	for _, q := range []int{100, 500, 1000, 5000} {
		cost, err := CreditCost(rate, q, conv, 10)
		if err != nil {
			t.Fatalf("quantity %d: %v", q, err)
		}
		if cost.LessThanOrEqual(prev) {
			t.Fatalf("cost did not grow with quantity: %s after %s", cost, prev)
		}
		prev = cost
	}
}

func TestCreditCostMonotonicInRate(t *testing.T) {
	conv := d("60000")

	prev := decimal.Zero
	for _, rate := range []string{"500", "1000", "2500", "10000"} {
		cost, err := CreditCost(d(rate), 1000, conv, 10)
		if err != nil {
			t.Fatalf("rate %s: %v", rate, err)
		}
		if cost.LessThanOrEqual(prev) {
			t.Fatalf("cost did not grow with rate: %s after %s", cost, prev)
		}
		prev = cost
	}
}

func TestCreditCostShrinksWithPricierUnit(t *testing.T) {
	rate := d("2500")
	conv := d("60000")

	var prev decimal.Decimal
	for i, unitCents := range []int{5, 10, 25, 100} {
		cost, err := CreditCost(rate, 1000, conv, unitCents)
		if err != nil {
			t.Fatalf("unit %d: %v", unitCents, err)
		}
		if i > 0 && cost.GreaterThanOrEqual(prev) {
			t.Fatalf("cost did not shrink with a pricier unit: %s after %s", cost, prev)
		}
		prev = cost
	}
}

func TestCreditCostShrinksWithStrongerRate(t *testing.T) {
	rate := d("2500")

	var prev decimal.Decimal
	for i, conv := range []string{"30000", "60000", "90000", "120000"} {
		cost, err := CreditCost(rate, 1000, d(conv), 10)
		if err != nil {
			t.Fatalf("conversion %s: %v", conv, err)
		}
		if i > 0 && cost.GreaterThanOrEqual(prev) {
			t.Fatalf("cost did not shrink with a stronger conversion rate: %s after %s", cost, prev)
		}
		prev = cost
	}
}

func TestCreditCostUnconfigured(t *testing.T) {
	if _, err := CreditCost(d("1000"), 500, d("60000"), 0); !errors.Is(err, shop.ErrPricingNotConfigured) {
		t.Fatalf("zero unit cents: want ErrPricingNotConfigured, got %v", err)
	}
	if _, err := CreditCost(d("1000"), 500, decimal.Zero, 10); !errors.Is(err, shop.ErrPricingNotConfigured) {
		t.Fatalf("zero conversion rate: want ErrPricingNotConfigured, got %v", err)
	}
}

func TestCreditsForUSD(t *testing.T) {
	credits, err := CreditsForUSD(d("5"), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !credits.Equal(d("50")) {
		t.Fatalf("credits = %s, want 50", credits)
	}

	if _, err := CreditsForUSD(d("5"), 0); !errors.Is(err, shop.ErrPricingNotConfigured) {
		t.Fatalf("want ErrPricingNotConfigured, got %v", err)
	}
}

func TestApplyDiscount(t *testing.T) {
	cases := []struct {
		name    string
		amount  string
		percent int
		want    string
	}{
		{"twenty percent", "10", 20, "8"},
		{"zero percent", "10", 0, "10"},
		{"negative percent", "10", -5, "10"},
		{"over hundred", "10", 120, "10"},
		{"full discount", "10", 100, "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ApplyDiscount(d(tc.amount), tc.percent)
			if !got.Equal(d(tc.want)) {
				t.Fatalf("ApplyDiscount(%s, %d) = %s, want %s", tc.amount, tc.percent, got, tc.want)
			}
		})
	}
}

func TestCreditsToUSDRoundTrip(t *testing.T) {
	credits, err := CreditsForUSD(d("12.50"), 25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	back := CreditsToUSD(credits, 25)
	if !back.Equal(d("12.50")) {
		t.Fatalf("round trip = %s, want 12.50", back)
	}

	if !CreditsToUSD(d("100"), 0).IsZero() {
		t.Fatal("unconfigured unit should convert to zero dollars")
	}
}

func TestUSDToToman(t *testing.T) {
	if got := USDToToman(d("3"), d("60000")); !got.Equal(d("180000")) {
		t.Fatalf("USDToToman = %s, want 180000", got)
	}
}
