package payment

import "github.com/shopspring/decimal"

// Gateway identifiers, also recorded on confirmed payment rows.
const (
	NamePerfectMoney = "perfectmoney"
	NamePayeer       = "payeer"
)

// CheckoutLink is a hosted-checkout URL for one payment attempt.
type CheckoutLink struct {
	Gateway string
	URL     string
}

// Gateway builds hosted-checkout URLs. Both supported processors are
// redirect-based: the user pays on the processor's site and the processor
// calls our status webhook.
type Gateway interface {
	// Name returns the gateway identifier.
	Name() string

	// CheckoutURL builds the URL the user opens to pay amountUSD for the
	// given payment id.
	CheckoutURL(paymentID string, amountUSD decimal.Decimal, description string) string
}
