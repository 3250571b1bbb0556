package payment

import (
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"
)

const perfectMoneyStep1 = "https://perfectmoney.is/api/step1.asp"

// PerfectMoneyGateway builds Perfect Money SCI checkout URLs.
type PerfectMoneyGateway struct {
	account   string
	name      string
	publicURL string // our server, for redirect/status URLs
}

func NewPerfectMoneyGateway(account, name, publicURL string) *PerfectMoneyGateway {
	return &PerfectMoneyGateway{account: account, name: name, publicURL: publicURL}
}

func (g *PerfectMoneyGateway) Name() string {
	return NamePerfectMoney
}

func (g *PerfectMoneyGateway) CheckoutURL(paymentID string, amountUSD decimal.Decimal, description string) string {
	q := url.Values{}
	q.Set("PAYEE_ACCOUNT", g.account)
	q.Set("PAYEE_NAME", g.name)
	q.Set("PAYMENT_UNITS", "USD")
	q.Set("PAYMENT_AMOUNT", amountUSD.StringFixed(2))
	q.Set("PAYMENT_ID", paymentID)
	q.Set("PAYMENT_URL", g.publicURL+"/payment-confirmed")
	q.Set("NOPAYMENT_URL", g.publicURL+"/payment-failed")
	q.Set("STATUS_URL", g.publicURL+"/payment-status")
	q.Set("SUGGESTED_MEMO", description)
	return fmt.Sprintf("%s?%s", perfectMoneyStep1, q.Encode())
}
