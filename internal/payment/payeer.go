package payment

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

const payeerMerchant = "https://payeer.com/merchant/"

// PayeerGateway builds Payeer merchant checkout URLs.
type PayeerGateway struct {
	shop string
	key  string
}

func NewPayeerGateway(shop, key string) *PayeerGateway {
	return &PayeerGateway{shop: shop, key: key}
}

func (g *PayeerGateway) Name() string {
	return NamePayeer
}

func (g *PayeerGateway) CheckoutURL(paymentID string, amountUSD decimal.Decimal, description string) string {
	amount := amountUSD.StringFixed(2)

	q := url.Values{}
	q.Set("m_shop", g.shop)
	q.Set("m_orderid", paymentID)
	q.Set("m_amount", amount)
	q.Set("m_curr", "USD")
	q.Set("m_desc", description)
	q.Set("m_sign", g.Sign(paymentID, amount, "USD"))
	q.Set("lang", "en")
	return fmt.Sprintf("%s?%s", payeerMerchant, q.Encode())
}

// Sign computes the Payeer merchant signature: uppercase hex sha256 of
// shop:orderid:amount:currency:key.
func (g *PayeerGateway) Sign(orderID, amount, currency string) string {
	payload := strings.Join([]string{g.shop, orderID, amount, currency, g.key}, ":")
	sum := sha256.Sum256([]byte(payload))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}
