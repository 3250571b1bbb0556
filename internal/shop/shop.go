// Package shop holds the storefront core: order placement against the
// SMM panel and the credit top-up lifecycle. It talks to the store and
// the panel through small interfaces so the flows can be exercised
// without a database or network.
package shop

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Canyildiz1386/SultanPanelBot/internal/models"
)

// CatalogService mirrors smm.Service without importing the transport
// package.
type CatalogService struct {
	ID       string
	Name     string
	Category string
	Rate     decimal.Decimal // Toman per 1000 units
	Min      int
	Max      int
}

// Catalog is the remote SMM panel surface the engine needs.
type Catalog interface {
	FindService(ctx context.Context, serviceID string) (*CatalogService, error)
	AddOrder(ctx context.Context, serviceID, link string, quantity int) (int64, error)
}

// Wallet is the credit side of the user store. Debit must be atomic with
// a zero floor; Refund reverses a debit exactly.
type Wallet interface {
	Debit(numID int64, amount decimal.Decimal) error
	Refund(numID int64, amount decimal.Decimal) error
	Credit(numID int64, amount decimal.Decimal) error
}

// OrderStore persists placed orders.
type OrderStore interface {
	Create(order *models.Order) error
}

// PaymentStore persists top-up payments. Confirm must flip
// pending->confirmed atomically and report whether this call won,
// stamping the gateway that delivered the webhook.
type PaymentStore interface {
	Create(p *models.Payment) error
	FindByID(id string) (*models.Payment, error)
	Confirm(id, refID, gateway string, now time.Time) (bool, error)
}

// RateSource supplies the two config singletons.
type RateSource interface {
	ConversionRate() (decimal.Decimal, error)
	UnitCents() (int, error)
}

// Quote is the priced result of a service/quantity pair.
type Quote struct {
	Service    CatalogService
	Quantity   int
	CreditCost decimal.Decimal
}

// PriceFunc computes the credit cost of an order; wired to
// pricing.CreditCost in production.
type PriceFunc func(ratePer1000 decimal.Decimal, quantity int, conversionRate decimal.Decimal, unitCents int) (decimal.Decimal, error)

// CreditsFunc converts a Dollar amount to credits; wired to
// pricing.CreditsForUSD.
type CreditsFunc func(amountUSD decimal.Decimal, unitCents int) (decimal.Decimal, error)

// DiscountFunc applies a percent discount to a Dollar amount; wired to
// pricing.ApplyDiscount.
type DiscountFunc func(amountUSD decimal.Decimal, percent int) decimal.Decimal

// Engine drives the order and top-up flows.
type Engine struct {
	catalog  Catalog
	wallet   Wallet
	orders   OrderStore
	payments PaymentStore
	rates    RateSource
	logger   *zap.Logger

	price    PriceFunc
	credits  CreditsFunc
	discount DiscountFunc
}

func NewEngine(
	catalog Catalog,
	wallet Wallet,
	orders OrderStore,
	payments PaymentStore,
	rates RateSource,
	price PriceFunc,
	credits CreditsFunc,
	discount DiscountFunc,
	logger *zap.Logger,
) *Engine {
	return &Engine{
		catalog:  catalog,
		wallet:   wallet,
		orders:   orders,
		payments: payments,
		rates:    rates,
		price:    price,
		credits:  credits,
		discount: discount,
		logger:   logger,
	}
}

// QuoteOrder re-fetches the service's live bounds and rate, validates the
// quantity and prices the order. Bounds are checked before any money math.
func (e *Engine) QuoteOrder(ctx context.Context, serviceID string, quantity int) (*Quote, error) {
	svc, err := e.catalog.FindService(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, fmt.Errorf("service %s: %w", serviceID, ErrNotFound)
	}
	if quantity < svc.Min || quantity > svc.Max {
		return nil, ErrQuantityOutOfRange
	}

	rate, err := e.rates.ConversionRate()
	if err != nil {
		return nil, err
	}
	unitCents, err := e.rates.UnitCents()
	if err != nil {
		return nil, err
	}

	cost, err := e.price(svc.Rate, quantity, rate, unitCents)
	if err != nil {
		return nil, err
	}
	return &Quote{Service: *svc, Quantity: quantity, CreditCost: cost}, nil
}

// PlaceOrder runs the terminal step of the order flow: quote, debit,
// remote placement, persist. The debit lands before the remote call so a
// slow panel cannot be raced into overspending; a failed placement
// refunds the exact debited amount before the error is returned.
func (e *Engine) PlaceOrder(ctx context.Context, user *models.User, serviceID, link string, quantity int) (*models.Order, *Quote, error) {
	quote, err := e.QuoteOrder(ctx, serviceID, quantity)
	if err != nil {
		return nil, nil, err
	}

	if err := e.wallet.Debit(user.NumID, quote.CreditCost); err != nil {
		return nil, quote, err
	}

	remoteID, err := e.catalog.AddOrder(ctx, serviceID, link, quantity)
	if err != nil {
		if refundErr := e.wallet.Refund(user.NumID, quote.CreditCost); refundErr != nil {
			// The debit is now orphaned; log loudly, this needs an operator.
			e.logger.Error("refund after failed placement also failed",
				zap.Int64("user", user.NumID),
				zap.String("service", serviceID),
				zap.String("amount", quote.CreditCost.String()),
				zap.Error(refundErr))
		}
		return nil, quote, err
	}

	order := &models.Order{
		UserID:    user.ID,
		OrderID:   remoteID,
		ServiceID: serviceID,
		Link:      link,
		Quantity:  quantity,
		Status:    models.OrderStatusPending,
	}
	if err := e.orders.Create(order); err != nil {
		// The panel accepted the order; keep the debit and surface the
		// storage failure instead of double-charging via a retry.
		e.logger.Error("order placed remotely but not persisted",
			zap.Int64("remote_order", remoteID), zap.Error(err))
		return nil, quote, err
	}
	return order, quote, nil
}

// StartTopUp opens a pending payment for amountUSD, applying percent off
// (0 for none). The stored amount is what the processor will charge.
// Credits are computed now, at the advertised unit value, and frozen on
// the payment row; confirmation grants exactly that. The gateway stays
// unset until a processor webhook confirms — the user has not picked one
// yet.
func (e *Engine) StartTopUp(user *models.User, amountUSD decimal.Decimal, code string, percent int) (*models.Payment, error) {
	if amountUSD.Sign() <= 0 {
		return nil, ErrInvalidInput
	}
	unitCents, err := e.rates.UnitCents()
	if err != nil {
		return nil, err
	}

	// A discount code lowers what the processor charges; the grant is
	// the credit value of the charged amount.
	charged := e.discount(amountUSD, percent)
	credits, err := e.credits(charged, unitCents)
	if err != nil {
		return nil, err
	}

	p := &models.Payment{
		ID:              uuid.NewString(),
		UserNumID:       user.NumID,
		AmountUSD:       charged,
		DiscountCode:    code,
		DiscountPercent: percent,
		Credits:         credits,
		Status:          models.PaymentStatusPending,
	}
	if err := e.payments.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// PaymentByID looks up a payment row.
func (e *Engine) PaymentByID(id string) (*models.Payment, error) {
	return e.payments.FindByID(id)
}

// ConfirmTopUp handles a processor's success callback. The status flip is
// the idempotency guard: only the call that wins the pending->confirmed
// transition grants credit, so duplicate webhooks are no-ops. gateway is
// the processor whose webhook this is; it is recorded on the row.
func (e *Engine) ConfirmTopUp(paymentID, refID, gateway string) (*models.Payment, bool, error) {
	p, err := e.payments.FindByID(paymentID)
	if err != nil {
		return nil, false, err
	}

	won, err := e.payments.Confirm(paymentID, refID, gateway, time.Now().UTC())
	if err != nil {
		return p, false, err
	}
	if !won {
		return p, false, nil
	}
	p.Gateway = gateway

	if err := e.wallet.Credit(p.UserNumID, p.Credits); err != nil {
		// Confirmed but not credited: operator territory, never auto-retry
		// into a double grant.
		e.logger.Error("payment confirmed but credit grant failed",
			zap.String("payment", paymentID),
			zap.Int64("user", p.UserNumID),
			zap.Error(err))
		return p, true, err
	}
	return p, true, nil
}

// IsLocalError reports whether err is a validation error the caller
// recovers from by re-prompting.
func IsLocalError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrQuantityOutOfRange) ||
		errors.Is(err, ErrInsufficientCredit)
}
