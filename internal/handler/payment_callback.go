package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Canyildiz1386/SultanPanelBot/internal/notify"
	"github.com/Canyildiz1386/SultanPanelBot/internal/payment"
	"github.com/Canyildiz1386/SultanPanelBot/internal/shop"
)

// PaymentCallbackHandler handles processor redirects and status webhooks.
// The redirect pages are cosmetic; only the status webhooks move money.
type PaymentCallbackHandler struct {
	engine   *shop.Engine
	payeer   *payment.PayeerGateway
	notifier *notify.Notifier
	logger   *zap.Logger
}

func NewPaymentCallbackHandler(
	engine *shop.Engine,
	payeer *payment.PayeerGateway,
	notifier *notify.Notifier,
	logger *zap.Logger,
) *PaymentCallbackHandler {
	return &PaymentCallbackHandler{
		engine:   engine,
		payeer:   payeer,
		notifier: notifier,
		logger:   logger,
	}
}

// ── Redirect pages ───────────────────────────────────────────────────

// Confirmed is where Perfect Money sends the payer after success. The
// authoritative confirmation arrives on the status webhook.
func (h *PaymentCallbackHandler) Confirmed(c echo.Context) error {
	return c.String(http.StatusOK, "Payment confirmed! Thank you for your purchase.")
}

// Failed is where the payer lands after aborting.
func (h *PaymentCallbackHandler) Failed(c echo.Context) error {
	return c.String(http.StatusOK, "Payment failed. Please try again.")
}

// ── Perfect Money status webhook ─────────────────────────────────────

// PerfectMoneyStatus handles the form-encoded status POST.
func (h *PaymentCallbackHandler) PerfectMoneyStatus(c echo.Context) error {
	paymentID := c.FormValue("PAYMENT_ID")
	batch := c.FormValue("PAYMENT_BATCH_NUM")

	if paymentID == "" {
		return c.String(http.StatusBadRequest, "missing PAYMENT_ID")
	}
	return h.confirm(c, paymentID, batch, payment.NamePerfectMoney)
}

// ── Payeer status webhook ────────────────────────────────────────────

// PayeerStatus handles Payeer's form-encoded status POST, verifying the
// merchant signature before trusting any field.
func (h *PaymentCallbackHandler) PayeerStatus(c echo.Context) error {
	paymentID := c.FormValue("m_orderid")
	amount := c.FormValue("m_amount")
	currency := c.FormValue("m_curr")
	sign := c.FormValue("m_sign")
	status := c.FormValue("m_status")

	if paymentID == "" {
		return c.String(http.StatusBadRequest, "missing m_orderid")
	}
	if !strings.EqualFold(sign, h.payeer.Sign(paymentID, amount, currency)) {
		h.logger.Warn("payeer webhook with bad signature", zap.String("payment", paymentID))
		return c.String(http.StatusBadRequest, "bad signature")
	}
	if status != "" && !strings.EqualFold(status, "success") {
		return c.String(http.StatusOK, paymentID+"|error")
	}
	if err := h.checkAmount(paymentID, amount); err != nil {
		h.logger.Warn("payeer webhook amount mismatch",
			zap.String("payment", paymentID), zap.String("amount", amount))
		return c.String(http.StatusBadRequest, "amount mismatch")
	}
	return h.confirm(c, paymentID, "payeer:"+paymentID, payment.NamePayeer)
}

func (h *PaymentCallbackHandler) checkAmount(paymentID, amount string) error {
	p, err := h.engine.PaymentByID(paymentID)
	if err != nil {
		return err
	}
	got, err := decimal.NewFromString(amount)
	if err != nil {
		return shop.ErrInvalidInput
	}
	if !got.Equal(p.AmountUSD) {
		return shop.ErrInvalidInput
	}
	return nil
}

func (h *PaymentCallbackHandler) confirm(c echo.Context, paymentID, refID, gateway string) error {
	p, credited, err := h.engine.ConfirmTopUp(paymentID, refID, gateway)
	if err != nil {
		if errors.Is(err, shop.ErrNotFound) {
			return c.String(http.StatusNotFound, "unknown payment")
		}
		h.logger.Error("payment confirmation failed", zap.String("payment", paymentID), zap.Error(err))
		return c.String(http.StatusInternalServerError, "confirmation failed")
	}

	if credited {
		h.notifier.User(p.UserNumID, renderCredited(p.Credits, p.AmountUSD))
		h.notifier.Ops(notify.RenderPayment(p, p.Credits))
	}
	// Duplicates still get a 2xx so the processor stops retrying.
	return c.String(http.StatusOK, "Payment status updated.")
}

func renderCredited(credits, amountUSD decimal.Decimal) string {
	return "🎉 Payment confirmed! " + credits.StringFixed(2) +
		" credits (" + amountUSD.StringFixed(2) + "$) have been added to your account. 🎊"
}
