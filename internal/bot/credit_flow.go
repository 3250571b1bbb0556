package bot

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"github.com/Canyildiz1386/SultanPanelBot/internal/models"
	"github.com/Canyildiz1386/SultanPanelBot/internal/payment"
	"github.com/Canyildiz1386/SultanPanelBot/internal/pricing"
	"github.com/Canyildiz1386/SultanPanelBot/internal/shop"
)

const chanceCooldown = 24 * time.Hour

func (b *Bot) startTopUpFlow(c tele.Context, user *models.User, sess *Session) error {
	lang := user.PreferredLanguage

	rate, err := b.repos.Rates.ConversionRate()
	if err != nil {
		b.logger.Error("conversion rate lookup failed", zap.Error(err))
		return b.screen(c, tr(lang, "pricing_unavailable"), backKeyboard(lang))
	}

	sess.Reset()
	text := fmt.Sprintf(tr(lang, "choose_amount"), rate.StringFixed(0))
	return b.screen(c, text, topUpKeyboard(lang, rate))
}

func (b *Bot) onTopUpAmount(c tele.Context, user *models.User, sess *Session, amtStr string) error {
	lang := user.PreferredLanguage

	amt, err := strconv.ParseInt(amtStr, 10, 64)
	if err != nil || amt <= 0 {
		return b.startTopUpFlow(c, user, sess)
	}
	sess.AmountUSD = decimal.NewFromInt(amt)
	return b.screen(c, tr(lang, "ask_discount"), discountAskKeyboard(lang))
}

func (b *Bot) onCustomAmount(c tele.Context, user *models.User, sess *Session) error {
	lang := user.PreferredLanguage

	amt, err := decimal.NewFromString(strings.TrimSpace(c.Text()))
	if err != nil || amt.Sign() <= 0 {
		return c.Send(tr(lang, "invalid_number"), backKeyboard(lang))
	}

	sess.AmountUSD = amt
	sess.State = StateIdle
	return c.Send(tr(lang, "ask_discount"), discountAskKeyboard(lang))
}

func (b *Bot) onDiscountCode(c tele.Context, user *models.User, sess *Session) error {
	lang := user.PreferredLanguage

	code := strings.TrimSpace(c.Text())
	dc, err := b.repos.Discounts.FindByCode(code)
	if err != nil {
		if !errors.Is(err, shop.ErrNotFound) {
			b.logger.Error("discount lookup failed", zap.String("code", code), zap.Error(err))
		}
		if serr := c.Send(tr(lang, "invalid_discount")); serr != nil {
			return serr
		}
		return b.sendCheckout(c, user, sess, "", 0)
	}

	if serr := c.Send(fmt.Sprintf(tr(lang, "discount_applied"), dc.DiscountPercent)); serr != nil {
		return serr
	}
	return b.sendCheckout(c, user, sess, dc.Code, dc.DiscountPercent)
}

// sendCheckout opens the pending payment and hands out one checkout
// button per gateway, all pointing at the same payment id.
func (b *Bot) sendCheckout(c tele.Context, user *models.User, sess *Session, code string, percent int) error {
	lang := user.PreferredLanguage

	amount := sess.AmountUSD
	if amount.Sign() <= 0 {
		sess.Reset()
		return b.screen(c, tr(lang, "main_menu"), mainMenuKeyboard(user))
	}

	p, err := b.engine.StartTopUp(user, amount, code, percent)
	if err != nil {
		sess.Reset()
		if errors.Is(err, shop.ErrPricingNotConfigured) {
			return b.screen(c, tr(lang, "pricing_unavailable"), backKeyboard(lang))
		}
		b.logger.Error("top-up start failed", zap.Int64("num_id", user.NumID), zap.Error(err))
		return b.screen(c, tr(lang, "pricing_unavailable"), backKeyboard(lang))
	}
	sess.Reset()

	description := fmt.Sprintf("Credit top-up for %d", user.NumID)
	links := make([]payment.CheckoutLink, 0, len(b.gateways))
	for _, g := range b.gateways {
		links = append(links, payment.CheckoutLink{
			Gateway: g.Name(),
			URL:     g.CheckoutURL(p.ID, p.AmountUSD, description),
		})
	}

	text := fmt.Sprintf(tr(lang, "pay_prompt"), p.AmountUSD.StringFixed(2))
	return b.screen(c, text, paymentKeyboard(lang, links))
}

func (b *Bot) showAccountInfo(c tele.Context, user *models.User) error {
	lang := user.PreferredLanguage

	fresh, err := b.repos.Users.FindByNumID(user.NumID)
	if err != nil {
		fresh = user
	}

	text := fmt.Sprintf(tr(lang, "account_info"),
		fresh.NumID,
		b.renderCredits(fresh.RemainingCredit),
		b.renderCredits(fresh.UsedCredit),
		b.renderCredits(fresh.ReferralCredit),
		b.renderCredits(fresh.SubTransactionEarnings))
	return b.screen(c, text, backKeyboard(lang))
}

// renderCredits shows a balance with its dollar equivalent when the
// unit value is configured.
func (b *Bot) renderCredits(credits decimal.Decimal) string {
	unitCents, err := b.repos.Rates.UnitCents()
	if err != nil {
		return credits.StringFixed(2)
	}
	usd := pricing.CreditsToUSD(credits, unitCents)
	return fmt.Sprintf("%s (%s$)", credits.StringFixed(2), usd.StringFixed(2))
}

func (b *Bot) spinChanceCircle(c tele.Context, user *models.User) error {
	lang := user.PreferredLanguage

	reward := decimal.NewFromInt(int64(10 + rand.Intn(91)))
	won, err := b.repos.Users.GrantChance(user.NumID, reward, time.Now().UTC())
	if err != nil {
		b.logger.Error("chance circle failed", zap.Int64("num_id", user.NumID), zap.Error(err))
		return b.screen(c, tr(lang, "pricing_unavailable"), backKeyboard(lang))
	}
	if !won {
		wait := chanceCooldown
		if fresh, err := b.repos.Users.FindByNumID(user.NumID); err == nil && fresh.LastChanceTime != nil {
			wait = time.Until(fresh.LastChanceTime.Add(chanceCooldown))
			if wait < 0 {
				wait = 0
			}
		}
		return b.screen(c, fmt.Sprintf(tr(lang, "chance_wait"), wait.Round(time.Minute)), backKeyboard(lang))
	}
	return b.screen(c, fmt.Sprintf(tr(lang, "chance_won"), reward.String()), backKeyboard(lang))
}
