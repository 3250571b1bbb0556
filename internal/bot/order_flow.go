package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"github.com/Canyildiz1386/SultanPanelBot/internal/models"
	"github.com/Canyildiz1386/SultanPanelBot/internal/notify"
	"github.com/Canyildiz1386/SultanPanelBot/internal/shop"
	"github.com/Canyildiz1386/SultanPanelBot/internal/smm"
)

const ordersPerPage = 10

func (b *Bot) startOrderFlow(c tele.Context, user *models.User, sess *Session) error {
	lang := user.PreferredLanguage

	services, err := b.catalog.Services(context.Background())
	if err != nil {
		b.logger.Warn("catalog fetch failed", zap.Error(err))
		return b.screen(c, tr(lang, "catalog_unavailable"), backKeyboard(lang))
	}

	sess.Reset()
	sess.Platforms = groupByPlatform(services)
	if len(sess.Platforms) == 0 {
		return b.screen(c, tr(lang, "catalog_unavailable"), backKeyboard(lang))
	}
	return b.screen(c, tr(lang, "choose_platform"), platformsKeyboard(lang, sess.Platforms))
}

// groupByPlatform slices the catalog into the platform menu. Services
// whose category names no known platform land in a trailing group.
func groupByPlatform(services []smm.Service) []platformGroup {
	groups := make([]platformGroup, 0, len(socialPlatforms)+1)
	var other []smm.Service

	claimed := make([]bool, len(services))
	for _, p := range socialPlatforms {
		var matched []smm.Service
		for i, svc := range services {
			if claimed[i] {
				continue
			}
			if strings.Contains(strings.ToLower(svc.Category), strings.ToLower(p.Key)) {
				matched = append(matched, svc)
				claimed[i] = true
			}
		}
		if len(matched) > 0 {
			groups = append(groups, platformGroup{Name: p.Name, Services: matched})
		}
	}
	for i, svc := range services {
		if !claimed[i] {
			other = append(other, svc)
		}
	}
	if len(other) > 0 {
		groups = append(groups, platformGroup{Name: "🧩 Other", Services: other})
	}
	return groups
}

func groupByCategory(services []smm.Service) []categoryGroup {
	index := make(map[string]int)
	var groups []categoryGroup
	for _, svc := range services {
		i, ok := index[svc.Category]
		if !ok {
			i = len(groups)
			index[svc.Category] = i
			groups = append(groups, categoryGroup{Name: svc.Category})
		}
		groups[i].Services = append(groups[i].Services, svc)
	}
	return groups
}

func (b *Bot) onPlatformPick(c tele.Context, user *models.User, sess *Session, idxStr string) error {
	idx, err := strconv.Atoi(idxStr)
	if err != nil || idx < 0 || idx >= len(sess.Platforms) {
		// Stale keyboard from a previous catalog snapshot.
		return b.startOrderFlow(c, user, sess)
	}
	lang := user.PreferredLanguage

	sess.PlatformIdx = idx
	sess.Categories = groupByCategory(sess.Platforms[idx].Services)
	return b.screen(c, tr(lang, "choose_category"), categoriesKeyboard(lang, sess.Categories))
}

func (b *Bot) onCategoryPick(c tele.Context, user *models.User, sess *Session, idxStr string) error {
	idx, err := strconv.Atoi(idxStr)
	if err != nil || idx < 0 || idx >= len(sess.Categories) {
		return b.startOrderFlow(c, user, sess)
	}
	lang := user.PreferredLanguage
	return b.screen(c, tr(lang, "choose_service"), servicesKeyboard(lang, sess.Categories[idx]))
}

func (b *Bot) onServicePick(c tele.Context, user *models.User, sess *Session, serviceID string) error {
	lang := user.PreferredLanguage

	svc, err := b.catalog.FindService(context.Background(), serviceID)
	if err != nil {
		return b.screen(c, tr(lang, "catalog_unavailable"), backKeyboard(lang))
	}
	if svc == nil {
		return b.screen(c, tr(lang, "service_unknown"), backKeyboard(lang))
	}

	sess.ServiceID = serviceID
	sess.State = StateAwaitingLink

	text := fmt.Sprintf("📦 %s\n🔢 %d – %d\n\n%s", svc.Name, svc.Min, svc.Max, tr(lang, "enter_link"))
	return b.screen(c, text, backKeyboard(lang))
}

func (b *Bot) onOrderLink(c tele.Context, user *models.User, sess *Session) error {
	lang := user.PreferredLanguage

	link := strings.TrimSpace(c.Text())
	if link == "" || strings.ContainsAny(link, " \n\t") {
		return c.Send(tr(lang, "enter_link"), backKeyboard(lang))
	}

	svc, err := b.catalog.FindService(context.Background(), sess.ServiceID)
	if err != nil || svc == nil {
		sess.Reset()
		return c.Send(tr(lang, "service_unknown"), backKeyboard(lang))
	}

	sess.Link = link
	sess.State = StateAwaitingQuantity
	return c.Send(fmt.Sprintf(tr(lang, "enter_quantity"), svc.Min, svc.Max), backKeyboard(lang))
}

func (b *Bot) onOrderQuantity(c tele.Context, user *models.User, sess *Session) error {
	lang := user.PreferredLanguage

	quantity, err := strconv.Atoi(strings.TrimSpace(c.Text()))
	if err != nil || quantity <= 0 {
		return c.Send(tr(lang, "invalid_number"), backKeyboard(lang))
	}

	order, quote, err := b.engine.PlaceOrder(context.Background(), user, sess.ServiceID, sess.Link, quantity)
	switch {
	case err == nil:
	case errors.Is(err, shop.ErrQuantityOutOfRange):
		if svc, ferr := b.catalog.FindService(context.Background(), sess.ServiceID); ferr == nil && svc != nil {
			return c.Send(fmt.Sprintf(tr(lang, "invalid_quantity"), svc.Min, svc.Max), backKeyboard(lang))
		}
		return c.Send(tr(lang, "invalid_number"), backKeyboard(lang))
	case errors.Is(err, shop.ErrInsufficientCredit):
		sess.Reset()
		return c.Send(fmt.Sprintf(tr(lang, "insufficient_credit"), quote.CreditCost.StringFixed(2)), backKeyboard(lang))
	case errors.Is(err, shop.ErrPricingNotConfigured):
		sess.Reset()
		return c.Send(tr(lang, "pricing_unavailable"), backKeyboard(lang))
	default:
		sess.Reset()
		b.logger.Warn("order placement failed",
			zap.Int64("num_id", user.NumID), zap.String("service", sess.ServiceID), zap.Error(err))
		return c.Send(tr(lang, "order_failed"), backKeyboard(lang))
	}

	sess.Reset()
	b.notifier.Ops(notify.RenderNewOrder(user, order, quote.Service.Name))

	remaining := user.RemainingCredit.Sub(quote.CreditCost)
	if fresh, err := b.repos.Users.FindByNumID(user.NumID); err == nil {
		remaining = fresh.RemainingCredit
	}
	return c.Send(fmt.Sprintf(tr(lang, "order_placed"),
		order.OrderID, quote.CreditCost.StringFixed(2), remaining.StringFixed(2)),
		backKeyboard(lang))
}

func (b *Bot) showOrdersPage(c tele.Context, user *models.User, sess *Session) error {
	lang := user.PreferredLanguage

	orders, total, err := b.repos.Orders.FindByUser(user.ID, ordersPerPage, sess.Page)
	if err != nil {
		b.logger.Error("list orders failed", zap.Int64("num_id", user.NumID), zap.Error(err))
		return b.screen(c, tr(lang, "order_failed"), backKeyboard(lang))
	}
	if total == 0 {
		return b.screen(c, tr(lang, "no_orders"), backKeyboard(lang))
	}

	pages := int((total + ordersPerPage - 1) / ordersPerPage)
	if sess.Page > pages {
		sess.Page = pages
	}
	text := fmt.Sprintf(tr(lang, "your_orders"), sess.Page, pages)
	return b.screen(c, text, ordersPageKeyboard(lang, orders, sess.Page, pages))
}

func (b *Bot) onOrderIDLookup(c tele.Context, user *models.User, sess *Session) error {
	lang := user.PreferredLanguage

	orderID, err := strconv.ParseInt(strings.TrimSpace(c.Text()), 10, 64)
	if err != nil {
		return c.Send(tr(lang, "invalid_number"), backKeyboard(lang))
	}
	sess.Reset()
	return b.sendOrderStatus(c, user, orderID)
}

func (b *Bot) showOrderStatus(c tele.Context, user *models.User, idStr string) error {
	orderID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return nil
	}
	return b.sendOrderStatus(c, user, orderID)
}

func (b *Bot) sendOrderStatus(c tele.Context, user *models.User, orderID int64) error {
	lang := user.PreferredLanguage

	order, err := b.repos.Orders.FindByOrderID(orderID)
	if err != nil || (order.UserID != user.ID && !user.IsAdmin) {
		return b.screen(c, tr(lang, "order_not_found"), backKeyboard(lang))
	}

	status := order.Status
	startCount, remains := 0, order.Quantity
	if st, err := b.catalog.GetOrderStatus(context.Background(), orderID); err == nil {
		startCount, remains = st.StartCount, st.Remains
		if st.Status != status {
			status = st.Status
			if uerr := b.repos.Orders.UpdateStatus(orderID, st.Status); uerr != nil {
				b.logger.Error("order status update failed", zap.Int64("order", orderID), zap.Error(uerr))
			}
		}
	} else {
		b.logger.Warn("order status fetch failed", zap.Int64("order", orderID), zap.Error(err))
	}

	text := fmt.Sprintf(tr(lang, "order_status"),
		order.OrderID, status, startCount, remains, progressBar(order.Quantity, remains))
	return b.screen(c, text, backKeyboard(lang))
}

// progressBar renders delivery progress as a ten-segment battery.
func progressBar(quantity, remains int) string {
	if quantity <= 0 {
		quantity = 1
	}
	done := quantity - remains
	if done < 0 {
		done = 0
	}
	if done > quantity {
		done = quantity
	}
	pct := done * 100 / quantity
	filled := pct / 10
	return "🔋 " + strings.Repeat("▓", filled) + strings.Repeat("░", 10-filled) + fmt.Sprintf(" %d%%", pct)
}
