// Package notify renders and delivers operational messages. Entities
// never reach a send call directly; everything goes through an explicit
// Render function first.
package notify

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"github.com/Canyildiz1386/SultanPanelBot/internal/models"
)

// Notifier sends rendered text to users and the operations channels.
type Notifier struct {
	bot           *tele.Bot
	opsChannel    int64
	agentsChannel int64
	logger        *zap.Logger
}

func New(bot *tele.Bot, opsChannel, agentsChannel int64, logger *zap.Logger) *Notifier {
	return &Notifier{bot: bot, opsChannel: opsChannel, agentsChannel: agentsChannel, logger: logger}
}

// User sends text to a user by Telegram account id. Delivery failures are
// logged, never propagated: a blocked bot must not fail the calling flow.
func (n *Notifier) User(numID int64, text string) {
	if _, err := n.bot.Send(&tele.Chat{ID: numID}, text); err != nil {
		n.logger.Warn("user notification failed", zap.Int64("user", numID), zap.Error(err))
	}
}

// Ops sends text to the operations channel.
func (n *Notifier) Ops(text string) {
	if n.opsChannel == 0 {
		return
	}
	if _, err := n.bot.Send(&tele.Chat{ID: n.opsChannel}, text); err != nil {
		n.logger.Warn("ops notification failed", zap.Error(err))
	}
}

// Agents sends text to the approved-agencies channel.
func (n *Notifier) Agents(text string) {
	if n.agentsChannel == 0 {
		return
	}
	if _, err := n.bot.Send(&tele.Chat{ID: n.agentsChannel}, text); err != nil {
		n.logger.Warn("agents notification failed", zap.Error(err))
	}
}

// RenderNewUser renders the join report.
func RenderNewUser(u *models.User) string {
	role := "user"
	if u.IsAdmin {
		role = "admin"
	}
	yesNo := func(b bool) string {
		if b {
			return "Yes"
		}
		return "No"
	}
	return fmt.Sprintf(
		"🎉 New %s joined! 🎉\n\n"+
			"👤 Username: @%s\n"+
			"🧑‍💻 First Name: %s\n"+
			"🧑‍💻 Last Name: %s\n"+
			"🆔 ID: %d\n"+
			"🌐 Profile URL: %s\n"+
			"💎 Premium: %s\n"+
			"🤖 Bot: %s",
		role, u.Username, u.FirstName, u.LastName, u.NumID, u.ProfileURL,
		yesNo(u.IsPremium), yesNo(u.IsBot),
	)
}

// RenderNewOrder renders the order report.
func RenderNewOrder(u *models.User, order *models.Order, serviceName string) string {
	return fmt.Sprintf(
		"📢 New Order Received:\n"+
			"👤 User: @%s\n"+
			"🆔 Order ID: %d\n"+
			"💼 Service: %s\n"+
			"🔗 Link: %s\n"+
			"🔢 Quantity: %d",
		u.Username, order.OrderID, serviceName, order.Link, order.Quantity,
	)
}

// RenderAgencyApproved renders the approved-agency report.
func RenderAgencyApproved(u *models.User, req *models.AgencyRequest) string {
	return fmt.Sprintf(
		"📢 Agency Request Approved:\n"+
			"👤 User: @%s\n"+
			"🆔 User ID: %d\n"+
			"💼 Daily Sales: %s\n"+
			"📅 Request ID: %d",
		u.Username, u.NumID, req.DailySales, req.ID,
	)
}

// RenderPayment renders the confirmed top-up report.
func RenderPayment(p *models.Payment, credits decimal.Decimal) string {
	return fmt.Sprintf(
		"💵 Payment confirmed:\n"+
			"🆔 User ID: %d\n"+
			"💳 Payment: %s\n"+
			"💰 Amount: %s$\n"+
			"🏦 Gateway: %s\n"+
			"➕ Credits: %s",
		p.UserNumID, p.ID, p.AmountUSD.StringFixed(2), p.Gateway, credits.StringFixed(2),
	)
}
