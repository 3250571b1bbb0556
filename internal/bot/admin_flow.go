package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"github.com/Canyildiz1386/SultanPanelBot/internal/models"
	"github.com/Canyildiz1386/SultanPanelBot/internal/notify"
	"github.com/Canyildiz1386/SultanPanelBot/internal/shop"
)

// Admin screens are English-only; the admin team works in English.

func (b *Bot) handleAdminCallback(c tele.Context, user *models.User, sess *Session, data string) error {
	lang := user.PreferredLanguage

	switch data {
	case "manage_unit_value":
		current := "not set"
		if cents, err := b.repos.Rates.UnitCents(); err == nil {
			current = fmt.Sprintf("%d cents per credit", cents)
		}
		sess.State = StateAwaitingUnitValue
		return b.screen(c, fmt.Sprintf("💲 Unit value: %s\nSend the new value in cents per credit:", current), backKeyboard(lang))

	case "manage_conversion_rate":
		current := "unknown"
		if rate, err := b.repos.Rates.ConversionRate(); err == nil {
			current = rate.StringFixed(0) + " Toman per $"
		}
		sess.State = StateAwaitingConversionRate
		return b.screen(c, fmt.Sprintf("💱 Conversion rate: %s\nSend the new rate (Toman per dollar):", current), backKeyboard(lang))

	case "manage_off_codes":
		return b.screen(c, "🏷 Off codes", offCodesKeyboard(lang))

	case "add_off_code":
		sess.State = StateAwaitingOffCode
		return b.screen(c, "Send the new off code:", backKeyboard(lang))

	case "view_off_codes":
		codes, err := b.repos.Discounts.FindAll()
		if err != nil {
			b.logger.Error("list off codes failed", zap.Error(err))
			return b.screen(c, "Could not load off codes.", backKeyboard(lang))
		}
		if len(codes) == 0 {
			return b.screen(c, "No off codes defined.", offCodesKeyboard(lang))
		}
		var sb strings.Builder
		sb.WriteString("🏷 Off codes:\n")
		for _, dc := range codes {
			fmt.Fprintf(&sb, "• %s — %d%%\n", dc.Code, dc.DiscountPercent)
		}
		return b.screen(c, sb.String(), offCodesKeyboard(lang))

	case "delete_off_code":
		sess.State = StateAwaitingOffCodeDeletion
		return b.screen(c, "Send the code to delete:", backKeyboard(lang))

	case "broadcast_message":
		return b.screen(c, "📣 Who should receive the broadcast?", broadcastKeyboard(lang))

	case "broadcast_users", "broadcast_admins":
		sess.BroadcastToAdmins = data == "broadcast_admins"
		sess.State = StateAwaitingBroadcast
		return b.screen(c, "Send the message to broadcast:", backKeyboard(lang))

	case "view_tickets":
		tickets, err := b.repos.Tickets.FindOpen()
		if err != nil {
			b.logger.Error("list tickets failed", zap.Error(err))
			return b.screen(c, "Could not load tickets.", backKeyboard(lang))
		}
		if len(tickets) == 0 {
			return b.screen(c, "No open tickets. 🎉", backKeyboard(lang))
		}
		return b.screen(c, "📨 Open tickets:", ticketsKeyboard(lang, tickets))

	case "view_agency_requests":
		requests, err := b.repos.Agencies.FindPending()
		if err != nil {
			b.logger.Error("list agency requests failed", zap.Error(err))
			return b.screen(c, "Could not load agency requests.", backKeyboard(lang))
		}
		if len(requests) == 0 {
			return b.screen(c, "No pending agency requests.", backKeyboard(lang))
		}
		return b.screen(c, "🗂 Pending agency requests:", agencyRequestsKeyboard(lang, requests))
	}

	switch {
	case strings.HasPrefix(data, "view_ticket_"):
		return b.showTicket(c, user, strings.TrimPrefix(data, "view_ticket_"))
	case strings.HasPrefix(data, "reply_ticket_"):
		return b.startTicketReply(c, user, sess, strings.TrimPrefix(data, "reply_ticket_"))
	case strings.HasPrefix(data, "close_ticket_"):
		return b.closeTicket(c, user, strings.TrimPrefix(data, "close_ticket_"))
	case strings.HasPrefix(data, "approve_"):
		return b.resolveAgency(c, user, strings.TrimPrefix(data, "approve_"), true)
	case strings.HasPrefix(data, "reject_"):
		return b.resolveAgency(c, user, strings.TrimPrefix(data, "reject_"), false)
	}
	return nil
}

func (b *Bot) showTicket(c tele.Context, user *models.User, idStr string) error {
	lang := user.PreferredLanguage

	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return nil
	}
	ticket, err := b.repos.Tickets.FindByID(uint(id))
	if err != nil {
		return b.screen(c, "Ticket not found.", backKeyboard(lang))
	}

	author := "unknown"
	if owner, err := b.repos.Users.FindByID(ticket.UserID); err == nil {
		author = fmt.Sprintf("%s (@%s)", owner.FirstName, owner.Username)
	}
	text := fmt.Sprintf("🎫 Ticket #%d — %s\n👤 %s\n\n%s", ticket.ID, ticket.Title, author, ticket.Description)
	kb := markup(
		[]tele.InlineButton{
			btn("✍️ Reply", fmt.Sprintf("reply_ticket_%d", ticket.ID)),
			btn("✅ Close", fmt.Sprintf("close_ticket_%d", ticket.ID)),
		},
		backRow(lang),
	)
	return b.screen(c, text, kb)
}

func (b *Bot) startTicketReply(c tele.Context, user *models.User, sess *Session, idStr string) error {
	lang := user.PreferredLanguage

	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return nil
	}
	sess.RespondingTicketID = uint(id)
	sess.State = StateAwaitingTicketReply
	return b.screen(c, fmt.Sprintf("Send your reply to ticket #%d:", id), backKeyboard(lang))
}

func (b *Bot) onTicketReply(c tele.Context, user *models.User, sess *Session) error {
	lang := user.PreferredLanguage

	reply := strings.TrimSpace(c.Text())
	if reply == "" {
		return c.Send("The reply cannot be empty, send it again:", backKeyboard(lang))
	}

	ticket, err := b.repos.Tickets.FindByID(sess.RespondingTicketID)
	if err != nil {
		sess.Reset()
		return c.Send("Ticket not found.", backKeyboard(lang))
	}

	if owner, err := b.repos.Users.FindByID(ticket.UserID); err == nil {
		b.notifier.User(owner.NumID,
			fmt.Sprintf(tr(owner.PreferredLanguage, "ticket_reply"), ticket.ID, reply))
	}
	if err := b.repos.Tickets.Close(ticket.ID); err != nil {
		b.logger.Error("ticket close failed", zap.Uint("ticket", ticket.ID), zap.Error(err))
	}
	sess.Reset()
	return c.Send(fmt.Sprintf("Reply sent, ticket #%d closed. ✅", ticket.ID), backKeyboard(lang))
}

func (b *Bot) closeTicket(c tele.Context, user *models.User, idStr string) error {
	lang := user.PreferredLanguage

	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return nil
	}
	if err := b.repos.Tickets.Close(uint(id)); err != nil {
		return b.screen(c, "Ticket not found.", backKeyboard(lang))
	}
	return b.screen(c, fmt.Sprintf("Ticket #%d closed. ✅", id), backKeyboard(lang))
}

func (b *Bot) resolveAgency(c tele.Context, user *models.User, idStr string, approve bool) error {
	lang := user.PreferredLanguage

	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return nil
	}
	req, err := b.repos.Agencies.FindByID(uint(id))
	if err != nil {
		return b.screen(c, "Agency request not found.", backKeyboard(lang))
	}

	status := "rejected"
	if approve {
		status = "approved"
	}
	if err := b.repos.Agencies.Resolve(req.ID, status); err != nil {
		b.logger.Error("agency resolve failed", zap.Uint("request", req.ID), zap.Error(err))
		return b.screen(c, "Could not update the request.", backKeyboard(lang))
	}

	applicant, err := b.repos.Users.FindByID(req.UserID)
	if err == nil {
		if approve {
			b.notifier.Agents(notify.RenderAgencyApproved(applicant, req))
			b.notifier.User(applicant.NumID, tr(applicant.PreferredLanguage, "agency_approved"))
		} else {
			b.notifier.User(applicant.NumID, tr(applicant.PreferredLanguage, "agency_rejected"))
		}
	}
	return b.screen(c, fmt.Sprintf("Agency request #%d %s.", req.ID, status), backKeyboard(lang))
}

func (b *Bot) onConversionRate(c tele.Context, user *models.User, sess *Session) error {
	lang := user.PreferredLanguage

	rate, err := decimal.NewFromString(strings.TrimSpace(c.Text()))
	if err != nil || rate.Sign() <= 0 {
		return c.Send(tr(lang, "invalid_number"), backKeyboard(lang))
	}
	if err := b.repos.Rates.SetConversionRate(rate); err != nil {
		b.logger.Error("conversion rate update failed", zap.Error(err))
		sess.Reset()
		return c.Send("Could not save the rate.", backKeyboard(lang))
	}
	sess.Reset()
	return c.Send(fmt.Sprintf("Conversion rate set to %s Toman per $. ✅", rate.StringFixed(0)), backKeyboard(lang))
}

func (b *Bot) onUnitValue(c tele.Context, user *models.User, sess *Session) error {
	lang := user.PreferredLanguage

	cents, err := strconv.Atoi(strings.TrimSpace(c.Text()))
	if err != nil || cents <= 0 {
		return c.Send(tr(lang, "invalid_number"), backKeyboard(lang))
	}
	if err := b.repos.Rates.SetUnitCents(cents); err != nil {
		b.logger.Error("unit value update failed", zap.Error(err))
		sess.Reset()
		return c.Send("Could not save the unit value.", backKeyboard(lang))
	}
	sess.Reset()
	return c.Send(fmt.Sprintf("Unit value set to %d cents per credit. ✅", cents), backKeyboard(lang))
}

func (b *Bot) onOffCode(c tele.Context, user *models.User, sess *Session) error {
	lang := user.PreferredLanguage

	code := strings.TrimSpace(c.Text())
	if code == "" || strings.ContainsAny(code, " \n\t") {
		return c.Send("Codes cannot contain spaces, send it again:", backKeyboard(lang))
	}
	sess.OffCode = code
	sess.State = StateAwaitingOffPercent
	return c.Send("Send the discount percent (1–99):", backKeyboard(lang))
}

func (b *Bot) onOffPercent(c tele.Context, user *models.User, sess *Session) error {
	lang := user.PreferredLanguage

	percent, err := strconv.Atoi(strings.TrimSpace(c.Text()))
	if err != nil || percent < 1 || percent > 99 {
		return c.Send(tr(lang, "invalid_number"), backKeyboard(lang))
	}
	code := sess.OffCode
	if err := b.repos.Discounts.Create(code, percent); err != nil {
		b.logger.Error("off code create failed", zap.String("code", code), zap.Error(err))
		sess.Reset()
		return c.Send("Could not create the code (maybe it already exists).", backKeyboard(lang))
	}
	sess.Reset()
	return c.Send(fmt.Sprintf("Off code %s (%d%%) created. ✅", code, percent), backKeyboard(lang))
}

func (b *Bot) onOffCodeDeletion(c tele.Context, user *models.User, sess *Session) error {
	lang := user.PreferredLanguage

	code := strings.TrimSpace(c.Text())
	sess.Reset()
	if err := b.repos.Discounts.Delete(code); err != nil {
		if errors.Is(err, shop.ErrNotFound) {
			return c.Send("No such code.", backKeyboard(lang))
		}
		b.logger.Error("off code delete failed", zap.String("code", code), zap.Error(err))
		return c.Send("Could not delete the code.", backKeyboard(lang))
	}
	return c.Send(fmt.Sprintf("Off code %s deleted. ✅", code), backKeyboard(lang))
}

func (b *Bot) onBroadcast(c tele.Context, user *models.User, sess *Session) error {
	lang := user.PreferredLanguage

	message := strings.TrimSpace(c.Text())
	if message == "" {
		return c.Send("The broadcast cannot be empty, send it again:", backKeyboard(lang))
	}
	adminsOnly := sess.BroadcastToAdmins
	sess.Reset()

	targets, err := b.repos.Users.FindBroadcastTargets(adminsOnly)
	if err != nil {
		b.logger.Error("broadcast target lookup failed", zap.Error(err))
		return c.Send("Could not load recipients.", backKeyboard(lang))
	}

	sent := 0
	for _, target := range targets {
		if target.NumID == user.NumID {
			continue
		}
		b.notifier.User(target.NumID, message)
		sent++
	}
	b.logger.Info("broadcast sent", zap.Bool("admins_only", adminsOnly), zap.Int("recipients", sent))
	return c.Send(fmt.Sprintf("Broadcast delivered to %d recipients. ✅", sent), backKeyboard(lang))
}
