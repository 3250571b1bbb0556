package bot

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"github.com/Canyildiz1386/SultanPanelBot/internal/models"
)

const ticketCooldown = 10 * time.Minute

func (b *Bot) startTicketFlow(c tele.Context, user *models.User, sess *Session) error {
	lang := user.PreferredLanguage

	fresh, err := b.repos.Users.FindByNumID(user.NumID)
	if err != nil {
		fresh = user
	}
	if fresh.LastTicketTime != nil {
		if wait := ticketCooldown - time.Since(*fresh.LastTicketTime); wait > 0 {
			return b.screen(c, fmt.Sprintf(tr(lang, "ticket_cooldown"), wait.Round(time.Second)), backKeyboard(lang))
		}
	}

	sess.Reset()
	sess.State = StateAwaitingTicketTitle
	return b.screen(c, tr(lang, "ticket_title"), backKeyboard(lang))
}

func (b *Bot) onTicketTitle(c tele.Context, user *models.User, sess *Session) error {
	lang := user.PreferredLanguage

	title := strings.TrimSpace(c.Text())
	if title == "" {
		return c.Send(tr(lang, "ticket_title"), backKeyboard(lang))
	}
	sess.TicketTitle = title
	sess.State = StateAwaitingTicketDescription
	return c.Send(tr(lang, "ticket_description"), backKeyboard(lang))
}

func (b *Bot) onTicketDescription(c tele.Context, user *models.User, sess *Session) error {
	lang := user.PreferredLanguage

	description := strings.TrimSpace(c.Text())
	if description == "" {
		return c.Send(tr(lang, "ticket_description"), backKeyboard(lang))
	}

	ticket := &models.Ticket{
		UserID:      user.ID,
		Title:       sess.TicketTitle,
		Description: description,
		Status:      "open",
	}
	if err := b.repos.Tickets.Create(ticket); err != nil {
		b.logger.Error("ticket create failed", zap.Int64("num_id", user.NumID), zap.Error(err))
		sess.Reset()
		return c.Send(tr(lang, "pricing_unavailable"), backKeyboard(lang))
	}
	if err := b.repos.Users.TouchTicketTime(user.NumID, time.Now().UTC()); err != nil {
		b.logger.Error("ticket cooldown update failed", zap.Int64("num_id", user.NumID), zap.Error(err))
	}
	sess.Reset()

	b.notifier.Ops(fmt.Sprintf("🆘 New ticket #%d from %s (@%s)\n\n📌 %s\n%s",
		ticket.ID, user.FirstName, user.Username, ticket.Title, ticket.Description))
	return c.Send(fmt.Sprintf(tr(lang, "ticket_created"), ticket.ID), backKeyboard(lang))
}

func (b *Bot) onSalesFigure(c tele.Context, user *models.User, sess *Session) error {
	lang := user.PreferredLanguage

	figure := strings.TrimSpace(c.Text())
	if figure == "" {
		return c.Send(tr(lang, "agency_prompt"), backKeyboard(lang))
	}

	req := &models.AgencyRequest{
		UserID:     user.ID,
		DailySales: figure,
		Status:     "pending",
	}
	if err := b.repos.Agencies.Create(req); err != nil {
		b.logger.Error("agency request create failed", zap.Int64("num_id", user.NumID), zap.Error(err))
		sess.Reset()
		return c.Send(tr(lang, "pricing_unavailable"), backKeyboard(lang))
	}
	sess.Reset()

	b.notifier.Ops(fmt.Sprintf("🤝 New agency request #%d from %s (@%s): %s$",
		req.ID, user.FirstName, user.Username, req.DailySales))
	return c.Send(tr(lang, "agency_sent"), backKeyboard(lang))
}
