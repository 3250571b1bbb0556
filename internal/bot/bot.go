package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"github.com/Canyildiz1386/SultanPanelBot/internal/config"
	"github.com/Canyildiz1386/SultanPanelBot/internal/models"
	"github.com/Canyildiz1386/SultanPanelBot/internal/notify"
	"github.com/Canyildiz1386/SultanPanelBot/internal/payment"
	"github.com/Canyildiz1386/SultanPanelBot/internal/repository"
	"github.com/Canyildiz1386/SultanPanelBot/internal/shop"
	"github.com/Canyildiz1386/SultanPanelBot/internal/smm"
)

// referralReward is credited to both sides of a referral.
var referralReward = decimal.NewFromInt(10)

// Repos bundles the storage the bot handlers reach into.
type Repos struct {
	Users     *repository.UserRepository
	Orders    *repository.OrderRepository
	Tickets   *repository.TicketRepository
	Agencies  *repository.AgencyRepository
	Discounts *repository.DiscountRepository
	Rates     *repository.RateRepository
}

// Bot wires the Telegram long-poller to the shop engine and storage.
type Bot struct {
	tb       *tele.Bot
	cfg      *config.Config
	repos    Repos
	engine   *shop.Engine
	catalog  *smm.CachedCatalog
	gateways []payment.Gateway
	notifier *notify.Notifier
	sessions *Sessions
	logger   *zap.Logger
}

func New(cfg *config.Config, repos Repos, engine *shop.Engine, catalog *smm.CachedCatalog,
	gateways []payment.Gateway, logger *zap.Logger) (*Bot, error) {

	tb, err := tele.NewBot(tele.Settings{
		Token:  cfg.Bot.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	b := &Bot{
		tb:       tb,
		cfg:      cfg,
		repos:    repos,
		engine:   engine,
		catalog:  catalog,
		gateways: gateways,
		notifier: notify.New(tb, cfg.Bot.OpsChannelID, cfg.Bot.AgentChannelID, logger),
		sessions: NewSessions(),
		logger:   logger,
	}
	b.registerHandlers()
	return b, nil
}

// Notifier exposes the bot-backed notifier so the payment callback
// handler can message users and the ops channel.
func (b *Bot) Notifier() *notify.Notifier { return b.notifier }

// Start blocks on the long-poll loop.
func (b *Bot) Start() {
	b.logger.Info("bot started", zap.String("username", b.cfg.Bot.Username))
	b.tb.Start()
}

func (b *Bot) Stop() { b.tb.Stop() }

func (b *Bot) registerHandlers() {
	b.tb.Handle("/start", b.handleStart)
	b.tb.Handle(tele.OnText, b.handleText)
	b.tb.Handle(tele.OnCallback, b.handleCallback)
}

// channelRecipient lets a "@username" channel name act as a telebot
// Recipient for membership lookups.
type channelRecipient string

func (c channelRecipient) Recipient() string { return string(c) }

func (b *Bot) isChannelMember(userID int64) bool {
	channel := strings.TrimSpace(b.cfg.Bot.Channel)
	if channel == "" {
		return true
	}
	member, err := b.tb.ChatMemberOf(channelRecipient(channel), &tele.User{ID: userID})
	if err != nil {
		// Bot not admin of the channel or Telegram hiccup: let the user
		// through rather than locking everyone out.
		b.logger.Warn("membership check failed", zap.String("channel", channel), zap.Error(err))
		return true
	}
	switch member.Role {
	case tele.Creator, tele.Administrator, tele.Member:
		return true
	}
	return false
}

func (b *Bot) isAdminUsername(username string) bool {
	for _, u := range b.cfg.Bot.AdminUsernames {
		if strings.EqualFold(strings.TrimPrefix(u, "@"), username) {
			return true
		}
	}
	return false
}

func (b *Bot) handleStart(c tele.Context) error {
	sender := c.Sender()

	user, err := b.repos.Users.FindByNumID(sender.ID)
	if errors.Is(err, shop.ErrNotFound) {
		user, err = b.registerUser(c)
	}
	if err != nil {
		b.logger.Error("start failed", zap.Int64("num_id", sender.ID), zap.Error(err))
		return c.Send(tr("en", "pricing_unavailable"))
	}

	sess := b.sessions.Get(c.Chat().ID)
	sess.Lock()
	sess.Reset()
	sess.Unlock()

	if user.PreferredLanguage == "" {
		return c.Send(tr("en", "choose_language"), languageKeyboard())
	}
	lang := user.PreferredLanguage
	if !b.isChannelMember(sender.ID) {
		return c.Send(tr(lang, "join_channel"), membershipKeyboard(lang, b.cfg.Bot.Channel))
	}
	return c.Send(tr(lang, "welcome"), mainMenuKeyboard(user))
}

// registerUser creates the sender's account and settles the referral
// bonus when /start carried a referrer id.
func (b *Bot) registerUser(c tele.Context) (*models.User, error) {
	sender := c.Sender()

	user := &models.User{
		NumID:     sender.ID,
		Username:  sender.Username,
		FirstName: sender.FirstName,
		LastName:  sender.LastName,
		IsPremium: sender.IsPremium,
		IsBot:     sender.IsBot,
		IsAdmin:   b.isAdminUsername(sender.Username),
		JoinDate:  time.Now(),
	}

	var referrer *models.User
	payload := ""
	if m := c.Message(); m != nil {
		payload = strings.TrimSpace(m.Payload)
	}
	if payload != "" {
		if refID, err := strconv.ParseInt(payload, 10, 64); err == nil && refID != sender.ID {
			if ref, err := b.repos.Users.FindByNumID(refID); err == nil {
				referrer = ref
				user.ReferrerID = &refID
			}
		}
	}

	if err := b.repos.Users.Create(user); err != nil {
		return nil, err
	}

	if referrer != nil {
		if err := b.repos.Users.CreditReferral(referrer.NumID, referralReward); err != nil {
			b.logger.Error("referral credit failed", zap.Int64("referrer", referrer.NumID), zap.Error(err))
		} else {
			if err := b.repos.Users.Credit(user.NumID, referralReward); err != nil {
				b.logger.Error("referral credit failed", zap.Int64("num_id", user.NumID), zap.Error(err))
			}
			b.notifier.User(referrer.NumID,
				fmt.Sprintf("🎁 %s joined with your link, you both earned %s credits!",
					user.FirstName, referralReward.String()))
		}
	}

	b.notifier.Ops(notify.RenderNewUser(user))
	return user, nil
}

// userOf resolves the sender's account, creating it on the fly for
// users who somehow skipped /start.
func (b *Bot) userOf(c tele.Context) (*models.User, error) {
	user, err := b.repos.Users.FindByNumID(c.Sender().ID)
	if errors.Is(err, shop.ErrNotFound) {
		return b.registerUser(c)
	}
	return user, err
}

func (b *Bot) handleText(c tele.Context) error {
	user, err := b.userOf(c)
	if err != nil {
		b.logger.Error("load user failed", zap.Int64("num_id", c.Sender().ID), zap.Error(err))
		return nil
	}
	lang := user.PreferredLanguage

	sess := b.sessions.Get(c.Chat().ID)
	sess.Lock()
	defer sess.Unlock()

	switch sess.State {
	case StateAwaitingLink:
		return b.onOrderLink(c, user, sess)
	case StateAwaitingQuantity:
		return b.onOrderQuantity(c, user, sess)
	case StateAwaitingOrderID:
		return b.onOrderIDLookup(c, user, sess)
	case StateAwaitingCustomAmount:
		return b.onCustomAmount(c, user, sess)
	case StateAwaitingDiscountCode:
		return b.onDiscountCode(c, user, sess)
	case StateAwaitingSalesFigure:
		return b.onSalesFigure(c, user, sess)
	case StateAwaitingTicketTitle:
		return b.onTicketTitle(c, user, sess)
	case StateAwaitingTicketDescription:
		return b.onTicketDescription(c, user, sess)
	}

	if user.IsAdmin {
		switch sess.State {
		case StateAwaitingTicketReply:
			return b.onTicketReply(c, user, sess)
		case StateAwaitingConversionRate:
			return b.onConversionRate(c, user, sess)
		case StateAwaitingUnitValue:
			return b.onUnitValue(c, user, sess)
		case StateAwaitingOffCode:
			return b.onOffCode(c, user, sess)
		case StateAwaitingOffPercent:
			return b.onOffPercent(c, user, sess)
		case StateAwaitingOffCodeDeletion:
			return b.onOffCodeDeletion(c, user, sess)
		case StateAwaitingBroadcast:
			return b.onBroadcast(c, user, sess)
		}
	}

	sess.Reset()
	return c.Send(tr(lang, "main_menu"), mainMenuKeyboard(user))
}

func (b *Bot) handleCallback(c tele.Context) error {
	defer func() { _ = c.Respond() }()

	user, err := b.userOf(c)
	if err != nil {
		b.logger.Error("load user failed", zap.Int64("num_id", c.Sender().ID), zap.Error(err))
		return nil
	}
	lang := user.PreferredLanguage
	data := strings.TrimSpace(strings.TrimPrefix(c.Callback().Data, "\f"))

	sess := b.sessions.Get(c.Chat().ID)
	sess.Lock()
	defer sess.Unlock()

	// Language picks and the membership recheck work before the gate.
	if code, ok := strings.CutPrefix(data, "lang_"); ok {
		return b.onLanguagePick(c, user, code)
	}
	if data == "check_membership" {
		if !b.isChannelMember(user.NumID) {
			return c.Send(tr(lang, "not_member_yet"))
		}
		return b.screen(c, tr(lang, "welcome"), mainMenuKeyboard(user))
	}
	if !b.isChannelMember(user.NumID) {
		return c.Send(tr(lang, "join_channel"), membershipKeyboard(lang, b.cfg.Bot.Channel))
	}

	switch data {
	case "back":
		sess.Reset()
		return b.screen(c, tr(lang, "main_menu"), mainMenuKeyboard(user))
	case "add_order":
		return b.startOrderFlow(c, user, sess)
	case "view_order":
		sess.Page = 1
		return b.showOrdersPage(c, user, sess)
	case "next_orders_page":
		sess.Page++
		return b.showOrdersPage(c, user, sess)
	case "previous_orders_page":
		if sess.Page > 1 {
			sess.Page--
		}
		return b.showOrdersPage(c, user, sess)
	case "custom_order_id":
		sess.State = StateAwaitingOrderID
		return b.screen(c, tr(lang, "enter_order_id"), backKeyboard(lang))
	case "increment_credit":
		return b.startTopUpFlow(c, user, sess)
	case "custom_increment":
		sess.State = StateAwaitingCustomAmount
		return b.screen(c, tr(lang, "custom_amount"), backKeyboard(lang))
	case "discount_yes":
		sess.State = StateAwaitingDiscountCode
		return b.screen(c, tr(lang, "enter_discount"), backKeyboard(lang))
	case "discount_no":
		return b.sendCheckout(c, user, sess, "", 0)
	case "account_info":
		return b.showAccountInfo(c, user)
	case "chance_circle":
		return b.spinChanceCircle(c, user)
	case "referral_link":
		link := fmt.Sprintf("https://t.me/%s?start=%d", b.cfg.Bot.Username, user.NumID)
		return b.screen(c, fmt.Sprintf(tr(lang, "referral_text"), link), backKeyboard(lang))
	case "request_agency":
		sess.State = StateAwaitingSalesFigure
		return b.screen(c, tr(lang, "agency_prompt"), backKeyboard(lang))
	case "create_ticket":
		return b.startTicketFlow(c, user, sess)
	case "settings":
		return b.screen(c, tr(lang, "choose_language"), languageKeyboard())
	}

	switch {
	case strings.HasPrefix(data, "platform_"):
		return b.onPlatformPick(c, user, sess, strings.TrimPrefix(data, "platform_"))
	case strings.HasPrefix(data, "category_"):
		return b.onCategoryPick(c, user, sess, strings.TrimPrefix(data, "category_"))
	case strings.HasPrefix(data, "service_"):
		return b.onServicePick(c, user, sess, strings.TrimPrefix(data, "service_"))
	case strings.HasPrefix(data, "increment_"):
		return b.onTopUpAmount(c, user, sess, strings.TrimPrefix(data, "increment_"))
	case strings.HasPrefix(data, "check_order_status_"):
		return b.showOrderStatus(c, user, strings.TrimPrefix(data, "check_order_status_"))
	}

	if user.IsAdmin {
		return b.handleAdminCallback(c, user, sess, data)
	}
	return nil
}

func (b *Bot) onLanguagePick(c tele.Context, user *models.User, code string) error {
	valid := false
	for _, l := range supportedLanguages {
		if l.Code == code {
			valid = true
			break
		}
	}
	if !valid {
		return nil
	}
	if err := b.repos.Users.UpdateLanguage(user.NumID, code); err != nil {
		b.logger.Error("save language failed", zap.Int64("num_id", user.NumID), zap.Error(err))
		return nil
	}
	user.PreferredLanguage = code
	if !b.isChannelMember(user.NumID) {
		return b.screen(c, tr(code, "join_channel"), membershipKeyboard(code, b.cfg.Bot.Channel))
	}
	return b.screen(c, tr(code, "language_saved")+"\n\n"+tr(code, "welcome"), mainMenuKeyboard(user))
}

// screen replaces the message a callback came from, falling back to a
// fresh message when editing is impossible (old message, text input).
func (b *Bot) screen(c tele.Context, text string, kb *tele.ReplyMarkup) error {
	if c.Callback() != nil {
		if err := c.Edit(text, kb); err == nil {
			return nil
		}
	}
	return c.Send(text, kb)
}
