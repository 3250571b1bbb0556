package bot

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	tele "gopkg.in/telebot.v3"

	"github.com/Canyildiz1386/SultanPanelBot/internal/models"
	"github.com/Canyildiz1386/SultanPanelBot/internal/payment"
)

// Preset top-up amounts in dollars.
var topUpAmounts = []int64{1, 5, 10, 50, 100}

// socialPlatforms maps the menu entries to the substring that picks
// their categories out of the remote catalog.
var socialPlatforms = []struct {
	Name string
	Key  string
}{
	{"📸 Instagram", "Instagram"},
	{"▶️ YouTube", "YouTube"},
	{"🎵 TikTok", "TikTok"},
	{"✈️ Telegram", "Telegram"},
	{"🐦 Twitter", "Twitter"},
	{"📘 Facebook", "Facebook"},
	{"🎧 Spotify", "Spotify"},
}

var supportedLanguages = []struct {
	Label string
	Code  string
}{
	{"🇬🇧 English", "en"},
	{"🇮🇷 فارسی", "fa"},
	{"🇸🇦 العربية", "ar"},
}

func markup(rows ...[]tele.InlineButton) *tele.ReplyMarkup {
	return &tele.ReplyMarkup{InlineKeyboard: rows}
}

func btn(text, data string) tele.InlineButton {
	return tele.InlineButton{Text: text, Data: data}
}

func backRow(lang string) []tele.InlineButton {
	return []tele.InlineButton{btn(tr(lang, "back"), "back")}
}

func backKeyboard(lang string) *tele.ReplyMarkup {
	return markup(backRow(lang))
}

func languageKeyboard() *tele.ReplyMarkup {
	row := make([]tele.InlineButton, 0, len(supportedLanguages))
	for _, l := range supportedLanguages {
		row = append(row, btn(l.Label, "lang_"+l.Code))
	}
	return markup(row)
}

func membershipKeyboard(lang, channel string) *tele.ReplyMarkup {
	url := "https://t.me/" + strings.TrimPrefix(channel, "@")
	return markup(
		[]tele.InlineButton{{Text: tr(lang, "join_channel_btn"), URL: url}},
		[]tele.InlineButton{btn(tr(lang, "joined_btn"), "check_membership")},
	)
}

func mainMenuKeyboard(user *models.User) *tele.ReplyMarkup {
	rows := [][]tele.InlineButton{
		{btn("🛒 New order", "add_order"), btn("📋 My orders", "view_order")},
		{btn("💳 Add credit", "increment_credit"), btn("👤 Account", "account_info")},
		{btn("🎰 Chance circle", "chance_circle"), btn("🎁 Referral link", "referral_link")},
		{btn("🆘 New ticket", "create_ticket"), btn("🤝 Agency request", "request_agency")},
		{btn("⚙️ Settings", "settings")},
	}
	if user.IsAdmin {
		rows = append(rows,
			[]tele.InlineButton{btn("💲 Unit value", "manage_unit_value"), btn("💱 Conversion rate", "manage_conversion_rate")},
			[]tele.InlineButton{btn("🏷 Off codes", "manage_off_codes"), btn("📣 Broadcast", "broadcast_message")},
			[]tele.InlineButton{btn("📨 Tickets", "view_tickets"), btn("🗂 Agency requests", "view_agency_requests")},
		)
	}
	return &tele.ReplyMarkup{InlineKeyboard: rows}
}

func platformsKeyboard(lang string, platforms []platformGroup) *tele.ReplyMarkup {
	rows := make([][]tele.InlineButton, 0, len(platforms)+1)
	for i, p := range platforms {
		rows = append(rows, []tele.InlineButton{btn(p.Name, fmt.Sprintf("platform_%d", i))})
	}
	rows = append(rows, backRow(lang))
	return markup(rows...)
}

func categoriesKeyboard(lang string, categories []categoryGroup) *tele.ReplyMarkup {
	rows := make([][]tele.InlineButton, 0, len(categories)+1)
	for i, c := range categories {
		rows = append(rows, []tele.InlineButton{btn(c.Name, fmt.Sprintf("category_%d", i))})
	}
	rows = append(rows, backRow(lang))
	return markup(rows...)
}

func servicesKeyboard(lang string, category categoryGroup) *tele.ReplyMarkup {
	rows := make([][]tele.InlineButton, 0, len(category.Services)+1)
	for _, svc := range category.Services {
		rows = append(rows, []tele.InlineButton{
			btn(svc.Name, "service_"+string(svc.ID)),
		})
	}
	rows = append(rows, backRow(lang))
	return markup(rows...)
}

func topUpKeyboard(lang string, tomanPerDollar decimal.Decimal) *tele.ReplyMarkup {
	rows := make([][]tele.InlineButton, 0, len(topUpAmounts)+2)
	for _, amt := range topUpAmounts {
		toman := tomanPerDollar.Mul(decimal.NewFromInt(amt))
		label := fmt.Sprintf("%d$ (%s Toman)", amt, toman.StringFixed(0))
		rows = append(rows, []tele.InlineButton{btn(label, fmt.Sprintf("increment_%d", amt))})
	}
	rows = append(rows, []tele.InlineButton{btn("✏️ Custom amount", "custom_increment")})
	rows = append(rows, backRow(lang))
	return markup(rows...)
}

func discountAskKeyboard(lang string) *tele.ReplyMarkup {
	return markup(
		[]tele.InlineButton{btn(tr(lang, "yes"), "discount_yes"), btn(tr(lang, "no"), "discount_no")},
		backRow(lang),
	)
}

func paymentKeyboard(lang string, links []payment.CheckoutLink) *tele.ReplyMarkup {
	rows := make([][]tele.InlineButton, 0, len(links)+1)
	for _, l := range links {
		rows = append(rows, []tele.InlineButton{{Text: l.Gateway, URL: l.URL}})
	}
	rows = append(rows, backRow(lang))
	return markup(rows...)
}

func ordersPageKeyboard(lang string, orders []models.Order, page, pages int) *tele.ReplyMarkup {
	rows := make([][]tele.InlineButton, 0, len(orders)+3)
	for _, o := range orders {
		label := fmt.Sprintf("🆔 %d — %s", o.OrderID, o.Status)
		rows = append(rows, []tele.InlineButton{btn(label, fmt.Sprintf("check_order_status_%d", o.OrderID))})
	}
	nav := []tele.InlineButton{}
	if page > 1 {
		nav = append(nav, btn("⬅️ Previous", "previous_orders_page"))
	}
	if page < pages {
		nav = append(nav, btn("Next ➡️", "next_orders_page"))
	}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}
	rows = append(rows, []tele.InlineButton{btn("🔎 Check by ID", "custom_order_id")})
	rows = append(rows, backRow(lang))
	return markup(rows...)
}

func ticketsKeyboard(lang string, tickets []models.Ticket) *tele.ReplyMarkup {
	rows := make([][]tele.InlineButton, 0, len(tickets)+1)
	for _, t := range tickets {
		label := fmt.Sprintf("#%d — %s", t.ID, t.Title)
		rows = append(rows, []tele.InlineButton{btn(label, fmt.Sprintf("view_ticket_%d", t.ID))})
	}
	rows = append(rows, backRow(lang))
	return markup(rows...)
}

func agencyRequestsKeyboard(lang string, requests []models.AgencyRequest) *tele.ReplyMarkup {
	rows := make([][]tele.InlineButton, 0, len(requests)+1)
	for _, r := range requests {
		label := fmt.Sprintf("#%d — %s$", r.ID, r.DailySales)
		rows = append(rows, []tele.InlineButton{
			btn("✅ "+label, fmt.Sprintf("approve_%d", r.ID)),
			btn("❌", fmt.Sprintf("reject_%d", r.ID)),
		})
	}
	rows = append(rows, backRow(lang))
	return markup(rows...)
}

func offCodesKeyboard(lang string) *tele.ReplyMarkup {
	return markup(
		[]tele.InlineButton{btn("➕ Add code", "add_off_code")},
		[]tele.InlineButton{btn("📄 View codes", "view_off_codes")},
		[]tele.InlineButton{btn("🗑 Delete code", "delete_off_code")},
		backRow(lang),
	)
}

func broadcastKeyboard(lang string) *tele.ReplyMarkup {
	return markup(
		[]tele.InlineButton{btn("👥 All users", "broadcast_users")},
		[]tele.InlineButton{btn("🛡 Admins only", "broadcast_admins")},
		backRow(lang),
	)
}
