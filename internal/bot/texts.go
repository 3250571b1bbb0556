package bot

// Chat copy, keyed per language. Arabic callers fall back to English
// until the strings are translated.
var texts = map[string]map[string]string{
	"en": {
		"welcome":             "Welcome to Sultan Panel! 🫅🏻\nUse the menu below to place orders and manage your credit.",
		"choose_language":     "Please choose your language:",
		"language_saved":      "Language saved ✅",
		"join_channel":        "To use the bot you must join our channel first:",
		"join_channel_btn":    "📢 Join channel",
		"joined_btn":          "✅ I joined",
		"not_member_yet":      "You have not joined the channel yet. Join and press the button again.",
		"main_menu":           "Main menu 🏠",
		"back":                "🔙 Back",
		"choose_platform":     "Choose a platform:",
		"choose_category":     "Choose a category:",
		"choose_service":      "Choose a service:",
		"enter_link":          "Send the link for your order:",
		"enter_quantity":      "Send the quantity (between %d and %d):",
		"invalid_quantity":    "That is not a valid quantity. Send a number between %d and %d:",
		"invalid_number":      "That is not a valid number, try again:",
		"order_placed":        "✅ Order placed!\n\n🆔 Order ID: %d\n💰 Cost: %s credits\n💳 Remaining credit: %s",
		"order_failed":        "❌ The order could not be placed. Your credit was not charged. Try again later.",
		"insufficient_credit": "❌ Your credit is not enough for this order (cost: %s credits). Top up and try again.",
		"pricing_unavailable": "⚠️ Ordering is temporarily unavailable. Please try again later.",
		"catalog_unavailable": "⚠️ The service list is temporarily unavailable. Please try again later.",
		"service_unknown":     "That service is no longer available. Pick another one.",
		"your_orders":         "📋 Your orders (page %d of %d):",
		"no_orders":           "You have no orders yet.",
		"enter_order_id":      "Send the order ID to check:",
		"order_not_found":     "No order with that ID was found on your account.",
		"order_status":        "🆔 Order: %d\n📊 Status: %s\n▶️ Start count: %d\n⏳ Remains: %d\n\n%s",
		"account_info":        "👤 Account info\n\n🆔 ID: %d\n💳 Remaining credit: %s\n🔥 Used credit: %s\n🎁 Referral credit: %s\n💼 Sales earnings: %s",
		"choose_amount":       "Choose a top-up amount (1$ ≈ %s Toman):",
		"custom_amount":       "Send the amount in dollars you want to add:",
		"ask_discount":        "Do you have a discount code?",
		"yes":                 "✅ Yes",
		"no":                  "❌ No",
		"enter_discount":      "Send your discount code:",
		"invalid_discount":    "Invalid discount code. Proceeding with the full amount.",
		"discount_applied":    "🎉 Code accepted: %d%% off!",
		"pay_prompt":          "💵 Amount: %s$\nPick a gateway to pay:",
		"chance_won":          "🎉 You won %s credits! Come back in 24 hours for another spin.",
		"chance_wait":         "⏳ The chance circle resets every 24 hours. Try again in %s.",
		"referral_text":       "🎁 Invite friends and you both earn 10 credits!\nYour link:\n%s",
		"agency_prompt":       "Send your estimated monthly sales figure (in dollars) to apply for an agency:",
		"agency_sent":         "✅ Your agency request was submitted. We will contact you soon.",
		"agency_approved":     "🎉 Your agency request was approved! Our team will reach out shortly.",
		"agency_rejected":     "Unfortunately your agency request was not approved this time.",
		"ticket_title":        "Send a title for your ticket:",
		"ticket_description":  "Now describe your issue:",
		"ticket_created":      "✅ Ticket #%d created. Our support will answer soon.",
		"ticket_cooldown":     "⏳ You can open a new ticket in %s.",
		"ticket_reply":        "📨 Support replied to your ticket #%d:\n\n%s",
		"settings":            "⚙️ Settings",
	},
	"fa": {
		"welcome":             "به سلطان پنل خوش آمدید! 🫅🏻\nاز منوی زیر برای ثبت سفارش و مدیریت اعتبار استفاده کنید.",
		"choose_language":     "لطفاً زبان خود را انتخاب کنید:",
		"language_saved":      "زبان ذخیره شد ✅",
		"join_channel":        "برای استفاده از ربات ابتدا باید عضو کانال ما شوید:",
		"join_channel_btn":    "📢 عضویت در کانال",
		"joined_btn":          "✅ عضو شدم",
		"not_member_yet":      "هنوز عضو کانال نشده‌اید. عضو شوید و دوباره دکمه را بزنید.",
		"main_menu":           "منوی اصلی 🏠",
		"back":                "🔙 بازگشت",
		"choose_platform":     "یک پلتفرم انتخاب کنید:",
		"choose_category":     "یک دسته‌بندی انتخاب کنید:",
		"choose_service":      "یک سرویس انتخاب کنید:",
		"enter_link":          "لینک سفارش خود را ارسال کنید:",
		"enter_quantity":      "تعداد را ارسال کنید (بین %d و %d):",
		"invalid_quantity":    "تعداد معتبر نیست. عددی بین %d و %d ارسال کنید:",
		"invalid_number":      "عدد معتبر نیست، دوباره تلاش کنید:",
		"order_placed":        "✅ سفارش ثبت شد!\n\n🆔 شماره سفارش: %d\n💰 هزینه: %s اعتبار\n💳 اعتبار باقیمانده: %s",
		"order_failed":        "❌ ثبت سفارش ممکن نشد. اعتباری کسر نشد. بعداً دوباره تلاش کنید.",
		"insufficient_credit": "❌ اعتبار شما برای این سفارش کافی نیست (هزینه: %s اعتبار). اعتبار خود را افزایش دهید.",
		"pricing_unavailable": "⚠️ ثبت سفارش موقتاً در دسترس نیست. بعداً دوباره تلاش کنید.",
		"catalog_unavailable": "⚠️ لیست سرویس‌ها موقتاً در دسترس نیست. بعداً دوباره تلاش کنید.",
		"service_unknown":     "این سرویس دیگر موجود نیست. سرویس دیگری انتخاب کنید.",
		"your_orders":         "📋 سفارش‌های شما (صفحه %d از %d):",
		"no_orders":           "هنوز سفارشی ثبت نکرده‌اید.",
		"enter_order_id":      "شماره سفارش را برای بررسی ارسال کنید:",
		"order_not_found":     "سفارشی با این شماره در حساب شما یافت نشد.",
		"order_status":        "🆔 سفارش: %d\n📊 وضعیت: %s\n▶️ شروع: %d\n⏳ باقیمانده: %d\n\n%s",
		"account_info":        "👤 اطلاعات حساب\n\n🆔 شناسه: %d\n💳 اعتبار باقیمانده: %s\n🔥 اعتبار مصرفی: %s\n🎁 اعتبار معرفی: %s\n💼 درآمد فروش: %s",
		"choose_amount":       "مبلغ افزایش اعتبار را انتخاب کنید (1$ ≈ %s تومان):",
		"custom_amount":       "مبلغ دلخواه (به دلار) را ارسال کنید:",
		"ask_discount":        "آیا کد تخفیف دارید؟",
		"yes":                 "✅ بله",
		"no":                  "❌ خیر",
		"enter_discount":      "کد تخفیف خود را ارسال کنید:",
		"invalid_discount":    "کد تخفیف نامعتبر است. با مبلغ کامل ادامه می‌دهیم.",
		"discount_applied":    "🎉 کد اعمال شد: %d%% تخفیف!",
		"pay_prompt":          "💵 مبلغ: %s$\nدرگاه پرداخت را انتخاب کنید:",
		"chance_won":          "🎉 شما %s اعتبار برنده شدید! ۲۴ ساعت دیگر دوباره شانس خود را امتحان کنید.",
		"chance_wait":         "⏳ گردونه شانس هر ۲۴ ساعت یکبار فعال می‌شود. %s دیگر تلاش کنید.",
		"referral_text":       "🎁 دوستان خود را دعوت کنید و هر دو ۱۰ اعتبار بگیرید!\nلینک شما:\n%s",
		"agency_prompt":       "برای درخواست نمایندگی، میزان فروش ماهانه تخمینی خود را (به دلار) ارسال کنید:",
		"agency_sent":         "✅ درخواست نمایندگی شما ثبت شد. به‌زودی با شما تماس می‌گیریم.",
		"agency_approved":     "🎉 درخواست نمایندگی شما تایید شد! تیم ما به‌زودی با شما در تماس خواهد بود.",
		"agency_rejected":     "متاسفانه درخواست نمایندگی شما این بار تایید نشد.",
		"ticket_title":        "عنوان تیکت خود را ارسال کنید:",
		"ticket_description":  "حالا مشکل خود را شرح دهید:",
		"ticket_created":      "✅ تیکت #%d ثبت شد. پشتیبانی به‌زودی پاسخ می‌دهد.",
		"ticket_cooldown":     "⏳ تیکت بعدی را %s دیگر می‌توانید ثبت کنید.",
		"ticket_reply":        "📨 پشتیبانی به تیکت #%d شما پاسخ داد:\n\n%s",
		"settings":            "⚙️ تنظیمات",
	},
}

// tr resolves a copy key for the user's language, falling back to
// English for unknown languages or missing keys.
func tr(lang, key string) string {
	if m, ok := texts[lang]; ok {
		if s, ok := m[key]; ok {
			return s
		}
	}
	return texts["en"][key]
}
