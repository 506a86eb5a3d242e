package bot

// User-facing texts. The bot speaks Persian to end users; keep the exact
// button labels in sync with the keyboards since step routing matches on them.
const (
	textHome         = "Home"
	textHelp         = "Help Command"
	textAdminWelcome = "Welcome To Admin panel"

	textBlocked     = "شما در ربات بلاک شده اید"
	textSponsorJoin = "please join in the sponsor channel"

	textChooseUpload   = "برای اپلود سریال و یا فیلم تک قسمتی یکی رو انتخاب کن"
	textSendMovieName  = "اسم فیلم را ارسال کنید"
	textSendSeriesName = "اسم سریال را ارسال کنید"
	textSendFile       = "لطفا فایل مورد نظر رو ارسال کن"
	textUploadFailed   = "اپلود انجام نشد مشکلی پیش امده"
	textSendUserID     = "لطفا ایدی عددی کاربر مورد نظر رو ارسال کن"
	textUserNotFound   = "یوزر پیدا نشد"

	textUnknownOp       = "❌ عملیات ناشناخته است."
	textObjectNotFound  = "❌ مورد مورد نظر پیدا نشد."
	textSessionNotFound = "❌ سشن پیدا نشد."
	textObjectGone      = "❌ سشن یا اپیزود مورد نظر پیدا نشد."
	textSessionDeleted  = "✅ سشن مورد نظر حذف شد."
	textSureDelete      = "🚨 هشدار: این عملیات غیرقابل بازگشت است!\nآیا مطمئن هستید؟"
	textLinkNotFound    = "لینک مورد نظر یافت نشد"
	textPaymentSoon     = "پرداخت به زودی فعال می‌شود"

	textPlanUnlimited = "نامحدود 💎"
	textPlanNone      = "بدون اشتراک"

	textAutoDeleteNotice = "⏳ فایل ها پس از %d ثانیه حذف می‌شوند، لطفا ذخیره کنید."

	// fmt templates used when reporting uploads back to the admin.
	textEpisodeUploaded  = "✅ آپلود با موفقیت انجام شد!\n\n📌 لینک:\n [E-%d](%s)\n"
	textSessionUploaded  = "✅ آپلود با موفقیت انجام شد!\n\n📌 لینک قسمت‌ها:\n%s\n📂 لینک کل مجموعه:\n[S%s](%s)"
	textSessionInfo      = "📌 *اطلاعات سشن*\n\n🎬 *اسم سشن:* `%s`\n📺 *تعداد قسمت‌ها:* `%d`\n📂 *نوع:* `%s`\n"
	contentTypeSeriesFa  = "سریال"
	contentTypeMovieFa   = "فیلم"

	// Reply-keyboard button labels.
	btnBack         = "بازگشت"
	btnBuyPlan      = "🛒 خرید اشتراک"
	btnAccountInfo  = "اطلاعات حساب 👤"
	btnAdminUpload  = "اپلود ⬇️"
	btnAdminUser    = "اطلاعات کاربر 💹"
	btnUploadMovie  = "اپلود فیلم ➕"
	btnUploadSeries = "اپلود سریال ➕"
	btnCancelUpload = "لغو اپلود ❌"
	btnFinishUpload = "اتمام اپلود ✅"

	// Inline-keyboard button labels.
	btnConfirmJoin   = "تایید عضویت ✅"
	btnAddEpisode    = "➕ افزودن قسمت"
	btnDeleteSession = "🗑 حذف سشن"
	btnDeleteEpisode = "🗑 حذف قسمت"
	btnYes           = "بله ✅"
	btnNo            = "خیر ❌"
)

// Template names looked up in the templates table.
const (
	tplSponsorChannels = "sponsor_channels_message"
	tplPaymentPlans    = "payment_plan_message"
	tplPlanInfo        = "info_plan_message"
	tplUserInfo        = "user_info"
)
