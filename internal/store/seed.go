package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// defaultTemplates are the message bodies the bot expects to find in the
// templates table. Placeholders use {name} syntax.
var defaultTemplates = map[string]string{
	"sponsor_channels_message": "برای استفاده از ربات ابتدا در کانال های زیر عضو شوید سپس دکمه تایید عضویت را بزنید",
	"payment_plan_message":     "یکی از پلن های زیر را انتخاب کنید:",
	"info_plan_message":        "👤 *اطلاعات حساب*\n\n🆔 ایدی: `{user_id}`\n📅 اشتراک: {plan_days}",
	"user_info":                "👤 *اطلاعات کاربر*\n\n🆔 ایدی: `{user_id}`\n📅 اشتراک: {plan_title}\n🧾 اخرین پلن: {last_plan}\n💳 تعداد پرداخت: {payment_count}",
}

// Seed inserts the reference rows a fresh database needs: the maintenance
// flag, message templates and a starter plan. Existing rows are kept as-is.
func Seed(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, `
		INSERT INTO bot_status (id, is_update, update_msg)
		VALUES (1, FALSE, 'ربات در حال بروزرسانی است، لطفا بعدا مراجعه کنید')
		ON CONFLICT (id) DO NOTHING`); err != nil {
		return fmt.Errorf("seed bot_status: %w", err)
	}

	for name, body := range defaultTemplates {
		if _, err := db.ExecContext(ctx, `
			INSERT INTO templates (name, text)
			VALUES ($1, $2)
			ON CONFLICT (name) DO NOTHING`, name, body); err != nil {
			return fmt.Errorf("seed template %s: %w", name, err)
		}
	}

	if _, err := db.ExecContext(ctx, `
		INSERT INTO plans (name, price_rial, duration_days, is_active)
		SELECT 'یک ماهه', 500000, 30, TRUE
		WHERE NOT EXISTS (SELECT 1 FROM plans)`); err != nil {
		return fmt.Errorf("seed plans: %w", err)
	}
	return nil
}
