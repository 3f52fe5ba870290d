package bot

import (
	"context"
	"fmt"
	"strings"

	"lapgate/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Обработчики админ-панели

func (b *Bot) handleAdminRequests(ctx context.Context, update tgbotapi.Update) {
	callback := update.CallbackQuery
	if !b.requireAdmin(callback) {
		return
	}

	pending := b.directory.PendingUsers(ctx)

	var text string
	if len(pending) == 0 {
		text = "📋 Список заявок пуст."
	} else {
		var sb strings.Builder
		sb.WriteString("📋 Ожидающие заявки:\n\n")
		for i, user := range pending {
			if i >= models.PendingListLimit {
				break
			}
			sb.WriteString(fmt.Sprintf(
				"👤 %s\n"+
					"📱 +%s\n"+
					"🆔 %d\n"+
					"━━━━━━━━━━━━━━━━\n",
				user.FullName, user.PhoneNumber, user.TelegramID))
		}
		text = sb.String()
	}

	b.editWithKeyboard(callback, text, adminKeyboard())
	b.answerCallback(callback.ID, fmt.Sprintf("Заявок: %d", len(pending)))
}

func (b *Bot) handleAdminAllUsers(ctx context.Context, update tgbotapi.Update) {
	callback := update.CallbackQuery
	if !b.requireAdmin(callback) {
		return
	}

	users := b.directory.AllUsers(ctx)

	var text string
	if len(users) == 0 {
		text = "👥 Пользователей пока нет."
	} else {
		var sb strings.Builder
		sb.WriteString("👥 Все пользователи:\n\n")
		for i, user := range users {
			if i >= models.RosterListLimit {
				break
			}
			sb.WriteString(fmt.Sprintf(
				"%s %s\n"+
					"📱 +%s | 🆔 %d\n"+
					"━━━━━━━━━━━━━━━━\n",
				user.StatusGlyph(), user.FullName, user.PhoneNumber, user.TelegramID))
		}
		text = sb.String()
	}

	b.editWithKeyboard(callback, truncateText(text, models.MaxMessageLength), adminKeyboard())
	b.answerCallback(callback.ID, fmt.Sprintf("Всего: %d", len(users)))
}

func (b *Bot) handleAdminBanPrompt(ctx context.Context, update tgbotapi.Update) {
	callback := update.CallbackQuery
	if !b.requireAdmin(callback) {
		return
	}

	if err := b.stateService.SetAdminState(ctx, callback.From.ID, models.StateAwaitingBanID); err != nil {
		b.logger.Error().Err(err).Int64("admin_id", callback.From.ID).Msg("Failed to set admin state")
		b.answerCallback(callback.ID, "❌ Ошибка!")
		return
	}

	b.editWithKeyboard(callback, "🚫 Введите ID пользователя для блокировки:", cancelKeyboard())
	b.answerCallback(callback.ID, "")
}

func (b *Bot) handleAdminUnbanPrompt(ctx context.Context, update tgbotapi.Update) {
	callback := update.CallbackQuery
	if !b.requireAdmin(callback) {
		return
	}

	if err := b.stateService.SetAdminState(ctx, callback.From.ID, models.StateAwaitingUnbanID); err != nil {
		b.logger.Error().Err(err).Int64("admin_id", callback.From.ID).Msg("Failed to set admin state")
		b.answerCallback(callback.ID, "❌ Ошибка!")
		return
	}

	b.editWithKeyboard(callback, "✅ Введите ID пользователя для разблокировки:", cancelKeyboard())
	b.answerCallback(callback.ID, "")
}

func (b *Bot) handleAdminStats(ctx context.Context, update tgbotapi.Update) {
	callback := update.CallbackQuery
	if !b.requireAdmin(callback) {
		return
	}

	stats := b.directory.Stats(ctx)

	text := fmt.Sprintf(
		"📊 Статистика бота:\n"+
			"👤 Всего пользователей: %d\n"+
			"⏳ Ожидают: %d\n"+
			"✅ Одобрено: %d\n"+
			"🚫 Забанено: %d\n"+
			"❌ Отклонено: %d",
		stats.Total, stats.Pending, stats.Approved, stats.Banned, stats.Rejected)

	b.editWithKeyboard(callback, text, adminKeyboard())
	b.answerCallback(callback.ID, "")
}

func (b *Bot) handleCancelAction(ctx context.Context, update tgbotapi.Update) {
	callback := update.CallbackQuery
	if !b.requireAdmin(callback) {
		return
	}

	if err := b.stateService.ClearAdminState(ctx, callback.From.ID); err != nil {
		b.logger.Error().Err(err).Int64("admin_id", callback.From.ID).Msg("Failed to clear admin state")
	}

	b.editWithKeyboard(callback, "👨‍💻 Панель администратора Lap Video Chat", adminKeyboard())
	b.answerCallback(callback.ID, "❌ Отменено")
}

func (b *Bot) handleAdminExport(ctx context.Context, update tgbotapi.Update) {
	callback := update.CallbackQuery
	if !b.requireAdmin(callback) {
		return
	}

	users := b.directory.AllUsers(ctx)
	if len(users) == 0 {
		b.answerCallback(callback.ID, "👥 Пользователей пока нет.")
		return
	}

	filePath, err := b.exportUsersToExcel(ctx, users)
	if err != nil {
		b.logger.Error().Err(err).Msg("Failed to export users")
		b.answerCallback(callback.ID, "❌ Ошибка экспорта!")
		return
	}

	doc := tgbotapi.NewDocument(callback.Message.Chat.ID, tgbotapi.FilePath(filePath))
	if _, err := b.tgService.Send(doc); err != nil {
		b.logger.Error().Err(err).Msg("Failed to send export file")
		b.answerCallback(callback.ID, "❌ Ошибка отправки файла!")
		return
	}

	b.answerCallback(callback.ID, fmt.Sprintf("Экспортировано: %d", len(users)))
}

// truncateText обрезает текст до лимита Telegram
func truncateText(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
