package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"lapgate/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) handleCallbackQuery(ctx context.Context, update tgbotapi.Update) {
	callback := update.CallbackQuery
	data := callback.Data

	switch {
	case strings.HasPrefix(data, "approve_"):
		b.handleApprove(ctx, update)

	case strings.HasPrefix(data, "reject_"):
		b.handleReject(ctx, update)

	case data == "admin_panel":
		if !b.requireAdmin(callback) {
			return
		}
		b.editWithKeyboard(callback, "👨‍💻 Панель администратора Lap Video Chat", adminKeyboard())
		b.answerCallback(callback.ID, "")

	case data == "admin_requests":
		b.handleAdminRequests(ctx, update)

	case data == "admin_all_users":
		b.handleAdminAllUsers(ctx, update)

	case data == "admin_ban":
		b.handleAdminBanPrompt(ctx, update)

	case data == "admin_unban":
		b.handleAdminUnbanPrompt(ctx, update)

	case data == "admin_stats":
		b.handleAdminStats(ctx, update)

	case data == "admin_export":
		b.handleAdminExport(ctx, update)

	case data == "cancel_action":
		b.handleCancelAction(ctx, update)

	case data == "user_main_menu":
		b.handleUserMainMenu(ctx, update)

	case data == "user_chats", data == "user_contacts", data == "user_settings", data == "user_help":
		b.handleUserMenuSection(ctx, update)
	}
}

// requireAdmin отвечает на callback отказом если пользователь не админ
func (b *Bot) requireAdmin(callback *tgbotapi.CallbackQuery) bool {
	if b.directory.IsAdmin(callback.From.ID) {
		return true
	}
	b.answerCallback(callback.ID, "❌ Нет прав!")
	return false
}

func (b *Bot) handleApprove(ctx context.Context, update tgbotapi.Update) {
	callback := update.CallbackQuery
	if !b.requireAdmin(callback) {
		return
	}

	targetID, err := parseCallbackID(callback.Data, "approve_")
	if err != nil {
		b.answerCallback(callback.ID, "❌ Ошибка!")
		return
	}

	if !b.directory.Approve(ctx, targetID) {
		b.answerCallback(callback.ID, "❌ Ошибка базы данных!")
		return
	}
	if b.metrics != nil {
		b.metrics.StatusTransitions.WithLabelValues(models.StatusApproved).Inc()
	}

	userName := "Пользователь"
	if user := b.directory.Lookup(ctx, targetID); user != nil && user.FullName != "" {
		userName = user.FullName
	}

	b.editMessage(callback, fmt.Sprintf(
		"✅ Пользователь одобрен!\n"+
			"👤 Имя: %s\n"+
			"🆔 ID: %d", userName, targetID))
	b.answerCallback(callback.ID, "✅ Одобрено!")
}

func (b *Bot) handleReject(ctx context.Context, update tgbotapi.Update) {
	callback := update.CallbackQuery
	if !b.requireAdmin(callback) {
		return
	}

	targetID, err := parseCallbackID(callback.Data, "reject_")
	if err != nil {
		b.answerCallback(callback.ID, "❌ Ошибка!")
		return
	}

	if !b.directory.Reject(ctx, targetID) {
		b.answerCallback(callback.ID, "❌ Ошибка!")
		return
	}
	if b.metrics != nil {
		b.metrics.StatusTransitions.WithLabelValues(models.StatusRejected).Inc()
	}

	userName := "Пользователь"
	if user := b.directory.Lookup(ctx, targetID); user != nil && user.FullName != "" {
		userName = user.FullName
	}

	b.editMessage(callback, fmt.Sprintf(
		"❌ Заявка отклонена!\n"+
			"👤 Имя: %s\n"+
			"🆔 ID: %d", userName, targetID))
	b.answerCallback(callback.ID, "❌ Отклонено!")
}

func (b *Bot) handleUserMainMenu(ctx context.Context, update tgbotapi.Update) {
	callback := update.CallbackQuery
	isAdmin := b.directory.IsAdmin(callback.From.ID)

	text := "🏠 Главное меню"
	if isAdmin {
		text = "👋 Добро пожаловать, администратор!"
	}

	b.editWithKeyboard(callback, text, userMenuKeyboard(isAdmin))
	b.answerCallback(callback.ID, "")
}

// handleUserMenuSection — разделы меню доступны только одобренным
func (b *Bot) handleUserMenuSection(ctx context.Context, update tgbotapi.Update) {
	callback := update.CallbackQuery
	userID := callback.From.ID
	isAdmin := b.directory.IsAdmin(userID)

	if callback.Data != "user_help" && !isAdmin {
		user := b.directory.Lookup(ctx, userID)
		if user == nil || user.Status != models.StatusApproved {
			b.answerCallback(callback.ID, "❌ Доступ запрещен!")
			return
		}
	}

	var text string
	switch callback.Data {
	case "user_chats":
		text = "📞 Ваши чаты:\n\n" +
			"Эта функция будет доступна после настройки системы звонков.\n" +
			"Сейчас можно:\n" +
			"• Просматривать историю звонков\n" +
			"• Создавать новые чаты\n" +
			"• Приглашать контактов"
	case "user_contacts":
		text = "👥 Управление контактами:\n\n" +
			"1. Добавить контакт - отправьте номер телефона\n" +
			"2. Импортировать из телефонной книги\n" +
			"3. Поиск контактов\n\n" +
			"📱 Чтобы добавить контакт, просто отправьте номер телефона в формате +79991234567"
	case "user_settings":
		text = "⚙️ Настройки:\n\n" +
			"• Уведомления\n" +
			"• Конфиденциальность\n" +
			"• Язык интерфейса\n" +
			"• Очистить историю"
	case "user_help":
		text = "🆘 Помощь:\n\n" +
			"• Как начать звонок?\n" +
			"• Как добавить контакт?\n" +
			"• Проблемы со звуком/видео\n" +
			"• Техническая поддержка: @LapVideoChatSupport"
	}

	b.editWithKeyboard(callback, text, userMenuKeyboard(isAdmin))
	b.answerCallback(callback.ID, "")
}

func parseCallbackID(data, prefix string) (int64, error) {
	return strconv.ParseInt(strings.TrimPrefix(data, prefix), 10, 64)
}

func (b *Bot) answerCallback(callbackID, text string) {
	if err := b.tgService.AnswerCallback(callbackID, text); err != nil {
		b.logger.Error().Err(err).Msg("Failed to answer callback")
	}
}

func (b *Bot) editMessage(callback *tgbotapi.CallbackQuery, text string) {
	if _, err := b.tgService.EditMessage(callback.Message.Chat.ID, callback.Message.MessageID, text, nil); err != nil {
		b.logger.Error().Err(err).Msg("Failed to edit message")
	}
}

func (b *Bot) editWithKeyboard(callback *tgbotapi.CallbackQuery, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	if _, err := b.tgService.EditMessage(callback.Message.Chat.ID, callback.Message.MessageID, text, &keyboard); err != nil {
		b.logger.Error().Err(err).Msg("Failed to edit message")
	}
}
