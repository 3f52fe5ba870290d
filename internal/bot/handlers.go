package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"lapgate/internal/domain"
	"lapgate/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) handleMessage(ctx context.Context, update tgbotapi.Update) {
	message := update.Message

	if message.Contact != nil {
		b.handleContact(ctx, update)
		return
	}

	if message.IsCommand() {
		switch message.Command() {
		case "start":
			b.handleStart(ctx, update)
		case "admin":
			if b.directory.IsAdmin(message.From.ID) {
				b.sendWithInlineKeyboard(message.Chat.ID, "👨‍💻 Панель администратора", adminKeyboard())
			}
		}
		return
	}

	// Текстовый ввод администратора в многошаговом сценарии
	if b.directory.IsAdmin(message.From.ID) {
		b.handleAdminInput(ctx, update)
	}
}

func (b *Bot) handleStart(ctx context.Context, update tgbotapi.Update) {
	message := update.Message
	userID := message.From.ID

	if b.directory.IsAdmin(userID) {
		// Админ видит и меню и админ-панель
		b.sendWithInlineKeyboard(message.Chat.ID,
			"👋 Добро пожаловать, администратор!\n\n"+
				"Вы можете использовать обычные функции или перейти в админ-панель.",
			userMenuKeyboard(true))
		return
	}

	user := b.directory.Lookup(ctx, userID)
	if user == nil {
		// Новый пользователь
		if _, err := b.tgService.SendWithKeyboard(message.Chat.ID,
			"👋 Добро пожаловать в Lap Video Chat Bot!\n\n"+
				"📞 Для доступа необходимо поделиться номером телефона.\n"+
				"📋 После этого администратор рассмотрит вашу заявку.",
			phoneRequestKeyboard()); err != nil {
			b.logger.Error().Err(err).Int64("chat_id", message.Chat.ID).Msg("Failed to send welcome message")
		}
		return
	}

	switch user.Status {
	case models.StatusApproved:
		b.sendWithInlineKeyboard(message.Chat.ID,
			"🏠 Добро пожаловать в Lap Video Chat Bot!", userMenuKeyboard(false))
	case models.StatusBanned:
		b.sendMessage(message.Chat.ID, "🚫 Вы заблокированы в системе!")
	case models.StatusPending:
		b.sendMessage(message.Chat.ID,
			"⏳ Ваша заявка уже отправлена и находится на рассмотрении.\n"+
				"Ожидайте одобрения администратора.")
	case models.StatusRejected:
		b.sendMessage(message.Chat.ID, "❌ Ваша заявка была отклонена администратором.")
	default:
		b.sendWithInlineKeyboard(message.Chat.ID,
			"❓ Неизвестный статус. Обратитесь к администратору.", userMenuKeyboard(false))
	}
}

func (b *Bot) handleContact(ctx context.Context, update tgbotapi.Update) {
	message := update.Message
	userID := message.From.ID

	if b.directory.IsAdmin(userID) {
		b.sendWithInlineKeyboard(message.Chat.ID,
			"Вы администратор! Используйте меню ниже.", userMenuKeyboard(true))
		return
	}

	if existing := b.directory.Lookup(ctx, userID); existing != nil {
		switch existing.Status {
		case models.StatusPending:
			b.sendWithInlineKeyboard(message.Chat.ID,
				"⏳ Ваша заявка уже отправлена и ожидает рассмотрения.", userMenuKeyboard(false))
		case models.StatusApproved:
			b.sendWithInlineKeyboard(message.Chat.ID,
				"✅ Вы уже одобрены! Используйте меню ниже.", userMenuKeyboard(false))
		case models.StatusBanned:
			b.sendMessage(message.Chat.ID, "🚫 Вы заблокированы в системе!")
		case models.StatusRejected:
			b.sendMessage(message.Chat.ID, "❌ Ваша заявка была отклонена администратором.")
		}
		return
	}

	contact := message.Contact
	fullName := strings.TrimSpace(contact.FirstName + " " + contact.LastName)
	if fullName == "" {
		fullName = strings.TrimSpace(message.From.FirstName + " " + message.From.LastName)
	}

	user := &models.User{
		TelegramID:  userID,
		PhoneNumber: contact.PhoneNumber,
		FullName:    fullName,
		Username:    message.From.UserName,
		Status:      models.StatusPending,
	}

	switch b.directory.Submit(ctx, user) {
	case domain.CreateOK:
		if b.metrics != nil {
			b.metrics.SubmissionsTotal.Inc()
		}
		b.sendWithInlineKeyboard(message.Chat.ID,
			"✅ Спасибо! Номер получен.\n"+
				"⏳ Ожидайте одобрения администратора.", userMenuKeyboard(false))
	case domain.CreateDuplicate:
		b.sendWithInlineKeyboard(message.Chat.ID,
			"⏳ Ваша заявка уже отправлена и ожидает рассмотрения.", userMenuKeyboard(false))
	case domain.CreateStoreError:
		b.sendWithInlineKeyboard(message.Chat.ID,
			"❌ Ошибка: не удалось сохранить заявку. Попробуйте позже.", userMenuKeyboard(false))
	}
}

// handleAdminInput обрабатывает текст админа в сценариях бана/разбана
func (b *Bot) handleAdminInput(ctx context.Context, update tgbotapi.Update) {
	message := update.Message
	adminID := message.From.ID

	state, err := b.stateService.GetAdminState(ctx, adminID)
	if err != nil || state == nil {
		return
	}

	// Состояние сбрасывается в любом случае, в том числе при неверном вводе
	defer func() {
		if err := b.stateService.ClearAdminState(ctx, adminID); err != nil {
			b.logger.Error().Err(err).Int64("admin_id", adminID).Msg("Failed to clear admin state")
		}
	}()

	targetID, parseErr := strconv.ParseInt(strings.TrimSpace(message.Text), 10, 64)
	if parseErr != nil {
		b.sendMessage(message.Chat.ID, "❌ Неверный формат ID. Введите число.")
		return
	}

	switch state.Step {
	case models.StateAwaitingBanID:
		if b.directory.Ban(ctx, targetID) {
			if b.metrics != nil {
				b.metrics.StatusTransitions.WithLabelValues(models.StatusBanned).Inc()
			}
			b.sendMessage(message.Chat.ID, fmt.Sprintf("✅ Пользователь %d заблокирован!", targetID))
		} else {
			b.sendMessage(message.Chat.ID, fmt.Sprintf("❌ Не удалось заблокировать пользователя %d", targetID))
		}
	case models.StateAwaitingUnbanID:
		if b.directory.Unban(ctx, targetID) {
			if b.metrics != nil {
				b.metrics.StatusTransitions.WithLabelValues(models.StatusApproved).Inc()
			}
			b.sendMessage(message.Chat.ID, fmt.Sprintf("✅ Пользователь %d разблокирован!", targetID))
		} else {
			b.sendMessage(message.Chat.ID, fmt.Sprintf("❌ Не удалось разблокировать пользователя %d", targetID))
		}
	}
}

func (b *Bot) sendWithInlineKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	if _, err := b.tgService.SendWithInlineKeyboard(chatID, text, keyboard); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send message")
	}
}
