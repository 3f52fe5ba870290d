package bot

import (
	"context"
	"fmt"

	"lapgate/internal/domain"
	"lapgate/internal/events"

	"github.com/rs/zerolog"
)

// Notifier рассылает уведомления о переходах статусов: админам о
// новых заявках, пользователям о решениях. Подписывается на шину
// событий, чтобы обработчики бота не знали адресатов рассылки.
type Notifier struct {
	tgService domain.TelegramService
	directory domain.DirectoryService
	logger    *zerolog.Logger
}

func NewNotifier(tgService domain.TelegramService, directory domain.DirectoryService, logger *zerolog.Logger) *Notifier {
	return &Notifier{
		tgService: tgService,
		directory: directory,
		logger:    logger,
	}
}

// Register подписывает уведомитель на все события жизненного цикла
func (n *Notifier) Register(bus *events.Bus) {
	bus.Subscribe(events.EventUserSubmitted, n.onUserSubmitted)
	bus.Subscribe(events.EventUserApproved, n.onUserApproved)
	bus.Subscribe(events.EventUserRejected, n.onUserRejected)
	bus.Subscribe(events.EventUserBanned, n.onUserBanned)
	bus.Subscribe(events.EventUserUnbanned, n.onUserUnbanned)
}

// onUserSubmitted уведомляет всех админов о новой заявке
func (n *Notifier) onUserSubmitted(_ context.Context, event events.UserEvent) error {
	user := event.User
	username := user.Username
	if username == "" {
		username = "нет"
	}

	text := fmt.Sprintf(
		"📨 НОВАЯ ЗАЯВКА!\n\n"+
			"👤 Имя: %s\n"+
			"📱 Телефон: +%s\n"+
			"🆔 ID: %d\n"+
			"📛 @%s",
		user.FullName, user.PhoneNumber, user.TelegramID, username)

	for _, adminID := range n.directory.AdminIDs() {
		if _, err := n.tgService.SendWithInlineKeyboard(adminID, text, approvalKeyboard(user.TelegramID)); err != nil {
			n.logger.Error().Err(err).Int64("admin_id", adminID).Msg("Ошибка уведомления админа")
		}
	}
	return nil
}

func (n *Notifier) onUserApproved(_ context.Context, event events.UserEvent) error {
	text := "🎉 ВАША ЗАЯВКА ОДОБРЕНА!\n\n" +
		"Добро пожаловать в Lap Video Chat Bot!\n" +
		"Теперь вам доступны все функции."
	if _, err := n.tgService.SendWithInlineKeyboard(event.User.TelegramID, text, userMenuKeyboard(false)); err != nil {
		n.logger.Error().Err(err).Int64("user_id", event.User.TelegramID).Msg("Не удалось уведомить пользователя")
	}
	return nil
}

func (n *Notifier) onUserRejected(_ context.Context, event events.UserEvent) error {
	n.notifyUser(event.User.TelegramID, "❌ Ваша заявка отклонена администратором.")
	return nil
}

func (n *Notifier) onUserBanned(_ context.Context, event events.UserEvent) error {
	n.notifyUser(event.User.TelegramID, "🚫 Вы были заблокированы администратором.")
	return nil
}

func (n *Notifier) onUserUnbanned(_ context.Context, event events.UserEvent) error {
	n.notifyUser(event.User.TelegramID, "✅ Вы были разблокированы администратором.")
	return nil
}

// notifyUser отправляет сообщение, не считая недоставку ошибкой:
// пользователь мог заблокировать бота
func (n *Notifier) notifyUser(userID int64, text string) {
	if _, err := n.tgService.SendMessage(userID, text); err != nil {
		n.logger.Warn().Err(err).Int64("user_id", userID).Msg("Не удалось уведомить пользователя")
	}
}
