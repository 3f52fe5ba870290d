package service

import (
	"context"
	"errors"

	"lapgate/internal/domain"
	"lapgate/internal/events"
	"lapgate/internal/models"
	"lapgate/internal/storage"

	"github.com/rs/zerolog"
)

// DirectoryService оборачивает справочник пользователей: проверки
// прав, переходы статусов и публикация событий. Ошибки хранилища
// не выходят наружу — обработчики получают безопасные значения.
type DirectoryService struct {
	store     domain.Directory
	publisher domain.EventPublisher
	logger    *zerolog.Logger
	adminsMap map[int64]bool
	admins    []int64
}

func NewDirectoryService(store domain.Directory, publisher domain.EventPublisher, admins []int64, logger *zerolog.Logger) *DirectoryService {
	adminsMap := make(map[int64]bool)
	for _, id := range admins {
		adminsMap[id] = true
	}

	return &DirectoryService{
		store:     store,
		publisher: publisher,
		logger:    logger,
		adminsMap: adminsMap,
		admins:    admins,
	}
}

func (s *DirectoryService) IsAdmin(userID int64) bool {
	return s.adminsMap[userID]
}

func (s *DirectoryService) AdminIDs() []int64 {
	return s.admins
}

// Backend возвращает имя активного хранилища ("postgres" или "memory").
func (s *DirectoryService) Backend() string {
	return s.store.Name()
}

// Submit регистрирует заявку. Повторная подача не меняет
// существующую запись.
func (s *DirectoryService) Submit(ctx context.Context, user *models.User) domain.CreateResult {
	if user.Status == "" {
		user.Status = models.StatusPending
	}

	err := s.store.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return domain.CreateDuplicate
		}
		s.logger.Error().Err(err).Int64("telegram_id", user.TelegramID).Msg("Не удалось сохранить заявку")
		return domain.CreateStoreError
	}

	s.logger.Info().Int64("telegram_id", user.TelegramID).Str("full_name", user.FullName).Msg("Новая заявка")
	s.publisher.Publish(ctx, events.UserEvent{Type: events.EventUserSubmitted, User: user})
	return domain.CreateOK
}

// Lookup возвращает nil и при отсутствии записи, и при ошибке хранилища.
func (s *DirectoryService) Lookup(ctx context.Context, telegramID int64) *models.User {
	user, err := s.store.GetUser(ctx, telegramID)
	if err != nil {
		s.logger.Error().Err(err).Int64("telegram_id", telegramID).Msg("Ошибка чтения справочника")
		return nil
	}
	return user
}

func (s *DirectoryService) Approve(ctx context.Context, telegramID int64) bool {
	return s.transition(ctx, telegramID, models.StatusApproved, events.EventUserApproved)
}

func (s *DirectoryService) Reject(ctx context.Context, telegramID int64) bool {
	return s.transition(ctx, telegramID, models.StatusRejected, events.EventUserRejected)
}

func (s *DirectoryService) Ban(ctx context.Context, telegramID int64) bool {
	return s.transition(ctx, telegramID, models.StatusBanned, events.EventUserBanned)
}

func (s *DirectoryService) Unban(ctx context.Context, telegramID int64) bool {
	return s.transition(ctx, telegramID, models.StatusApproved, events.EventUserUnbanned)
}

func (s *DirectoryService) transition(ctx context.Context, telegramID int64, status, eventType string) bool {
	updated, err := s.store.SetStatus(ctx, telegramID, status)
	if err != nil {
		s.logger.Error().Err(err).Int64("telegram_id", telegramID).Str("status", status).Msg("Не удалось сменить статус")
		return false
	}
	if !updated {
		return false
	}

	user, err := s.store.GetUser(ctx, telegramID)
	if err != nil || user == nil {
		user = &models.User{TelegramID: telegramID, Status: status}
	}

	s.logger.Info().Int64("telegram_id", telegramID).Str("status", status).Msg("Статус обновлен")
	s.publisher.Publish(ctx, events.UserEvent{Type: eventType, User: user})
	return true
}

func (s *DirectoryService) PendingUsers(ctx context.Context) []*models.User {
	users, err := s.store.ListByStatus(ctx, models.StatusPending)
	if err != nil {
		s.logger.Error().Err(err).Msg("Ошибка списка заявок")
		return nil
	}
	return users
}

func (s *DirectoryService) AllUsers(ctx context.Context) []*models.User {
	users, err := s.store.ListAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Ошибка списка пользователей")
		return nil
	}
	return users
}

func (s *DirectoryService) Stats(ctx context.Context) models.Stats {
	users, err := s.store.ListAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Ошибка подсчета статистики")
		return models.Stats{}
	}

	var stats models.Stats
	stats.Total = len(users)
	for _, u := range users {
		switch u.Status {
		case models.StatusPending:
			stats.Pending++
		case models.StatusApproved:
			stats.Approved++
		case models.StatusBanned:
			stats.Banned++
		case models.StatusRejected:
			stats.Rejected++
		}
	}
	return stats
}
