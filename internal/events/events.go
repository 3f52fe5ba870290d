package events

import (
	"context"
	"sync"
	"time"

	"lapgate/internal/models"

	"github.com/rs/zerolog"
)

// Типы событий жизненного цикла пользователя.
const (
	EventUserSubmitted = "user_submitted"
	EventUserApproved  = "user_approved"
	EventUserRejected  = "user_rejected"
	EventUserBanned    = "user_banned"
	EventUserUnbanned  = "user_unbanned"
)

// UserEvent описывает переход статуса пользователя.
type UserEvent struct {
	Type       string       `json:"type"`
	User       *models.User `json:"user"`
	ActorID    int64        `json:"actor_id,omitempty"`
	OccurredAt time.Time    `json:"occurred_at"`
}

// Handler обрабатывает одно событие. Ошибки логируются шиной,
// доставка остальным подписчикам не прерывается.
type Handler func(ctx context.Context, event UserEvent) error

// Bus — внутрипроцессная шина событий. Публикация не блокирует
// вызывающего: обработчики выполняются в отдельной горутине.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	wg       sync.WaitGroup
	logger   *zerolog.Logger
}

func NewBus(logger *zerolog.Logger) *Bus {
	return &Bus{
		handlers: make(map[string][]Handler),
		logger:   logger,
	}
}

// Subscribe регистрирует обработчик для типа события.
func (b *Bus) Subscribe(eventType string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], h)
}

// Publish рассылает событие всем подписчикам типа.
func (b *Bus) Publish(ctx context.Context, event UserEvent) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type]))
	copy(handlers, b.handlers[event.Type])
	b.mu.RUnlock()

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for _, h := range handlers {
			if err := h(ctx, event); err != nil {
				b.logger.Error().Err(err).
					Str("event_type", event.Type).
					Msg("Ошибка обработчика события")
			}
		}
	}()
}

// Wait дожидается завершения всех запущенных обработчиков.
// Используется при остановке сервиса.
func (b *Bus) Wait() {
	b.wg.Wait()
}
