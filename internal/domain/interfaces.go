package domain

import (
	"context"
	"time"

	"lapgate/internal/events"
	"lapgate/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// CreateResult различает исходы создания записи в справочнике.
type CreateResult int

const (
	CreateOK CreateResult = iota
	CreateDuplicate
	CreateStoreError
)

// Directory is the persistence boundary: one backend holds the applicant
// records. Implementations: postgres (primary) and memory (fallback).
type Directory interface {
	// CreateUser inserts a new record; storage.ErrAlreadyExists on a duplicate id.
	CreateUser(ctx context.Context, user *models.User) error
	// GetUser returns (nil, nil) when the record is absent.
	GetUser(ctx context.Context, telegramID int64) (*models.User, error)
	// SetStatus reports whether a record existed and was updated.
	SetStatus(ctx context.Context, telegramID int64, status string) (bool, error)
	ListByStatus(ctx context.Context, status string) ([]*models.User, error)
	// ListAll returns records ordered by creation time, newest first.
	ListAll(ctx context.Context) ([]*models.User, error)
	Name() string
	Ping(ctx context.Context) error
	Close()
}

// DirectoryService is the workflow-facing view of the Directory: store
// faults degrade to safe defaults instead of propagating to handlers.
type DirectoryService interface {
	IsAdmin(userID int64) bool
	AdminIDs() []int64
	Submit(ctx context.Context, user *models.User) CreateResult
	Lookup(ctx context.Context, telegramID int64) *models.User
	Approve(ctx context.Context, telegramID int64) bool
	Reject(ctx context.Context, telegramID int64) bool
	Ban(ctx context.Context, telegramID int64) bool
	Unban(ctx context.Context, telegramID int64) bool
	PendingUsers(ctx context.Context) []*models.User
	AllUsers(ctx context.Context) []*models.User
	Stats(ctx context.Context) models.Stats
	Backend() string
}

type StateRepository interface {
	GetState(ctx context.Context, adminID int64) (*models.AdminState, error)
	SetState(ctx context.Context, state *models.AdminState) error
	ClearState(ctx context.Context, adminID int64) error
	CheckRateLimit(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error)
}

type StateManager interface {
	GetAdminState(ctx context.Context, adminID int64) (*models.AdminState, error)
	SetAdminState(ctx context.Context, adminID int64, step string) error
	ClearAdminState(ctx context.Context, adminID int64) error
	CheckRateLimit(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.UserEvent)
}

type TelegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	GetSelf() tgbotapi.User
	StopReceivingUpdates()
}

type TelegramService interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	SendMessage(chatID int64, text string) (tgbotapi.Message, error)
	SendWithKeyboard(chatID int64, text string, keyboard tgbotapi.ReplyKeyboardMarkup) (tgbotapi.Message, error)
	SendWithInlineKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) (tgbotapi.Message, error)
	EditMessage(chatID int64, messageID int, text string, keyboard *tgbotapi.InlineKeyboardMarkup) (tgbotapi.Message, error)
	AnswerCallback(callbackID string, text string) error
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	GetSelf() tgbotapi.User
	StopReceivingUpdates()
}
