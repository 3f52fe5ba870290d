package models

const (
	// DefaultStateTTL время жизни незавершенного действия администратора
	DefaultStateTTL = 10 * 60 // 10 минут в секундах

	// PendingListLimit сколько заявок показывать в списке "Заявки"
	PendingListLimit = 10

	// RosterListLimit сколько пользователей показывать в списке "Все пользователи"
	RosterListLimit = 15

	// MaxMessageLength ограничение длины текста сообщения Telegram
	MaxMessageLength = 4000

	// RateLimitMessages количество сообщений в окне
	RateLimitMessages = 20

	// RateLimitWindow окно ограничения частоты сообщений
	RateLimitWindow = 60 // 1 минута в секундах
)
