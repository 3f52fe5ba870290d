package models

import "time"

// Статусы заявки. Pending — единственный статус при создании записи,
// остальные достижимы только действием администратора.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusBanned   = "banned"
	StatusRejected = "rejected"
)

// User — запись справочника: один пользователь Telegram, поделившийся номером.
type User struct {
	TelegramID  int64     `json:"telegram_id"`
	PhoneNumber string    `json:"phone_number"`
	FullName    string    `json:"full_name"`
	Username    string    `json:"username,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// StatusGlyph возвращает эмодзи статуса для списков в админ-панели.
func (u *User) StatusGlyph() string {
	switch u.Status {
	case StatusApproved:
		return "✅"
	case StatusPending:
		return "⏳"
	case StatusBanned:
		return "🚫"
	case StatusRejected:
		return "❌"
	default:
		return "❓"
	}
}

// Stats — агрегированные счетчики по статусам для админ-панели.
type Stats struct {
	Total    int
	Pending  int
	Approved int
	Banned   int
	Rejected int
}
