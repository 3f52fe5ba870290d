package models

// Шаги ожидания ввода от администратора. Пустой шаг означает отсутствие
// незавершенного действия.
const (
	StateAwaitingBanID   = "awaiting_ban_id"
	StateAwaitingUnbanID = "awaiting_unban_id"
)

// AdminState — короткоживущее ожидание: следующий текст от администратора
// трактуется как числовой id цели для бана/разбана.
type AdminState struct {
	AdminID int64  `json:"admin_id"`
	Step    string `json:"step"`
}
