package bot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"lapgate/internal/models"

	"github.com/xuri/excelize/v2"
)

// exportUsersToExcel создает Excel файл со всеми пользователями справочника
func (b *Bot) exportUsersToExcel(_ context.Context, users []*models.User) (string, error) {
	// Создаем папку для экспорта, если не существует
	if err := os.MkdirAll(b.config.Exports.Path, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %v", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Пользователи"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	// Заголовки
	headers := []string{"Telegram ID", "Имя", "Телефон", "Username", "Статус", "Дата заявки"}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, header)
		_ = f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	// Данные пользователей
	for i, user := range users {
		row := i + 2
		_ = f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), user.TelegramID)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), user.FullName)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), "+"+user.PhoneNumber)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), user.Username)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), user.Status)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), user.CreatedAt.Format("02.01.2006 15:04"))
	}

	// Настраиваем ширину колонок
	_ = f.SetColWidth(sheetName, "A", "A", 15)
	_ = f.SetColWidth(sheetName, "B", "B", 25)
	_ = f.SetColWidth(sheetName, "C", "C", 18)
	_ = f.SetColWidth(sheetName, "D", "D", 20)
	_ = f.SetColWidth(sheetName, "E", "E", 12)
	_ = f.SetColWidth(sheetName, "F", "F", 20)

	// Удаляем стандартный лист
	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("users_export_%s.xlsx", time.Now().Format("2006-01-02_15-04-05"))
	filePath := filepath.Join(b.config.Exports.Path, fileName)

	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %v", err)
	}

	b.logger.Info().Str("file_path", filePath).Msg("Users Excel file created")
	return filePath, nil
}
