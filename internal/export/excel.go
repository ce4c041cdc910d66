package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

const bookingsSheet = "Бронирования"

// Exporter выгружает бронирования за период в Excel-файл.
type Exporter struct {
	bookings domain.BookingStore
	items    domain.ItemCatalog
	users    domain.UserDirectory
	path     string
	logger   *zerolog.Logger
}

func NewExporter(bookings domain.BookingStore, items domain.ItemCatalog, users domain.UserDirectory, path string, logger *zerolog.Logger) *Exporter {
	return &Exporter{
		bookings: bookings,
		items:    items,
		users:    users,
		path:     path,
		logger:   logger,
	}
}

// ExportBookings создает файл export_<start>_to_<end>.xlsx и возвращает путь к нему.
func (e *Exporter) ExportBookings(ctx context.Context, startDate, endDate time.Time) (string, error) {
	// Создаем папку для экспорта, если не существует
	if err := os.MkdirAll(e.path, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %v", err)
	}

	bookings, err := e.bookings.GetBookingsByDateRange(ctx, startDate, endDate)
	if err != nil {
		return "", fmt.Errorf("error getting bookings: %v", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(bookingsSheet)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	// Заголовок периода
	_ = f.SetCellValue(bookingsSheet, "A1", fmt.Sprintf("Период: %s - %s",
		startDate.Format("02.01.2006"), endDate.Format("02.01.2006")))
	_ = f.MergeCell(bookingsSheet, "A1", "G1")

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(bookingsSheet, "A1", "A1", titleStyle)

	e.writeHeaders(f)
	e.writeRows(ctx, f, bookings)

	_ = f.SetColWidth(bookingsSheet, "A", "A", 8)
	_ = f.SetColWidth(bookingsSheet, "B", "C", 25)
	_ = f.SetColWidth(bookingsSheet, "D", "E", 15)
	_ = f.SetColWidth(bookingsSheet, "F", "F", 12)
	_ = f.SetColWidth(bookingsSheet, "G", "G", 30)

	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("export_%s_to_%s.xlsx",
		startDate.Format("2006-01-02"),
		endDate.Format("2006-01-02"))
	filePath := filepath.Join(e.path, fileName)

	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %v", err)
	}

	e.logger.Info().Str("file_path", filePath).Int("bookings", len(bookings)).Msg("Excel file created")
	return filePath, nil
}

func (e *Exporter) writeHeaders(f *excelize.File) {
	headers := []string{"ID", "Вещь", "Арендатор", "Начало", "Окончание", "Статус", "Email"}

	style, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		_ = f.SetCellValue(bookingsSheet, cell, header)
		_ = f.SetCellStyle(bookingsSheet, cell, cell, style)
	}
}

func (e *Exporter) writeRows(ctx context.Context, f *excelize.File, bookings []*models.Booking) {
	row := 3
	for _, booking := range bookings {
		itemName := e.itemName(ctx, booking.ItemID)
		bookerName, bookerEmail := e.bookerInfo(ctx, booking.BookerID)

		_ = f.SetCellValue(bookingsSheet, fmt.Sprintf("A%d", row), booking.ID)
		_ = f.SetCellValue(bookingsSheet, fmt.Sprintf("B%d", row), itemName)
		_ = f.SetCellValue(bookingsSheet, fmt.Sprintf("C%d", row), bookerName)
		_ = f.SetCellValue(bookingsSheet, fmt.Sprintf("D%d", row), booking.Start.Format("02.01.2006"))
		_ = f.SetCellValue(bookingsSheet, fmt.Sprintf("E%d", row), booking.End.Format("02.01.2006"))
		_ = f.SetCellValue(bookingsSheet, fmt.Sprintf("F%d", row), booking.Status)
		_ = f.SetCellValue(bookingsSheet, fmt.Sprintf("G%d", row), bookerEmail)

		if styleID, err := statusStyle(f, booking.Status); err == nil {
			cell := fmt.Sprintf("F%d", row)
			_ = f.SetCellStyle(bookingsSheet, cell, cell, styleID)
		}
		row++
	}
}

func (e *Exporter) itemName(ctx context.Context, itemID int64) string {
	item, err := e.items.GetItem(ctx, itemID)
	if err != nil {
		e.logger.Error().Err(err).Int64("item_id", itemID).Msg("Error getting item for export")
		return fmt.Sprintf("#%d", itemID)
	}
	return item.Name
}

func (e *Exporter) bookerInfo(ctx context.Context, bookerID int64) (string, string) {
	user, err := e.users.GetUser(ctx, bookerID)
	if err != nil {
		e.logger.Error().Err(err).Int64("user_id", bookerID).Msg("Error getting user for export")
		return fmt.Sprintf("#%d", bookerID), ""
	}
	return user.Name, user.Email
}

// statusStyle возвращает заливку по статусу: зеленый — подтверждено,
// желтый — ожидает, красный — отклонено.
func statusStyle(f *excelize.File, status string) (int, error) {
	var color string
	switch status {
	case models.StatusApproved:
		color = "#C6EFCE"
	case models.StatusWaiting:
		color = "#FFEB9C"
	case models.StatusRejected, models.StatusCanceled:
		color = "#FFC7CE"
	default:
		color = "#FFFFFF"
	}

	return f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
}
