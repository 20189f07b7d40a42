package get_available_slots

import (
	"time"

	"github.com/driveever/DriveEver-BookingService/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	InstructorID int64     // ID инструктора
	Date         time.Time // Дата урока (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	InstructorID   int64                  // ID инструктора
	InstructorName string                 // Имя инструктора
	Date           time.Time              // Дата, на которую запрашивались слоты
	Slots          []domain.AvailableSlot // Свободные часовые слоты по возрастанию времени
	TotalSlots     int                    // Количество свободных слотов
	Message        string                 // "No availability for this date" при пустом шаблоне
}
