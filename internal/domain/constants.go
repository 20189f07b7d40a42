package domain

import "time"

// Slot and booking constants
const (
	// SlotDurationMinutes шаг сетки слотов: слоты всегда генерируются
	// часовыми шагами от начала окна, без сдвига на частично занятые ячейки
	SlotDurationMinutes = 60

	// SlotDurationLabel метка длительности слота в ответах
	SlotDurationLabel = "1 hour"

	// CancellationCutoff минимальный интервал до начала урока,
	// после которого отмена запрещена
	CancellationCutoff = 24 * time.Hour

	// DurationToleranceHours допустимое расхождение между переданной
	// длительностью и разницей конца и начала (погрешность округления)
	DurationToleranceHours = 0.1

	// DefaultCalendarRangeDays период календаря инструктора по умолчанию
	DefaultCalendarRangeDays = 30

	// MaxNotesLength максимальная длина свободного текста в бронировании
	MaxNotesLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveBookingStatuses статусы, блокирующие время инструктора
// Используются при генерации слотов и проверке конфликтов
var ActiveBookingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// ValidBookingStatuses полный список допустимых статусов бронирования
var ValidBookingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}
