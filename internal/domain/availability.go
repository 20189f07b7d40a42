package domain

import (
	"time"

	"github.com/driveever/DriveEver-BookingService/pkg/types"
)

// AvailabilityRule еженедельное окно доступности инструктора
// Инструктор задает набор окон по дням недели, из которых генерируются слоты
type AvailabilityRule struct {
	ID           int64
	InstructorID int64
	DayOfWeek    int // 0=Monday .. 6=Sunday
	StartTime    types.TimeString
	EndTime      types.TimeString
	IsAvailable  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Contains returns true if the rule window fully contains [start, end]
// Бронирование должно целиком помещаться в одно окно: диапазон, накрытый
// только объединением двух соседних окон, не подходит
func (r *AvailabilityRule) Contains(start, end types.TimeString) bool {
	return !r.StartTime.IsAfter(start) && !r.EndTime.IsBefore(end)
}

// WeekdayIndex возвращает индекс дня недели в формате 0=Monday .. 6=Sunday
func WeekdayIndex(date time.Time) int {
	// time.Weekday: Sunday=0 .. Saturday=6
	return (int(date.Weekday()) + 6) % 7
}

var weekdayNames = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// WeekdayName возвращает английское название дня недели по индексу
func WeekdayName(dayOfWeek int) string {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return ""
	}
	return weekdayNames[dayOfWeek]
}
