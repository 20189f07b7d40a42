package create_booking

import (
	"time"

	"github.com/driveever/DriveEver-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
// LearnerID берется из аутентифицированного пользователя, а не из тела запроса
type Request struct {
	LearnerID    int64            // ID ученика (инициатор запроса)
	InstructorID int64            // ID инструктора
	Date         time.Time        // Дата урока (без времени)
	StartTime    types.TimeString // Время начала урока, "10:00"
	EndTime      types.TimeString // Время конца урока, "11:00"

	// Опциональная длительность в часах; если не передана, вычисляется
	// как разница конца и начала
	DurationHours *float64

	LessonType      *string // например "First Lesson", "Test Preparation"
	PickupLocation  *string
	DropoffLocation *string
	Notes           *string
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID           int64
	LearnerID    int64
	InstructorID int64

	LessonDate    time.Time
	StartTime     types.TimeString
	EndTime       types.TimeString
	DurationHours float64
	Status        string

	// Цена зафиксирована из профиля инструктора на момент создания
	PricePerHour float64
	TotalPrice   float64

	LessonType      *string
	PickupLocation  *string
	DropoffLocation *string
	Notes           *string

	LearnerName    string
	InstructorName string

	CreatedAt time.Time
	UpdatedAt time.Time
}
