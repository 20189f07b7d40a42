package get_available_slots

import (
	"context"
	"time"

	"github.com/driveever/DriveEver-BookingService/internal/domain"
	"github.com/driveever/DriveEver-BookingService/internal/integrations/userservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetByInstructorAndDate получает бронирования инструктора на дату с фильтром по статусам
	GetByInstructorAndDate(ctx context.Context, instructorID int64, date time.Time, statuses []domain.BookingStatus) ([]*domain.Booking, error)
}

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	// GetActiveForWeekday получает активные окна инструктора на день недели
	GetActiveForWeekday(ctx context.Context, instructorID int64, dayOfWeek int) ([]*domain.AvailabilityRule, error)
}

// UserServiceClient интерфейс клиента UserService
type UserServiceClient interface {
	GetInstructorProfile(ctx context.Context, userID int64) (*userservice.InstructorProfile, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
