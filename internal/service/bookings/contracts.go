package bookings

import (
	"context"
	"time"

	"github.com/driveever/DriveEver-BookingService/internal/domain"
	"github.com/driveever/DriveEver-BookingService/internal/integrations/userservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByLearnerID(ctx context.Context, learnerID int64) ([]*domain.Booking, error)
	GetByInstructorID(ctx context.Context, instructorID int64) ([]*domain.Booking, error)
	GetByInstructorAndRange(ctx context.Context, instructorID int64, startDate, endDate time.Time, statuses []domain.BookingStatus) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, cancelledAt time.Time) error
	UpdateDetails(ctx context.Context, id int64, lessonType, pickupLocation, dropoffLocation, notes *string) error
}

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	GetByInstructor(ctx context.Context, instructorID int64) ([]*domain.AvailabilityRule, error)
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	MarkRefunded(ctx context.Context, id int64, refundReference string) error
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetUser(ctx context.Context, userID int64) (*userservice.User, error)
	GetInstructorProfile(ctx context.Context, userID int64) (*userservice.InstructorProfile, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
