package availability

import (
	"context"

	"github.com/driveever/DriveEver-BookingService/internal/domain"
	"github.com/driveever/DriveEver-BookingService/internal/integrations/userservice"
)

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	GetByInstructor(ctx context.Context, instructorID int64) ([]*domain.AvailabilityRule, error)
	ReplaceForInstructor(ctx context.Context, instructorID int64, rules []*domain.AvailabilityRule) ([]*domain.AvailabilityRule, error)
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

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
