package get_instructor_calendar

import (
	"context"

	"github.com/driveever/DriveEver-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetInstructorCalendar(ctx context.Context, req *models.GetCalendarRequest) (*models.CalendarResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
