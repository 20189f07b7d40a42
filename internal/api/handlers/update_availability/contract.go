package update_availability

import (
	"context"

	"github.com/driveever/DriveEver-BookingService/internal/service/availability/models"
)

type AvailabilityService interface {
	Replace(ctx context.Context, req *models.ReplaceRequest) (*models.TemplateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
