package update_availability

import (
	"github.com/driveever/DriveEver-BookingService/internal/service/availability/models"
)

// UpdateAvailabilityRequest тело запроса на замену недельного шаблона
type UpdateAvailabilityRequest struct {
	Rules []models.RuleInput `json:"availability"`
}

// ToServiceRequest конвертирует HTTP запрос в запрос сервисного слоя
func (r *UpdateAvailabilityRequest) ToServiceRequest(userID, instructorID int64) *models.ReplaceRequest {
	return &models.ReplaceRequest{
		UserID:       userID,
		InstructorID: instructorID,
		Rules:        r.Rules,
	}
}
