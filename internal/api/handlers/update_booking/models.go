package update_booking

import "github.com/driveever/DriveEver-BookingService/internal/service/bookings/models"

// UpdateBookingRequest HTTP request model
// Обновлять можно только свободные поля урока; время, дата и цена неизменяемы
type UpdateBookingRequest struct {
	LessonType      *string `json:"lessonType,omitempty"`
	PickupLocation  *string `json:"pickupLocation,omitempty"`
	DropoffLocation *string `json:"dropoffLocation,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateBookingRequest) ToServiceRequest(userID int64) *models.UpdateDetailsRequest {
	return &models.UpdateDetailsRequest{
		UserID:          userID,
		LessonType:      r.LessonType,
		PickupLocation:  r.PickupLocation,
		DropoffLocation: r.DropoffLocation,
		Notes:           r.Notes,
	}
}
