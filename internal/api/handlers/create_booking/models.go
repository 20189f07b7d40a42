package create_booking

import (
	"time"

	"github.com/driveever/DriveEver-BookingService/internal/domain"
	createBooking "github.com/driveever/DriveEver-BookingService/internal/usecase/create_booking"
	"github.com/driveever/DriveEver-BookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
// ID ученика не принимается в теле: он берется из аутентифицированного запроса
type CreateBookingRequest struct {
	InstructorID  int64    `json:"instructorId"`
	LessonDate    string   `json:"lessonDate"` // "2026-03-02"
	StartTime     string   `json:"startTime"`  // "10:00"
	EndTime       string   `json:"endTime"`    // "11:00"
	DurationHours *float64 `json:"durationHours,omitempty"`

	LessonType      *string `json:"lessonType,omitempty"`
	PickupLocation  *string `json:"pickupLocation,omitempty"`
	DropoffLocation *string `json:"dropoffLocation,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	ID           int64 `json:"id"`
	LearnerID    int64 `json:"learnerId"`
	InstructorID int64 `json:"instructorId"`

	LessonDate    string  `json:"lessonDate"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	DurationHours float64 `json:"durationHours"`
	Status        string  `json:"status"`

	PricePerHour float64 `json:"pricePerHour"`
	TotalPrice   float64 `json:"totalPrice"`

	LessonType      *string `json:"lessonType,omitempty"`
	PickupLocation  *string `json:"pickupLocation,omitempty"`
	DropoffLocation *string `json:"dropoffLocation,omitempty"`
	Notes           *string `json:"notes,omitempty"`

	LearnerName    string `json:"learnerName"`
	InstructorName string `json:"instructorName"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP request в запрос use case
func (r *CreateBookingRequest) ToUseCaseRequest(learnerID int64) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.LessonDate)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		LearnerID:       learnerID,
		InstructorID:    r.InstructorID,
		Date:            date,
		StartTime:       types.TimeString(r.StartTime),
		EndTime:         types.TimeString(r.EndTime),
		DurationHours:   r.DurationHours,
		LessonType:      r.LessonType,
		PickupLocation:  r.PickupLocation,
		DropoffLocation: r.DropoffLocation,
		Notes:           r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		ID:              resp.ID,
		LearnerID:       resp.LearnerID,
		InstructorID:    resp.InstructorID,
		LessonDate:      resp.LessonDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationHours:   resp.DurationHours,
		Status:          resp.Status,
		PricePerHour:    resp.PricePerHour,
		TotalPrice:      resp.TotalPrice,
		LessonType:      resp.LessonType,
		PickupLocation:  resp.PickupLocation,
		DropoffLocation: resp.DropoffLocation,
		Notes:           resp.Notes,
		LearnerName:     resp.LearnerName,
		InstructorName:  resp.InstructorName,
		CreatedAt:       resp.CreatedAt,
		UpdatedAt:       resp.UpdatedAt,
	}
}
