package models

import (
	"time"

	"github.com/driveever/DriveEver-BookingService/internal/domain"
)

// Request модели

// UpdateDetailsRequest запрос на частичное обновление деталей урока
// Обновлять можно только свободные поля; время, дата и цена неизменяемы
type UpdateDetailsRequest struct {
	UserID          int64   `json:"-"`
	LessonType      *string `json:"lessonType,omitempty"`
	PickupLocation  *string `json:"pickupLocation,omitempty"`
	DropoffLocation *string `json:"dropoffLocation,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// GetCalendarRequest запрос календаря инструктора за период
type GetCalendarRequest struct {
	InstructorID int64
	StartDate    *time.Time // По умолчанию сегодня
	EndDate      *time.Time // По умолчанию startDate + 30 дней
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID           int64 `json:"id"`
	LearnerID    int64 `json:"learnerId"`
	InstructorID int64 `json:"instructorId"`

	LessonDate    string  `json:"lessonDate"` // "2026-03-02"
	StartTime     string  `json:"startTime"`  // "10:00"
	EndTime       string  `json:"endTime"`    // "11:00"
	DurationHours float64 `json:"durationHours"`
	Status        string  `json:"status"`

	PaymentID    *int64  `json:"paymentId,omitempty"`
	PricePerHour float64 `json:"pricePerHour"`
	TotalPrice   float64 `json:"totalPrice"`

	LessonType      *string `json:"lessonType,omitempty"`
	PickupLocation  *string `json:"pickupLocation,omitempty"`
	DropoffLocation *string `json:"dropoffLocation,omitempty"`
	Notes           *string `json:"notes,omitempty"`

	LearnerName    string `json:"learnerName"`
	InstructorName string `json:"instructorName"`

	CancelledAt *string   `json:"cancelledAt,omitempty"` // ISO 8601 format
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// MyBookingsResponse история бронирований пользователя с обеих сторон
// Для не-инструкторов instructorBookings всегда пустой список
type MyBookingsResponse struct {
	LearnerBookings    []BookingResponse `json:"learnerBookings"`
	InstructorBookings []BookingResponse `json:"instructorBookings"`
	TotalBookings      int               `json:"totalBookings"`
}

// CalendarDay один день календаря инструктора
type CalendarDay struct {
	Date         string               `json:"date"`    // "2026-03-02"
	DayName      string               `json:"dayName"` // "Monday"
	Availability []CalendarWindow     `json:"availability"`
	Bookings     []CalendarDayBooking `json:"bookings"`
}

// CalendarWindow окно доступности в календаре
type CalendarWindow struct {
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	IsAvailable bool   `json:"isAvailable"`
}

// CalendarDayBooking бронирование в календаре
type CalendarDayBooking struct {
	ID          int64   `json:"id"`
	StartTime   string  `json:"startTime"`
	EndTime     string  `json:"endTime"`
	LearnerName string  `json:"learnerName"`
	Status      string  `json:"status"`
	LessonType  *string `json:"lessonType,omitempty"`
}

// CalendarResponse календарь инструктора за период
type CalendarResponse struct {
	InstructorID   int64         `json:"instructorId"`
	InstructorName string        `json:"instructorName"`
	StartDate      string        `json:"startDate"`
	EndDate        string        `json:"endDate"`
	Calendar       []CalendarDay `json:"calendar"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:              b.ID,
		LearnerID:       b.LearnerID,
		InstructorID:    b.InstructorID,
		LessonDate:      b.LessonDate.Format(domain.DateFormat),
		StartTime:       b.StartTime.String(),
		EndTime:         b.EndTime.String(),
		DurationHours:   b.DurationHours,
		Status:          string(b.Status),
		PaymentID:       b.PaymentID,
		PricePerHour:    b.PricePerHour,
		TotalPrice:      b.TotalPrice,
		LessonType:      b.LessonType,
		PickupLocation:  b.PickupLocation,
		DropoffLocation: b.DropoffLocation,
		Notes:           b.Notes,
		LearnerName:     b.LearnerName,
		InstructorName:  b.InstructorName,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) []BookingResponse {
	resp := make([]BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp = append(resp, *bookingResp)
		}
	}
	return resp
}
