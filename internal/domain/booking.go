package domain

import (
	"time"

	"github.com/driveever/DriveEver-BookingService/pkg/types"
)

// BookingStatus represents the status of a lesson booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusNoShow    BookingStatus = "no_show"
)

// Booking represents a driving lesson booked by a learner with an instructor
type Booking struct {
	ID           int64
	LearnerID    int64
	InstructorID int64

	LessonDate    time.Time
	StartTime     types.TimeString
	EndTime       types.TimeString
	DurationHours float64

	Status    BookingStatus
	PaymentID *int64

	// Цена фиксируется в момент создания и не меняется при изменении профиля инструктора
	PricePerHour float64
	TotalPrice   float64

	LessonType      *string // например "First Lesson", "Test Preparation"
	PickupLocation  *string
	DropoffLocation *string
	Notes           *string

	// Denormalized data for history
	LearnerName    string
	InstructorName string

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive returns true if the booking blocks the instructor's time slot
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeConfirmed returns true if the booking can transition to confirmed
func (b *Booking) CanBeConfirmed() bool {
	return b.Status == StatusPending
}

// CanBeCompleted returns true if the booking can transition to completed
func (b *Booking) CanBeCompleted() bool {
	return b.Status == StatusConfirmed
}

// CanBeCancelled returns true if the booking can transition to cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsTerminal returns true if no further transitions are possible
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled || b.Status == StatusNoShow
}

// IsParty returns true if the user is the learner or the instructor on the booking
func (b *Booking) IsParty(userID int64) bool {
	return b.LearnerID == userID || b.InstructorID == userID
}

// LessonStart возвращает момент начала урока (дата + время начала)
func (b *Booking) LessonStart() time.Time {
	minutes, err := b.StartTime.Minutes()
	if err != nil {
		minutes = 0
	}
	return time.Date(
		b.LessonDate.Year(), b.LessonDate.Month(), b.LessonDate.Day(),
		minutes/60, minutes%60, 0, 0, b.LessonDate.Location(),
	)
}

// Overlaps проверяет пересечение с полуоткрытым интервалом [start, end)
// Граничные случаи (конец одного равен началу другого) пересечением не считаются
func (b *Booking) Overlaps(start, end types.TimeString) bool {
	return b.StartTime.IsBefore(end) && b.EndTime.IsAfter(start)
}
