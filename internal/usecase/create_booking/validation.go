package create_booking

import (
	"fmt"
	"math"
	"time"

	"github.com/driveever/DriveEver-BookingService/internal/domain"
	"github.com/driveever/DriveEver-BookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.LearnerID <= 0 {
		return fmt.Errorf("%w: learnerID must be positive", ErrInvalidInput)
	}

	if req.InstructorID <= 0 {
		return fmt.Errorf("%w: instructorID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.EndTime.IsZero() {
		return fmt.Errorf("%w: endTime is required", ErrInvalidInput)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	if req.DurationHours != nil && *req.DurationHours <= 0 {
		return fmt.Errorf("%w: durationHours must be positive", ErrInvalidInput)
	}

	if err := validateFreeText(req.LessonType, "lessonType"); err != nil {
		return err
	}
	if err := validateFreeText(req.PickupLocation, "pickupLocation"); err != nil {
		return err
	}
	if err := validateFreeText(req.DropoffLocation, "dropoffLocation"); err != nil {
		return err
	}
	if err := validateFreeText(req.Notes, "notes"); err != nil {
		return err
	}

	return nil
}

func validateFreeText(value *string, field string) error {
	if value != nil && len(*value) > domain.MaxNotesLength {
		return fmt.Errorf("%w: %s exceeds %d characters", ErrInvalidInput, field, domain.MaxNotesLength)
	}
	return nil
}

// validateTimeRange проверяет, что конец урока строго позже начала
func validateTimeRange(start, end types.TimeString) error {
	if !start.IsBefore(end) {
		return ErrInvalidTimeRange
	}
	return nil
}

// validateDate проверяет, что дата урока не в прошлом
// Сравниваются только даты: бронирование на сегодня допустимо
func validateDate(lessonDate, now time.Time) error {
	dateOnly := time.Date(lessonDate.Year(), lessonDate.Month(), lessonDate.Day(), 0, 0, 0, 0, lessonDate.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, lessonDate.Location())
	if dateOnly.Before(nowOnly) {
		return ErrDateInPast
	}
	return nil
}

// validateAvailability проверяет, что интервал целиком помещается хотя бы
// в одно окно доступности
// Диапазон, накрытый только объединением соседних окон, не подходит
func validateAvailability(rules []*domain.AvailabilityRule, start, end types.TimeString) error {
	for _, rule := range rules {
		if rule.Contains(start, end) {
			return nil
		}
	}
	return ErrInstructorNotAvailable
}

// validateNoConflicts проверяет отсутствие пересечений с активными бронированиями
// Интервалы полуоткрытые: граничащие бронирования конфликтом не считаются
func validateNoConflicts(bookings []*domain.Booking, start, end types.TimeString) error {
	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}
		if booking.Overlaps(start, end) {
			return ErrTimeSlotConflict
		}
	}
	return nil
}

// resolveDuration вычисляет длительность урока в часах
// Если длительность передана явно, она должна совпадать с разницей конца
// и начала в пределах допуска
func resolveDuration(start, end types.TimeString, requested *float64) (float64, error) {
	startMin, err := start.Minutes()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	endMin, err := end.Minutes()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	computed := float64(endMin-startMin) / 60.0

	if requested == nil {
		return computed, nil
	}

	if math.Abs(*requested-computed) > domain.DurationToleranceHours {
		return 0, fmt.Errorf("%w: requested %.1fh, interval is %.1fh", ErrDurationMismatch, *requested, computed)
	}

	return *requested, nil
}
