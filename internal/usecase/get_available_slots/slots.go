package get_available_slots

import (
	"github.com/driveever/DriveEver-BookingService/internal/domain"
	"github.com/driveever/DriveEver-BookingService/pkg/types"
)

// generateSlots генерирует свободные часовые слоты по окнам доступности,
// вычитая занятые бронированиями интервалы
//
// Обход каждого окна идет фиксированной часовой сеткой от его начала:
// шаг всегда ровно час, независимо от того, был ли предыдущий кандидат
// свободен. Бронирование, частично накрывающее ячейку сетки, не сдвигает
// последующие ячейки - остаток свободного времени внутри занятой ячейки
// теряется. Последняя ячейка усекается до конца окна.
//
// Пересекающиеся окна одного дня обходятся независимо и могут дать
// дублирующиеся слоты; дедупликация не выполняется.
func generateSlots(rules []*domain.AvailabilityRule, bookings []*domain.Booking) ([]domain.AvailableSlot, error) {
	slots := make([]domain.AvailableSlot, 0)

	for _, rule := range rules {
		windowStart, err := rule.StartTime.Minutes()
		if err != nil {
			return nil, err
		}
		windowEnd, err := rule.EndTime.Minutes()
		if err != nil {
			return nil, err
		}

		for current := windowStart; current < windowEnd; current += domain.SlotDurationMinutes {
			candidateEnd := current + domain.SlotDurationMinutes
			if candidateEnd > windowEnd {
				candidateEnd = windowEnd
			}

			startTime, err := types.NewTimeStringFromMinutes(current)
			if err != nil {
				return nil, err
			}
			endTime, err := types.NewTimeStringFromMinutes(candidateEnd)
			if err != nil {
				return nil, err
			}

			if hasOverlappingBooking(startTime, endTime, bookings) {
				continue
			}

			slots = append(slots, domain.AvailableSlot{
				StartTime: startTime,
				EndTime:   endTime,
				Duration:  domain.SlotDurationLabel,
			})
		}
	}

	return slots, nil
}

// hasOverlappingBooking проверяет, пересекает ли кандидат хотя бы одно
// активное бронирование
//
// Интервалы полуоткрытые: пересечение есть, только если начало бронирования
// СТРОГО раньше конца кандидата И конец бронирования СТРОГО позже начала
// кандидата. Граничащие интервалы (конец одного равен началу другого)
// пересечением не считаются:
// - Слот 11:00-12:00, бронирование 11:30-12:30 → ЕСТЬ пересечение
// - Слот 11:00-12:00, бронирование 10:00-11:00 → НЕТ пересечения (граничат)
// - Слот 11:00-12:00, бронирование 12:00-13:00 → НЕТ пересечения (граничат)
func hasOverlappingBooking(candidateStart, candidateEnd types.TimeString, bookings []*domain.Booking) bool {
	for _, booking := range bookings {
		// Пропускаем неактивные бронирования (отмененные, завершенные)
		if !booking.IsActive() {
			continue
		}

		if booking.Overlaps(candidateStart, candidateEnd) {
			return true
		}
	}

	return false
}
