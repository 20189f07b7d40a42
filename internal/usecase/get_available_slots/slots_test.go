package get_available_slots

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driveever/DriveEver-BookingService/internal/domain"
	"github.com/driveever/DriveEver-BookingService/pkg/types"
)

func ts(t *testing.T, value string) types.TimeString {
	t.Helper()
	v, err := types.NewTimeStringFromString(value)
	require.NoError(t, err)
	return v
}

func rule(t *testing.T, start, end string) *domain.AvailabilityRule {
	t.Helper()
	return &domain.AvailabilityRule{
		StartTime:   ts(t, start),
		EndTime:     ts(t, end),
		IsAvailable: true,
	}
}

func activeBooking(t *testing.T, start, end string) *domain.Booking {
	t.Helper()
	return &domain.Booking{
		StartTime: ts(t, start),
		EndTime:   ts(t, end),
		Status:    domain.StatusConfirmed,
	}
}

func slotTimes(slots []domain.AvailableSlot) [][2]string {
	out := make([][2]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, [2]string{s.StartTime.String(), s.EndTime.String()})
	}
	return out
}

func TestGenerateSlots_FullDayWithoutBookings(t *testing.T) {
	rules := []*domain.AvailabilityRule{rule(t, "09:00", "17:00")}

	slots, err := generateSlots(rules, nil)
	require.NoError(t, err)

	require.Len(t, slots, 8)
	assert.Equal(t, "09:00", slots[0].StartTime.String())
	assert.Equal(t, "10:00", slots[0].EndTime.String())
	assert.Equal(t, "16:00", slots[7].StartTime.String())
	assert.Equal(t, "17:00", slots[7].EndTime.String())

	for _, s := range slots {
		assert.Equal(t, domain.SlotDurationLabel, s.Duration)
	}
}

func TestGenerateSlots_BookingRemovesExactlyOneSlot(t *testing.T) {
	rules := []*domain.AvailabilityRule{rule(t, "09:00", "17:00")}
	bookings := []*domain.Booking{activeBooking(t, "09:00", "10:00")}

	slots, err := generateSlots(rules, bookings)
	require.NoError(t, err)

	require.Len(t, slots, 7)
	assert.Equal(t, "10:00", slots[0].StartTime.String())
}

func TestGenerateSlots_PartialOverlapBlocksBothCells(t *testing.T) {
	// Бронирование 09:30-10:30 пересекает ячейки 09:00-10:00 и 10:00-11:00
	rules := []*domain.AvailabilityRule{rule(t, "09:00", "12:00")}
	bookings := []*domain.Booking{activeBooking(t, "09:30", "10:30")}

	slots, err := generateSlots(rules, bookings)
	require.NoError(t, err)

	assert.Equal(t, [][2]string{{"11:00", "12:00"}}, slotTimes(slots))
}

func TestGenerateSlots_TouchingBookingDoesNotBlock(t *testing.T) {
	// Полуоткрытые интервалы: бронирование 10:00-11:00 не блокирует
	// ни 09:00-10:00, ни 11:00-12:00
	rules := []*domain.AvailabilityRule{rule(t, "09:00", "12:00")}
	bookings := []*domain.Booking{activeBooking(t, "10:00", "11:00")}

	slots, err := generateSlots(rules, bookings)
	require.NoError(t, err)

	assert.Equal(t, [][2]string{{"09:00", "10:00"}, {"11:00", "12:00"}}, slotTimes(slots))
}

func TestGenerateSlots_GridDoesNotShiftAfterBlockedCell(t *testing.T) {
	// Сетка фиксирована от начала окна: после занятой ячейки следующая
	// начинается ровно через час от начала предыдущей, а не от конца
	// бронирования
	rules := []*domain.AvailabilityRule{rule(t, "09:00", "13:00")}
	bookings := []*domain.Booking{activeBooking(t, "09:00", "09:30")}

	slots, err := generateSlots(rules, bookings)
	require.NoError(t, err)

	assert.Equal(t, [][2]string{{"10:00", "11:00"}, {"11:00", "12:00"}, {"12:00", "13:00"}}, slotTimes(slots))
}

func TestGenerateSlots_LastCellTruncatedToWindowEnd(t *testing.T) {
	rules := []*domain.AvailabilityRule{rule(t, "09:00", "10:30")}

	slots, err := generateSlots(rules, nil)
	require.NoError(t, err)

	assert.Equal(t, [][2]string{{"09:00", "10:00"}, {"10:00", "10:30"}}, slotTimes(slots))
}

func TestGenerateSlots_WindowShorterThanSlotYieldsTruncatedCandidate(t *testing.T) {
	rules := []*domain.AvailabilityRule{rule(t, "09:00", "09:30")}

	slots, err := generateSlots(rules, nil)
	require.NoError(t, err)

	assert.Equal(t, [][2]string{{"09:00", "09:30"}}, slotTimes(slots))
}

func TestGenerateSlots_EmptyWindowYieldsNothing(t *testing.T) {
	rules := []*domain.AvailabilityRule{rule(t, "09:00", "09:00")}

	slots, err := generateSlots(rules, nil)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlots_OverlappingWindowsProduceDuplicates(t *testing.T) {
	// Окна обходятся независимо, дедупликация не выполняется
	rules := []*domain.AvailabilityRule{
		rule(t, "09:00", "11:00"),
		rule(t, "10:00", "12:00"),
	}

	slots, err := generateSlots(rules, nil)
	require.NoError(t, err)

	assert.Equal(t, [][2]string{
		{"09:00", "10:00"},
		{"10:00", "11:00"},
		{"10:00", "11:00"},
		{"11:00", "12:00"},
	}, slotTimes(slots))
}

func TestGenerateSlots_IgnoresInactiveBookings(t *testing.T) {
	rules := []*domain.AvailabilityRule{rule(t, "09:00", "11:00")}
	cancelled := activeBooking(t, "09:00", "10:00")
	cancelled.Status = domain.StatusCancelled
	completed := activeBooking(t, "10:00", "11:00")
	completed.Status = domain.StatusCompleted

	slots, err := generateSlots(rules, []*domain.Booking{cancelled, completed})
	require.NoError(t, err)

	assert.Equal(t, [][2]string{{"09:00", "10:00"}, {"10:00", "11:00"}}, slotTimes(slots))
}

func TestGenerateSlots_Deterministic(t *testing.T) {
	rules := []*domain.AvailabilityRule{
		rule(t, "08:00", "12:00"),
		rule(t, "14:00", "18:00"),
	}
	bookings := []*domain.Booking{
		activeBooking(t, "09:00", "10:00"),
		activeBooking(t, "15:30", "16:30"),
	}

	first, err := generateSlots(rules, bookings)
	require.NoError(t, err)
	second, err := generateSlots(rules, bookings)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
