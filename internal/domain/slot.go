package domain

import "github.com/driveever/DriveEver-BookingService/pkg/types"

// AvailableSlot конкретный часовой слот, доступный для бронирования
type AvailableSlot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Duration  string // метка длительности, всегда "1 hour"
}
