package get_available_slots

import (
	"time"

	"github.com/driveever/DriveEver-BookingService/internal/domain"
	getAvailableSlots "github.com/driveever/DriveEver-BookingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	InstructorID   int64           `json:"instructorId"`
	InstructorName string          `json:"instructorName"`
	Date           string          `json:"date"`
	AvailableSlots []AvailableSlot `json:"availableSlots"`
	TotalSlots     int             `json:"totalSlots"`
	Message        string          `json:"message,omitempty"`
}

// AvailableSlot модель свободного часового слота
type AvailableSlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Duration  string `json:"duration"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
			Duration:  slot.Duration,
		}
	}

	return &AvailableSlotsResponse{
		InstructorID:   resp.InstructorID,
		InstructorName: resp.InstructorName,
		Date:           resp.Date.Format(domain.DateFormat),
		AvailableSlots: slots,
		TotalSlots:     resp.TotalSlots,
		Message:        resp.Message,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(instructorID int64, dateStr string) (*getAvailableSlots.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		InstructorID: instructorID,
		Date:         date,
	}, nil
}
