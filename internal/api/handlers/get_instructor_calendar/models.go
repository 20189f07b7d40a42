package get_instructor_calendar

import (
	"fmt"
	"time"

	"github.com/driveever/DriveEver-BookingService/internal/domain"
	"github.com/driveever/DriveEver-BookingService/internal/service/bookings/models"
)

// parseCalendarQuery разбирает опциональные start_date/end_date из query string
func parseCalendarQuery(instructorID int64, startDateStr, endDateStr string) (*models.GetCalendarRequest, error) {
	req := &models.GetCalendarRequest{InstructorID: instructorID}

	if startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, fmt.Errorf("invalid start_date %q: %w", startDateStr, err)
		}
		req.StartDate = &startDate
	}

	if endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, fmt.Errorf("invalid end_date %q: %w", endDateStr, err)
		}
		req.EndDate = &endDate
	}

	return req, nil
}
