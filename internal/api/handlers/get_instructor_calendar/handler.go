package get_instructor_calendar

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/driveever/DriveEver-BookingService/internal/api/handlers"
	"github.com/driveever/DriveEver-BookingService/internal/service/bookings"
)

const (
	msgInvalidInstructorID = "некорректный ID инструктора"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange        = "некорректный диапазон дат"
	msgInstructorNotFound  = "инструктор не найден"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/instructors/{instructorId}/calendar?start_date=YYYY-MM-DD&end_date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем instructorId из URL
	vars := mux.Vars(r)
	instructorIDStr := vars["instructorId"]

	instructorID, err := strconv.ParseInt(instructorIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /instructors/{id}/calendar - Invalid instructor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInstructorID)
		return
	}

	query := r.URL.Query()
	req, err := parseCalendarQuery(instructorID, query.Get("start_date"), query.Get("end_date"))
	if err != nil {
		h.logger.Warn("GET /instructors/{id}/calendar - Invalid date parameter: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Получаем календарь инструктора
	response, err := h.service.GetInstructorCalendar(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInstructorNotFound):
			h.logger.Warn("GET /instructors/{id}/calendar - Instructor not found: instructor_id=%d", instructorID)
			handlers.RespondNotFound(w, msgInstructorNotFound)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /instructors/{id}/calendar - Invalid range: instructor_id=%d, error=%v", instructorID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /instructors/{id}/calendar - Failed to get calendar: instructor_id=%d, error=%v",
				instructorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /instructors/{id}/calendar - Calendar retrieved successfully: instructor_id=%d, days=%d",
		instructorID, len(response.Calendar))
	handlers.RespondJSON(w, http.StatusOK, response)
}
