package get_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/driveever/DriveEver-BookingService/internal/api/handlers"
	"github.com/driveever/DriveEver-BookingService/internal/service/availability"
)

const (
	msgInvalidInstructorID = "некорректный ID инструктора"
	msgInstructorNotFound  = "инструктор не найден"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/instructors/{instructorId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем instructorId из URL
	vars := mux.Vars(r)
	instructorIDStr := vars["instructorId"]

	instructorID, err := strconv.ParseInt(instructorIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /instructors/{id}/availability - Invalid instructor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInstructorID)
		return
	}

	// Получаем недельный шаблон доступности
	response, err := h.service.GetTemplate(r.Context(), instructorID)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInstructorNotFound):
			h.logger.Warn("GET /instructors/{id}/availability - Instructor not found: instructor_id=%d", instructorID)
			handlers.RespondNotFound(w, msgInstructorNotFound)

		default:
			h.logger.Error("GET /instructors/{id}/availability - Failed to get template: instructor_id=%d, error=%v",
				instructorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /instructors/{id}/availability - Template retrieved successfully: instructor_id=%d, rules=%d",
		instructorID, response.TotalRules)
	handlers.RespondJSON(w, http.StatusOK, response)
}
