package update_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/driveever/DriveEver-BookingService/internal/api/handlers"
	"github.com/driveever/DriveEver-BookingService/internal/api/middleware"
	"github.com/driveever/DriveEver-BookingService/internal/service/availability"
)

const (
	msgUnauthorized        = "требуется аутентификация"
	msgInvalidInstructorID = "некорректный ID инструктора"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInstructorNotFound  = "инструктор не найден"
	msgNotOwner            = "изменять шаблон может только его владелец"
	msgNotAnInstructor     = "управлять доступностью могут только инструкторы"
	msgDuplicateRule       = "дублирующееся окно доступности"
	msgInvalidRules        = "некорректные окна доступности"
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

// Handle PUT /api/v1/instructors/{instructorId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("PUT /instructors/{id}/availability - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	// Извлекаем instructorId из URL
	vars := mux.Vars(r)
	instructorIDStr := vars["instructorId"]

	instructorID, err := strconv.ParseInt(instructorIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /instructors/{id}/availability - Invalid instructor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInstructorID)
		return
	}

	var req UpdateAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /instructors/{id}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Заменяем недельный шаблон целиком
	response, err := h.service.Replace(r.Context(), req.ToServiceRequest(userID, instructorID))
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInstructorNotFound):
			h.logger.Warn("PUT /instructors/{id}/availability - Instructor not found: instructor_id=%d", instructorID)
			handlers.RespondNotFound(w, msgInstructorNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("PUT /instructors/{id}/availability - Access denied: instructor_id=%d, user_id=%d",
				instructorID, userID)
			handlers.RespondForbidden(w, msgNotOwner)

		case errors.Is(err, availability.ErrNotAnInstructor):
			h.logger.Warn("PUT /instructors/{id}/availability - Not an instructor: user_id=%d", userID)
			handlers.RespondForbidden(w, msgNotAnInstructor)

		case errors.Is(err, availability.ErrDuplicateRule):
			h.logger.Warn("PUT /instructors/{id}/availability - Duplicate rule: instructor_id=%d, error=%v",
				instructorID, err)
			handlers.RespondBadRequest(w, msgDuplicateRule)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("PUT /instructors/{id}/availability - Invalid rules: instructor_id=%d, error=%v",
				instructorID, err)
			handlers.RespondBadRequest(w, msgInvalidRules)

		default:
			h.logger.Error("PUT /instructors/{id}/availability - Failed to replace template: instructor_id=%d, error=%v",
				instructorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /instructors/{id}/availability - Template replaced successfully: instructor_id=%d, rules=%d",
		instructorID, response.TotalRules)
	handlers.RespondJSON(w, http.StatusOK, response)
}
