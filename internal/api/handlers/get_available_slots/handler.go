package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/driveever/DriveEver-BookingService/internal/api/handlers"
	getAvailableSlots "github.com/driveever/DriveEver-BookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidInstructorID = "некорректный ID инструктора"
	msgMissingDate         = "дата обязательна"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInstructorNotFound  = "инструктор не найден или неактивен"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/instructors/{instructorId}/available-slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем instructorId из URL
	instructorIDStr := vars["instructorId"]
	instructorID, err := strconv.ParseInt(instructorIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /instructors/{id}/available-slots - Invalid instructor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInstructorID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /instructors/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(instructorID, dateStr)
	if err != nil {
		h.logger.Warn("GET /instructors/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInstructorNotFound):
			h.logger.Warn("GET /instructors/{id}/available-slots - Instructor not found: instructor_id=%d", instructorID)
			handlers.RespondNotFound(w, msgInstructorNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /instructors/{id}/available-slots - Invalid input: instructor_id=%d, error=%v", instructorID, err)
			handlers.RespondBadRequest(w, msgInvalidInstructorID)

		default:
			h.logger.Error("GET /instructors/{id}/available-slots - Failed to get slots: instructor_id=%d, date=%s, error=%v",
				instructorID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /instructors/{id}/available-slots - Slots retrieved successfully: instructor_id=%d, date=%s, slots_count=%d",
		instructorID, dateStr, result.TotalSlots)
	handlers.RespondJSON(w, http.StatusOK, response)
}
