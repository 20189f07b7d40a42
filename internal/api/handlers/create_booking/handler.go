package create_booking

import (
	"errors"
	"net/http"

	"github.com/driveever/DriveEver-BookingService/internal/api/handlers"
	"github.com/driveever/DriveEver-BookingService/internal/api/middleware"
	createBooking "github.com/driveever/DriveEver-BookingService/internal/usecase/create_booking"
)

const (
	msgUnauthorized           = "требуется аутентификация"
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgInvalidDate            = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgOnlyLearners           = "создавать бронирования могут только ученики"
	msgInstructorNotFound     = "инструктор не найден"
	msgInvalidTimeRange       = "время конца должно быть позже времени начала"
	msgDateInPast             = "дата урока не может быть в прошлом"
	msgInstructorNotAvailable = "инструктор недоступен в выбранное время"
	msgTimeSlotConflict       = "выбранное время уже занято"
	msgDurationMismatch       = "длительность не соответствует времени начала и конца"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// ID ученика приходит из Auth middleware
	learnerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	// Декодируем body
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем в запрос use case
	useCaseReq, err := req.ToUseCaseRequest(learnerID)
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrNotALearner):
			h.logger.Warn("POST /bookings - User is not a learner: user_id=%d", learnerID)
			handlers.RespondForbidden(w, msgOnlyLearners)

		case errors.Is(err, createBooking.ErrLearnerNotFound):
			h.logger.Warn("POST /bookings - Learner not found: user_id=%d", learnerID)
			handlers.RespondForbidden(w, msgOnlyLearners)

		case errors.Is(err, createBooking.ErrInstructorNotFound):
			h.logger.Warn("POST /bookings - Instructor not found: instructor_id=%d", req.InstructorID)
			handlers.RespondNotFound(w, msgInstructorNotFound)

		case errors.Is(err, createBooking.ErrInvalidTimeRange):
			h.logger.Warn("POST /bookings - Invalid time range: %s-%s", req.StartTime, req.EndTime)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, createBooking.ErrDateInPast):
			h.logger.Warn("POST /bookings - Date in past: date=%s", req.LessonDate)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createBooking.ErrInstructorNotAvailable):
			h.logger.Warn("POST /bookings - Instructor not available: instructor_id=%d, date=%s, time=%s-%s",
				req.InstructorID, req.LessonDate, req.StartTime, req.EndTime)
			handlers.RespondBadRequest(w, msgInstructorNotAvailable)

		case errors.Is(err, createBooking.ErrTimeSlotConflict):
			h.logger.Warn("POST /bookings - Time slot conflict: instructor_id=%d, date=%s, time=%s-%s",
				req.InstructorID, req.LessonDate, req.StartTime, req.EndTime)
			handlers.RespondConflict(w, msgTimeSlotConflict)

		case errors.Is(err, createBooking.ErrDurationMismatch):
			h.logger.Warn("POST /bookings - Duration mismatch: instructor_id=%d, time=%s-%s",
				req.InstructorID, req.StartTime, req.EndTime)
			handlers.RespondBadRequest(w, msgDurationMismatch)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: learner_id=%d, error=%v", learnerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, learner_id=%d, instructor_id=%d",
		result.ID, learnerID, req.InstructorID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
