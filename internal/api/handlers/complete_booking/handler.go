package complete_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/driveever/DriveEver-BookingService/internal/api/handlers"
	"github.com/driveever/DriveEver-BookingService/internal/api/middleware"
	"github.com/driveever/DriveEver-BookingService/internal/service/bookings"
)

const (
	msgUnauthorized     = "требуется аутентификация"
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
	msgOnlyInstructor   = "завершить урок может только инструктор"
	msgCannotComplete   = "завершить можно только подтвержденное бронирование"
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

// Handle POST /api/v1/bookings/{bookingId}/complete
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/complete - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	// Извлекаем bookingId из URL
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/complete - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	// Отмечаем урок проведенным
	booking, err := h.service.Complete(r.Context(), bookingID, userID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/complete - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrNotInstructorOnBooking):
			h.logger.Warn("POST /bookings/{id}/complete - Access denied: booking_id=%d, user_id=%d", bookingID, userID)
			handlers.RespondForbidden(w, msgOnlyInstructor)

		case errors.Is(err, bookings.ErrCannotComplete):
			h.logger.Warn("POST /bookings/{id}/complete - Cannot complete: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgCannotComplete)

		default:
			h.logger.Error("POST /bookings/{id}/complete - Failed to complete booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/complete - Booking completed successfully: booking_id=%d, instructor_id=%d",
		bookingID, userID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
