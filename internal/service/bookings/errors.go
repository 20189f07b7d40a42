package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrInstructorNotFound возвращается, когда инструктор не найден
	ErrInstructorNotFound = errors.New("instructor not found")

	// ErrAccessDenied возвращается, когда пользователь не является участником бронирования
	ErrAccessDenied = errors.New("access denied")

	// ErrNotInstructorOnBooking возвращается, когда переход статуса пытается
	// выполнить не инструктор этого бронирования
	ErrNotInstructorOnBooking = errors.New("only the instructor can perform this action")

	// ErrCannotConfirm возвращается при подтверждении не-pending бронирования
	ErrCannotConfirm = errors.New("only pending bookings can be confirmed")

	// ErrCannotComplete возвращается при завершении не-confirmed бронирования
	ErrCannotComplete = errors.New("only confirmed bookings can be completed")

	// ErrCannotCancel возвращается при отмене бронирования в терминальном статусе
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrCancellationCutoff возвращается при отмене менее чем за 24 часа до урока
	ErrCancellationCutoff = errors.New("bookings cannot be cancelled within 24 hours of the lesson")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
