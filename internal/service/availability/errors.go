package availability

import "errors"

var (
	// ErrInstructorNotFound возвращается, когда инструктор не найден
	ErrInstructorNotFound = errors.New("instructor not found")

	// ErrAccessDenied возвращается, когда шаблон пытается изменить не его владелец
	ErrAccessDenied = errors.New("access denied")

	// ErrNotAnInstructor возвращается, когда шаблон пытается задать пользователь без роли instructor
	ErrNotAnInstructor = errors.New("only instructors can manage availability")

	// ErrDuplicateRule возвращается при двух окнах с одинаковым днем и временем начала
	ErrDuplicateRule = errors.New("duplicate availability rule for day and start time")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
