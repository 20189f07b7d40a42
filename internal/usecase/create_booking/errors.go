package create_booking

import "errors"

var (
	// ErrNotALearner возвращается, когда бронирование пытается создать
	// не ученик (инструктор или автошкола)
	ErrNotALearner = errors.New("create_booking: only learners can create bookings")

	// ErrLearnerNotFound возвращается, когда пользователь-инициатор не найден
	ErrLearnerNotFound = errors.New("create_booking: learner not found")

	// ErrInstructorNotFound возвращается, когда инструктор или его профиль не найдены
	ErrInstructorNotFound = errors.New("create_booking: instructor not found")

	// ErrInvalidTimeRange возвращается, когда время конца не позже времени начала
	ErrInvalidTimeRange = errors.New("create_booking: end time must be after start time")

	// ErrDateInPast возвращается, когда дата урока раньше сегодняшней
	ErrDateInPast = errors.New("create_booking: lesson date cannot be in the past")

	// ErrInstructorNotAvailable возвращается, когда запрошенный интервал не
	// помещается целиком ни в одно окно доступности инструктора
	ErrInstructorNotAvailable = errors.New("create_booking: instructor is not available at the selected time")

	// ErrTimeSlotConflict возвращается, когда интервал пересекается с активным бронированием
	ErrTimeSlotConflict = errors.New("create_booking: time slot conflicts with an existing booking")

	// ErrDurationMismatch возвращается, когда переданная длительность
	// расходится с разницей конца и начала больше допуска
	ErrDurationMismatch = errors.New("create_booking: duration does not match start and end times")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
