package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/driveever/DriveEver-BookingService/internal/domain"
	bookingRepo "github.com/driveever/DriveEver-BookingService/internal/infra/storage/booking"
	userClient "github.com/driveever/DriveEver-BookingService/internal/integrations/userservice"
)

// UseCase use case для создания бронирования урока
type UseCase struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	userClient       UserServiceClient
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	userClient UserServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		userClient:       userClient,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case создания бронирования
// Использует сериализуемую транзакцию для предотвращения гонки данных:
// два конкурентных запроса на один интервал не могут пройти проверку
// пересечений одновременно
//
// Порядок проверок фиксирован: роль, затем порядок времени, затем дата,
// затем доступность инструктора, затем конфликты. Запрос с несколькими
// нарушениями получает ошибку первой проверки по этому порядку
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: learner=%d, instructor=%d, date=%s, time=%s-%s",
		req.LearnerID, req.InstructorID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем, что инициатор существует и является учеником
	learner, err := uc.userClient.GetUser(ctx, req.LearnerID)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			uc.logger.Warn("CreateBooking: learner id=%d not found", req.LearnerID)
			return nil, ErrLearnerNotFound
		}
		uc.logger.Error("CreateBooking: failed to get learner id=%d: %v", req.LearnerID, err)
		return nil, fmt.Errorf("%w: failed to get learner: %v", ErrInternal, err)
	}

	if !learner.Role.CanCreateBookings() {
		uc.logger.Warn("CreateBooking: user id=%d with role=%s cannot create bookings",
			req.LearnerID, learner.Role)
		return nil, ErrNotALearner
	}

	// 4. Проверяем порядок времени
	if err := validateTimeRange(req.StartTime, req.EndTime); err != nil {
		uc.logger.Warn("CreateBooking: invalid time range %s-%s", req.StartTime, req.EndTime)
		return nil, err
	}

	// 5. Проверяем, что дата не в прошлом
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, err
	}

	// 6. Получаем профиль инструктора: фиксируем цену на момент создания
	profile, err := uc.userClient.GetInstructorProfile(ctx, req.InstructorID)
	if err != nil {
		if errors.Is(err, userClient.ErrInstructorNotFound) || errors.Is(err, userClient.ErrUserNotFound) {
			uc.logger.Warn("CreateBooking: instructor id=%d not found", req.InstructorID)
			return nil, ErrInstructorNotFound
		}
		uc.logger.Error("CreateBooking: failed to get instructor id=%d: %v", req.InstructorID, err)
		return nil, fmt.Errorf("%w: failed to get instructor: %v", ErrInternal, err)
	}

	// 7. Вычисляем длительность и полную стоимость
	duration, err := resolveDuration(req.StartTime, req.EndTime, req.DurationHours)
	if err != nil {
		uc.logger.Warn("CreateBooking: duration resolution failed: %v", err)
		return nil, err
	}

	totalPrice := profile.PricePerHour * duration

	// Переменная для хранения результата
	var result *domain.Booking

	// 8. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Интервал должен целиком помещаться в одно окно доступности
		dayOfWeek := domain.WeekdayIndex(req.Date)

		rules, err := uc.availabilityRepo.GetActiveForWeekday(txCtx, req.InstructorID, dayOfWeek)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get availability rules: %v", err)
			return fmt.Errorf("%w: failed to get availability rules: %v", ErrInternal, err)
		}

		if err := validateAvailability(rules, req.StartTime, req.EndTime); err != nil {
			uc.logger.Warn("CreateBooking: instructor=%d not available on %s at %s-%s",
				req.InstructorID, domain.WeekdayName(dayOfWeek), req.StartTime, req.EndTime)
			return err
		}

		// 8.2. Получаем активные бронирования на эту дату с блокировкой (FOR UPDATE)
		bookings, err := uc.bookingRepo.GetByInstructorAndDate(txCtx, req.InstructorID, req.Date, domain.ActiveBookingStatuses)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 8.3. Проверяем пересечения с активными бронированиями
		if err := validateNoConflicts(bookings, req.StartTime, req.EndTime); err != nil {
			uc.logger.Warn("CreateBooking: slot %s-%s on %s conflicts with existing booking",
				req.StartTime, req.EndTime, req.Date.Format(domain.DateFormat))
			return err
		}

		// 8.4. Создаем бронирование с денормализацией данных
		booking := &domain.Booking{
			LearnerID:     req.LearnerID,
			InstructorID:  req.InstructorID,
			LessonDate:    req.Date,
			StartTime:     req.StartTime,
			EndTime:       req.EndTime,
			DurationHours: duration,
			Status:        domain.StatusPending,
			// Фиксация цены: изменение профиля инструктора не влияет на
			// уже созданные бронирования
			PricePerHour: profile.PricePerHour,
			TotalPrice:   totalPrice,
			// Детали урока
			LessonType:      req.LessonType,
			PickupLocation:  req.PickupLocation,
			DropoffLocation: req.DropoffLocation,
			Notes:           req.Notes,
			// Денормализация имен участников
			LearnerName:    learner.FullName,
			InstructorName: profile.FullName,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			// Ограничение БД могло отклонить запись из-за конкурентного
			// бронирования, успевшего между проверкой и вставкой
			if errors.Is(err, bookingRepo.ErrTimeSlotConflict) {
				uc.logger.Warn("CreateBooking: concurrent booking won the slot %s-%s on %s",
					req.StartTime, req.EndTime, req.Date.Format(domain.DateFormat))
				return ErrTimeSlotConflict
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, total=%.2f", result.ID, result.TotalPrice)

	// Конвертируем в response
	return &Response{
		ID:              result.ID,
		LearnerID:       result.LearnerID,
		InstructorID:    result.InstructorID,
		LessonDate:      result.LessonDate,
		StartTime:       result.StartTime,
		EndTime:         result.EndTime,
		DurationHours:   result.DurationHours,
		Status:          string(result.Status),
		PricePerHour:    result.PricePerHour,
		TotalPrice:      result.TotalPrice,
		LessonType:      result.LessonType,
		PickupLocation:  result.PickupLocation,
		DropoffLocation: result.DropoffLocation,
		Notes:           result.Notes,
		LearnerName:     result.LearnerName,
		InstructorName:  result.InstructorName,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}
