package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/driveever/DriveEver-BookingService/internal/domain"
	userClient "github.com/driveever/DriveEver-BookingService/internal/integrations/userservice"
)

// msgNoAvailability сообщение в ответе при пустом шаблоне на этот день
const msgNoAvailability = "No availability for this date"

// UseCase use case для получения доступных слотов инструктора на дату
type UseCase struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	userClient       UserServiceClient
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	userClient UserServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		userClient:       userClient,
		logger:           logger,
	}
}

// Execute выполняет use case получения доступных слотов
// Результат детерминирован: для фиксированных инструктора и даты без
// изменения бронирований два вызова возвращают одинаковый список
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: instructor=%d, date=%s",
		req.InstructorID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем, что инструктор существует и активен
	profile, err := uc.userClient.GetInstructorProfile(ctx, req.InstructorID)
	if err != nil {
		if errors.Is(err, userClient.ErrInstructorNotFound) || errors.Is(err, userClient.ErrUserNotFound) {
			uc.logger.Warn("GetAvailableSlots: instructor id=%d not found", req.InstructorID)
			return nil, ErrInstructorNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get instructor id=%d: %v", req.InstructorID, err)
		return nil, fmt.Errorf("%w: failed to get instructor: %v", ErrInternal, err)
	}

	if !profile.IsActive {
		uc.logger.Warn("GetAvailableSlots: instructor id=%d is not active", req.InstructorID)
		return nil, ErrInstructorNotFound
	}

	// 3. Получаем активные окна доступности на день недели даты
	dayOfWeek := domain.WeekdayIndex(req.Date)

	rules, err := uc.availabilityRepo.GetActiveForWeekday(ctx, req.InstructorID, dayOfWeek)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get availability rules: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability rules: %v", ErrInternal, err)
	}

	// Отсутствие шаблона на этот день - не ошибка, а пустой список слотов
	if len(rules) == 0 {
		uc.logger.Info("GetAvailableSlots: instructor=%d has no availability on %s (%s)",
			req.InstructorID, req.Date.Format(domain.DateFormat), domain.WeekdayName(dayOfWeek))
		return &Response{
			InstructorID:   req.InstructorID,
			InstructorName: profile.FullName,
			Date:           req.Date,
			Slots:          []domain.AvailableSlot{},
			TotalSlots:     0,
			Message:        msgNoAvailability,
		}, nil
	}

	// 4. Получаем блокирующие бронирования на эту дату
	// Отмененные и завершенные слоты не блокируют
	bookings, err := uc.bookingRepo.GetByInstructorAndDate(ctx, req.InstructorID, req.Date, domain.ActiveBookingStatuses)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 5. Генерируем свободные слоты часовой сеткой
	slots, err := generateSlots(rules, bookings)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for instructor=%d, date=%s",
		len(slots), req.InstructorID, req.Date.Format(domain.DateFormat))

	return &Response{
		InstructorID:   req.InstructorID,
		InstructorName: profile.FullName,
		Date:           req.Date,
		Slots:          slots,
		TotalSlots:     len(slots),
	}, nil
}
