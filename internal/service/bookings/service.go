package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/driveever/DriveEver-BookingService/internal/domain"
	bookingRepo "github.com/driveever/DriveEver-BookingService/internal/infra/storage/booking"
	userClient "github.com/driveever/DriveEver-BookingService/internal/integrations/userservice"
	"github.com/driveever/DriveEver-BookingService/internal/service/bookings/models"
)

// Service сервис для работы с жизненным циклом бронирований
type Service struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	paymentRepo      PaymentRepository
	userClient       UserServiceClient
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	paymentRepo PaymentRepository,
	userClient UserServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		paymentRepo:      paymentRepo,
		userClient:       userClient,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// GetByID получает бронирование по ID
// Доступ имеют только участники бронирования - ученик и инструктор
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.getBooking(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	if !booking.IsParty(userID) {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetMyBookings получает историю бронирований пользователя с обеих сторон
// Бронирования как ученика возвращаются всегда; бронирования как
// инструктора - только для пользователей с ролью instructor
func (s *Service) GetMyBookings(ctx context.Context, userID int64) (*models.MyBookingsResponse, error) {
	s.logger.Info("GetMyBookings: fetching bookings for user=%d", userID)

	user, err := s.userClient.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			s.logger.Warn("GetMyBookings: user id=%d not found", userID)
			return nil, ErrAccessDenied
		}
		s.logger.Error("GetMyBookings: failed to get user id=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetMyBookings - failed to get user: %v", ErrInternal, err)
	}

	learnerBookings, err := s.bookingRepo.GetByLearnerID(ctx, userID)
	if err != nil {
		s.logger.Error("GetMyBookings: repository error for learner=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetMyBookings - repository error: %v", ErrInternal, err)
	}

	var instructorBookings []*domain.Booking
	if user.Role.IsInstructor() {
		instructorBookings, err = s.bookingRepo.GetByInstructorID(ctx, userID)
		if err != nil {
			s.logger.Error("GetMyBookings: repository error for instructor=%d: %v", userID, err)
			return nil, fmt.Errorf("%w: GetMyBookings - repository error: %v", ErrInternal, err)
		}
	}

	resp := &models.MyBookingsResponse{
		LearnerBookings:    models.FromDomainBookingList(learnerBookings),
		InstructorBookings: models.FromDomainBookingList(instructorBookings),
	}
	resp.TotalBookings = len(resp.LearnerBookings) + len(resp.InstructorBookings)

	s.logger.Info("GetMyBookings: fetched %d bookings for user=%d", resp.TotalBookings, userID)
	return resp, nil
}

// Confirm подтверждает бронирование
// Доступно только инструктору бронирования и только из статуса pending
func (s *Service) Confirm(ctx context.Context, bookingID int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("Confirm: confirming booking id=%d by user=%d", bookingID, userID)

	booking, err := s.getBooking(ctx, bookingID, "Confirm")
	if err != nil {
		return nil, err
	}

	if booking.InstructorID != userID {
		s.logger.Warn("Confirm: user=%d is not the instructor on booking id=%d", userID, bookingID)
		return nil, ErrNotInstructorOnBooking
	}

	if !booking.CanBeConfirmed() {
		s.logger.Warn("Confirm: booking id=%d cannot be confirmed, status=%s", bookingID, booking.Status)
		return nil, fmt.Errorf("%w: current status is %s", ErrCannotConfirm, booking.Status)
	}

	if err := s.updateStatus(ctx, booking, domain.StatusConfirmed, "Confirm"); err != nil {
		return nil, err
	}

	s.logger.Info("Confirm: successfully confirmed booking id=%d", bookingID)
	return models.FromDomainBooking(booking), nil
}

// Complete отмечает урок проведенным
// Доступно только инструктору бронирования и только из статуса confirmed
func (s *Service) Complete(ctx context.Context, bookingID int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("Complete: completing booking id=%d by user=%d", bookingID, userID)

	booking, err := s.getBooking(ctx, bookingID, "Complete")
	if err != nil {
		return nil, err
	}

	if booking.InstructorID != userID {
		s.logger.Warn("Complete: user=%d is not the instructor on booking id=%d", userID, bookingID)
		return nil, ErrNotInstructorOnBooking
	}

	if !booking.CanBeCompleted() {
		s.logger.Warn("Complete: booking id=%d cannot be completed, status=%s", bookingID, booking.Status)
		return nil, fmt.Errorf("%w: current status is %s", ErrCannotComplete, booking.Status)
	}

	if err := s.updateStatus(ctx, booking, domain.StatusCompleted, "Complete"); err != nil {
		return nil, err
	}

	s.logger.Info("Complete: successfully completed booking id=%d", bookingID)
	return models.FromDomainBooking(booking), nil
}

// Cancel отменяет бронирование
// Отменить может любой из участников, но не позже чем за 24 часа до начала
// урока. Завершенный платеж при отмене переводится в refunded
func (s *Service) Cancel(ctx context.Context, bookingID int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, userID)

	booking, err := s.getBooking(ctx, bookingID, "Cancel")
	if err != nil {
		return nil, err
	}

	if !booking.IsParty(userID) {
		s.logger.Warn("Cancel: access denied for user=%d to booking id=%d", userID, bookingID)
		return nil, ErrAccessDenied
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return nil, fmt.Errorf("%w: current status is %s", ErrCannotCancel, booking.Status)
	}

	// Отмена запрещена менее чем за 24 часа до начала урока
	now := s.timeProvider.Now()
	if booking.LessonStart().Sub(now) < domain.CancellationCutoff {
		s.logger.Warn("Cancel: booking id=%d is within the cancellation cutoff (lesson at %s)",
			bookingID, booking.LessonStart().Format(time.RFC3339))
		return nil, ErrCancellationCutoff
	}

	cancelledAt := now

	// Отмена и возврат платежа выполняются атомарно
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.bookingRepo.Cancel(txCtx, bookingID, cancelledAt); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		if booking.PaymentID == nil {
			return nil
		}

		payment, err := s.paymentRepo.GetByID(txCtx, *booking.PaymentID)
		if err != nil {
			s.logger.Error("Cancel: failed to get payment id=%d: %v", *booking.PaymentID, err)
			return fmt.Errorf("%w: Cancel - failed to get payment: %v", ErrInternal, err)
		}

		// Возврату подлежат только завершенные платежи
		if !payment.IsRefundable() {
			return nil
		}

		refundReference := uuid.NewString()
		if err := s.paymentRepo.MarkRefunded(txCtx, payment.ID, refundReference); err != nil {
			s.logger.Error("Cancel: failed to refund payment id=%d: %v", payment.ID, err)
			return fmt.Errorf("%w: Cancel - failed to refund payment: %v", ErrInternal, err)
		}

		s.logger.Info("Cancel: payment id=%d refunded, reference=%s", payment.ID, refundReference)
		return nil
	})
	if err != nil {
		return nil, err
	}

	booking.Status = domain.StatusCancelled
	booking.CancelledAt = &cancelledAt

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return models.FromDomainBooking(booking), nil
}

// UpdateDetails частично обновляет свободные поля урока
// Время, дата, цена и участники после создания неизменяемы
func (s *Service) UpdateDetails(ctx context.Context, bookingID int64, req *models.UpdateDetailsRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateDetails: updating booking id=%d by user=%d", bookingID, req.UserID)

	if err := validateDetails(req); err != nil {
		s.logger.Warn("UpdateDetails: validation failed for booking id=%d: %v", bookingID, err)
		return nil, err
	}

	booking, err := s.getBooking(ctx, bookingID, "UpdateDetails")
	if err != nil {
		return nil, err
	}

	if !booking.IsParty(req.UserID) {
		s.logger.Warn("UpdateDetails: access denied for user=%d to booking id=%d", req.UserID, bookingID)
		return nil, ErrAccessDenied
	}

	if err := s.bookingRepo.UpdateDetails(ctx, bookingID, req.LessonType, req.PickupLocation, req.DropoffLocation, req.Notes); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("UpdateDetails: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: UpdateDetails - repository error: %v", ErrInternal, err)
	}

	updated, err := s.getBooking(ctx, bookingID, "UpdateDetails")
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateDetails: successfully updated booking id=%d", bookingID)
	return models.FromDomainBooking(updated), nil
}

// GetInstructorCalendar строит календарь инструктора за период
// По умолчанию период - ближайшие 30 дней от сегодняшней даты
func (s *Service) GetInstructorCalendar(ctx context.Context, req *models.GetCalendarRequest) (*models.CalendarResponse, error) {
	s.logger.Info("GetInstructorCalendar: instructor=%d", req.InstructorID)

	profile, err := s.userClient.GetInstructorProfile(ctx, req.InstructorID)
	if err != nil {
		if errors.Is(err, userClient.ErrInstructorNotFound) || errors.Is(err, userClient.ErrUserNotFound) {
			s.logger.Warn("GetInstructorCalendar: instructor id=%d not found", req.InstructorID)
			return nil, ErrInstructorNotFound
		}
		s.logger.Error("GetInstructorCalendar: failed to get instructor id=%d: %v", req.InstructorID, err)
		return nil, fmt.Errorf("%w: GetInstructorCalendar - failed to get instructor: %v", ErrInternal, err)
	}

	if !profile.IsActive {
		s.logger.Warn("GetInstructorCalendar: instructor id=%d is not active", req.InstructorID)
		return nil, ErrInstructorNotFound
	}

	startDate, endDate := resolveCalendarRange(req, s.timeProvider.Now())
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByInstructorAndRange(ctx, req.InstructorID, startDate, endDate, domain.ActiveBookingStatuses)
	if err != nil {
		s.logger.Error("GetInstructorCalendar: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetInstructorCalendar - repository error: %v", ErrInternal, err)
	}

	rules, err := s.availabilityRepo.GetByInstructor(ctx, req.InstructorID)
	if err != nil {
		s.logger.Error("GetInstructorCalendar: failed to get availability rules: %v", err)
		return nil, fmt.Errorf("%w: GetInstructorCalendar - failed to get availability: %v", ErrInternal, err)
	}

	calendar := buildCalendar(startDate, endDate, rules, bookings)

	s.logger.Info("GetInstructorCalendar: built %d days for instructor=%d", len(calendar), req.InstructorID)

	return &models.CalendarResponse{
		InstructorID:   req.InstructorID,
		InstructorName: profile.FullName,
		StartDate:      startDate.Format(domain.DateFormat),
		EndDate:        endDate.Format(domain.DateFormat),
		Calendar:       calendar,
	}, nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, id int64, op string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) updateStatus(ctx context.Context, booking *domain.Booking, status domain.BookingStatus, op string) error {
	if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, status); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, booking.ID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	booking.Status = status
	return nil
}

func validateDetails(req *models.UpdateDetailsRequest) error {
	fields := map[string]*string{
		"lessonType":      req.LessonType,
		"pickupLocation":  req.PickupLocation,
		"dropoffLocation": req.DropoffLocation,
		"notes":           req.Notes,
	}
	for name, value := range fields {
		if value != nil && len(*value) > domain.MaxNotesLength {
			return fmt.Errorf("%w: %s exceeds %d characters", ErrInvalidInput, name, domain.MaxNotesLength)
		}
	}
	return nil
}

func resolveCalendarRange(req *models.GetCalendarRequest, now time.Time) (time.Time, time.Time) {
	var startDate time.Time
	if req.StartDate != nil {
		startDate = *req.StartDate
	} else {
		startDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	}

	var endDate time.Time
	if req.EndDate != nil {
		endDate = *req.EndDate
	} else {
		endDate = startDate.AddDate(0, 0, domain.DefaultCalendarRangeDays)
	}

	return startDate, endDate
}

// buildCalendar строит по дню на каждую дату периода включительно
// Окна берутся из недельного шаблона по дню недели, бронирования - по дате
func buildCalendar(startDate, endDate time.Time, rules []*domain.AvailabilityRule, bookings []*domain.Booking) []models.CalendarDay {
	// Группируем окна по дню недели
	rulesByDay := make(map[int][]*domain.AvailabilityRule)
	for _, rule := range rules {
		rulesByDay[rule.DayOfWeek] = append(rulesByDay[rule.DayOfWeek], rule)
	}

	// Группируем бронирования по дате
	bookingsByDate := make(map[string][]*domain.Booking)
	for _, booking := range bookings {
		key := booking.LessonDate.Format(domain.DateFormat)
		bookingsByDate[key] = append(bookingsByDate[key], booking)
	}

	days := make([]models.CalendarDay, 0)

	for current := startDate; !current.After(endDate); current = current.AddDate(0, 0, 1) {
		dayOfWeek := domain.WeekdayIndex(current)
		dateKey := current.Format(domain.DateFormat)

		windows := make([]models.CalendarWindow, 0)
		for _, rule := range rulesByDay[dayOfWeek] {
			windows = append(windows, models.CalendarWindow{
				StartTime:   rule.StartTime.String(),
				EndTime:     rule.EndTime.String(),
				IsAvailable: rule.IsAvailable,
			})
		}

		dayBookings := make([]models.CalendarDayBooking, 0)
		for _, booking := range bookingsByDate[dateKey] {
			dayBookings = append(dayBookings, models.CalendarDayBooking{
				ID:          booking.ID,
				StartTime:   booking.StartTime.String(),
				EndTime:     booking.EndTime.String(),
				LearnerName: booking.LearnerName,
				Status:      string(booking.Status),
				LessonType:  booking.LessonType,
			})
		}

		days = append(days, models.CalendarDay{
			Date:         dateKey,
			DayName:      domain.WeekdayName(dayOfWeek),
			Availability: windows,
			Bookings:     dayBookings,
		})
	}

	return days
}
