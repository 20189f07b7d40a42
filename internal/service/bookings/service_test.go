package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driveever/DriveEver-BookingService/internal/domain"
	bookingRepo "github.com/driveever/DriveEver-BookingService/internal/infra/storage/booking"
	"github.com/driveever/DriveEver-BookingService/internal/integrations/userservice"
	"github.com/driveever/DriveEver-BookingService/internal/service/bookings/models"
	"github.com/driveever/DriveEver-BookingService/pkg/ptr"
	"github.com/driveever/DriveEver-BookingService/pkg/types"
)

const (
	learnerID    = int64(1)
	instructorID = int64(2)
	strangerID   = int64(99)
)

type stubBookingRepo struct {
	booking            *domain.Booking
	getErr             error
	learnerBookings    []*domain.Booking
	instructorBookings []*domain.Booking
	rangeBookings      []*domain.Booking

	updatedStatus *domain.BookingStatus
	cancelledAt   *time.Time
}

func (s *stubBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.booking, nil
}

func (s *stubBookingRepo) GetByLearnerID(_ context.Context, _ int64) ([]*domain.Booking, error) {
	return s.learnerBookings, nil
}

func (s *stubBookingRepo) GetByInstructorID(_ context.Context, _ int64) ([]*domain.Booking, error) {
	return s.instructorBookings, nil
}

func (s *stubBookingRepo) GetByInstructorAndRange(_ context.Context, _ int64, _, _ time.Time, _ []domain.BookingStatus) ([]*domain.Booking, error) {
	return s.rangeBookings, nil
}

func (s *stubBookingRepo) UpdateStatus(_ context.Context, _ int64, status domain.BookingStatus) error {
	s.updatedStatus = &status
	return nil
}

func (s *stubBookingRepo) Cancel(_ context.Context, _ int64, cancelledAt time.Time) error {
	s.cancelledAt = &cancelledAt
	return nil
}

func (s *stubBookingRepo) UpdateDetails(_ context.Context, _ int64, lessonType, pickup, dropoff, notes *string) error {
	if lessonType != nil {
		s.booking.LessonType = lessonType
	}
	if pickup != nil {
		s.booking.PickupLocation = pickup
	}
	if dropoff != nil {
		s.booking.DropoffLocation = dropoff
	}
	if notes != nil {
		s.booking.Notes = notes
	}
	return nil
}

type stubAvailabilityRepo struct {
	rules []*domain.AvailabilityRule
}

func (s *stubAvailabilityRepo) GetByInstructor(_ context.Context, _ int64) ([]*domain.AvailabilityRule, error) {
	return s.rules, nil
}

type stubPaymentRepo struct {
	payment *domain.Payment

	refundedID  *int64
	refundedRef string
}

func (s *stubPaymentRepo) GetByID(_ context.Context, _ int64) (*domain.Payment, error) {
	return s.payment, nil
}

func (s *stubPaymentRepo) MarkRefunded(_ context.Context, id int64, refundReference string) error {
	s.refundedID = &id
	s.refundedRef = refundReference
	return nil
}

type stubUserClient struct {
	user    *userservice.User
	userErr error
	profile *userservice.InstructorProfile
}

func (s *stubUserClient) GetUser(_ context.Context, _ int64) (*userservice.User, error) {
	return s.user, s.userErr
}

func (s *stubUserClient) GetInstructorProfile(_ context.Context, _ int64) (*userservice.InstructorProfile, error) {
	if s.profile == nil {
		return nil, userservice.ErrInstructorNotFound
	}
	return s.profile, nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct{ now time.Time }

func (p fixedTimeProvider) Now() time.Time { return p.now }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func ts(t *testing.T, value string) types.TimeString {
	t.Helper()
	v, err := types.NewTimeStringFromString(value)
	require.NoError(t, err)
	return v
}

// testNow фиксированное "сейчас"; урок в фикстуре начинается через 48 часов
var testNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func pendingBooking(t *testing.T) *domain.Booking {
	t.Helper()
	return &domain.Booking{
		ID:             10,
		LearnerID:      learnerID,
		InstructorID:   instructorID,
		LessonDate:     time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		StartTime:      ts(t, "10:00"),
		EndTime:        ts(t, "11:00"),
		DurationHours:  1.0,
		Status:         domain.StatusPending,
		PricePerHour:   30.00,
		TotalPrice:     30.00,
		LearnerName:    "Alice Brown",
		InstructorName: "John Smith",
	}
}

type fixture struct {
	bookingRepo      *stubBookingRepo
	availabilityRepo *stubAvailabilityRepo
	paymentRepo      *stubPaymentRepo
	userClient       *stubUserClient
	svc              *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		bookingRepo:      &stubBookingRepo{booking: pendingBooking(t)},
		availabilityRepo: &stubAvailabilityRepo{},
		paymentRepo:      &stubPaymentRepo{},
		userClient: &stubUserClient{
			user: &userservice.User{ID: learnerID, FullName: "Alice Brown", Role: domain.RoleLearner},
			profile: &userservice.InstructorProfile{
				UserID:   instructorID,
				FullName: "John Smith",
				IsActive: true,
			},
		},
	}
	f.svc = NewService(f.bookingRepo, f.availabilityRepo, f.paymentRepo, f.userClient, passthroughTxManager{}, noopLogger{})
	f.svc.timeProvider = fixedTimeProvider{now: testNow}
	return f
}

// GetByID

func TestGetByID_PartiesHaveAccess(t *testing.T) {
	f := newFixture(t)

	for _, userID := range []int64{learnerID, instructorID} {
		resp, err := f.svc.GetByID(context.Background(), 10, userID)
		require.NoError(t, err)
		assert.Equal(t, int64(10), resp.ID)
	}
}

func TestGetByID_StrangerDenied(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetByID(context.Background(), 10, strangerID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	f := newFixture(t)
	f.bookingRepo.getErr = bookingRepo.ErrBookingNotFound

	_, err := f.svc.GetByID(context.Background(), 10, learnerID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

// Confirm / Complete

func TestConfirm_FromPending(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Confirm(context.Background(), 10, instructorID)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	require.NotNil(t, f.bookingRepo.updatedStatus)
	assert.Equal(t, domain.StatusConfirmed, *f.bookingRepo.updatedStatus)
}

func TestConfirm_OnlyInstructor(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Confirm(context.Background(), 10, learnerID)
	assert.ErrorIs(t, err, ErrNotInstructorOnBooking)
}

func TestConfirm_OnlyFromPending(t *testing.T) {
	for _, status := range []domain.BookingStatus{
		domain.StatusConfirmed, domain.StatusCompleted, domain.StatusCancelled, domain.StatusNoShow,
	} {
		f := newFixture(t)
		f.bookingRepo.booking.Status = status

		_, err := f.svc.Confirm(context.Background(), 10, instructorID)
		assert.ErrorIs(t, err, ErrCannotConfirm, "status %s", status)
	}
}

func TestComplete_FromConfirmed(t *testing.T) {
	f := newFixture(t)
	f.bookingRepo.booking.Status = domain.StatusConfirmed

	resp, err := f.svc.Complete(context.Background(), 10, instructorID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
}

func TestComplete_NotFromPending(t *testing.T) {
	// Завершить можно только подтвержденный урок: pending должен сначала
	// пройти через confirmed
	f := newFixture(t)

	_, err := f.svc.Complete(context.Background(), 10, instructorID)
	assert.ErrorIs(t, err, ErrCannotComplete)
}

func TestComplete_OnlyInstructor(t *testing.T) {
	f := newFixture(t)
	f.bookingRepo.booking.Status = domain.StatusConfirmed

	_, err := f.svc.Complete(context.Background(), 10, learnerID)
	assert.ErrorIs(t, err, ErrNotInstructorOnBooking)
}

// Cancel

func TestCancel_ByLearner(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Cancel(context.Background(), 10, learnerID)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.NotNil(t, resp.CancelledAt)
	require.NotNil(t, f.bookingRepo.cancelledAt)
	assert.Equal(t, testNow, *f.bookingRepo.cancelledAt)
}

func TestCancel_ByInstructor(t *testing.T) {
	f := newFixture(t)
	f.bookingRepo.booking.Status = domain.StatusConfirmed

	_, err := f.svc.Cancel(context.Background(), 10, instructorID)
	require.NoError(t, err)
}

func TestCancel_StrangerDenied(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Cancel(context.Background(), 10, strangerID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_CutoffEnforcement(t *testing.T) {
	// Урок 2026-03-03 10:00; за 23 часа отмена запрещена, за 25 - разрешена
	f := newFixture(t)
	f.svc.timeProvider = fixedTimeProvider{now: time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC)}

	_, err := f.svc.Cancel(context.Background(), 10, learnerID)
	assert.ErrorIs(t, err, ErrCancellationCutoff)

	f = newFixture(t)
	f.svc.timeProvider = fixedTimeProvider{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}

	_, err = f.svc.Cancel(context.Background(), 10, learnerID)
	require.NoError(t, err)
}

func TestCancel_ExactlyAtCutoff(t *testing.T) {
	// Ровно за 24 часа до урока отмена еще разрешена
	f := newFixture(t)
	f.svc.timeProvider = fixedTimeProvider{now: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)}

	_, err := f.svc.Cancel(context.Background(), 10, learnerID)
	require.NoError(t, err)
}

func TestCancel_TerminalStatuses(t *testing.T) {
	for _, status := range []domain.BookingStatus{
		domain.StatusCompleted, domain.StatusCancelled, domain.StatusNoShow,
	} {
		f := newFixture(t)
		f.bookingRepo.booking.Status = status

		_, err := f.svc.Cancel(context.Background(), 10, learnerID)
		assert.ErrorIs(t, err, ErrCannotCancel, "status %s", status)
	}
}

func TestCancel_RefundsCompletedPayment(t *testing.T) {
	f := newFixture(t)
	f.bookingRepo.booking.PaymentID = ptr.Ptr(int64(55))
	f.paymentRepo.payment = &domain.Payment{
		ID:     55,
		Amount: 30.00,
		Status: domain.PaymentStatusCompleted,
	}

	_, err := f.svc.Cancel(context.Background(), 10, learnerID)
	require.NoError(t, err)

	require.NotNil(t, f.paymentRepo.refundedID)
	assert.Equal(t, int64(55), *f.paymentRepo.refundedID)
	assert.NotEmpty(t, f.paymentRepo.refundedRef)
}

func TestCancel_PendingPaymentNotRefunded(t *testing.T) {
	f := newFixture(t)
	f.bookingRepo.booking.PaymentID = ptr.Ptr(int64(55))
	f.paymentRepo.payment = &domain.Payment{
		ID:     55,
		Status: domain.PaymentStatusPending,
	}

	_, err := f.svc.Cancel(context.Background(), 10, learnerID)
	require.NoError(t, err)
	assert.Nil(t, f.paymentRepo.refundedID)
}

func TestCancel_NoPayment(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Cancel(context.Background(), 10, learnerID)
	require.NoError(t, err)
	assert.Nil(t, f.paymentRepo.refundedID)
}

// GetMyBookings

func TestGetMyBookings_LearnerSideOnly(t *testing.T) {
	f := newFixture(t)
	f.bookingRepo.learnerBookings = []*domain.Booking{pendingBooking(t)}
	f.bookingRepo.instructorBookings = []*domain.Booking{pendingBooking(t), pendingBooking(t)}

	resp, err := f.svc.GetMyBookings(context.Background(), learnerID)
	require.NoError(t, err)

	// Роль learner: сторона инструктора не запрашивается
	assert.Len(t, resp.LearnerBookings, 1)
	assert.Empty(t, resp.InstructorBookings)
	assert.Equal(t, 1, resp.TotalBookings)
}

func TestGetMyBookings_InstructorSeesBothSides(t *testing.T) {
	f := newFixture(t)
	f.userClient.user = &userservice.User{ID: instructorID, FullName: "John Smith", Role: domain.RoleInstructor}
	f.bookingRepo.learnerBookings = []*domain.Booking{pendingBooking(t)}
	f.bookingRepo.instructorBookings = []*domain.Booking{pendingBooking(t), pendingBooking(t)}

	resp, err := f.svc.GetMyBookings(context.Background(), instructorID)
	require.NoError(t, err)

	assert.Len(t, resp.LearnerBookings, 1)
	assert.Len(t, resp.InstructorBookings, 2)
	assert.Equal(t, 3, resp.TotalBookings)
}

// UpdateDetails

func TestUpdateDetails_PartialUpdate(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.UpdateDetails(context.Background(), 10, &models.UpdateDetailsRequest{
		UserID:         learnerID,
		PickupLocation: ptr.Ptr("12 High Street"),
	})
	require.NoError(t, err)

	require.NotNil(t, resp.PickupLocation)
	assert.Equal(t, "12 High Street", *resp.PickupLocation)
	assert.Nil(t, resp.Notes)
}

func TestUpdateDetails_StrangerDenied(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.UpdateDetails(context.Background(), 10, &models.UpdateDetailsRequest{
		UserID: strangerID,
		Notes:  ptr.Ptr("note"),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateDetails_NotesTooLong(t *testing.T) {
	f := newFixture(t)

	long := make([]byte, domain.MaxNotesLength+1)
	for i := range long {
		long[i] = 'x'
	}

	_, err := f.svc.UpdateDetails(context.Background(), 10, &models.UpdateDetailsRequest{
		UserID: learnerID,
		Notes:  ptr.Ptr(string(long)),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// GetInstructorCalendar

func TestGetInstructorCalendar_DefaultRange(t *testing.T) {
	f := newFixture(t)
	f.availabilityRepo.rules = []*domain.AvailabilityRule{
		{DayOfWeek: 0, StartTime: ts(t, "09:00"), EndTime: ts(t, "17:00"), IsAvailable: true},
	}
	f.bookingRepo.rangeBookings = []*domain.Booking{pendingBooking(t)}

	resp, err := f.svc.GetInstructorCalendar(context.Background(), &models.GetCalendarRequest{InstructorID: instructorID})
	require.NoError(t, err)

	// 30 дней от сегодня включительно = 31 запись
	assert.Len(t, resp.Calendar, domain.DefaultCalendarRangeDays+1)
	assert.Equal(t, "2026-03-01", resp.StartDate)
	assert.Equal(t, "2026-03-31", resp.EndDate)
	assert.Equal(t, "John Smith", resp.InstructorName)

	// 2026-03-02 - понедельник: есть окно и бронирование
	day := resp.Calendar[1]
	assert.Equal(t, "2026-03-02", day.Date)
	assert.Equal(t, "Monday", day.DayName)
	require.Len(t, day.Availability, 1)
	assert.Equal(t, "09:00", day.Availability[0].StartTime)

	// Урок из фикстуры назначен на 2026-03-03
	assert.Empty(t, day.Bookings)
	require.Len(t, resp.Calendar[2].Bookings, 1)
	assert.Equal(t, "Alice Brown", resp.Calendar[2].Bookings[0].LearnerName)
}

func TestGetInstructorCalendar_InstructorNotFound(t *testing.T) {
	f := newFixture(t)
	f.userClient.profile = nil

	_, err := f.svc.GetInstructorCalendar(context.Background(), &models.GetCalendarRequest{InstructorID: 404})
	assert.ErrorIs(t, err, ErrInstructorNotFound)
}

func TestGetInstructorCalendar_InvalidRange(t *testing.T) {
	f := newFixture(t)

	start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err := f.svc.GetInstructorCalendar(context.Background(), &models.GetCalendarRequest{
		InstructorID: instructorID,
		StartDate:    &start,
		EndDate:      &end,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
