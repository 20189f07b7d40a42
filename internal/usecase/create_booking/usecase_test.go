package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driveever/DriveEver-BookingService/internal/domain"
	bookingRepo "github.com/driveever/DriveEver-BookingService/internal/infra/storage/booking"
	"github.com/driveever/DriveEver-BookingService/internal/integrations/userservice"
	"github.com/driveever/DriveEver-BookingService/pkg/ptr"
	"github.com/driveever/DriveEver-BookingService/pkg/types"
)

type stubBookingRepo struct {
	existing  []*domain.Booking
	createErr error

	created *domain.Booking
}

func (s *stubBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.created = booking
	out := *booking
	out.ID = 101
	out.CreatedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	out.UpdatedAt = out.CreatedAt
	return &out, nil
}

func (s *stubBookingRepo) GetByInstructorAndDate(_ context.Context, _ int64, _ time.Time, _ []domain.BookingStatus) ([]*domain.Booking, error) {
	return s.existing, nil
}

type stubAvailabilityRepo struct {
	rules []*domain.AvailabilityRule
}

func (s *stubAvailabilityRepo) GetActiveForWeekday(_ context.Context, _ int64, _ int) ([]*domain.AvailabilityRule, error) {
	return s.rules, nil
}

type stubUserClient struct {
	user    *userservice.User
	userErr error

	profile    *userservice.InstructorProfile
	profileErr error
}

func (s *stubUserClient) GetUser(_ context.Context, _ int64) (*userservice.User, error) {
	return s.user, s.userErr
}

func (s *stubUserClient) GetInstructorProfile(_ context.Context, _ int64) (*userservice.InstructorProfile, error) {
	return s.profile, s.profileErr
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
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

func rule(t *testing.T, start, end string) *domain.AvailabilityRule {
	t.Helper()
	return &domain.AvailabilityRule{
		StartTime:   ts(t, start),
		EndTime:     ts(t, end),
		IsAvailable: true,
	}
}

func existingBooking(t *testing.T, start, end string) *domain.Booking {
	t.Helper()
	return &domain.Booking{
		StartTime: ts(t, start),
		EndTime:   ts(t, end),
		Status:    domain.StatusConfirmed,
	}
}

// Фиксированное "сегодня" для тестов; 2026-03-02 - понедельник
var (
	testNow    = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	lessonDate = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
)

type fixture struct {
	bookingRepo      *stubBookingRepo
	availabilityRepo *stubAvailabilityRepo
	userClient       *stubUserClient
	uc               *UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		bookingRepo: &stubBookingRepo{},
		availabilityRepo: &stubAvailabilityRepo{
			rules: []*domain.AvailabilityRule{rule(t, "09:00", "17:00")},
		},
		userClient: &stubUserClient{
			user: &userservice.User{
				ID:       1,
				FullName: "Alice Brown",
				Role:     domain.RoleLearner,
				IsActive: true,
			},
			profile: &userservice.InstructorProfile{
				UserID:       2,
				FullName:     "John Smith",
				PricePerHour: 30.00,
				IsActive:     true,
			},
		},
	}
	f.uc = NewUseCase(f.bookingRepo, f.availabilityRepo, f.userClient, passthroughTxManager{}, noopLogger{})
	f.uc.timeProvider = fixedTimeProvider{now: testNow}
	return f
}

func validRequest(t *testing.T) *Request {
	t.Helper()
	return &Request{
		LearnerID:    1,
		InstructorID: 2,
		Date:         lessonDate,
		StartTime:    ts(t, "10:00"),
		EndTime:      ts(t, "11:00"),
	}
}

func TestExecute_CreatesPendingBooking(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)

	assert.Equal(t, int64(101), resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, 1.0, resp.DurationHours)
	assert.Equal(t, 30.00, resp.PricePerHour)
	assert.Equal(t, 30.00, resp.TotalPrice)
	assert.Equal(t, "Alice Brown", resp.LearnerName)
	assert.Equal(t, "John Smith", resp.InstructorName)
}

func TestExecute_PriceSnapshotTimesDuration(t *testing.T) {
	f := newFixture(t)
	f.userClient.profile.PricePerHour = 25.00

	req := validRequest(t)
	req.EndTime = ts(t, "11:30")
	req.DurationHours = ptr.Ptr(1.5)

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1.5, resp.DurationHours)
	assert.Equal(t, 37.50, resp.TotalPrice)
}

func TestExecute_OnlyLearnersCanBook(t *testing.T) {
	f := newFixture(t)
	f.userClient.user.Role = domain.RoleInstructor

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrNotALearner)
}

func TestExecute_RoleCheckedBeforeTimeOrder(t *testing.T) {
	// Запрос с несколькими нарушениями получает ошибку первой проверки:
	// роль проверяется раньше порядка времени
	f := newFixture(t)
	f.userClient.user.Role = domain.RoleAcademy

	req := validRequest(t)
	req.StartTime = ts(t, "11:00")
	req.EndTime = ts(t, "10:00")

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrNotALearner)
}

func TestExecute_EndMustBeAfterStart(t *testing.T) {
	f := newFixture(t)

	req := validRequest(t)
	req.EndTime = req.StartTime

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	req.EndTime = ts(t, "09:00")
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestExecute_DateInPast(t *testing.T) {
	f := newFixture(t)

	req := validRequest(t)
	req.Date = time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateInPast)
}

func TestExecute_SameDayBookingAllowed(t *testing.T) {
	// 2026-03-01 - воскресенье
	f := newFixture(t)

	req := validRequest(t)
	req.Date = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestExecute_IntervalMustFitSingleWindow(t *testing.T) {
	// Интервал 09:30-11:30 накрыт только объединением окон
	// 09:00-11:00 и 11:00-13:00 - бронирование отклоняется
	f := newFixture(t)
	f.availabilityRepo.rules = []*domain.AvailabilityRule{
		rule(t, "09:00", "11:00"),
		rule(t, "11:00", "13:00"),
	}

	req := validRequest(t)
	req.StartTime = ts(t, "09:30")
	req.EndTime = ts(t, "11:30")

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInstructorNotAvailable)
}

func TestExecute_IntervalAtWindowBoundaries(t *testing.T) {
	// Интервал, совпадающий с границами окна, помещается в него
	f := newFixture(t)
	f.availabilityRepo.rules = []*domain.AvailabilityRule{rule(t, "10:00", "11:00")}

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)
}

func TestExecute_NoAvailabilityRules(t *testing.T) {
	f := newFixture(t)
	f.availabilityRepo.rules = nil

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrInstructorNotAvailable)
}

func TestExecute_ConflictWithActiveBooking(t *testing.T) {
	f := newFixture(t)
	f.bookingRepo.existing = []*domain.Booking{existingBooking(t, "10:30", "11:30")}

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrTimeSlotConflict)
}

func TestExecute_ConflictIsSymmetric(t *testing.T) {
	// Новый интервал целиком внутри существующего и наоборот
	f := newFixture(t)
	f.bookingRepo.existing = []*domain.Booking{existingBooking(t, "09:00", "13:00")}

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrTimeSlotConflict)

	f.bookingRepo.existing = []*domain.Booking{existingBooking(t, "10:15", "10:45")}
	_, err = f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrTimeSlotConflict)
}

func TestExecute_TouchingBookingIsNotAConflict(t *testing.T) {
	// Полуоткрытые интервалы: 10:00-11:00 не конфликтует
	// ни с 09:00-10:00, ни с 11:00-12:00
	f := newFixture(t)
	f.bookingRepo.existing = []*domain.Booking{
		existingBooking(t, "09:00", "10:00"),
		existingBooking(t, "11:00", "12:00"),
	}

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)
}

func TestExecute_CancelledBookingDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	cancelled := existingBooking(t, "10:00", "11:00")
	cancelled.Status = domain.StatusCancelled
	f.bookingRepo.existing = []*domain.Booking{cancelled}

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)
}

func TestExecute_DurationMismatch(t *testing.T) {
	f := newFixture(t)

	req := validRequest(t)
	req.DurationHours = ptr.Ptr(2.0)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDurationMismatch)
}

func TestExecute_DurationWithinTolerance(t *testing.T) {
	f := newFixture(t)

	req := validRequest(t)
	req.DurationHours = ptr.Ptr(1.05)

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1.05, resp.DurationHours)
}

func TestExecute_ConcurrentInsertMapsToConflict(t *testing.T) {
	// Ограничение БД отклонило вставку: конкурентное бронирование успело
	// между проверкой пересечений и записью
	f := newFixture(t)
	f.bookingRepo.createErr = bookingRepo.ErrTimeSlotConflict

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrTimeSlotConflict)
}

func TestExecute_InstructorNotFound(t *testing.T) {
	f := newFixture(t)
	f.userClient.profile = nil
	f.userClient.profileErr = userservice.ErrInstructorNotFound

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrInstructorNotFound)
}

func TestExecute_LearnerNotFound(t *testing.T) {
	f := newFixture(t)
	f.userClient.user = nil
	f.userClient.userErr = userservice.ErrUserNotFound

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrLearnerNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture(t)

	req := validRequest(t)
	req.LearnerID = 0
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest(t)
	req.StartTime = types.TimeString("")
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest(t)
	req.DurationHours = ptr.Ptr(-1.0)
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
