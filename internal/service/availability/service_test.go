package availability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driveever/DriveEver-BookingService/internal/domain"
	"github.com/driveever/DriveEver-BookingService/internal/integrations/userservice"
	"github.com/driveever/DriveEver-BookingService/internal/service/availability/models"
	"github.com/driveever/DriveEver-BookingService/pkg/ptr"
)

const instructorID = int64(2)

type stubAvailabilityRepo struct {
	rules      []*domain.AvailabilityRule
	replaceErr error

	replaced []*domain.AvailabilityRule
}

func (s *stubAvailabilityRepo) GetByInstructor(_ context.Context, _ int64) ([]*domain.AvailabilityRule, error) {
	return s.rules, nil
}

func (s *stubAvailabilityRepo) ReplaceForInstructor(_ context.Context, _ int64, rules []*domain.AvailabilityRule) ([]*domain.AvailabilityRule, error) {
	if s.replaceErr != nil {
		return nil, s.replaceErr
	}
	s.replaced = rules
	out := make([]*domain.AvailabilityRule, len(rules))
	for i, rule := range rules {
		created := *rule
		created.ID = int64(i + 1)
		out[i] = &created
	}
	return out, nil
}

type stubUserClient struct {
	user    *userservice.User
	profile *userservice.InstructorProfile
}

func (s *stubUserClient) GetUser(_ context.Context, _ int64) (*userservice.User, error) {
	if s.user == nil {
		return nil, userservice.ErrUserNotFound
	}
	return s.user, nil
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

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fixture struct {
	repo       *stubAvailabilityRepo
	userClient *stubUserClient
	svc        *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		repo: &stubAvailabilityRepo{},
		userClient: &stubUserClient{
			user: &userservice.User{ID: instructorID, FullName: "John Smith", Role: domain.RoleInstructor},
			profile: &userservice.InstructorProfile{
				UserID:   instructorID,
				FullName: "John Smith",
				IsActive: true,
			},
		},
	}
	f.svc = NewService(f.repo, f.userClient, passthroughTxManager{}, noopLogger{})
	return f
}

func replaceRequest(rules ...models.RuleInput) *models.ReplaceRequest {
	return &models.ReplaceRequest{
		UserID:       instructorID,
		InstructorID: instructorID,
		Rules:        rules,
	}
}

func TestReplace_CreatesTemplate(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Replace(context.Background(), replaceRequest(
		models.RuleInput{DayOfWeek: 0, StartTime: "09:00", EndTime: "17:00"},
		models.RuleInput{DayOfWeek: 5, StartTime: "10:00", EndTime: "14:00", IsAvailable: ptr.Ptr(false)},
	))
	require.NoError(t, err)

	require.Len(t, f.repo.replaced, 2)
	assert.True(t, f.repo.replaced[0].IsAvailable)
	assert.False(t, f.repo.replaced[1].IsAvailable)

	assert.Equal(t, 2, resp.TotalRules)
	assert.Equal(t, "Monday", resp.Rules[0].DayName)
	assert.Equal(t, "Saturday", resp.Rules[1].DayName)
}

func TestReplace_OnlyOwnTemplate(t *testing.T) {
	f := newFixture(t)

	req := replaceRequest(models.RuleInput{DayOfWeek: 0, StartTime: "09:00", EndTime: "17:00"})
	req.UserID = 99

	_, err := f.svc.Replace(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestReplace_OnlyInstructorRole(t *testing.T) {
	f := newFixture(t)
	f.userClient.user.Role = domain.RoleLearner

	_, err := f.svc.Replace(context.Background(), replaceRequest(
		models.RuleInput{DayOfWeek: 0, StartTime: "09:00", EndTime: "17:00"},
	))
	assert.ErrorIs(t, err, ErrNotAnInstructor)
}

func TestReplace_InvalidDayOfWeek(t *testing.T) {
	f := newFixture(t)

	for _, day := range []int{-1, 7} {
		_, err := f.svc.Replace(context.Background(), replaceRequest(
			models.RuleInput{DayOfWeek: day, StartTime: "09:00", EndTime: "17:00"},
		))
		assert.ErrorIs(t, err, ErrInvalidInput, "day %d", day)
	}
}

func TestReplace_EndMustBeAfterStart(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Replace(context.Background(), replaceRequest(
		models.RuleInput{DayOfWeek: 0, StartTime: "17:00", EndTime: "09:00"},
	))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.Replace(context.Background(), replaceRequest(
		models.RuleInput{DayOfWeek: 0, StartTime: "09:00", EndTime: "09:00"},
	))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestReplace_InvalidTimeFormat(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Replace(context.Background(), replaceRequest(
		models.RuleInput{DayOfWeek: 0, StartTime: "9am", EndTime: "17:00"},
	))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestReplace_DuplicateDayAndStart(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Replace(context.Background(), replaceRequest(
		models.RuleInput{DayOfWeek: 0, StartTime: "09:00", EndTime: "12:00"},
		models.RuleInput{DayOfWeek: 0, StartTime: "09:00", EndTime: "17:00"},
	))
	assert.ErrorIs(t, err, ErrDuplicateRule)
}

func TestReplace_SameStartOnDifferentDaysAllowed(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Replace(context.Background(), replaceRequest(
		models.RuleInput{DayOfWeek: 0, StartTime: "09:00", EndTime: "12:00"},
		models.RuleInput{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00"},
	))
	require.NoError(t, err)
}

func TestReplace_EmptyTemplateClearsAvailability(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Replace(context.Background(), replaceRequest())
	require.NoError(t, err)

	assert.Zero(t, resp.TotalRules)
	assert.Empty(t, f.repo.replaced)
}

func TestGetTemplate_ReturnsRules(t *testing.T) {
	f := newFixture(t)
	rule := &domain.AvailabilityRule{
		ID:           1,
		InstructorID: instructorID,
		DayOfWeek:    2,
		StartTime:    "09:00",
		EndTime:      "17:00",
		IsAvailable:  true,
	}
	f.repo.rules = []*domain.AvailabilityRule{rule}

	resp, err := f.svc.GetTemplate(context.Background(), instructorID)
	require.NoError(t, err)

	require.Equal(t, 1, resp.TotalRules)
	assert.Equal(t, "Wednesday", resp.Rules[0].DayName)
	assert.Equal(t, "09:00", resp.Rules[0].StartTime)
}

func TestGetTemplate_InstructorNotFound(t *testing.T) {
	f := newFixture(t)
	f.userClient.profile = nil

	_, err := f.svc.GetTemplate(context.Background(), 404)
	assert.ErrorIs(t, err, ErrInstructorNotFound)
}
