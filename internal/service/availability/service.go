package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/driveever/DriveEver-BookingService/internal/domain"
	availabilityRepo "github.com/driveever/DriveEver-BookingService/internal/infra/storage/availability"
	userClient "github.com/driveever/DriveEver-BookingService/internal/integrations/userservice"
	"github.com/driveever/DriveEver-BookingService/internal/service/availability/models"
)

// Service сервис для работы с недельным шаблоном доступности инструктора
type Service struct {
	availabilityRepo AvailabilityRepository
	userClient       UserServiceClient
	txManager        TransactionManager
	logger           Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	availabilityRepo AvailabilityRepository,
	userClient UserServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		userClient:       userClient,
		txManager:        txManager,
		logger:           logger,
	}
}

// GetTemplate получает недельный шаблон доступности инструктора
// Публичный метод - шаблон видят все, включая неавторизованных учеников
func (s *Service) GetTemplate(ctx context.Context, instructorID int64) (*models.TemplateResponse, error) {
	s.logger.Info("GetTemplate: fetching availability for instructor=%d", instructorID)

	profile, err := s.userClient.GetInstructorProfile(ctx, instructorID)
	if err != nil {
		if errors.Is(err, userClient.ErrInstructorNotFound) || errors.Is(err, userClient.ErrUserNotFound) {
			s.logger.Warn("GetTemplate: instructor id=%d not found", instructorID)
			return nil, ErrInstructorNotFound
		}
		s.logger.Error("GetTemplate: failed to get instructor id=%d: %v", instructorID, err)
		return nil, fmt.Errorf("%w: GetTemplate - failed to get instructor: %v", ErrInternal, err)
	}

	if !profile.IsActive {
		s.logger.Warn("GetTemplate: instructor id=%d is not active", instructorID)
		return nil, ErrInstructorNotFound
	}

	rules, err := s.availabilityRepo.GetByInstructor(ctx, instructorID)
	if err != nil {
		s.logger.Error("GetTemplate: repository error for instructor=%d: %v", instructorID, err)
		return nil, fmt.Errorf("%w: GetTemplate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetTemplate: fetched %d rules for instructor=%d", len(rules), instructorID)
	return models.FromDomainRules(instructorID, rules), nil
}

// Replace целиком заменяет недельный шаблон доступности
// Доступно только самому инструктору; окна, не вошедшие в запрос, удаляются.
// Замена не затрагивает уже созданные бронирования
func (s *Service) Replace(ctx context.Context, req *models.ReplaceRequest) (*models.TemplateResponse, error) {
	s.logger.Info("Replace: replacing availability for instructor=%d by user=%d, %d rules",
		req.InstructorID, req.UserID, len(req.Rules))

	// Шаблон может менять только его владелец
	if req.UserID != req.InstructorID {
		s.logger.Warn("Replace: user=%d cannot manage availability of instructor=%d", req.UserID, req.InstructorID)
		return nil, ErrAccessDenied
	}

	user, err := s.userClient.GetUser(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			s.logger.Warn("Replace: user id=%d not found", req.UserID)
			return nil, ErrInstructorNotFound
		}
		s.logger.Error("Replace: failed to get user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: Replace - failed to get user: %v", ErrInternal, err)
	}

	if !user.Role.IsInstructor() {
		s.logger.Warn("Replace: user id=%d with role=%s cannot manage availability", req.UserID, user.Role)
		return nil, ErrNotAnInstructor
	}

	rules, err := s.toDomainRules(req)
	if err != nil {
		s.logger.Warn("Replace: validation failed for instructor=%d: %v", req.InstructorID, err)
		return nil, err
	}

	var created []*domain.AvailabilityRule

	// Удаление старого шаблона и вставка нового выполняются атомарно
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		created, err = s.availabilityRepo.ReplaceForInstructor(txCtx, req.InstructorID, rules)
		if err != nil {
			if errors.Is(err, availabilityRepo.ErrDuplicateRule) {
				return ErrDuplicateRule
			}
			s.logger.Error("Replace: repository error for instructor=%d: %v", req.InstructorID, err)
			return fmt.Errorf("%w: Replace - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Replace: successfully replaced availability for instructor=%d, created %d rules",
		req.InstructorID, len(created))
	return models.FromDomainRules(req.InstructorID, created), nil
}

// toDomainRules валидирует и конвертирует окна запроса
func (s *Service) toDomainRules(req *models.ReplaceRequest) ([]*domain.AvailabilityRule, error) {
	rules := make([]*domain.AvailabilityRule, 0, len(req.Rules))
	seen := make(map[string]bool)

	for i, input := range req.Rules {
		if input.DayOfWeek < 0 || input.DayOfWeek > 6 {
			return nil, fmt.Errorf("%w: rule %d: dayOfWeek must be between 0 and 6", ErrInvalidInput, i)
		}

		rule, err := input.ToDomainRule(req.InstructorID)
		if err != nil {
			return nil, fmt.Errorf("%w: rule %d: %v", ErrInvalidInput, i, err)
		}

		if !rule.StartTime.IsBefore(rule.EndTime) {
			return nil, fmt.Errorf("%w: rule %d: endTime must be after startTime", ErrInvalidInput, i)
		}

		// Два окна с одинаковым днем и временем начала недопустимы
		key := fmt.Sprintf("%d/%s", rule.DayOfWeek, rule.StartTime)
		if seen[key] {
			return nil, fmt.Errorf("%w: %s %s", ErrDuplicateRule, domain.WeekdayName(rule.DayOfWeek), rule.StartTime)
		}
		seen[key] = true

		rules = append(rules, rule)
	}

	return rules, nil
}
