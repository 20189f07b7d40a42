package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/driveever/DriveEver-BookingService/internal/domain"
	"github.com/driveever/DriveEver-BookingService/pkg/dbmetrics"
	"github.com/driveever/DriveEver-BookingService/pkg/psqlbuilder"
)

var ruleColumns = []string{
	"id",
	"instructor_id",
	"day_of_week",
	"start_time",
	"end_time",
	"is_available",
	"created_at",
	"updated_at",
}

// Repository репозиторий еженедельных окон доступности инструкторов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория доступности
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetActiveForWeekday получает активные окна инструктора на день недели,
// отсортированные по времени начала
func (r *Repository) GetActiveForWeekday(ctx context.Context, instructorID int64, dayOfWeek int) ([]*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("instructor_availability").
		Where(squirrel.Eq{"instructor_id": instructorID}).
		Where(squirrel.Eq{"day_of_week": dayOfWeek}).
		Where(squirrel.Eq{"is_available": true}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveForWeekday - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveForWeekday - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanRules(rows)
}

// GetByInstructor получает все окна инструктора (включая выключенные),
// отсортированные по дню недели и времени начала
func (r *Repository) GetByInstructor(ctx context.Context, instructorID int64) ([]*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("instructor_availability").
		Where(squirrel.Eq{"instructor_id": instructorID}).
		OrderBy("day_of_week ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByInstructor - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByInstructor - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanRules(rows)
}

// ReplaceForInstructor заменяет недельный шаблон инструктора целиком:
// удаляет старые окна и вставляет новые
// Вызывается внутри транзакции, чтобы замена была атомарной
func (r *Repository) ReplaceForInstructor(ctx context.Context, instructorID int64, rules []*domain.AvailabilityRule) ([]*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("instructor_availability").
		Where(squirrel.Eq{"instructor_id": instructorID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ReplaceForInstructor - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return nil, fmt.Errorf("%w: ReplaceForInstructor - execute delete: %v", ErrExecQuery, err)
	}

	saved := make([]*domain.AvailabilityRule, 0, len(rules))
	for _, rule := range rules {
		query, args, err := psqlbuilder.Insert("instructor_availability").
			Columns(
				"instructor_id",
				"day_of_week",
				"start_time",
				"end_time",
				"is_available",
			).
			Values(
				instructorID,
				rule.DayOfWeek,
				rule.StartTime,
				rule.EndTime,
				rule.IsAvailable,
			).
			Suffix("RETURNING id, created_at, updated_at").
			ToSql()

		if err != nil {
			return nil, fmt.Errorf("%w: ReplaceForInstructor - build insert query: %v", ErrBuildQuery, err)
		}

		inserted := *rule
		inserted.InstructorID = instructorID

		var createdAt, updatedAt sql.NullTime
		err = executor.QueryRowContext(ctx, query, args...).Scan(&inserted.ID, &createdAt, &updatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return nil, ErrDuplicateRule
			}
			return nil, fmt.Errorf("%w: ReplaceForInstructor - execute insert: %v", ErrExecQuery, err)
		}

		inserted.CreatedAt = createdAt.Time
		inserted.UpdatedAt = updatedAt.Time
		saved = append(saved, &inserted)
	}

	return saved, nil
}

func (r *Repository) scanRules(rows *sql.Rows) ([]*domain.AvailabilityRule, error) {
	rules := make([]*domain.AvailabilityRule, 0)

	for rows.Next() {
		var rule domain.AvailabilityRule
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&rule.ID,
			&rule.InstructorID,
			&rule.DayOfWeek,
			&rule.StartTime,
			&rule.EndTime,
			&rule.IsAvailable,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanRules - scan row: %v", ErrScanRow, err)
		}

		rule.CreatedAt = createdAt.Time
		rule.UpdatedAt = updatedAt.Time

		rules = append(rules, &rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanRules - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
