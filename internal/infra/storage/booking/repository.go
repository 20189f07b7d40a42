package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/driveever/DriveEver-BookingService/internal/domain"
	"github.com/driveever/DriveEver-BookingService/pkg/dbmetrics"
	"github.com/driveever/DriveEver-BookingService/pkg/psqlbuilder"
)

// bookingColumns полный список колонок таблицы bookings
var bookingColumns = []string{
	"id",
	"learner_id",
	"instructor_id",
	"lesson_date",
	"start_time",
	"end_time",
	"duration_hours",
	"status",
	"payment_id",
	"price_per_hour",
	"total_price",
	"lesson_type",
	"pickup_location",
	"dropoff_location",
	"notes",
	"learner_name",
	"instructor_name",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
//
// Таблица bookings несёт EXCLUDE-ограничение на пересечение интервалов
// (instructor_id, lesson_date, [start_time, end_time)) для активных статусов -
// страховка от гонки двух конкурентных бронирований, прошедших проверку
// до коммита. Нарушение ограничения возвращается как ErrTimeSlotConflict.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"learner_id",
			"instructor_id",
			"lesson_date",
			"start_time",
			"end_time",
			"duration_hours",
			"status",
			"payment_id",
			"price_per_hour",
			"total_price",
			"lesson_type",
			"pickup_location",
			"dropoff_location",
			"notes",
			"learner_name",
			"instructor_name",
		).
		Values(
			booking.LearnerID,
			booking.InstructorID,
			booking.LessonDate,
			booking.StartTime,
			booking.EndTime,
			booking.DurationHours,
			booking.Status,
			booking.PaymentID,
			booking.PricePerHour,
			booking.TotalPrice,
			booking.LessonType,
			booking.PickupLocation,
			booking.DropoffLocation,
			booking.Notes,
			booking.LearnerName,
			booking.InstructorName,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isConflictError(err) {
			return nil, ErrTimeSlotConflict
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByInstructorAndDate получает бронирования инструктора на конкретную дату
// с фильтром по статусам, отсортированные по времени начала
// Внутри транзакции добавляет FOR UPDATE - блокировка строк на время проверки
// конфликтов при создании бронирования
func (r *Repository) GetByInstructorAndDate(
	ctx context.Context,
	instructorID int64,
	date time.Time,
	statuses []domain.BookingStatus,
) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"instructor_id": instructorID}).
		Where(squirrel.Eq{"lesson_date": date}).
		OrderBy("start_time ASC")

	if len(statuses) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings(statuses)})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByInstructorAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByInstructorAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetByInstructorAndRange получает активные бронирования инструктора за период
// для календарного представления, отсортированные по дате и времени начала
func (r *Repository) GetByInstructorAndRange(
	ctx context.Context,
	instructorID int64,
	startDate, endDate time.Time,
	statuses []domain.BookingStatus,
) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"instructor_id": instructorID}).
		Where(squirrel.GtOrEq{"lesson_date": startDate}).
		Where(squirrel.LtOrEq{"lesson_date": endDate}).
		OrderBy("lesson_date ASC, start_time ASC")

	if len(statuses) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings(statuses)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByInstructorAndRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByInstructorAndRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetByLearnerID получает историю бронирований ученика, сначала новые
func (r *Repository) GetByLearnerID(ctx context.Context, learnerID int64) ([]*domain.Booking, error) {
	return r.getByParty(ctx, "learner_id", learnerID, "GetByLearnerID")
}

// GetByInstructorID получает историю бронирований инструктора, сначала новые
func (r *Repository) GetByInstructorID(ctx context.Context, instructorID int64) ([]*domain.Booking, error) {
	return r.getByParty(ctx, "instructor_id", instructorID, "GetByInstructorID")
}

func (r *Repository) getByParty(ctx context.Context, column string, userID int64, op string) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{column: userID}).
		OrderBy("lesson_date DESC, start_time DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateStatus")
}

// Cancel переводит бронирование в cancelled с отметкой времени отмены
func (r *Repository) Cancel(ctx context.Context, id int64, cancelledAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancelled_at", cancelledAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Cancel")
}

// UpdateDetails обновляет свободные поля урока (тип, адреса, заметки)
// Остальные поля бронирования после создания неизменяемы
func (r *Repository) UpdateDetails(
	ctx context.Context,
	id int64,
	lessonType, pickupLocation, dropoffLocation, notes *string,
) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if lessonType != nil {
		updateBuilder = updateBuilder.Set("lesson_type", *lessonType)
	}
	if pickupLocation != nil {
		updateBuilder = updateBuilder.Set("pickup_location", *pickupLocation)
	}
	if dropoffLocation != nil {
		updateBuilder = updateBuilder.Set("dropoff_location", *dropoffLocation)
	}
	if notes != nil {
		updateBuilder = updateBuilder.Set("notes", *notes)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateDetails - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateDetails")
}

func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// rowScanner общий интерфейс для *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.LearnerID,
		&booking.InstructorID,
		&booking.LessonDate,
		&booking.StartTime,
		&booking.EndTime,
		&booking.DurationHours,
		&booking.Status,
		&booking.PaymentID,
		&booking.PricePerHour,
		&booking.TotalPrice,
		&booking.LessonType,
		&booking.PickupLocation,
		&booking.DropoffLocation,
		&booking.Notes,
		&booking.LearnerName,
		&booking.InstructorName,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := r.scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// isConflictError проверяет, что ошибка - нарушение exclusion/unique
// ограничения PostgreSQL на пересекающиеся бронирования
func isConflictError(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	// 23P01 = exclusion_violation, 23505 = unique_violation
	return pqErr.Code == "23P01" || pqErr.Code == "23505"
}

func statusStrings(statuses []domain.BookingStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}
