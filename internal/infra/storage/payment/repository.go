package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/driveever/DriveEver-BookingService/internal/domain"
	"github.com/driveever/DriveEver-BookingService/pkg/dbmetrics"
	"github.com/driveever/DriveEver-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с платежами
// Списание ведет внешний провайдер; здесь только чтение и переводы статуса
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает платеж по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"amount",
		"currency",
		"payment_method",
		"status",
		"transaction_id",
		"refund_reference",
		"created_at",
		"updated_at",
		"completed_at",
	).
		From("payments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.Payment
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.Amount,
		&p.Currency,
		&p.Method,
		&p.Status,
		&p.TransactionID,
		&p.RefundReference,
		&createdAt,
		&updatedAt,
		&p.CompletedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan payment: %v", ErrScanRow, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}

// MarkRefunded переводит платеж в refunded с указанием ссылки возврата
func (r *Repository) MarkRefunded(ctx context.Context, id int64, refundReference string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payments").
		Set("status", domain.PaymentStatusRefunded).
		Set("refund_reference", refundReference).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkRefunded - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkRefunded - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkRefunded - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrPaymentNotFound
	}

	return nil
}
