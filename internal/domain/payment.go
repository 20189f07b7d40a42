package domain

import "time"

// PaymentStatus represents the status of a payment
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// PaymentMethod represents the payment provider
type PaymentMethod string

const (
	PaymentMethodStripe       PaymentMethod = "stripe"
	PaymentMethodPayPal       PaymentMethod = "paypal"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
)

// Payment платеж, привязанный к бронированию
// Списание выполняет внешний провайдер; сервис хранит статус и переводит
// completed -> refunded при отмене бронирования
type Payment struct {
	ID       int64
	Amount   float64
	Currency string
	Method   PaymentMethod
	Status   PaymentStatus

	// ID транзакции внешнего платежного провайдера
	TransactionID *string
	// Ссылка возврата, выставляется при переходе в refunded
	RefundReference *string

	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
}

// IsRefundable returns true if cancelling the booking must refund the payment
func (p *Payment) IsRefundable() bool {
	return p.Status == PaymentStatusCompleted
}
