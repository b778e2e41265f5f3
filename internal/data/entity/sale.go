package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodCash    PaymentMethod = "cash"
	PaymentMethodEWallet PaymentMethod = "ewallet"
	PaymentMethodCard    PaymentMethod = "card"
)

// Sale is the immutable record of one completed checkout. It is created
// exactly once per successful commit and never mutated afterwards.
// IdempotencyKey is only set when the kiosk client supplied one; a unique
// constraint on it turns a replayed submission into a lookup instead of a
// second booking.
type Sale struct {
	ID             int64           `db:"id"`
	ReceiptNumber  string          `db:"receipt_number"`
	ShowtimeID     int64           `db:"showtime_id"`
	SeatsBooked    int             `db:"seats_booked"`
	TotalAmount    decimal.Decimal `db:"total_amount"`
	PaymentMethod  PaymentMethod   `db:"payment_method"`
	IdempotencyKey *string         `db:"idempotency_key"`
	SaleDate       time.Time       `db:"sale_date"`
}
