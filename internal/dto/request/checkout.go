package request

import "github.com/shopspring/decimal"

// CheckoutRequest is the finalized booking the kiosk submits. Extras maps
// extra id to quantity. ClientTotal is the total the kiosk displayed; it is
// reconciled against the server-side total for logging only and never
// charged. IdempotencyKey, when supplied, lets a retried submission replay
// the original sale instead of double-booking.
type CheckoutRequest struct {
	ShowtimeID     int64            `json:"showtime_id" validate:"required,gt=0"`
	Seats          []string         `json:"seats" validate:"required,min=1"`
	Extras         map[int64]int    `json:"extras"`
	PaymentMethod  string           `json:"payment_method" validate:"required"`
	ClientTotal    *decimal.Decimal `json:"client_total,omitempty"`
	IdempotencyKey string           `json:"idempotency_key,omitempty" validate:"omitempty,uuid4"`
}
