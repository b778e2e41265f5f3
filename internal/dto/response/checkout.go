package response

import (
	"time"

	"cinema-kiosk/internal/data/entity"
)

type CheckoutResult struct {
	SaleID        int64     `json:"sale_id"`
	ReceiptNumber string    `json:"receipt_number"`
	ShowtimeID    int64     `json:"showtime_id"`
	SeatsBooked   int       `json:"seats_booked"`
	TotalCharged  string    `json:"total_charged"`
	PaymentMethod string    `json:"payment_method"`
	SaleDate      time.Time `json:"sale_date"`
}

// Failure kinds carried in error payloads.
const (
	FailureKindSeatConflict   = "seat_conflict"
	FailureKindCapacity       = "capacity_error"
	FailureKindValidation     = "validation_error"
	FailureKindInfrastructure = "infrastructure_error"
)

// CheckoutFailure is the discriminated error payload for a failed checkout.
type CheckoutFailure struct {
	Kind   string   `json:"kind"`
	Seats  []string `json:"seats,omitempty"`
	Reason string   `json:"reason,omitempty"`
}

// SaleLine is one add-on line on a receipt.
type SaleLine struct {
	ExtraID  int64 `json:"extra_id"`
	Quantity int   `json:"quantity"`
}

// SaleDetail is the receipt view of a committed sale: the sale summary
// plus its add-on lines.
type SaleDetail struct {
	CheckoutResult
	Extras []SaleLine `json:"extras,omitempty"`
}

func SaleToCheckoutResult(sale *entity.Sale) *CheckoutResult {
	return &CheckoutResult{
		SaleID:        sale.ID,
		ReceiptNumber: sale.ReceiptNumber,
		ShowtimeID:    sale.ShowtimeID,
		SeatsBooked:   sale.SeatsBooked,
		TotalCharged:  sale.TotalAmount.StringFixed(2),
		PaymentMethod: string(sale.PaymentMethod),
		SaleDate:      sale.SaleDate,
	}
}
