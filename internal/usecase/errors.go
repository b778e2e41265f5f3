package usecase

import (
	"fmt"
	"strings"
)

// Checkout failures form a closed taxonomy. All four kinds come back as
// typed errors from the service, never as silent partial success, and the
// coordinator never retries on its own.

// ValidationError rejects malformed or out-of-range input before any
// storage write. The caller can correct the input and resubmit.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

// SeatConflictError means one or more requested seats were booked by a
// concurrently committed sale. An expected race outcome, not a bug; the
// kiosk re-fetches the seat grid and lets the customer re-select.
type SeatConflictError struct {
	Seats []string
}

func (e *SeatConflictError) Error() string {
	return fmt.Sprintf("seats already booked: %s", strings.Join(e.Seats, ", "))
}

// CapacityError means the available-seat counter would have gone negative.
// Unreachable while seat bookkeeping is correct, so its firing is an
// internal-consistency alarm logged above conflict severity.
type CapacityError struct {
	ShowtimeID int64
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("insufficient capacity for showtime %d", e.ShowtimeID)
}

// InfrastructureError wraps storage failures. The whole transaction rolled
// back, so the caller may safely retry the checkout from scratch.
type InfrastructureError struct {
	Err error
}

func (e *InfrastructureError) Error() string {
	return "checkout infrastructure failure: " + e.Err.Error()
}

func (e *InfrastructureError) Unwrap() error {
	return e.Err
}
