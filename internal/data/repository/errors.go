package repository

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInsufficientCapacity is returned when a showtime's available-seat
// counter would go negative. The counter is left unchanged.
var ErrInsufficientCapacity = errors.New("insufficient seat capacity")

// ErrDuplicateIdempotencyKey is returned when a sale insert loses a race
// against another sale carrying the same idempotency key.
var ErrDuplicateIdempotencyKey = errors.New("duplicate idempotency key")

// SeatsTakenError reports which requested seats were already booked by
// another sale. It aborts the whole booking; no partial marking survives.
type SeatsTakenError struct {
	Seats []string
}

func (e *SeatsTakenError) Error() string {
	return fmt.Sprintf("seats already booked: %s", strings.Join(e.Seats, ", "))
}

// SeatsNotFoundError reports requested seat numbers with no row for the
// showtime. Seats are materialized at scheduling time, so a missing row
// means the label is outside this showtime's grid.
type SeatsNotFoundError struct {
	Seats []string
}

func (e *SeatsNotFoundError) Error() string {
	return fmt.Sprintf("seats not found for showtime: %s", strings.Join(e.Seats, ", "))
}
