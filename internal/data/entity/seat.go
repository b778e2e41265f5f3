package entity

// Seat is one seat position within one showtime. Identity is the pair
// (showtime_id, seat_number); rows are materialized when the showtime is
// scheduled. Once booked a seat stays booked - there is no un-booking path.
type Seat struct {
	ShowtimeID int64  `db:"showtime_id"`
	SeatNumber string `db:"seat_number"` // A1, A2, B1, etc.
	IsBooked   bool   `db:"is_booked"`
}
