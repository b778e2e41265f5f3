package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Showtime is one scheduled screening. AvailableSeats is a cached counter
// kept in sync with the booked-seat rows inside the checkout transaction:
// available_seats == total_seats - count(booked seats) after every commit.
type Showtime struct {
	ID             int64           `db:"id"`
	MovieID        int64           `db:"movie_id"`
	ShowDate       time.Time       `db:"show_date"`
	ShowTime       time.Time       `db:"show_time"`
	Price          decimal.Decimal `db:"price"`
	TotalSeats     int             `db:"total_seats"`
	AvailableSeats int             `db:"available_seats"`
	CreatedAt      time.Time       `db:"created_at"`
}

// IsPast reports whether the showtime's date is before today. The kiosk
// filters at day granularity, so same-day showtimes stay bookable.
func (s *Showtime) IsPast(now time.Time) bool {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return s.ShowDate.Before(today)
}
