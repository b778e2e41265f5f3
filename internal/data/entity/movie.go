package entity

import "time"

type MovieStatus string

const (
	MovieStatusActive   MovieStatus = "active"
	MovieStatusInactive MovieStatus = "inactive"
)

type Movie struct {
	ID          int64       `db:"id"`
	Title       string      `db:"title"`
	Description string      `db:"description"`
	PosterImage string      `db:"poster_image"`
	Status      MovieStatus `db:"status"`
	CreatedAt   time.Time   `db:"created_at"`
}
