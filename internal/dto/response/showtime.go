package response

import (
	"cinema-kiosk/internal/data/entity"
)

type MovieResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	PosterImage string `json:"poster_image,omitempty"`
}

type ShowtimeResponse struct {
	ID             int64  `json:"id"`
	MovieID        int64  `json:"movie_id"`
	ShowDate       string `json:"show_date"`
	ShowTime       string `json:"show_time"`
	Price          string `json:"price"`
	TotalSeats     int    `json:"total_seats"`
	AvailableSeats int    `json:"available_seats"`
	SoldOut        bool   `json:"sold_out"`
	FewSeatsLeft   bool   `json:"few_seats_left"`
}

// SeatMapResponse renders the seat-selection grid: dimensions plus the
// currently booked seat numbers. Booked data may be momentarily stale
// under concurrent checkouts; the kiosk refreshes after a conflict.
type SeatMapResponse struct {
	ShowtimeID     int64    `json:"showtime_id"`
	Rows           string   `json:"rows"`
	Columns        int      `json:"columns"`
	BookedSeats    []string `json:"booked_seats"`
	AvailableSeats int      `json:"available_seats"`
}

type ExtraResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
	Price       string `json:"price"`
	Image       string `json:"image,omitempty"`
}

// Helper converters

func MovieToResponse(movie *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:          movie.ID,
		Title:       movie.Title,
		Description: movie.Description,
		PosterImage: movie.PosterImage,
	}
}

// fewSeatsThreshold drives the "N seats left" badge on the listing screen.
const fewSeatsThreshold = 5

func ShowtimeToResponse(showtime *entity.Showtime) ShowtimeResponse {
	return ShowtimeResponse{
		ID:             showtime.ID,
		MovieID:        showtime.MovieID,
		ShowDate:       showtime.ShowDate.Format("2006-01-02"),
		ShowTime:       showtime.ShowTime.Format("15:04"),
		Price:          showtime.Price.StringFixed(2),
		TotalSeats:     showtime.TotalSeats,
		AvailableSeats: showtime.AvailableSeats,
		SoldOut:        showtime.AvailableSeats == 0,
		FewSeatsLeft:   showtime.AvailableSeats > 0 && showtime.AvailableSeats <= fewSeatsThreshold,
	}
}

func ExtraToResponse(extra *entity.Extra) ExtraResponse {
	return ExtraResponse{
		ID:          extra.ID,
		Name:        extra.Name,
		Description: extra.Description,
		Category:    string(extra.Category),
		Price:       extra.Price.StringFixed(2),
		Image:       extra.Image,
	}
}
