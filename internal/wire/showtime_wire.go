package wire

import (
	"cinema-kiosk/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireShowtime(r chi.Router, showtimeHandler *adaptor.ShowtimeHandler) {
	// GET /api/movies - active movies for the kiosk home screen
	r.Get("/api/movies", showtimeHandler.GetMovies)

	// GET /api/movies/{id}/showtimes - upcoming showtimes with availability
	r.Get("/api/movies/{id}/showtimes", showtimeHandler.GetShowtimes)

	// GET /api/extras - active concession items
	r.Get("/api/extras", showtimeHandler.GetExtras)
}
