package usecase

import (
	"context"
	"fmt"
	"time"

	"cinema-kiosk/internal/data/repository"
	"cinema-kiosk/internal/dto/response"

	"go.uber.org/zap"
)

// ShowtimeService is the read-only surface behind the kiosk's browsing
// screens: movie list, showtime list with availability badges, extras menu.
type ShowtimeService interface {
	ListActiveMovies(ctx context.Context) ([]response.MovieResponse, error)
	ListShowtimes(ctx context.Context, movieID int64) ([]response.ShowtimeResponse, error)
	GetShowtime(ctx context.Context, id int64) (*response.ShowtimeResponse, error)
	ListActiveExtras(ctx context.Context) ([]response.ExtraResponse, error)
}

type showtimeService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewShowtimeService(repo *repository.Repository, log *zap.Logger) ShowtimeService {
	return &showtimeService{
		repo: repo,
		log:  log.With(zap.String("service", "showtime")),
		now:  time.Now,
	}
}

func (s *showtimeService) ListActiveMovies(ctx context.Context) ([]response.MovieResponse, error) {
	movies, err := s.repo.Movie.FindAllActive(ctx)
	if err != nil {
		s.log.Error("Failed to list active movies", zap.Error(err))
		return nil, &InfrastructureError{Err: err}
	}

	responses := make([]response.MovieResponse, len(movies))
	for i, movie := range movies {
		responses[i] = response.MovieToResponse(movie)
	}

	return responses, nil
}

func (s *showtimeService) ListShowtimes(ctx context.Context, movieID int64) ([]response.ShowtimeResponse, error) {
	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, &InfrastructureError{Err: err}
	}
	if movie == nil {
		return nil, &ValidationError{Reason: fmt.Sprintf("movie %d not found", movieID)}
	}

	showtimes, err := s.repo.Showtime.ListUpcomingByMovie(ctx, movieID, s.now())
	if err != nil {
		s.log.Error("Failed to list showtimes",
			zap.Error(err),
			zap.Int64("movie_id", movieID),
		)
		return nil, &InfrastructureError{Err: err}
	}

	responses := make([]response.ShowtimeResponse, len(showtimes))
	for i, showtime := range showtimes {
		responses[i] = response.ShowtimeToResponse(showtime)
	}

	return responses, nil
}

func (s *showtimeService) GetShowtime(ctx context.Context, id int64) (*response.ShowtimeResponse, error) {
	showtime, err := s.repo.Showtime.FindByID(ctx, id)
	if err != nil {
		return nil, &InfrastructureError{Err: err}
	}
	if showtime == nil {
		return nil, &ValidationError{Reason: fmt.Sprintf("showtime %d not found", id)}
	}

	booked, err := s.repo.Seat.CountBookedByShowtime(ctx, id)
	if err != nil {
		return nil, &InfrastructureError{Err: err}
	}
	// available_seats == total_seats - booked after every commit; drift
	// means the accounting broke somewhere and is worth an alarm.
	if showtime.TotalSeats-booked != showtime.AvailableSeats {
		s.log.Error("Available seats counter out of sync with seat inventory",
			zap.Int64("showtime_id", id),
			zap.Int("total_seats", showtime.TotalSeats),
			zap.Int("booked", booked),
			zap.Int("available_seats", showtime.AvailableSeats),
		)
	}

	resp := response.ShowtimeToResponse(showtime)
	return &resp, nil
}

func (s *showtimeService) ListActiveExtras(ctx context.Context) ([]response.ExtraResponse, error) {
	extras, err := s.repo.Extra.FindAllActive(ctx)
	if err != nil {
		s.log.Error("Failed to list active extras", zap.Error(err))
		return nil, &InfrastructureError{Err: err}
	}

	responses := make([]response.ExtraResponse, len(extras))
	for i, extra := range extras {
		responses[i] = response.ExtraToResponse(extra)
	}

	return responses, nil
}
