package repository

import (
	"context"
	"fmt"
	"time"

	"cinema-kiosk/internal/data/entity"
	"cinema-kiosk/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ShowtimeRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.Showtime, error)
	ListUpcomingByMovie(ctx context.Context, movieID int64, from time.Time) ([]*entity.Showtime, error)
	GetAvailable(ctx context.Context, id int64) (int, error)

	// DecrementAvailableTx reduces the cached available-seat counter inside
	// the given transaction, refusing if the result would go negative. With
	// correct seat bookkeeping the refusal is unreachable; it exists so a
	// latent bug corrupts nothing readers can see.
	DecrementAvailableTx(ctx context.Context, tx database.Querier, id int64, by int) error
}

type showtimeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewShowtimeRepository(db database.PgxIface, log *zap.Logger) ShowtimeRepository {
	return &showtimeRepository{
		db:  db,
		log: log.With(zap.String("repository", "showtime")),
	}
}

func (r *showtimeRepository) FindByID(ctx context.Context, id int64) (*entity.Showtime, error) {
	query := `
		SELECT id, movie_id, show_date, show_time, price, total_seats, available_seats, created_at
		FROM showtimes
		WHERE id = $1
	`

	var showtime entity.Showtime
	err := r.db.QueryRow(ctx, query, id).Scan(
		&showtime.ID,
		&showtime.MovieID,
		&showtime.ShowDate,
		&showtime.ShowTime,
		&showtime.Price,
		&showtime.TotalSeats,
		&showtime.AvailableSeats,
		&showtime.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find showtime by ID",
			zap.Error(err),
			zap.Int64("showtime_id", id),
		)
		return nil, fmt.Errorf("find showtime by ID %d: %w", id, err)
	}

	return &showtime, nil
}

func (r *showtimeRepository) ListUpcomingByMovie(ctx context.Context, movieID int64, from time.Time) ([]*entity.Showtime, error) {
	query := `
		SELECT id, movie_id, show_date, show_time, price, total_seats, available_seats, created_at
		FROM showtimes
		WHERE movie_id = $1 AND show_date >= $2
		ORDER BY show_date, show_time
	`

	fromDate := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())

	rows, err := r.db.Query(ctx, query, movieID, fromDate)
	if err != nil {
		r.log.Error("Failed to list upcoming showtimes",
			zap.Error(err),
			zap.Int64("movie_id", movieID),
		)
		return nil, fmt.Errorf("list upcoming showtimes for movie %d: %w", movieID, err)
	}
	defer rows.Close()

	var showtimes []*entity.Showtime
	for rows.Next() {
		var showtime entity.Showtime
		err := rows.Scan(
			&showtime.ID,
			&showtime.MovieID,
			&showtime.ShowDate,
			&showtime.ShowTime,
			&showtime.Price,
			&showtime.TotalSeats,
			&showtime.AvailableSeats,
			&showtime.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan showtime row", zap.Error(err))
			return nil, fmt.Errorf("scan showtime row: %w", err)
		}
		showtimes = append(showtimes, &showtime)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Failed to read showtime rows", zap.Error(err))
		return nil, fmt.Errorf("read showtime rows for movie %d: %w", movieID, err)
	}

	return showtimes, nil
}

func (r *showtimeRepository) GetAvailable(ctx context.Context, id int64) (int, error) {
	query := `SELECT available_seats FROM showtimes WHERE id = $1`

	var available int
	err := r.db.QueryRow(ctx, query, id).Scan(&available)
	if err == pgx.ErrNoRows {
		return 0, fmt.Errorf("showtime %d not found", id)
	}
	if err != nil {
		r.log.Error("Failed to get available seats",
			zap.Error(err),
			zap.Int64("showtime_id", id),
		)
		return 0, fmt.Errorf("get available seats for showtime %d: %w", id, err)
	}

	return available, nil
}

func (r *showtimeRepository) DecrementAvailableTx(ctx context.Context, tx database.Querier, id int64, by int) error {
	query := `
		UPDATE showtimes
		SET available_seats = available_seats - $2
		WHERE id = $1 AND available_seats >= $2
	`

	tag, err := tx.Exec(ctx, query, id, by)
	if err != nil {
		r.log.Error("Failed to decrement available seats",
			zap.Error(err),
			zap.Int64("showtime_id", id),
			zap.Int("by", by),
		)
		return fmt.Errorf("decrement available seats for showtime %d: %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return ErrInsufficientCapacity
	}

	return nil
}
