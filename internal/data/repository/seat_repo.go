package repository

import (
	"context"
	"fmt"

	"cinema-kiosk/internal/data/entity"
	"cinema-kiosk/pkg/database"

	"go.uber.org/zap"
)

type SeatRepository interface {
	FindBookedByShowtime(ctx context.Context, showtimeID int64) ([]string, error)
	CountBookedByShowtime(ctx context.Context, showtimeID int64) (int, error)

	// TryBookTx marks every seat in seatNumbers as booked inside the given
	// transaction. If any seat is already booked it returns *SeatsTakenError
	// naming the contested seats; if any seat row does not exist it returns
	// *SeatsNotFoundError. Either way the caller must roll the transaction
	// back - nothing is committed partially.
	TryBookTx(ctx context.Context, tx database.Querier, showtimeID int64, seatNumbers []string) error

	// MaterializeTx pre-creates all seat rows for a showtime. Used by the
	// scheduling subsystem and test fixtures.
	MaterializeTx(ctx context.Context, tx database.Querier, showtimeID int64, seatNumbers []string) error
}

type seatRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSeatRepository(db database.PgxIface, log *zap.Logger) SeatRepository {
	return &seatRepository{
		db:  db,
		log: log.With(zap.String("repository", "seat")),
	}
}

func (r *seatRepository) FindBookedByShowtime(ctx context.Context, showtimeID int64) ([]string, error) {
	query := `
		SELECT seat_number
		FROM seats
		WHERE showtime_id = $1 AND is_booked = TRUE
		ORDER BY seat_number
	`

	rows, err := r.db.Query(ctx, query, showtimeID)
	if err != nil {
		r.log.Error("Failed to find booked seats",
			zap.Error(err),
			zap.Int64("showtime_id", showtimeID),
		)
		return nil, fmt.Errorf("find booked seats for showtime %d: %w", showtimeID, err)
	}
	defer rows.Close()

	var seatNumbers []string
	for rows.Next() {
		var seatNumber string
		if err := rows.Scan(&seatNumber); err != nil {
			r.log.Error("Failed to scan seat row", zap.Error(err))
			return nil, fmt.Errorf("scan seat row: %w", err)
		}
		seatNumbers = append(seatNumbers, seatNumber)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Failed to read seat rows", zap.Error(err))
		return nil, fmt.Errorf("read seat rows for showtime %d: %w", showtimeID, err)
	}

	return seatNumbers, nil
}

func (r *seatRepository) CountBookedByShowtime(ctx context.Context, showtimeID int64) (int, error) {
	query := `SELECT COUNT(*) FROM seats WHERE showtime_id = $1 AND is_booked = TRUE`

	var count int
	if err := r.db.QueryRow(ctx, query, showtimeID).Scan(&count); err != nil {
		r.log.Error("Failed to count booked seats",
			zap.Error(err),
			zap.Int64("showtime_id", showtimeID),
		)
		return 0, fmt.Errorf("count booked seats for showtime %d: %w", showtimeID, err)
	}

	return count, nil
}

func (r *seatRepository) TryBookTx(ctx context.Context, tx database.Querier, showtimeID int64, seatNumbers []string) error {
	// Lock the requested seat rows for the duration of the transaction.
	// Concurrent checkouts naming overlapping seats serialize here; the
	// loser wakes up, sees is_booked = TRUE and reports the conflict.
	lockQuery := `
		SELECT seat_number, is_booked
		FROM seats
		WHERE showtime_id = $1 AND seat_number = ANY($2)
		FOR UPDATE
	`

	rows, err := tx.Query(ctx, lockQuery, showtimeID, seatNumbers)
	if err != nil {
		r.log.Error("Failed to lock seat rows",
			zap.Error(err),
			zap.Int64("showtime_id", showtimeID),
			zap.Strings("seats", seatNumbers),
		)
		return fmt.Errorf("lock seats for showtime %d: %w", showtimeID, err)
	}
	defer rows.Close()

	seen := make(map[string]bool, len(seatNumbers))
	var taken []string
	for rows.Next() {
		var seat entity.Seat
		if err := rows.Scan(&seat.SeatNumber, &seat.IsBooked); err != nil {
			return fmt.Errorf("scan seat row: %w", err)
		}
		seen[seat.SeatNumber] = true
		if seat.IsBooked {
			taken = append(taken, seat.SeatNumber)
		}
	}
	rows.Close()

	// An interrupted scan leaves seen incomplete; reporting the remainder
	// as missing or taken would misclassify a storage failure as a caller
	// mistake, so it must surface as a plain wrapped error.
	if err := rows.Err(); err != nil {
		r.log.Error("Failed to read locked seat rows",
			zap.Error(err),
			zap.Int64("showtime_id", showtimeID),
		)
		return fmt.Errorf("lock seats for showtime %d: %w", showtimeID, err)
	}

	var missing []string
	for _, sn := range seatNumbers {
		if !seen[sn] {
			missing = append(missing, sn)
		}
	}
	if len(missing) > 0 {
		return &SeatsNotFoundError{Seats: missing}
	}
	if len(taken) > 0 {
		return &SeatsTakenError{Seats: taken}
	}

	updateQuery := `
		UPDATE seats
		SET is_booked = TRUE
		WHERE showtime_id = $1 AND seat_number = ANY($2) AND is_booked = FALSE
	`

	tag, err := tx.Exec(ctx, updateQuery, showtimeID, seatNumbers)
	if err != nil {
		r.log.Error("Failed to book seats",
			zap.Error(err),
			zap.Int64("showtime_id", showtimeID),
			zap.Strings("seats", seatNumbers),
		)
		return fmt.Errorf("book seats for showtime %d: %w", showtimeID, err)
	}

	// Cannot happen while the rows are locked above; kept as a guard
	// against the conditional update and the lock query drifting apart.
	if int(tag.RowsAffected()) != len(seatNumbers) {
		return &SeatsTakenError{Seats: seatNumbers}
	}

	return nil
}

func (r *seatRepository) MaterializeTx(ctx context.Context, tx database.Querier, showtimeID int64, seatNumbers []string) error {
	if len(seatNumbers) == 0 {
		return nil
	}

	query := `
		INSERT INTO seats (showtime_id, seat_number, is_booked)
		SELECT $1, unnest($2::text[]), FALSE
		ON CONFLICT (showtime_id, seat_number) DO NOTHING
	`

	if _, err := tx.Exec(ctx, query, showtimeID, seatNumbers); err != nil {
		r.log.Error("Failed to materialize seats",
			zap.Error(err),
			zap.Int64("showtime_id", showtimeID),
			zap.Int("count", len(seatNumbers)),
		)
		return fmt.Errorf("materialize seats for showtime %d: %w", showtimeID, err)
	}

	return nil
}
