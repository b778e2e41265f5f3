package repository

import (
	"context"
	"errors"
	"testing"

	"cinema-kiosk/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubRows plays back canned (seat_number, is_booked) rows and can report a
// scan-interrupting error the way a dropped connection does: Next returns
// false early and Err carries the cause.
type stubRows struct {
	rows [][]any
	idx  int
	err  error
}

func (r *stubRows) Next() bool {
	if r.idx >= len(r.rows) {
		return false
	}
	r.idx++
	return true
}

func (r *stubRows) Scan(dest ...any) error {
	row := r.rows[r.idx-1]
	*dest[0].(*string) = row[0].(string)
	*dest[1].(*bool) = row[1].(bool)
	return nil
}

func (r *stubRows) Err() error                                   { return r.err }
func (r *stubRows) Close()                                       {}
func (r *stubRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *stubRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *stubRows) Values() ([]any, error)                       { return nil, nil }
func (r *stubRows) RawValues() [][]byte                          { return nil }
func (r *stubRows) Conn() *pgx.Conn                              { return nil }

type stubQuerier struct {
	rows    pgx.Rows
	execTag pgconn.CommandTag
	execErr error
}

func (q *stubQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return q.rows, nil
}

func (q *stubQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func (q *stubQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return q.execTag, q.execErr
}

var _ database.Querier = (*stubQuerier)(nil)

func TestTryBookTxBooksUnbookedSeats(t *testing.T) {
	tx := &stubQuerier{
		rows:    &stubRows{rows: [][]any{{"A1", false}, {"A2", false}}},
		execTag: pgconn.NewCommandTag("UPDATE 2"),
	}
	repo := NewSeatRepository(nil, zap.NewNop())

	err := repo.TryBookTx(context.Background(), tx, 1, []string{"A1", "A2"})
	assert.NoError(t, err)
}

func TestTryBookTxReportsTakenSeats(t *testing.T) {
	tx := &stubQuerier{
		rows: &stubRows{rows: [][]any{{"A1", false}, {"A2", true}}},
	}
	repo := NewSeatRepository(nil, zap.NewNop())

	err := repo.TryBookTx(context.Background(), tx, 1, []string{"A1", "A2"})
	require.Error(t, err)

	var taken *SeatsTakenError
	require.ErrorAs(t, err, &taken)
	assert.Equal(t, []string{"A2"}, taken.Seats)
}

func TestTryBookTxReportsMissingSeats(t *testing.T) {
	tx := &stubQuerier{
		rows: &stubRows{rows: [][]any{{"A1", false}}},
	}
	repo := NewSeatRepository(nil, zap.NewNop())

	err := repo.TryBookTx(context.Background(), tx, 1, []string{"A1", "A2"})
	require.Error(t, err)

	var notFound *SeatsNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, []string{"A2"}, notFound.Seats)
}

func TestTryBookTxScanFailureIsNotMissingSeats(t *testing.T) {
	// The connection dies after the first row: A2 was never seen, but the
	// incomplete scan must not be read as "A2 does not exist".
	connErr := errors.New("unexpected EOF")
	tx := &stubQuerier{
		rows: &stubRows{rows: [][]any{{"A1", false}}, err: connErr},
	}
	repo := NewSeatRepository(nil, zap.NewNop())

	err := repo.TryBookTx(context.Background(), tx, 1, []string{"A1", "A2"})
	require.Error(t, err)
	assert.ErrorIs(t, err, connErr)

	var notFound *SeatsNotFoundError
	assert.False(t, errors.As(err, &notFound))
	var taken *SeatsTakenError
	assert.False(t, errors.As(err, &taken))
}
