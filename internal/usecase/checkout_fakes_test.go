package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"cinema-kiosk/internal/data/entity"
	"cinema-kiosk/internal/data/repository"
	"cinema-kiosk/pkg/database"
)

// memStore is the committed state behind the in-memory fakes. A transaction
// holds the store lock from Begin until Commit or Rollback, which models
// the row-level serialization the real store provides: concurrent commits
// against the same store serialize, and staged writes are invisible until
// Commit.
type memStore struct {
	mu         sync.Mutex
	showtimes  map[int64]*entity.Showtime
	seats      map[int64]map[string]bool // showtime -> seat number -> booked
	movies     map[int64]*entity.Movie
	extras     map[int64]*entity.Extra
	sales      []*entity.Sale
	saleLines  []*entity.SaleExtra
	nextSaleID int64

	beginCount int
	commitErr  error
}

func newMemStore() *memStore {
	return &memStore{
		showtimes:  make(map[int64]*entity.Showtime),
		seats:      make(map[int64]map[string]bool),
		movies:     make(map[int64]*entity.Movie),
		extras:     make(map[int64]*entity.Extra),
		nextSaleID: 1,
	}
}

func (s *memStore) addShowtime(id int64, showDate time.Time, price string, totalSeats int, grid SeatGrid) {
	s.showtimes[id] = &entity.Showtime{
		ID:             id,
		MovieID:        1,
		ShowDate:       showDate,
		ShowTime:       showDate.Add(18 * time.Hour),
		Price:          d(price),
		TotalSeats:     totalSeats,
		AvailableSeats: totalSeats,
	}
	rows := make(map[string]bool, grid.Size())
	for _, sn := range grid.Seats() {
		rows[sn] = false
	}
	s.seats[id] = rows
}

func (s *memStore) addExtra(id int64, name, price string, status entity.ExtraStatus) {
	s.extras[id] = &entity.Extra{
		ID:       id,
		Name:     name,
		Category: entity.ExtraCategorySnack,
		Price:    d(price),
		Status:   status,
	}
}

func (s *memStore) bookedSeats(showtimeID int64) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var booked []string
	for sn, isBooked := range s.seats[showtimeID] {
		if isBooked {
			booked = append(booked, sn)
		}
	}
	sort.Strings(booked)
	return booked
}

func (s *memStore) available(showtimeID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.showtimes[showtimeID].AvailableSeats
}

// memDB hands out transactions over the store.
type memDB struct {
	database.PgxIface
	store *memStore
}

func (d *memDB) Begin(ctx context.Context) (database.Tx, error) {
	d.store.mu.Lock()
	d.store.beginCount++
	return &memTx{
		store:       d.store,
		stagedSeats: make(map[int64][]string),
		stagedDec:   make(map[int64]int),
	}, nil
}

type memTx struct {
	database.Querier
	store       *memStore
	done        bool
	stagedSeats map[int64][]string
	stagedDec   map[int64]int
	stagedSale  *entity.Sale
	stagedLines []*entity.SaleExtra
}

func (t *memTx) Commit(ctx context.Context) error {
	if t.done {
		return errors.New("tx is closed")
	}
	t.done = true
	defer t.store.mu.Unlock()

	if t.store.commitErr != nil {
		return t.store.commitErr
	}

	for showtimeID, seats := range t.stagedSeats {
		for _, sn := range seats {
			t.store.seats[showtimeID][sn] = true
		}
	}
	for showtimeID, by := range t.stagedDec {
		t.store.showtimes[showtimeID].AvailableSeats -= by
	}
	if t.stagedSale != nil {
		t.store.sales = append(t.store.sales, t.stagedSale)
	}
	t.store.saleLines = append(t.store.saleLines, t.stagedLines...)
	return nil
}

func (t *memTx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.store.mu.Unlock()
	return nil
}

// ---- fake repositories ----

type memSeatRepo struct {
	store   *memStore
	bookErr error
}

func (r *memSeatRepo) FindBookedByShowtime(ctx context.Context, showtimeID int64) ([]string, error) {
	return r.store.bookedSeats(showtimeID), nil
}

func (r *memSeatRepo) CountBookedByShowtime(ctx context.Context, showtimeID int64) (int, error) {
	return len(r.store.bookedSeats(showtimeID)), nil
}

func (r *memSeatRepo) TryBookTx(ctx context.Context, tx database.Querier, showtimeID int64, seatNumbers []string) error {
	if r.bookErr != nil {
		return r.bookErr
	}
	mt := tx.(*memTx)
	rows := mt.store.seats[showtimeID]

	var missing, taken []string
	for _, sn := range seatNumbers {
		booked, ok := rows[sn]
		if !ok {
			missing = append(missing, sn)
			continue
		}
		if booked {
			taken = append(taken, sn)
		}
	}
	if len(missing) > 0 {
		return &repository.SeatsNotFoundError{Seats: missing}
	}
	if len(taken) > 0 {
		return &repository.SeatsTakenError{Seats: taken}
	}

	mt.stagedSeats[showtimeID] = append(mt.stagedSeats[showtimeID], seatNumbers...)
	return nil
}

func (r *memSeatRepo) MaterializeTx(ctx context.Context, tx database.Querier, showtimeID int64, seatNumbers []string) error {
	mt := tx.(*memTx)
	rows := mt.store.seats[showtimeID]
	for _, sn := range seatNumbers {
		if _, ok := rows[sn]; !ok {
			rows[sn] = false
		}
	}
	return nil
}

type memShowtimeRepo struct {
	store *memStore
}

func (r *memShowtimeRepo) FindByID(ctx context.Context, id int64) (*entity.Showtime, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	showtime, ok := r.store.showtimes[id]
	if !ok {
		return nil, nil
	}
	copied := *showtime
	return &copied, nil
}

func (r *memShowtimeRepo) ListUpcomingByMovie(ctx context.Context, movieID int64, from time.Time) ([]*entity.Showtime, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	fromDate := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	var result []*entity.Showtime
	for _, showtime := range r.store.showtimes {
		if showtime.MovieID == movieID && !showtime.ShowDate.Before(fromDate) {
			copied := *showtime
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *memShowtimeRepo) GetAvailable(ctx context.Context, id int64) (int, error) {
	return r.store.available(id), nil
}

func (r *memShowtimeRepo) DecrementAvailableTx(ctx context.Context, tx database.Querier, id int64, by int) error {
	mt := tx.(*memTx)
	showtime := mt.store.showtimes[id]
	if showtime.AvailableSeats-mt.stagedDec[id]-by < 0 {
		return repository.ErrInsufficientCapacity
	}
	mt.stagedDec[id] += by
	return nil
}

type memExtraRepo struct {
	store *memStore
}

func (r *memExtraRepo) FindAllActive(ctx context.Context) ([]*entity.Extra, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var extras []*entity.Extra
	for _, extra := range r.store.extras {
		if extra.Status == entity.ExtraStatusActive {
			extras = append(extras, extra)
		}
	}
	sort.Slice(extras, func(i, j int) bool { return extras[i].ID < extras[j].ID })
	return extras, nil
}

func (r *memExtraRepo) FindActiveByIDs(ctx context.Context, ids []int64) (map[int64]*entity.Extra, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	found := make(map[int64]*entity.Extra, len(ids))
	for _, id := range ids {
		if extra, ok := r.store.extras[id]; ok && extra.Status == entity.ExtraStatusActive {
			found[id] = extra
		}
	}
	return found, nil
}

type memSaleRepo struct {
	store      *memStore
	createErr  error
	createHook func(store *memStore)
}

func (r *memSaleRepo) CreateTx(ctx context.Context, tx database.Querier, sale *entity.Sale) error {
	mt := tx.(*memTx)

	if r.createHook != nil {
		hook := r.createHook
		r.createHook = nil
		hook(mt.store)
	}
	// A cancelled request context fails the insert the way the driver would.
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.createErr != nil {
		return r.createErr
	}

	if sale.IdempotencyKey != nil {
		for _, existing := range mt.store.sales {
			if existing.IdempotencyKey != nil && *existing.IdempotencyKey == *sale.IdempotencyKey {
				return repository.ErrDuplicateIdempotencyKey
			}
		}
	}

	sale.ID = mt.store.nextSaleID
	mt.store.nextSaleID++
	mt.stagedSale = sale
	return nil
}

func (r *memSaleRepo) FindByID(ctx context.Context, id int64) (*entity.Sale, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, sale := range r.store.sales {
		if sale.ID == id {
			return sale, nil
		}
	}
	return nil, nil
}

func (r *memSaleRepo) FindByIdempotencyKey(ctx context.Context, key string) (*entity.Sale, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, sale := range r.store.sales {
		if sale.IdempotencyKey != nil && *sale.IdempotencyKey == key {
			return sale, nil
		}
	}
	return nil, nil
}

type memSaleExtraRepo struct {
	store *memStore
}

func (r *memSaleExtraRepo) CreateBatchTx(ctx context.Context, tx database.Querier, lines []*entity.SaleExtra) error {
	mt := tx.(*memTx)
	mt.stagedLines = append(mt.stagedLines, lines...)
	return nil
}

func (r *memSaleExtraRepo) FindBySaleID(ctx context.Context, saleID int64) ([]*entity.SaleExtra, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var lines []*entity.SaleExtra
	for _, line := range r.store.saleLines {
		if line.SaleID == saleID {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

type memMovieRepo struct {
	store *memStore
}

func (r *memMovieRepo) FindAllActive(ctx context.Context) ([]*entity.Movie, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var movies []*entity.Movie
	for _, movie := range r.store.movies {
		if movie.Status == entity.MovieStatusActive {
			movies = append(movies, movie)
		}
	}
	sort.Slice(movies, func(i, j int) bool { return movies[i].ID < movies[j].ID })
	return movies, nil
}

func (r *memMovieRepo) FindByID(ctx context.Context, id int64) (*entity.Movie, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	movie, ok := r.store.movies[id]
	if !ok {
		return nil, nil
	}
	return movie, nil
}

func newMemRepository(store *memStore) (*repository.Repository, *memSaleRepo) {
	saleRepo := &memSaleRepo{store: store}
	return &repository.Repository{
		Movie:     &memMovieRepo{store: store},
		Showtime:  &memShowtimeRepo{store: store},
		Seat:      &memSeatRepo{store: store},
		Extra:     &memExtraRepo{store: store},
		Sale:      saleRepo,
		SaleExtra: &memSaleExtraRepo{store: store},
	}, saleRepo
}
