package repository

import (
	"cinema-kiosk/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Movie     MovieRepository
	Showtime  ShowtimeRepository
	Seat      SeatRepository
	Extra     ExtraRepository
	Sale      SaleRepository
	SaleExtra SaleExtraRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Movie:     NewMovieRepository(db, log),
		Showtime:  NewShowtimeRepository(db, log),
		Seat:      NewSeatRepository(db, log),
		Extra:     NewExtraRepository(db, log),
		Sale:      NewSaleRepository(db, log),
		SaleExtra: NewSaleExtraRepository(db, log),
	}
}
