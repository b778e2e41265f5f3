package usecase

import (
	"cinema-kiosk/internal/data/repository"
	"cinema-kiosk/pkg/database"
	"cinema-kiosk/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Checkout CheckoutService
	Showtime ShowtimeService
}

func NewService(db database.PgxIface, repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Checkout: NewCheckoutService(db, repo, config, log),
		Showtime: NewShowtimeService(repo, log),
	}
}
