package adaptor

import (
	"cinema-kiosk/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Checkout *CheckoutHandler
	Showtime *ShowtimeHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Checkout: NewCheckoutHandler(service.Checkout, log),
		Showtime: NewShowtimeHandler(service.Showtime, log),
	}
}
