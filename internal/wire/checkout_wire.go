package wire

import (
	"cinema-kiosk/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCheckout(r chi.Router, checkoutHandler *adaptor.CheckoutHandler) {
	// GET /api/showtimes/{id}/seats - seat grid for the selection screen
	r.Get("/api/showtimes/{id}/seats", checkoutHandler.GetSeatMap)

	// GET /api/payment-methods - accepted payment method labels
	r.Get("/api/payment-methods", checkoutHandler.GetPaymentMethods)

	// GET /api/sales/{id} - receipt re-print
	r.Get("/api/sales/{id}", checkoutHandler.GetSale)

	// POST /api/checkout - commit the finalized booking
	r.Post("/api/checkout", checkoutHandler.Checkout)
}
