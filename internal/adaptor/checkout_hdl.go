package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"cinema-kiosk/internal/dto/request"
	"cinema-kiosk/internal/dto/response"
	"cinema-kiosk/internal/usecase"
	"cinema-kiosk/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CheckoutHandler struct {
	service usecase.CheckoutService
	log     *zap.Logger
}

func NewCheckoutHandler(service usecase.CheckoutService, log *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		log:     log.With(zap.String("handler", "checkout")),
	}
}

// Checkout handles POST /api/checkout
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req request.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.Checkout(r.Context(), &req)
	if err != nil {
		h.handleCheckoutError(w, err)
		return
	}

	utils.ResponseCreated(w, "success", result)
}

// GetSeatMap handles GET /api/showtimes/{id}/seats
func (h *CheckoutHandler) GetSeatMap(w http.ResponseWriter, r *http.Request) {
	showtimeID := utils.ParseInt64(chi.URLParam(r, "id"))
	if showtimeID <= 0 {
		utils.ResponseBadRequest(w, "Invalid showtime ID", nil)
		return
	}

	seatMap, err := h.service.GetSeatMap(r.Context(), showtimeID)
	if err != nil {
		h.handleCheckoutError(w, err)
		return
	}

	utils.ResponseSuccess(w, "success", seatMap)
}

// GetSale handles GET /api/sales/{id}
func (h *CheckoutHandler) GetSale(w http.ResponseWriter, r *http.Request) {
	saleID := utils.ParseInt64(chi.URLParam(r, "id"))
	if saleID <= 0 {
		utils.ResponseBadRequest(w, "Invalid sale ID", nil)
		return
	}

	detail, err := h.service.GetSale(r.Context(), saleID)
	if err != nil {
		h.handleCheckoutError(w, err)
		return
	}

	utils.ResponseSuccess(w, "success", detail)
}

// GetPaymentMethods handles GET /api/payment-methods
func (h *CheckoutHandler) GetPaymentMethods(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "success", h.service.ListPaymentMethods())
}

// handleCheckoutError maps the typed checkout failure taxonomy onto HTTP.
// A seat conflict names the contested seats so the kiosk can highlight
// them; infrastructure failures stay generic.
func (h *CheckoutHandler) handleCheckoutError(w http.ResponseWriter, err error) {
	var validation *usecase.ValidationError
	if errors.As(err, &validation) {
		h.log.Warn("Checkout rejected", zap.String("reason", validation.Reason))

		failure := response.CheckoutFailure{
			Kind:   response.FailureKindValidation,
			Reason: validation.Reason,
		}
		if strings.Contains(validation.Reason, "not found") {
			utils.ResponseNotFound(w, validation.Reason)
			return
		}
		utils.ResponseUnprocessable(w, validation.Reason, failure)
		return
	}

	var conflict *usecase.SeatConflictError
	if errors.As(err, &conflict) {
		failure := response.CheckoutFailure{
			Kind:  response.FailureKindSeatConflict,
			Seats: conflict.Seats,
		}
		utils.ResponseConflict(w, "Some seats were just booked by another customer", failure)
		return
	}

	var capacity *usecase.CapacityError
	if errors.As(err, &capacity) {
		failure := response.CheckoutFailure{
			Kind: response.FailureKindCapacity,
		}
		utils.ResponseConflict(w, "Showtime does not have enough seats left", failure)
		return
	}

	h.log.Error("Checkout failed", zap.Error(err))
	utils.ResponseInternalError(w, "Checkout failed, please try again")
}
