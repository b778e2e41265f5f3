package adaptor

import (
	"errors"
	"net/http"

	"cinema-kiosk/internal/usecase"
	"cinema-kiosk/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ShowtimeHandler struct {
	service usecase.ShowtimeService
	log     *zap.Logger
}

func NewShowtimeHandler(service usecase.ShowtimeService, log *zap.Logger) *ShowtimeHandler {
	return &ShowtimeHandler{
		service: service,
		log:     log.With(zap.String("handler", "showtime")),
	}
}

// GetMovies handles GET /api/movies
func (h *ShowtimeHandler) GetMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.service.ListActiveMovies(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "list movies")
		return
	}

	utils.ResponseSuccess(w, "success", movies)
}

// GetShowtimes handles GET /api/movies/{id}/showtimes
func (h *ShowtimeHandler) GetShowtimes(w http.ResponseWriter, r *http.Request) {
	movieID := utils.ParseInt64(chi.URLParam(r, "id"))
	if movieID <= 0 {
		utils.ResponseBadRequest(w, "Invalid movie ID", nil)
		return
	}

	showtimes, err := h.service.ListShowtimes(r.Context(), movieID)
	if err != nil {
		h.handleServiceError(w, err, "list showtimes")
		return
	}

	utils.ResponseSuccess(w, "success", showtimes)
}

// GetExtras handles GET /api/extras
func (h *ShowtimeHandler) GetExtras(w http.ResponseWriter, r *http.Request) {
	extras, err := h.service.ListActiveExtras(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "list extras")
		return
	}

	utils.ResponseSuccess(w, "success", extras)
}

func (h *ShowtimeHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	var validation *usecase.ValidationError
	if errors.As(err, &validation) {
		h.log.Warn(operation+" rejected", zap.String("reason", validation.Reason))
		utils.ResponseNotFound(w, validation.Reason)
		return
	}

	h.log.Error("Failed to "+operation, zap.Error(err))
	utils.ResponseInternalError(w, "Internal server error")
}
