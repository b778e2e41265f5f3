package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinema-kiosk/internal/data/entity"
	"cinema-kiosk/internal/data/repository"
	"cinema-kiosk/internal/dto/request"
	"cinema-kiosk/internal/dto/response"
	"cinema-kiosk/pkg/database"
	"cinema-kiosk/pkg/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CheckoutService interface {
	// Checkout validates the finalized booking request, recomputes the
	// authoritative total and commits seats, capacity counter, sale and
	// sale-extras as one transaction. Failures come back as the typed
	// errors in errors.go.
	Checkout(ctx context.Context, req *request.CheckoutRequest) (*response.CheckoutResult, error)

	// GetSeatMap returns the grid dimensions and booked seats for the
	// seat-selection screen.
	GetSeatMap(ctx context.Context, showtimeID int64) (*response.SeatMapResponse, error)

	// GetSale returns the receipt view of a committed sale, used by the
	// receipt re-print screen.
	GetSale(ctx context.Context, id int64) (*response.SaleDetail, error)

	ListPaymentMethods() []string
}

type checkoutService struct {
	db             database.PgxIface
	repo           *repository.Repository
	grid           SeatGrid
	paymentMethods []string
	tolerance      decimal.Decimal
	log            *zap.Logger
	now            func() time.Time
}

func NewCheckoutService(db database.PgxIface, repo *repository.Repository, config *utils.Config, log *zap.Logger) CheckoutService {
	return &checkoutService{
		db:             db,
		repo:           repo,
		grid:           NewSeatGrid(config.Checkout.SeatRows, config.Checkout.SeatColumns),
		paymentMethods: config.Checkout.PaymentMethods,
		tolerance:      decimal.NewFromFloat(config.Checkout.TotalTolerance),
		log:            log.With(zap.String("service", "checkout")),
		now:            time.Now,
	}
}

func (s *checkoutService) Checkout(ctx context.Context, req *request.CheckoutRequest) (*response.CheckoutResult, error) {
	// ---- Validate: nothing below this block touches storage for writes ----

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Checkout validation failed", zap.Any("errors", errs))
		return nil, &ValidationError{Reason: utils.FormatValidationErrors(errs)}
	}

	if !s.acceptsPaymentMethod(req.PaymentMethod) {
		return nil, &ValidationError{Reason: fmt.Sprintf("payment method %q is not accepted", req.PaymentMethod)}
	}

	if invalid := s.grid.InvalidLabels(req.Seats); len(invalid) > 0 {
		return nil, &ValidationError{Reason: fmt.Sprintf("invalid seat labels: %v", invalid)}
	}

	if dups := DuplicateLabels(req.Seats); len(dups) > 0 {
		return nil, &ValidationError{Reason: fmt.Sprintf("duplicate seat labels: %v", dups)}
	}

	quantities := make(map[int64]int, len(req.Extras))
	for extraID, quantity := range req.Extras {
		if quantity < 0 {
			return nil, &ValidationError{Reason: fmt.Sprintf("extra %d has negative quantity %d", extraID, quantity)}
		}
		if quantity > 0 {
			quantities[extraID] = quantity
		}
	}

	showtime, err := s.repo.Showtime.FindByID(ctx, req.ShowtimeID)
	if err != nil {
		return nil, &InfrastructureError{Err: err}
	}
	if showtime == nil {
		return nil, &ValidationError{Reason: fmt.Sprintf("showtime %d not found", req.ShowtimeID)}
	}
	if showtime.IsPast(s.now()) {
		return nil, &ValidationError{Reason: fmt.Sprintf("showtime %d is in the past", req.ShowtimeID)}
	}

	// Replay a retried submission instead of double-booking.
	if req.IdempotencyKey != "" {
		existing, err := s.repo.Sale.FindByIdempotencyKey(ctx, req.IdempotencyKey)
		if err != nil {
			return nil, &InfrastructureError{Err: err}
		}
		if existing != nil {
			s.log.Info("Checkout replayed from idempotency key",
				zap.String("idempotency_key", req.IdempotencyKey),
				zap.Int64("sale_id", existing.ID),
			)
			return response.SaleToCheckoutResult(existing), nil
		}
	}

	// ---- Price: server-side catalog is the single source of truth ----

	extraIDs := make([]int64, 0, len(quantities))
	for extraID := range quantities {
		extraIDs = append(extraIDs, extraID)
	}

	extras, err := s.repo.Extra.FindActiveByIDs(ctx, extraIDs)
	if err != nil {
		return nil, &InfrastructureError{Err: err}
	}

	catalog := make(map[int64]decimal.Decimal, len(extras))
	for extraID, extra := range extras {
		catalog[extraID] = extra.Price
	}
	for _, extraID := range extraIDs {
		if _, ok := catalog[extraID]; !ok {
			return nil, &ValidationError{Reason: fmt.Sprintf("extra %d not found or not active", extraID)}
		}
	}

	total, err := ComputeTotal(len(req.Seats), showtime.Price, quantities, catalog)
	if err != nil {
		return nil, err
	}

	if req.ClientTotal != nil && req.ClientTotal.Sub(total).Abs().GreaterThan(s.tolerance) {
		s.log.Warn("Client total disagrees with authoritative total",
			zap.Int64("showtime_id", showtime.ID),
			zap.String("client_total", req.ClientTotal.StringFixed(2)),
			zap.String("server_total", total.StringFixed(2)),
		)
	}

	// ---- Commit: all-or-nothing over seats, counter, sale, extras ----

	result, err := s.commit(ctx, showtime, req, quantities, total)
	if err != nil {
		var dup *duplicateKeyAbort
		if errors.As(err, &dup) {
			// A concurrent retry with the same key committed first. The
			// transaction already rolled back; hand out the winner's sale.
			existing, ferr := s.repo.Sale.FindByIdempotencyKey(ctx, req.IdempotencyKey)
			if ferr != nil || existing == nil {
				return nil, &InfrastructureError{Err: repository.ErrDuplicateIdempotencyKey}
			}
			return response.SaleToCheckoutResult(existing), nil
		}
		return nil, err
	}

	s.log.Info("Checkout committed",
		zap.Int64("sale_id", result.SaleID),
		zap.String("receipt_number", result.ReceiptNumber),
		zap.Int64("showtime_id", showtime.ID),
		zap.Int("seat_count", len(req.Seats)),
		zap.Strings("seats", req.Seats),
		zap.String("total", result.TotalCharged),
		zap.String("payment_method", result.PaymentMethod),
	)

	return result, nil
}

// duplicateKeyAbort signals commit lost an idempotency-key race after the
// transaction rolled back.
type duplicateKeyAbort struct{}

func (*duplicateKeyAbort) Error() string { return "idempotency key race lost" }

func (s *checkoutService) commit(
	ctx context.Context,
	showtime *entity.Showtime,
	req *request.CheckoutRequest,
	quantities map[int64]int,
	total decimal.Decimal,
) (*response.CheckoutResult, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, &InfrastructureError{Err: err}
	}
	// No-op once Commit succeeds; unwinds everything, the seat marks
	// included, on any earlier return.
	defer tx.Rollback(ctx)

	if err := s.repo.Seat.TryBookTx(ctx, tx, showtime.ID, req.Seats); err != nil {
		var taken *repository.SeatsTakenError
		if errors.As(err, &taken) {
			s.log.Warn("Checkout lost seat race",
				zap.Int64("showtime_id", showtime.ID),
				zap.Strings("contested_seats", taken.Seats),
			)
			return nil, &SeatConflictError{Seats: taken.Seats}
		}

		var notFound *repository.SeatsNotFoundError
		if errors.As(err, &notFound) {
			return nil, &ValidationError{Reason: notFound.Error()}
		}

		return nil, &InfrastructureError{Err: err}
	}

	if err := s.repo.Showtime.DecrementAvailableTx(ctx, tx, showtime.ID, len(req.Seats)); err != nil {
		if errors.Is(err, repository.ErrInsufficientCapacity) {
			// Seats just booked cleanly, so the counter has drifted from
			// the seat rows - an accounting bug, not a customer race.
			s.log.Error("Capacity counter out of sync with seat inventory",
				zap.Int64("showtime_id", showtime.ID),
				zap.Int("requested", len(req.Seats)),
				zap.Int("cached_available", showtime.AvailableSeats),
			)
			return nil, &CapacityError{ShowtimeID: showtime.ID}
		}
		return nil, &InfrastructureError{Err: err}
	}

	sale := &entity.Sale{
		ReceiptNumber: utils.GenerateReceiptNumber(),
		ShowtimeID:    showtime.ID,
		SeatsBooked:   len(req.Seats),
		TotalAmount:   total,
		PaymentMethod: entity.PaymentMethod(req.PaymentMethod),
		SaleDate:      s.now(),
	}
	if req.IdempotencyKey != "" {
		key := req.IdempotencyKey
		sale.IdempotencyKey = &key
	}

	if err := s.repo.Sale.CreateTx(ctx, tx, sale); err != nil {
		if errors.Is(err, repository.ErrDuplicateIdempotencyKey) {
			return nil, &duplicateKeyAbort{}
		}
		return nil, &InfrastructureError{Err: err}
	}

	lines := make([]*entity.SaleExtra, 0, len(quantities))
	for extraID, quantity := range quantities {
		lines = append(lines, &entity.SaleExtra{
			SaleID:   sale.ID,
			ExtraID:  extraID,
			Quantity: quantity,
		})
	}

	if err := s.repo.SaleExtra.CreateBatchTx(ctx, tx, lines); err != nil {
		return nil, &InfrastructureError{Err: err}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, &InfrastructureError{Err: err}
	}

	return response.SaleToCheckoutResult(sale), nil
}

func (s *checkoutService) GetSeatMap(ctx context.Context, showtimeID int64) (*response.SeatMapResponse, error) {
	showtime, err := s.repo.Showtime.FindByID(ctx, showtimeID)
	if err != nil {
		return nil, &InfrastructureError{Err: err}
	}
	if showtime == nil {
		return nil, &ValidationError{Reason: fmt.Sprintf("showtime %d not found", showtimeID)}
	}

	booked, err := s.repo.Seat.FindBookedByShowtime(ctx, showtimeID)
	if err != nil {
		return nil, &InfrastructureError{Err: err}
	}

	// Re-read the counter after the booked list so the grid shows the
	// freshest count rather than the snapshot FindByID took.
	available, err := s.repo.Showtime.GetAvailable(ctx, showtimeID)
	if err != nil {
		return nil, &InfrastructureError{Err: err}
	}

	return &response.SeatMapResponse{
		ShowtimeID:     showtimeID,
		Rows:           s.grid.Rows,
		Columns:        s.grid.Columns,
		BookedSeats:    booked,
		AvailableSeats: available,
	}, nil
}

func (s *checkoutService) GetSale(ctx context.Context, id int64) (*response.SaleDetail, error) {
	sale, err := s.repo.Sale.FindByID(ctx, id)
	if err != nil {
		return nil, &InfrastructureError{Err: err}
	}
	if sale == nil {
		return nil, &ValidationError{Reason: fmt.Sprintf("sale %d not found", id)}
	}

	lines, err := s.repo.SaleExtra.FindBySaleID(ctx, id)
	if err != nil {
		return nil, &InfrastructureError{Err: err}
	}

	detail := &response.SaleDetail{CheckoutResult: *response.SaleToCheckoutResult(sale)}
	for _, line := range lines {
		detail.Extras = append(detail.Extras, response.SaleLine{
			ExtraID:  line.ExtraID,
			Quantity: line.Quantity,
		})
	}

	return detail, nil
}

func (s *checkoutService) ListPaymentMethods() []string {
	methods := make([]string, len(s.paymentMethods))
	copy(methods, s.paymentMethods)
	return methods
}

func (s *checkoutService) acceptsPaymentMethod(method string) bool {
	for _, m := range s.paymentMethods {
		if m == method {
			return true
		}
	}
	return false
}
