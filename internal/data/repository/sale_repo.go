package repository

import (
	"context"
	"errors"
	"fmt"

	"cinema-kiosk/internal/data/entity"
	"cinema-kiosk/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type SaleRepository interface {
	// CreateTx inserts the sale inside the given transaction and populates
	// the generated ID on the entity. A lost race on the idempotency key
	// surfaces as ErrDuplicateIdempotencyKey.
	CreateTx(ctx context.Context, tx database.Querier, sale *entity.Sale) error

	FindByID(ctx context.Context, id int64) (*entity.Sale, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*entity.Sale, error)
}

type saleRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSaleRepository(db database.PgxIface, log *zap.Logger) SaleRepository {
	return &saleRepository{
		db:  db,
		log: log.With(zap.String("repository", "sale")),
	}
}

func (r *saleRepository) CreateTx(ctx context.Context, tx database.Querier, sale *entity.Sale) error {
	query := `
		INSERT INTO sales (receipt_number, showtime_id, seats_booked, total_amount, payment_method, idempotency_key, sale_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := tx.QueryRow(ctx, query,
		sale.ReceiptNumber,
		sale.ShowtimeID,
		sale.SeatsBooked,
		sale.TotalAmount,
		sale.PaymentMethod,
		sale.IdempotencyKey,
		sale.SaleDate,
	).Scan(&sale.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateIdempotencyKey
		}

		r.log.Error("Failed to create sale",
			zap.Error(err),
			zap.String("receipt_number", sale.ReceiptNumber),
			zap.Int64("showtime_id", sale.ShowtimeID),
		)
		return fmt.Errorf("create sale %s: %w", sale.ReceiptNumber, err)
	}

	return nil
}

func (r *saleRepository) FindByID(ctx context.Context, id int64) (*entity.Sale, error) {
	query := `
		SELECT id, receipt_number, showtime_id, seats_booked, total_amount, payment_method, idempotency_key, sale_date
		FROM sales
		WHERE id = $1
	`

	var sale entity.Sale
	err := r.db.QueryRow(ctx, query, id).Scan(
		&sale.ID,
		&sale.ReceiptNumber,
		&sale.ShowtimeID,
		&sale.SeatsBooked,
		&sale.TotalAmount,
		&sale.PaymentMethod,
		&sale.IdempotencyKey,
		&sale.SaleDate,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find sale by ID",
			zap.Error(err),
			zap.Int64("sale_id", id),
		)
		return nil, fmt.Errorf("find sale by ID %d: %w", id, err)
	}

	return &sale, nil
}

func (r *saleRepository) FindByIdempotencyKey(ctx context.Context, key string) (*entity.Sale, error) {
	query := `
		SELECT id, receipt_number, showtime_id, seats_booked, total_amount, payment_method, idempotency_key, sale_date
		FROM sales
		WHERE idempotency_key = $1
	`

	var sale entity.Sale
	err := r.db.QueryRow(ctx, query, key).Scan(
		&sale.ID,
		&sale.ReceiptNumber,
		&sale.ShowtimeID,
		&sale.SeatsBooked,
		&sale.TotalAmount,
		&sale.PaymentMethod,
		&sale.IdempotencyKey,
		&sale.SaleDate,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find sale by idempotency key",
			zap.Error(err),
			zap.String("idempotency_key", key),
		)
		return nil, fmt.Errorf("find sale by idempotency key %s: %w", key, err)
	}

	return &sale, nil
}
