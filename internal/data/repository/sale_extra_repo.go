package repository

import (
	"context"
	"fmt"

	"cinema-kiosk/internal/data/entity"
	"cinema-kiosk/pkg/database"

	"go.uber.org/zap"
)

type SaleExtraRepository interface {
	// CreateBatchTx inserts all ledger lines in one statement inside the
	// given transaction. Passing an empty slice is a no-op.
	CreateBatchTx(ctx context.Context, tx database.Querier, lines []*entity.SaleExtra) error

	FindBySaleID(ctx context.Context, saleID int64) ([]*entity.SaleExtra, error)
}

type saleExtraRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSaleExtraRepository(db database.PgxIface, log *zap.Logger) SaleExtraRepository {
	return &saleExtraRepository{
		db:  db,
		log: log.With(zap.String("repository", "sale_extra")),
	}
}

func (r *saleExtraRepository) CreateBatchTx(ctx context.Context, tx database.Querier, lines []*entity.SaleExtra) error {
	if len(lines) == 0 {
		return nil
	}

	query := `INSERT INTO sales_extras (sale_id, extra_id, quantity) VALUES `
	args := make([]any, 0, len(lines)*3)
	for i, line := range lines {
		if i > 0 {
			query += ","
		}
		query += fmt.Sprintf("($%d, $%d, $%d)", i*3+1, i*3+2, i*3+3)
		args = append(args, line.SaleID, line.ExtraID, line.Quantity)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		r.log.Error("Failed to create sale extras",
			zap.Error(err),
			zap.Int64("sale_id", lines[0].SaleID),
			zap.Int("count", len(lines)),
		)
		return fmt.Errorf("create sale extras for sale %d: %w", lines[0].SaleID, err)
	}

	return nil
}

func (r *saleExtraRepository) FindBySaleID(ctx context.Context, saleID int64) ([]*entity.SaleExtra, error) {
	query := `
		SELECT id, sale_id, extra_id, quantity
		FROM sales_extras
		WHERE sale_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, saleID)
	if err != nil {
		r.log.Error("Failed to find sale extras",
			zap.Error(err),
			zap.Int64("sale_id", saleID),
		)
		return nil, fmt.Errorf("find sale extras for sale %d: %w", saleID, err)
	}
	defer rows.Close()

	var lines []*entity.SaleExtra
	for rows.Next() {
		var line entity.SaleExtra
		if err := rows.Scan(&line.ID, &line.SaleID, &line.ExtraID, &line.Quantity); err != nil {
			r.log.Error("Failed to scan sale extra row", zap.Error(err))
			return nil, fmt.Errorf("scan sale extra row: %w", err)
		}
		lines = append(lines, &line)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Failed to read sale extra rows",
			zap.Error(err),
			zap.Int64("sale_id", saleID),
		)
		return nil, fmt.Errorf("read sale extra rows for sale %d: %w", saleID, err)
	}

	return lines, nil
}
