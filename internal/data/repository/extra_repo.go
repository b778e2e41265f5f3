package repository

import (
	"context"
	"fmt"

	"cinema-kiosk/internal/data/entity"
	"cinema-kiosk/pkg/database"

	"go.uber.org/zap"
)

type ExtraRepository interface {
	FindAllActive(ctx context.Context) ([]*entity.Extra, error)

	// FindActiveByIDs returns the active extras among the requested ids,
	// keyed by id. Missing or inactive ids are simply absent from the map;
	// the caller decides whether that is an error.
	FindActiveByIDs(ctx context.Context, ids []int64) (map[int64]*entity.Extra, error)
}

type extraRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewExtraRepository(db database.PgxIface, log *zap.Logger) ExtraRepository {
	return &extraRepository{
		db:  db,
		log: log.With(zap.String("repository", "extra")),
	}
}

func (r *extraRepository) FindAllActive(ctx context.Context) ([]*entity.Extra, error) {
	query := `
		SELECT id, name, description, category, price, image, status, created_at
		FROM extras
		WHERE status = 'active'
		ORDER BY category, name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find active extras", zap.Error(err))
		return nil, fmt.Errorf("find active extras: %w", err)
	}
	defer rows.Close()

	var extras []*entity.Extra
	for rows.Next() {
		var extra entity.Extra
		err := rows.Scan(
			&extra.ID,
			&extra.Name,
			&extra.Description,
			&extra.Category,
			&extra.Price,
			&extra.Image,
			&extra.Status,
			&extra.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan extra row", zap.Error(err))
			return nil, fmt.Errorf("scan extra row: %w", err)
		}
		extras = append(extras, &extra)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Failed to read extra rows", zap.Error(err))
		return nil, fmt.Errorf("read extra rows: %w", err)
	}

	return extras, nil
}

func (r *extraRepository) FindActiveByIDs(ctx context.Context, ids []int64) (map[int64]*entity.Extra, error) {
	if len(ids) == 0 {
		return map[int64]*entity.Extra{}, nil
	}

	query := `
		SELECT id, name, description, category, price, image, status, created_at
		FROM extras
		WHERE id = ANY($1) AND status = 'active'
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to find extras by IDs",
			zap.Error(err),
			zap.Int64s("extra_ids", ids),
		)
		return nil, fmt.Errorf("find extras by IDs: %w", err)
	}
	defer rows.Close()

	extras := make(map[int64]*entity.Extra, len(ids))
	for rows.Next() {
		var extra entity.Extra
		err := rows.Scan(
			&extra.ID,
			&extra.Name,
			&extra.Description,
			&extra.Category,
			&extra.Price,
			&extra.Image,
			&extra.Status,
			&extra.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan extra row", zap.Error(err))
			return nil, fmt.Errorf("scan extra row: %w", err)
		}
		extras[extra.ID] = &extra
	}

	// A partial result here would read as "extra not active" upstream.
	if err := rows.Err(); err != nil {
		r.log.Error("Failed to read extra rows", zap.Error(err))
		return nil, fmt.Errorf("read extra rows: %w", err)
	}

	return extras, nil
}
