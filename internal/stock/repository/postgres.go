package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/smartstock/smartstock-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) GetAll(ctx context.Context) ([]model.StockItem, error) {
	var items []model.StockItem
	query := `SELECT * FROM stock ORDER BY "timestamp" DESC`
	if err := r.DB.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("failed to list stock: %w", err)
	}
	return items, nil
}

func (r *PGRepository) GetByItem(ctx context.Context, item string) (*model.StockItem, error) {
	var rec model.StockItem
	query := `SELECT * FROM stock WHERE item = $1`
	err := r.DB.GetContext(ctx, &rec, query, item)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get stock item: %w", err)
	}
	return &rec, nil
}

func (r *PGRepository) Upsert(ctx context.Context, item string, quantity decimal.Decimal, unit, addedBy string) error {
	query := `
        INSERT INTO stock (item, quantity, unit, added_by, "timestamp")
        VALUES ($1, $2, $3, $4, now())
        ON CONFLICT (item)
        DO UPDATE SET
            quantity = EXCLUDED.quantity,
            unit = EXCLUDED.unit,
            added_by = EXCLUDED.added_by,
            "timestamp" = now()
    `
	if _, err := r.DB.ExecContext(ctx, query, item, quantity, unit, addedBy); err != nil {
		return fmt.Errorf("failed to upsert stock item: %w", err)
	}
	return nil
}

func (r *PGRepository) UpdateQuantity(ctx context.Context, item string, quantity decimal.Decimal, unit string) error {
	query := `UPDATE stock SET quantity = $2, unit = $3, "timestamp" = now() WHERE item = $1`
	if _, err := r.DB.ExecContext(ctx, query, item, quantity, unit); err != nil {
		return fmt.Errorf("failed to update stock item: %w", err)
	}
	return nil
}

func (r *PGRepository) Delete(ctx context.Context, item string) error {
	query := `DELETE FROM stock WHERE item = $1`
	if _, err := r.DB.ExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("failed to delete stock item: %w", err)
	}
	return nil
}

func (r *PGRepository) SetNotifyList(ctx context.Context, item string, list []string) error {
	query := `UPDATE stock SET notify_list = $2 WHERE item = $1`
	if _, err := r.DB.ExecContext(ctx, query, item, pq.StringArray(list)); err != nil {
		return fmt.Errorf("failed to set notify list: %w", err)
	}
	return nil
}
