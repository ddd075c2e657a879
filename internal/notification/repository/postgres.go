package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/smartstock/smartstock-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Subscribe(ctx context.Context, n *model.Notification) error {
	query := `
        INSERT INTO notifications (id, item, telegram_id, created_at)
        VALUES ($1, $2, $3, $4)
    `
	if _, err := r.DB.ExecContext(ctx, query, n.ID, n.Item, n.TelegramID, n.CreatedAt); err != nil {
		return fmt.Errorf("failed to register notification: %w", err)
	}
	return nil
}

func (r *PGRepository) ListByItem(ctx context.Context, item string) ([]model.Notification, error) {
	var subs []model.Notification
	query := `SELECT * FROM notifications WHERE item = $1`
	if err := r.DB.SelectContext(ctx, &subs, query, item); err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return subs, nil
}

func (r *PGRepository) DeleteByItem(ctx context.Context, item string) error {
	query := `DELETE FROM notifications WHERE item = $1`
	if _, err := r.DB.ExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("failed to delete notifications: %w", err)
	}
	return nil
}
