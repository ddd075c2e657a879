package stock

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/smartstock/smartstock-service/internal/model"
)

// Repository is the gateway to the stock ledger. None of these methods retry
// internally; retry policy belongs to the caller.
type Repository interface {
	// GetAll returns every live record, newest timestamp first.
	GetAll(ctx context.Context) ([]model.StockItem, error)
	// GetByItem returns nil, nil when the item does not exist.
	GetByItem(ctx context.Context, item string) (*model.StockItem, error)
	// Upsert inserts the item or overwrites quantity/unit/author in place.
	Upsert(ctx context.Context, item string, quantity decimal.Decimal, unit, addedBy string) error
	// UpdateQuantity overwrites quantity/unit only, leaving author and the
	// notify list untouched.
	UpdateQuantity(ctx context.Context, item string, quantity decimal.Decimal, unit string) error
	Delete(ctx context.Context, item string) error
	SetNotifyList(ctx context.Context, item string, list []string) error
}
