package model

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// StockItem is one live ledger record. Item is the lowercased unique key.
// NotifyList carries the chat ids waiting for this item to come back in
// stock; it is cleared after a restock fan-out.
type StockItem struct {
	Item       string          `db:"item"`
	Quantity   decimal.Decimal `db:"quantity"`
	Unit       string          `db:"unit"`
	AddedBy    string          `db:"added_by"`
	NotifyList pq.StringArray  `db:"notify_list"`
	Timestamp  time.Time       `db:"timestamp"`
}
