package model

import "time"

// Notification is one pending restock subscription: TelegramID wants to be
// told when Item is available again. Rows for an item are deleted together
// once the notice has been sent.
type Notification struct {
	ID         string    `db:"id"`
	Item       string    `db:"item"`
	TelegramID string    `db:"telegram_id"`
	CreatedAt  time.Time `db:"created_at"`
}
