package notification

import (
	"context"

	"github.com/smartstock/smartstock-service/internal/model"
)

// Repository is the gateway to pending restock subscriptions.
type Repository interface {
	Subscribe(ctx context.Context, n *model.Notification) error
	ListByItem(ctx context.Context, item string) ([]model.Notification, error)
	// DeleteByItem removes every pending subscription for the item in one
	// call, after a fan-out has been issued.
	DeleteByItem(ctx context.Context, item string) error
}
