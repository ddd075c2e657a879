package notification

import (
	"context"
	"errors"

	"github.com/smartstock/smartstock-service/internal/notification/dto"
)

// ErrMissingFields marks a registration request without both required fields.
var ErrMissingFields = errors.New("item and telegram_id are required")

type UseCase interface {
	Register(ctx context.Context, input *dto.RegisterInput) error
}
