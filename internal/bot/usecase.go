package bot

import (
	"context"

	"github.com/smartstock/smartstock-service/internal/bot/dto"
)

// UseCase processes one chat message end to end. All outcomes, including
// failures, are reported back to the originating chat; nothing propagates to
// the caller.
type UseCase interface {
	HandleMessage(ctx context.Context, msg *dto.IncomingMessage)
}
