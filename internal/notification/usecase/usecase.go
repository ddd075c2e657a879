package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/smartstock/smartstock-service/internal/model"
	"github.com/smartstock/smartstock-service/internal/notification"
	"github.com/smartstock/smartstock-service/internal/notification/dto"
	"github.com/smartstock/smartstock-service/pkg/logger"
)

type notificationUseCase struct {
	repo   notification.Repository
	logger logger.Logger
}

func NewNotificationUseCase(repo notification.Repository, log logger.Logger) notification.UseCase {
	return &notificationUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *notificationUseCase) Register(ctx context.Context, input *dto.RegisterInput) error {
	if input.Item == "" || input.TelegramID == "" {
		return notification.ErrMissingFields
	}

	n := &model.Notification{
		ID:         uuid.New().String(),
		Item:       strings.ToLower(input.Item),
		TelegramID: input.TelegramID,
		CreatedAt:  time.Now(),
	}

	if err := uc.repo.Subscribe(ctx, n); err != nil {
		uc.logger.Error("failed to register notification",
			zap.String("item", n.Item),
			zap.Error(err),
		)
		return err
	}

	uc.logger.Info("notification registered",
		zap.String("item", n.Item),
		zap.String("telegram_id", n.TelegramID),
	)
	return nil
}
