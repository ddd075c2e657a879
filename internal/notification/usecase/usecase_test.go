package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartstock/smartstock-service/internal/model"
	"github.com/smartstock/smartstock-service/internal/notification"
	"github.com/smartstock/smartstock-service/internal/notification/dto"
	"github.com/smartstock/smartstock-service/pkg/logger"
)

type fakeRepo struct {
	SubscribeFn func(ctx context.Context, n *model.Notification) error
}

func (f *fakeRepo) Subscribe(ctx context.Context, n *model.Notification) error {
	return f.SubscribeFn(ctx, n)
}

func (f *fakeRepo) ListByItem(ctx context.Context, item string) ([]model.Notification, error) {
	return nil, nil
}

func (f *fakeRepo) DeleteByItem(ctx context.Context, item string) error { return nil }

func TestRegisterLowercasesItemAndAssignsID(t *testing.T) {
	var got *model.Notification
	repo := &fakeRepo{SubscribeFn: func(ctx context.Context, n *model.Notification) error {
		got = n
		return nil
	}}
	uc := NewNotificationUseCase(repo, logger.NewNop())

	err := uc.Register(context.Background(), &dto.RegisterInput{Item: "Onions", TelegramID: "12345"})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "onions", got.Item)
	assert.Equal(t, "12345", got.TelegramID)
	assert.NotEmpty(t, got.ID)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestRegisterRequiresBothFields(t *testing.T) {
	uc := NewNotificationUseCase(&fakeRepo{}, logger.NewNop())

	err := uc.Register(context.Background(), &dto.RegisterInput{Item: "", TelegramID: "12345"})
	assert.ErrorIs(t, err, notification.ErrMissingFields)

	err = uc.Register(context.Background(), &dto.RegisterInput{Item: "onions", TelegramID: ""})
	assert.ErrorIs(t, err, notification.ErrMissingFields)
}

func TestRegisterSurfacesPersistenceError(t *testing.T) {
	boom := errors.New("connection refused")
	repo := &fakeRepo{SubscribeFn: func(ctx context.Context, n *model.Notification) error {
		return boom
	}}
	uc := NewNotificationUseCase(repo, logger.NewNop())

	err := uc.Register(context.Background(), &dto.RegisterInput{Item: "onions", TelegramID: "12345"})
	assert.ErrorIs(t, err, boom)
}
