package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartstock/smartstock-service/internal/notification"
	"github.com/smartstock/smartstock-service/internal/notification/dto"
	"github.com/smartstock/smartstock-service/pkg/logger"
)

type fakeUseCase struct {
	RegisterFn func(ctx context.Context, input *dto.RegisterInput) error
}

func (f *fakeUseCase) Register(ctx context.Context, input *dto.RegisterInput) error {
	return f.RegisterFn(ctx, input)
}

func postNotify(t *testing.T, h *NotificationHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/notify", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Register(rec, req)
	return rec
}

func TestRegisterSuccess(t *testing.T) {
	var got *dto.RegisterInput
	h := NewNotificationHandler(&fakeUseCase{RegisterFn: func(ctx context.Context, input *dto.RegisterInput) error {
		got = input
		return nil
	}}, logger.NewNop())

	rec := postNotify(t, h, `{"item":"Onions","telegram_id":"12345"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"Notification registered."}`, rec.Body.String())
	require.NotNil(t, got)
	assert.Equal(t, "Onions", got.Item)
	assert.Equal(t, "12345", got.TelegramID)
}

func TestRegisterMissingFields(t *testing.T) {
	h := NewNotificationHandler(&fakeUseCase{RegisterFn: func(ctx context.Context, input *dto.RegisterInput) error {
		return notification.ErrMissingFields
	}}, logger.NewNop())

	rec := postNotify(t, h, `{"item":"onions"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Item and telegram_id are required."}`, rec.Body.String())
}

func TestRegisterMalformedBody(t *testing.T) {
	h := NewNotificationHandler(&fakeUseCase{RegisterFn: func(ctx context.Context, input *dto.RegisterInput) error {
		t.Fatal("usecase must not be called for malformed JSON")
		return nil
	}}, logger.NewNop())

	rec := postNotify(t, h, `{not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterPersistenceFailure(t *testing.T) {
	h := NewNotificationHandler(&fakeUseCase{RegisterFn: func(ctx context.Context, input *dto.RegisterInput) error {
		return errors.New("connection refused")
	}}, logger.NewNop())

	rec := postNotify(t, h, `{"item":"onions","telegram_id":"12345"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to register notification."}`, rec.Body.String())
}
