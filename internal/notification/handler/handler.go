package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/smartstock/smartstock-service/internal/notification"
	"github.com/smartstock/smartstock-service/internal/notification/dto"
	"github.com/smartstock/smartstock-service/pkg/logger"
)

type NotificationHandler struct {
	uc     notification.UseCase
	logger logger.Logger
}

func NewNotificationHandler(uc notification.UseCase, log logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		uc:     uc,
		logger: log,
	}
}

// Register handles POST /notify: a "tell me when this item restocks" request.
func (h *NotificationHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input dto.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error": "Item and telegram_id are required.",
		})
		return
	}

	if err := h.uc.Register(r.Context(), &input); err != nil {
		if errors.Is(err, notification.ErrMissingFields) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"error": "Item and telegram_id are required.",
			})
			return
		}
		h.logger.Error("notify registration failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error": "Failed to register notification.",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Notification registered.",
	})
}

func writeJSON(w http.ResponseWriter, status int, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
