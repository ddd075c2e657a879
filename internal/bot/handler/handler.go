package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/smartstock/smartstock-service/internal/bot"
	"github.com/smartstock/smartstock-service/internal/bot/dto"
	"github.com/smartstock/smartstock-service/internal/telegram"
	"github.com/smartstock/smartstock-service/pkg/logger"
)

const (
	processTimeout = 30 * time.Second

	replyInternalError = "⚠️ Internal error occurred."
)

type BotHandler struct {
	uc     bot.UseCase
	sender telegram.Sender
	logger logger.Logger
	wg     sync.WaitGroup
}

func NewBotHandler(uc bot.UseCase, sender telegram.Sender, log logger.Logger) *BotHandler {
	return &BotHandler{
		uc:     uc,
		sender: sender,
		logger: log,
	}
}

// Webhook handles POST /webhook. The transport is acknowledged immediately
// and the message is processed in the background; the sender has no way to
// learn the final outcome of processing, only the reply sent to the chat.
// Transport-level retries can therefore deliver the same message more than
// once.
func (h *BotHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	var upd dto.Update
	err := json.NewDecoder(r.Body).Decode(&upd)

	w.WriteHeader(http.StatusOK)

	if err != nil {
		h.logger.Warn("dropping undecodable webhook payload", zap.Error(err))
		return
	}
	if upd.Message == nil || upd.Message.Text == "" {
		return
	}

	msg := &dto.IncomingMessage{
		ChatID: strconv.FormatInt(upd.Message.Chat.ID, 10),
		Text:   upd.Message.Text,
		Author: "unknown",
	}
	if upd.Message.From != nil && upd.Message.From.FirstName != "" {
		msg.Author = upd.Message.From.FirstName
	}

	h.wg.Add(1)
	go h.process(msg)
}

// Drain blocks until every in-flight message has finished processing. Called
// during shutdown after the listener has stopped accepting requests.
func (h *BotHandler) Drain() {
	h.wg.Wait()
}

func (h *BotHandler) process(msg *dto.IncomingMessage) {
	defer h.wg.Done()

	ctx, cancel := context.WithTimeout(context.Background(), processTimeout)
	defer cancel()

	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error("panic while handling message",
				zap.Any("panic", rec),
				zap.String("chat_id", msg.ChatID),
			)
			if err := h.sender.SendMessage(ctx, msg.ChatID, replyInternalError); err != nil {
				h.logger.Error("failed to send internal error reply", zap.Error(err))
			}
		}
	}()

	h.uc.HandleMessage(ctx, msg)
}
