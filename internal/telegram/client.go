// Package telegram sends outbound messages through the Telegram Bot API.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/smartstock/smartstock-service/config"
	"github.com/smartstock/smartstock-service/pkg/logger"
)

// Sender delivers a text message to a chat. The bot workflow only depends on
// this capability, never on the transport behind it.
type Sender interface {
	SendMessage(ctx context.Context, chatID, text string) error
}

type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
	logger  logger.Logger
}

func NewClient(cfg *config.TelegramConfig, log logger.Logger) *Client {
	return &Client{
		baseURL: cfg.APIBaseURL,
		token:   cfg.BotToken,
		httpc:   &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		logger:  log,
	}
}

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

func (c *Client) SendMessage(ctx context.Context, chatID, text string) error {
	body, err := json.Marshal(sendMessageRequest{ChatID: chatID, Text: text})
	if err != nil {
		return fmt.Errorf("failed to encode sendMessage request: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build sendMessage request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call sendMessage: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sendMessage returned status %d", resp.StatusCode)
	}
	return nil
}
