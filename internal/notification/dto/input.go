package dto

type RegisterInput struct {
	Item       string `json:"item"`
	TelegramID string `json:"telegram_id"`
}
