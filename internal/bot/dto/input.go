package dto

// IncomingMessage is one chat message ready for command handling.
type IncomingMessage struct {
	ChatID string
	Text   string
	Author string
}
