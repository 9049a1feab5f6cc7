package models

import "time"

// Message represents a single entry in a conversation view. Messages are ephemeral: they are
// created at send or receive time, rendered immediately, and never persisted.
type Message struct {
	Text      string
	Sender    Sender
	Timestamp time.Time
}

// Sender identifies which side of the conversation produced a message.
type Sender string

const (
	// SenderUser marks a message typed by the person chatting.
	SenderUser Sender = "user"
	// SenderBot marks a message produced by the assistant, including the fixed
	// connection-error fallback.
	SenderBot Sender = "bot"
)

// ChatRequest is the JSON body accepted by POST /api/chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the JSON body returned by POST /api/chat. Reply carries HTML for the web
// widget; ReplyMarkdown carries the same reply before rendering, for clients with their own
// renderer. Clients ignore fields they do not know.
type ChatResponse struct {
	Reply         string `json:"reply"`
	ReplyMarkdown string `json:"replyMarkdown,omitempty"`
}
