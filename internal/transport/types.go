// Package transport defines the chat-delivery surface the dispatcher
// talks to. Exactly one adapter (Telegram) exists today; the interface
// keeps the dispatcher testable without network access.
package transport

import "context"

type ChatTarget struct {
	ChatID   int64
	ThreadID int // telegram forum topic thread id (0 if none)
}

type MessageRef struct {
	ChatID    int64
	ThreadID  int
	MessageID int
}

type SendOptions struct {
	ParseMode      string
	DisablePreview bool
}

// Notifier delivers one text message to a chat target. Implementations
// must honor ctx and surface upstream failure descriptions in the error.
type Notifier interface {
	SendText(ctx context.Context, to ChatTarget, text string, opt *SendOptions) (MessageRef, error)
}
