// Package llm defines the port interface for chat-completion providers.
package llm

import "context"

// Role identifies the author of a chat message.
type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

// Message is a single chat message.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Params are the sampling parameters sent with every completion.
type Params struct {
	Temperature float64
	TopP        float64
	MaxTokens   int
}

// ChatCompleter is the port interface for a chat-completion provider.
// Complete returns the text of the first choice produced by model.
type ChatCompleter interface {
	Complete(ctx context.Context, model string, messages []Message, params Params) (string, error)
}
