package llm

import "context"

// Message is a role-tagged entry in a completion conversation.
type Message struct {
	Role    string
	Content string
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Response carries one assistant completion.
type Response struct {
	Content string
	Model   string
}

// Client produces one assistant-role completion for an ordered message list.
type Client interface {
	Generate(ctx context.Context, messages []Message) (Response, error)
}
