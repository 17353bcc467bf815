package chat

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"ares-site-service/internal/domain"
	"ares-site-service/internal/llm"
)

// historyContextLimit caps how much transcript is replayed to the model.
const historyContextLimit = 20

// Completer produces and persists the assistant's reply to a user message.
type Completer interface {
	Respond(ctx context.Context, sessionID, text string) (domain.ChatMessage, error)
}

// Responder is the server side of the chat flow: it rebuilds the
// conversation from the store, asks the completion client for a reply,
// and writes that reply back so realtime subscribers pick it up.
type Responder struct {
	store  *Store
	client llm.Client
	log    *zap.Logger
}

// NewResponder wires a responder. A nil client means the assistant is
// not configured; Respond then fails with a distinct error so callers
// can show the configuration message instead of a generic failure.
func NewResponder(store *Store, client llm.Client, log *zap.Logger) *Responder {
	return &Responder{store: store, client: client, log: log}
}

func (r *Responder) Respond(ctx context.Context, sessionID, text string) (domain.ChatMessage, error) {
	if r.client == nil {
		return domain.ChatMessage{}, domain.ErrAssistantNotConfigured
	}

	history, err := r.store.History(ctx, sessionID, historyContextLimit)
	if err != nil {
		// Context is best-effort; answer from the lone message instead.
		r.log.Warn("fetch chat history failed", zap.String("session", sessionID), zap.Error(err))
		history = nil
	}

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: systemPrompt})
	for _, msg := range history {
		role := llm.RoleAssistant
		if msg.Sender == domain.SenderUser {
			role = llm.RoleUser
		}
		messages = append(messages, llm.Message{Role: role, Content: msg.Body})
	}
	if len(history) == 0 || history[len(history)-1].Body != text {
		messages = append(messages, llm.Message{Role: llm.RoleUser, Content: text})
	}

	resp, err := r.client.Generate(ctx, messages)
	if err != nil {
		return domain.ChatMessage{}, fmt.Errorf("generate reply: %w", err)
	}

	saved, err := r.store.Insert(ctx, domain.ChatMessage{
		SessionID: sessionID,
		Sender:    domain.SenderAssistant,
		Body:      resp.Content,
	})
	if err != nil {
		return domain.ChatMessage{}, fmt.Errorf("save reply: %w", err)
	}
	return saved, nil
}
