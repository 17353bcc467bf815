package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"ares-site-service/internal/domain"
)

// MessageRepository is an in-memory implementation of
// chat.MessageRepository, used in tests and when no database is
// configured. Messages are kept in insertion order per session.
type MessageRepository struct {
	clock func() time.Time

	mu       sync.RWMutex
	sessions map[string][]domain.ChatMessage
}

func NewMessageRepository() *MessageRepository {
	return &MessageRepository{
		clock:    time.Now,
		sessions: make(map[string][]domain.ChatMessage),
	}
}

// NewMessageRepositoryWithClock is test-only for deterministic timestamps.
func NewMessageRepositoryWithClock(now func() time.Time) *MessageRepository {
	r := NewMessageRepository()
	r.clock = now
	return r
}

func (r *MessageRepository) Insert(_ context.Context, msg domain.ChatMessage) (domain.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = r.clock()
	}
	r.sessions[msg.SessionID] = append(r.sessions[msg.SessionID], msg)
	return msg, nil
}

func (r *MessageRepository) History(_ context.Context, sessionID string, limit int) ([]domain.ChatMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	msgs := r.sessions[sessionID]
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	out := make([]domain.ChatMessage, len(msgs))
	copy(out, msgs)
	return out, nil
}
