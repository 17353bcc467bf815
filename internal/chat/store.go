package chat

import (
	"context"

	"ares-site-service/internal/domain"
)

// MessageRepository persists ordered chat messages (in-memory, Postgres, etc).
type MessageRepository interface {
	// Insert stores a message and returns it with identifier and
	// creation timestamp assigned.
	Insert(ctx context.Context, msg domain.ChatMessage) (domain.ChatMessage, error)
	// History returns a session's messages ordered by creation time
	// ascending. A positive limit keeps only the most recent messages.
	History(ctx context.Context, sessionID string, limit int) ([]domain.ChatMessage, error)
}

// Store combines a message repository with the broadcast hub so every
// successful insert reaches realtime subscribers.
type Store struct {
	repo MessageRepository
	hub  *Hub
}

func NewStore(repo MessageRepository, hub *Hub) *Store {
	return &Store{repo: repo, hub: hub}
}

func (s *Store) Insert(ctx context.Context, msg domain.ChatMessage) (domain.ChatMessage, error) {
	saved, err := s.repo.Insert(ctx, msg)
	if err != nil {
		return domain.ChatMessage{}, err
	}
	s.hub.Publish(saved)
	return saved, nil
}

func (s *Store) History(ctx context.Context, sessionID string, limit int) ([]domain.ChatMessage, error) {
	return s.repo.History(ctx, sessionID, limit)
}

// Subscribe opens a realtime listener for one session; the cancel
// function must be called on teardown.
func (s *Store) Subscribe(sessionID string) (<-chan domain.ChatMessage, func()) {
	return s.hub.Subscribe(sessionID)
}
