package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"

	"ares-site-service/internal/domain"
)

// MessageRepository persists chat messages in Postgres.
type MessageRepository struct {
	pool *pgxpool.Pool
}

func NewMessageRepository(pool *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{pool: pool}
}

func (r *MessageRepository) Insert(ctx context.Context, msg domain.ChatMessage) (domain.ChatMessage, error) {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO chat_messages (id, session_id, sender, body) VALUES ($1, $2, $3, $4) RETURNING created_at`,
		msg.ID, msg.SessionID, string(msg.Sender), msg.Body,
	).Scan(&msg.CreatedAt)
	if err != nil {
		return domain.ChatMessage{}, fmt.Errorf("insert chat message: %w", err)
	}
	return msg, nil
}

func (r *MessageRepository) History(ctx context.Context, sessionID string, limit int) ([]domain.ChatMessage, error) {
	query := `SELECT id, session_id, sender, body, created_at FROM chat_messages WHERE session_id=$1 ORDER BY created_at ASC`
	args := []interface{}{sessionID}
	if limit > 0 {
		// Most recent messages, still returned ascending.
		query = `SELECT id, session_id, sender, body, created_at FROM (
			SELECT id, session_id, sender, body, created_at FROM chat_messages
			WHERE session_id=$1 ORDER BY created_at DESC LIMIT $2
		) recent ORDER BY created_at ASC`
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select chat history: %w", err)
	}
	defer rows.Close()

	var out []domain.ChatMessage
	for rows.Next() {
		var msg domain.ChatMessage
		var sender string
		if err := rows.Scan(&msg.ID, &msg.SessionID, &sender, &msg.Body, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan chat message: %w", err)
		}
		msg.Sender = domain.Sender(sender)
		out = append(out, msg)
	}
	return out, rows.Err()
}
