package chat

import (
	"sync"

	"ares-site-service/internal/domain"
)

// Hub fans newly inserted messages out to per-session subscribers. It is
// the in-process stand-in for a managed realtime channel: subscribers
// get every insert for their session, and slow consumers have their
// oldest pending update dropped rather than blocking the publisher.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan domain.ChatMessage]struct{}
}

func NewHub() *Hub {
	return &Hub{subscribers: make(map[string]map[chan domain.ChatMessage]struct{})}
}

// Subscribe registers a listener for one session. The caller must invoke
// the returned cancel function to avoid leaking the channel.
func (h *Hub) Subscribe(sessionID string) (<-chan domain.ChatMessage, func()) {
	ch := make(chan domain.ChatMessage, 16)

	h.mu.Lock()
	if h.subscribers[sessionID] == nil {
		h.subscribers[sessionID] = make(map[chan domain.ChatMessage]struct{})
	}
	h.subscribers[sessionID][ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if subs, ok := h.subscribers[sessionID]; ok {
			if _, ok := subs[ch]; ok {
				delete(subs, ch)
				close(ch)
			}
			if len(subs) == 0 {
				delete(h.subscribers, sessionID)
			}
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers a message to every subscriber of its session.
func (h *Hub) Publish(msg domain.ChatMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subscribers[msg.SessionID] {
		select {
		case ch <- msg:
		default:
			// Drop the oldest pending message so a stalled consumer
			// cannot block everyone else.
			select {
			case <-ch:
			default:
			}
			ch <- msg
		}
	}
}
