package chat

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ares-site-service/internal/domain"
)

// DefaultReloadDelay is how long Send waits before reconciling the
// transcript against the store; the assistant reply is written by the
// responder, not handed back through the subscription synchronously.
const DefaultReloadDelay = 500 * time.Millisecond

const (
	errReplyBody      = "Sorry, I encountered an error. Please try again or contact support directly."
	notConfiguredBody = "Our AI assistant is not available right now. Please contact support directly."
)

// SessionStore is the widget's view of the chat message store.
type SessionStore interface {
	Insert(ctx context.Context, msg domain.ChatMessage) (domain.ChatMessage, error)
	History(ctx context.Context, sessionID string, limit int) ([]domain.ChatMessage, error)
	Subscribe(sessionID string) (<-chan domain.ChatMessage, func())
}

// Widget is the client-side transcript controller. One widget owns one
// randomly generated session for its whole lifetime; Open/Close toggle
// the realtime subscription, Send drives the optimistic write +
// completion + reconciliation sequence. All operations are safe for
// concurrent use with the subscription callback.
type Widget struct {
	store       SessionStore
	completer   Completer
	log         *zap.Logger
	reloadDelay time.Duration
	sessionID   string

	mu          sync.Mutex
	open        bool
	gen         int // bumped on every Open; stale async work checks it
	sending     bool
	transcript  []domain.ChatMessage
	seen        map[string]struct{}
	unsubscribe func()
}

// NewWidget creates a closed widget with a fresh session identifier.
// A zero reloadDelay selects DefaultReloadDelay.
func NewWidget(store SessionStore, completer Completer, log *zap.Logger, reloadDelay time.Duration) *Widget {
	if reloadDelay <= 0 {
		reloadDelay = DefaultReloadDelay
	}
	return &Widget{
		store:       store,
		completer:   completer,
		log:         log,
		reloadDelay: reloadDelay,
		sessionID:   "session_" + uuid.NewString(),
		seen:        make(map[string]struct{}),
	}
}

// SessionID returns the widget's session identifier.
func (w *Widget) SessionID() string { return w.sessionID }

// IsOpen reports whether the widget is visible and subscribed.
func (w *Widget) IsOpen() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.open
}

// Transcript returns a copy of the visible messages in order.
func (w *Widget) Transcript() []domain.ChatMessage {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]domain.ChatMessage, len(w.transcript))
	copy(out, w.transcript)
	return out
}

// Open makes the widget visible, loads history, and starts the realtime
// subscription. Opening an already open widget is a no-op.
func (w *Widget) Open(ctx context.Context) {
	w.mu.Lock()
	if w.open {
		w.mu.Unlock()
		return
	}
	w.open = true
	w.gen++
	gen := w.gen
	w.mu.Unlock()

	w.loadHistory(ctx, gen)

	ch, cancel := w.store.Subscribe(w.sessionID)
	w.mu.Lock()
	if !w.open || w.gen != gen {
		// Closed while we were setting up.
		w.mu.Unlock()
		cancel()
		return
	}
	w.unsubscribe = cancel
	w.mu.Unlock()

	go w.consume(ch, gen)
}

// Close hides the widget and tears down the subscription. The transcript
// is kept; an in-flight Send resolves against the generation guard and
// cannot corrupt a later reopen.
func (w *Widget) Close() {
	w.mu.Lock()
	if !w.open {
		w.mu.Unlock()
		return
	}
	w.open = false
	cancel := w.unsubscribe
	w.unsubscribe = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Send posts a user message and requests an assistant reply. Blank input
// and concurrent sends are guarded no-ops. Failures never escape: they
// surface as a synthetic assistant entry in the transcript.
func (w *Widget) Send(ctx context.Context, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	w.mu.Lock()
	if w.sending {
		w.mu.Unlock()
		return
	}
	w.sending = true
	gen := w.gen
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.sending = false
		w.mu.Unlock()
	}()

	saved, err := w.store.Insert(ctx, domain.ChatMessage{
		SessionID: w.sessionID,
		Sender:    domain.SenderUser,
		Body:      text,
	})
	if err != nil {
		w.log.Error("save user message failed", zap.String("session", w.sessionID), zap.Error(err))
		w.appendSynthetic(gen, errReplyBody)
		return
	}
	w.append(gen, saved)

	if _, err := w.completer.Respond(ctx, w.sessionID, text); err != nil {
		w.log.Error("assistant reply failed", zap.String("session", w.sessionID), zap.Error(err))
		if errors.Is(err, domain.ErrAssistantNotConfigured) {
			w.appendSynthetic(gen, notConfiguredBody)
		} else {
			w.appendSynthetic(gen, errReplyBody)
		}
		return
	}

	// The reply is persisted asynchronously from this widget's point of
	// view; give the store a moment, then reconcile.
	time.Sleep(w.reloadDelay)
	w.loadHistory(ctx, gen)
}

// loadHistory merges the store's view of the session into the local
// transcript. Failures are logged and leave the transcript unchanged.
func (w *Widget) loadHistory(ctx context.Context, gen int) {
	history, err := w.store.History(ctx, w.sessionID, 0)
	if err != nil {
		w.log.Warn("load chat history failed", zap.String("session", w.sessionID), zap.Error(err))
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.gen != gen {
		return
	}
	for _, msg := range history {
		w.appendLocked(msg)
	}
	w.sortLocked()
}

func (w *Widget) consume(ch <-chan domain.ChatMessage, gen int) {
	for msg := range ch {
		w.append(gen, msg)
	}
}

// append adds a message unless the widget has moved on to a newer
// generation or the identifier is already present.
func (w *Widget) append(gen int, msg domain.ChatMessage) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.gen != gen {
		return
	}
	w.appendLocked(msg)
	w.sortLocked()
}

func (w *Widget) appendSynthetic(gen int, body string) {
	w.append(gen, domain.ChatMessage{
		ID:        "local_" + uuid.NewString(),
		SessionID: w.sessionID,
		Sender:    domain.SenderAssistant,
		Body:      body,
		CreatedAt: time.Now(),
	})
}

func (w *Widget) appendLocked(msg domain.ChatMessage) {
	if _, dup := w.seen[msg.ID]; dup {
		return
	}
	w.seen[msg.ID] = struct{}{}
	w.transcript = append(w.transcript, msg)
}

func (w *Widget) sortLocked() {
	sort.SliceStable(w.transcript, func(i, j int) bool {
		return w.transcript[i].CreatedAt.Before(w.transcript[j].CreatedAt)
	})
}
