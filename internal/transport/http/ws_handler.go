package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"ares-site-service/internal/domain"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type inboundFrame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type messagePayload struct {
	Text string `json:"text"`
}

type outboundFrame[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type wsErrorPayload struct {
	Message string `json:"message"`
}

// serveWS upgrades the connection into the realtime channel for one chat
// session: the client receives every stored message for its session as a
// push, and may submit user messages over the same socket.
func (h *Handler) serveWS(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r)

	sessionID := r.URL.Query().Get("sessionId")
	if sessionID == "" {
		http.Error(w, "missing sessionId", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	history, err := h.store.History(r.Context(), sessionID, 0)
	if err != nil {
		log.Warn("ws history load failed", zap.String("session", sessionID), zap.Error(err))
		history = nil
	}

	updates, cancel := h.store.Subscribe(sessionID)
	defer cancel()

	send := make(chan outboundFrame[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})
	var replyWG sync.WaitGroup

	go func() {
		defer close(writerDone)
		for frame := range send {
			if err := conn.WriteJSON(frame); err != nil {
				log.Debug("ws write error", zap.Error(err))
				return
			}
		}
	}()

	go func() {
		defer close(updatesDone)
		for {
			select {
			case msg, ok := <-updates:
				if !ok {
					return
				}
				select {
				case send <- outboundFrame[any]{Type: "message", Payload: msg}:
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	send <- outboundFrame[any]{Type: "history", Payload: history}

	for {
		var inbound inboundFrame
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "message":
			var payload messagePayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- outboundFrame[any]{Type: "error", Payload: wsErrorPayload{Message: "invalid message payload"}}
				continue
			}
			text := strings.TrimSpace(payload.Text)
			if text == "" {
				continue
			}
			if _, err := h.store.Insert(r.Context(), domain.ChatMessage{
				SessionID: sessionID,
				Sender:    domain.SenderUser,
				Body:      text,
			}); err != nil {
				log.Error("ws save message failed", zap.Error(err))
				send <- outboundFrame[any]{Type: "error", Payload: wsErrorPayload{Message: "failed to save message"}}
				continue
			}
			// The insert is echoed back through the subscription; the
			// reply arrives the same way once the responder stores it.
			replyWG.Add(1)
			go func(text string) {
				defer replyWG.Done()
				if _, err := h.completer.Respond(context.Background(), sessionID, text); err != nil {
					log.Error("ws assistant reply failed", zap.String("session", sessionID), zap.Error(err))
					select {
					case send <- outboundFrame[any]{Type: "error", Payload: wsErrorPayload{Message: "assistant unavailable"}}:
					case <-closeSignals:
					}
				}
			}(text)
		default:
			send <- outboundFrame[any]{Type: "error", Payload: wsErrorPayload{Message: "unsupported message type"}}
		}
	}

	close(closeSignals)
	<-updatesDone
	replyWG.Wait()
	close(send)
	<-writerDone
}
