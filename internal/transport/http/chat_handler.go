package http

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"ares-site-service/internal/domain"
)

const notConfiguredMsg = "AI service not configured. Please set OPENAI_API_KEY in the service environment."

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type chatResponse struct {
	Success   bool   `json:"success"`
	Response  string `json:"response"`
	MessageID string `json:"message_id"`
}

// postChat stores the user message and produces the assistant reply.
// The reply is also written to the session store, so websocket
// subscribers see it independently of this response.
func (h *Handler) postChat(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r)

	if !h.allow(w, r, h.chatLimiter, "Too many requests. Please wait before sending another message.") {
		return
	}

	var req chatRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.SessionID == "" || req.Message == "" {
		writeError(w, http.StatusBadRequest, "session_id and message are required")
		return
	}

	if _, err := h.store.Insert(r.Context(), domain.ChatMessage{
		SessionID: req.SessionID,
		Sender:    domain.SenderUser,
		Body:      req.Message,
	}); err != nil {
		log.Error("save user message failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	reply, err := h.completer.Respond(r.Context(), req.SessionID, req.Message)
	if err != nil {
		if errors.Is(err, domain.ErrAssistantNotConfigured) {
			writeError(w, http.StatusInternalServerError, notConfiguredMsg)
			return
		}
		log.Error("assistant reply failed", zap.String("session", req.SessionID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Success:   true,
		Response:  reply.Body,
		MessageID: reply.ID,
	})
}
