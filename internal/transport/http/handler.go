package http

import (
	"encoding/json"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"ares-site-service/internal/assessment"
	"ares-site-service/internal/chat"
	"ares-site-service/internal/leads"
	"ares-site-service/internal/ratelimit"
)

// Handler bundles the HTTP surface: chat completion endpoint, lead
// capture forms, assessment catalog/scoring, and the realtime websocket.
type Handler struct {
	store          *chat.Store
	completer      chat.Completer
	leads          *leads.Service
	catalogs       assessment.CatalogRepository
	defaultCatalog string
	chatLimiter    ratelimit.Limiter
	leadLimiter    ratelimit.Limiter
	log            *zap.Logger
}

func NewHandler(
	store *chat.Store,
	completer chat.Completer,
	leadService *leads.Service,
	catalogs assessment.CatalogRepository,
	defaultCatalog string,
	chatLimiter, leadLimiter ratelimit.Limiter,
	log *zap.Logger,
) *Handler {
	return &Handler{
		store:          store,
		completer:      completer,
		leads:          leadService,
		catalogs:       catalogs,
		defaultCatalog: defaultCatalog,
		chatLimiter:    chatLimiter,
		leadLimiter:    leadLimiter,
		log:            log,
	}
}

func (h *Handler) logger(r *http.Request) *zap.Logger {
	return h.log.With(zap.String("request_id", middleware.GetReqID(r.Context())))
}

// clientIP resolves the caller identity used for rate limiting, walking
// the usual proxy headers before falling back to the socket address.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	if real := r.Header.Get("X-Real-Ip"); real != "" {
		return real
	}
	if cf := r.Header.Get("Cf-Connecting-Ip"); cf != "" {
		return cf
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "unknown"
	}
	return host
}

// allow applies a limiter and writes the 429 response itself when the
// window is exhausted. Limiter backend errors fail open: rate limiting
// is protective, not load-bearing.
func (h *Handler) allow(w http.ResponseWriter, r *http.Request, limiter ratelimit.Limiter, exhaustedMsg string) bool {
	if limiter == nil {
		return true
	}
	decision, err := limiter.Allow(r.Context(), clientIP(r))
	if err != nil {
		h.logger(r).Warn("rate limiter unavailable", zap.Error(err))
		return true
	}
	if decision.Allowed {
		return true
	}
	retryAfter := int(math.Ceil(decision.ResetIn.Seconds()))
	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	writeJSON(w, http.StatusTooManyRequests, map[string]any{
		"success": false,
		"error":   exhaustedMsg,
	})
	return false
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "error": msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
