package http

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"ares-site-service/internal/domain"
)

const (
	leadLimitMsg   = "Too many submissions. Please wait a moment before trying again."
	leadFailureMsg = "Failed to submit form. Please try again later."
)

type leadRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Company       string `json:"company"`
	Phone         string `json:"phone"`
	Service       string `json:"service"`
	Industry      string `json:"industry"`
	Message       string `json:"message"`
	Date          string `json:"date"`
	PreferredTime string `json:"preferredTime"`
}

func (req leadRequest) lead(kind domain.LeadKind) domain.Lead {
	return domain.Lead{
		Kind:          kind,
		Name:          req.Name,
		Email:         req.Email,
		Company:       req.Company,
		Phone:         req.Phone,
		Service:       req.Service,
		Industry:      req.Industry,
		Message:       req.Message,
		Date:          req.Date,
		PreferredTime: req.PreferredTime,
	}
}

func (h *Handler) postContact(w http.ResponseWriter, r *http.Request) {
	h.submitLead(w, r, domain.LeadContact)
}

func (h *Handler) postAppointment(w http.ResponseWriter, r *http.Request) {
	h.submitLead(w, r, domain.LeadAppointment)
}

func (h *Handler) submitLead(w http.ResponseWriter, r *http.Request, kind domain.LeadKind) {
	log := h.logger(r)

	if !h.allow(w, r, h.leadLimiter, leadLimitMsg) {
		return
	}

	var req leadRequest
	if !decodeBody(w, r, &req) {
		return
	}

	pageID, err := h.leads.Submit(r.Context(), req.lead(kind))
	switch {
	case errors.Is(err, domain.ErrMissingLeadFields):
		writeError(w, http.StatusBadRequest, "Name and email are required")
	case errors.Is(err, domain.ErrRelayNotConfigured):
		log.Error("lead relay not configured")
		writeError(w, http.StatusInternalServerError, "Lead relay not configured. Please set NOTION_API_KEY and NOTION_DATABASE_ID.")
	case err != nil:
		// Full detail stays server-side; the caller gets a generic failure.
		log.Error("lead relay failed", zap.String("kind", string(kind)), zap.Error(err))
		writeError(w, http.StatusInternalServerError, leadFailureMsg)
	default:
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "pageId": pageID})
	}
}

type newsletterRequest struct {
	Email string `json:"email"`
}

func (h *Handler) postNewsletter(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r)

	if !h.allow(w, r, h.leadLimiter, leadLimitMsg) {
		return
	}

	var req newsletterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	err := h.leads.SubscribeNewsletter(r.Context(), req.Email)
	switch {
	case errors.Is(err, domain.ErrMissingLeadFields):
		writeError(w, http.StatusBadRequest, "Email is required")
	case err != nil:
		log.Error("newsletter signup failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, leadFailureMsg)
	default:
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}
