package http

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"ares-site-service/internal/assessment"
	"ares-site-service/internal/domain"
)

func (h *Handler) catalogID(r *http.Request) string {
	if id := r.URL.Query().Get("catalog"); id != "" {
		return id
	}
	return h.defaultCatalog
}

func (h *Handler) getAssessmentQuestions(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.catalogs.GetCatalog(r.Context(), h.catalogID(r))
	if err != nil {
		if errors.Is(err, domain.ErrCatalogNotFound) {
			writeError(w, http.StatusNotFound, "Assessment not found")
			return
		}
		h.logger(r).Error("load catalog failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, catalog)
}

type scoreRequest struct {
	Catalog string           `json:"catalog"`
	Answers domain.AnswerSet `json:"answers"`
}

func (h *Handler) postAssessmentScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if !decodeBody(w, r, &req) {
		return
	}

	id := req.Catalog
	if id == "" {
		id = h.catalogID(r)
	}
	catalog, err := h.catalogs.GetCatalog(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrCatalogNotFound) {
			writeError(w, http.StatusNotFound, "Assessment not found")
			return
		}
		h.logger(r).Error("load catalog failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	result := assessment.Score(req.Answers, catalog.Questions)
	writeJSON(w, http.StatusOK, result)
}
