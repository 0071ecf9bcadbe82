package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/zangerai/zanger/internal/domain"
	"github.com/zangerai/zanger/internal/registry"
)

// ListCases returns all cases, newest first.
func (h *Handler) ListCases(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, h.reg.List())
}

// GetCase returns one case by id.
func (h *Handler) GetCase(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	c, err := h.reg.Get(id)
	if err != nil {
		Error(w, http.StatusNotFound, "case not found")
		return
	}
	JSON(w, http.StatusOK, c)
}

// SearchCases filters cases by the q query parameter.
func (h *Handler) SearchCases(w http.ResponseWriter, r *http.Request) {
	results := h.reg.Search(r.URL.Query().Get("q"))
	if results == nil {
		results = []domain.Case{}
	}
	JSON(w, http.StatusOK, results)
}

// CreateCase runs the case-intake flow: validation failures come back as
// a field-indexed error map and create nothing.
func (h *Handler) CreateCase(w http.ResponseWriter, r *http.Request) {
	var draft domain.CaseDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.router.AddNewCase(draft)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			JSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
				"error":  "validation failed",
				"fields": verr.Fields,
			})
			return
		}
		slog.Error("Failed to create case", "error", err)
		Error(w, http.StatusInternalServerError, "failed to create case")
		return
	}

	slog.Info("Case created", "case_id", c.ID, "type", c.Type)
	JSON(w, http.StatusCreated, c)
}

// SelectCase makes a case current; unknown ids are silently ignored and
// the (unchanged) navigation state is returned.
func (h *Handler) SelectCase(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DocumentType string `json:"documentType"`
	}
	// Body is optional; the document type defaults downstream.
	_ = json.NewDecoder(r.Body).Decode(&req)

	h.router.SelectCase(r.Context(), chi.URLParam(r, "id"), req.DocumentType)
	JSON(w, http.StatusOK, stateResponse(h.router.State()))
}

// AttachDocument attaches an uploaded document record to a case.
func (h *Handler) AttachDocument(w http.ResponseWriter, r *http.Request) {
	var doc domain.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.reg.AttachDocument(id, doc); err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			Error(w, http.StatusNotFound, "case not found")
			return
		}
		slog.Error("Failed to attach document", "case_id", id, "error", err)
		Error(w, http.StatusInternalServerError, "failed to attach document")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// OpenCaseDocuments activates the per-case documents section and returns
// the new navigation state.
func (h *Handler) OpenCaseDocuments(w http.ResponseWriter, r *http.Request) {
	h.router.OpenCaseDocuments(chi.URLParam(r, "id"))
	JSON(w, http.StatusOK, stateResponse(h.router.State()))
}
