package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/zangerai/zanger/internal/domain"
)

// GetNavigation returns the current navigation state.
func (h *Handler) GetNavigation(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, stateResponse(h.router.State()))
}

type navigateRequest struct {
	Section    domain.Section  `json:"section"`
	Context    json.RawMessage `json:"context,omitempty"`
	Breadcrumb []string        `json:"breadcrumb,omitempty"`
}

// Navigate performs a section transition. An omitted context keeps the
// current one; an omitted breadcrumb resets the trail.
func (h *Handler) Navigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, err := domain.UnmarshalContext(req.Context)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid context payload")
		return
	}

	h.router.Transition(req.Section, ctx, req.Breadcrumb)
	JSON(w, http.StatusOK, stateResponse(h.router.State()))
}

// ListHistory returns the generation history, newest first.
func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, h.log.List())
}

// RemoveHistory deletes one history entry; removing an absent id succeeds.
func (h *Handler) RemoveHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.log.Remove(r.Context(), id); err != nil {
		slog.Error("Failed to remove history entry", "entry_id", id, "error", err)
		Error(w, http.StatusInternalServerError, "failed to remove entry")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// OpenHistory reopens a past generation session. An unknown entry id
// leaves the navigation state unchanged.
func (h *Handler) OpenHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if entry, ok := h.log.Get(id); ok {
		h.router.NavigateToHistoryEntry(r.Context(), entry)
	}
	JSON(w, http.StatusOK, stateResponse(h.router.State()))
}
