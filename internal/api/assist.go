package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/zangerai/zanger/internal/assist"
	"github.com/zangerai/zanger/internal/legalinfo"
)

type generateRequest struct {
	Assistant assist.Assistant `json:"assistant"`
	TabID     string           `json:"tabId"`
	Message   string           `json:"message"`
}

// Generate submits a message to an assistant panel and returns the
// request id; the completion arrives over the generation stream.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.assist.Generate(r.Context(), assist.Request{
		Assistant: req.Assistant,
		TabID:     req.TabID,
		Message:   req.Message,
		Language:  h.prefs.Preferences().Language,
	})
	if err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	JSON(w, http.StatusAccepted, map[string]string{"requestId": id})
}

// Transcript returns the persisted chat history for an assistant.
func (h *Handler) Transcript(w http.ResponseWriter, r *http.Request) {
	assistant := assist.Assistant(chi.URLParam(r, "assistant"))
	msgs, err := h.assist.Transcript(r.Context(), assistant)
	if err != nil {
		slog.Error("Failed to load transcript", "assistant", assistant, "error", err)
		Error(w, http.StatusInternalServerError, "failed to load transcript")
		return
	}
	if msgs == nil {
		msgs = []assist.ChatMessage{}
	}
	JSON(w, http.StatusOK, msgs)
}

// LatestOutput returns the last generated artifact for an assistant.
func (h *Handler) LatestOutput(w http.ResponseWriter, r *http.Request) {
	assistant := assist.Assistant(chi.URLParam(r, "assistant"))
	out, err := h.assist.LatestOutput(r.Context(), assistant)
	if err != nil {
		slog.Error("Failed to load output", "assistant", assistant, "error", err)
		Error(w, http.StatusInternalServerError, "failed to load output")
		return
	}
	JSON(w, http.StatusOK, map[string]string{"output": out})
}

// ListLegal returns the legal resource catalog.
func (h *Handler) ListLegal(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, h.legal.List())
}

// SearchLegal filters legal resources by the q query parameter.
func (h *Handler) SearchLegal(w http.ResponseWriter, r *http.Request) {
	results := h.legal.Search(r.URL.Query().Get("q"))
	if results == nil {
		results = []legalinfo.Resource{}
	}
	JSON(w, http.StatusOK, results)
}

// GetLegal returns one legal resource by id.
func (h *Handler) GetLegal(w http.ResponseWriter, r *http.Request) {
	res, err := h.legal.Get(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, legalinfo.ErrNotFound) {
			Error(w, http.StatusNotFound, "resource not found")
			return
		}
		Error(w, http.StatusInternalServerError, "failed to load resource")
		return
	}
	JSON(w, http.StatusOK, res)
}
