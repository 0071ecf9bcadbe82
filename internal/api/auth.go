package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/zangerai/zanger/internal/auth"
	"github.com/zangerai/zanger/internal/domain"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates the credential pair and returns the issued session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.auth.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			Error(w, http.StatusUnauthorized, "invalid_credentials")
			return
		}
		slog.Error("Login failed", "error", err)
		Error(w, http.StatusInternalServerError, "login failed")
		return
	}

	slog.Info("User logged in", "username", session.Username)
	JSON(w, http.StatusOK, session)
}

// Logout clears the active session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(r.Context()); err != nil {
		slog.Error("Logout failed", "error", err)
		Error(w, http.StatusInternalServerError, "logout failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the current session.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	session := h.auth.Current()
	if session == nil {
		Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	JSON(w, http.StatusOK, session)
}

type preferencesResponse struct {
	Language         domain.Language `json:"language"`
	Theme            domain.Theme    `json:"theme"`
	SidebarCollapsed bool            `json:"sidebarCollapsed"`
}

// GetPreferences returns the persisted preferences.
func (h *Handler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	p := h.prefs.Preferences()
	JSON(w, http.StatusOK, preferencesResponse{
		Language:         p.Language,
		Theme:            p.Theme,
		SidebarCollapsed: h.prefs.SidebarCollapsed(),
	})
}

// SetLanguage selects the UI language.
func (h *Handler) SetLanguage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Language domain.Language `json:"language"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.prefs.SetLanguage(r.Context(), req.Language); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetTheme selects the UI theme.
func (h *Handler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Theme domain.Theme `json:"theme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.prefs.SetTheme(r.Context(), req.Theme); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetSidebar persists the sidebar collapsed state.
func (h *Handler) SetSidebar(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Collapsed bool `json:"collapsed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.prefs.SetSidebarCollapsed(r.Context(), req.Collapsed); err != nil {
		slog.Error("Failed to persist sidebar state", "error", err)
		Error(w, http.StatusInternalServerError, "failed to persist")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
