// Package api provides HTTP handlers for the Zanger API.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/zangerai/zanger/internal/assist"
	"github.com/zangerai/zanger/internal/auth"
	"github.com/zangerai/zanger/internal/domain"
	"github.com/zangerai/zanger/internal/history"
	"github.com/zangerai/zanger/internal/legalinfo"
	"github.com/zangerai/zanger/internal/nav"
	"github.com/zangerai/zanger/internal/prefs"
	"github.com/zangerai/zanger/internal/registry"
)

// Handler serves the application state manager over HTTP.
type Handler struct {
	auth   *auth.Manager
	prefs  *prefs.Store
	reg    *registry.Registry
	log    *history.Log
	router *nav.Router
	assist *assist.Service
	legal  *legalinfo.Catalog
}

// NewHandler creates a new Handler with all state dependencies.
func NewHandler(
	authMgr *auth.Manager,
	prefStore *prefs.Store,
	reg *registry.Registry,
	log *history.Log,
	router *nav.Router,
	assistSvc *assist.Service,
	legal *legalinfo.Catalog,
) *Handler {
	return &Handler{
		auth:   authMgr,
		prefs:  prefStore,
		reg:    reg,
		log:    log,
		router: router,
		assist: assistSvc,
		legal:  legal,
	}
}

// RegisterRoutes registers all API routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(h.requireSession)

			r.Post("/logout", h.Logout)
			r.Get("/me", h.Me)

			r.Get("/preferences", h.GetPreferences)
			r.Put("/preferences/language", h.SetLanguage)
			r.Put("/preferences/theme", h.SetTheme)
			r.Put("/preferences/sidebar", h.SetSidebar)

			r.Get("/cases", h.ListCases)
			r.Post("/cases", h.CreateCase)
			r.Get("/cases/search", h.SearchCases)
			r.Get("/cases/{id}", h.GetCase)
			r.Post("/cases/{id}/select", h.SelectCase)
			r.Post("/cases/{id}/documents", h.AttachDocument)
			r.Get("/cases/{id}/documents", h.OpenCaseDocuments)

			r.Get("/history", h.ListHistory)
			r.Delete("/history/{id}", h.RemoveHistory)
			r.Post("/history/{id}/open", h.OpenHistory)

			r.Get("/navigation", h.GetNavigation)
			r.Post("/navigate", h.Navigate)

			r.Post("/assist/generate", h.Generate)
			r.Get("/assist/{assistant}/transcript", h.Transcript)
			r.Get("/assist/{assistant}/output", h.LatestOutput)

			r.Get("/legal", h.ListLegal)
			r.Get("/legal/search", h.SearchLegal)
			r.Get("/legal/{id}", h.GetLegal)
		})
	})
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// requireSession rejects requests made while logged out.
func (h *Handler) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.auth.Current() == nil {
			Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// navStateResponse is the wire form of the navigation state; the context
// travels as its tagged envelope.
type navStateResponse struct {
	ActiveSection  domain.Section  `json:"activeSection"`
	SelectedCaseID string          `json:"selectedCaseId,omitempty"`
	Context        json.RawMessage `json:"context,omitempty"`
	Breadcrumb     []string        `json:"breadcrumb"`
}

func stateResponse(s domain.NavigationState) navStateResponse {
	resp := navStateResponse{
		ActiveSection:  s.ActiveSection,
		SelectedCaseID: s.SelectedCaseID,
		Breadcrumb:     s.Breadcrumb,
	}
	if resp.Breadcrumb == nil {
		resp.Breadcrumb = []string{}
	}
	if s.Context != nil {
		if raw, err := domain.MarshalContext(s.Context); err == nil {
			resp.Context = raw
		}
	}
	return resp
}
