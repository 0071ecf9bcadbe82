package assist

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

// WebSocketHandler streams generation events for one browser tab.
type WebSocketHandler struct {
	svc           *Service
	allowedOrigin string
	isDev         bool
}

// NewWebSocketHandler creates a WebSocket handler over the assist service.
func NewWebSocketHandler(svc *Service, allowedOrigin string, isDev bool) *WebSocketHandler {
	return &WebSocketHandler{
		svc:           svc,
		allowedOrigin: allowedOrigin,
		isDev:         isDev,
	}
}

// ServeHTTP implements http.Handler for WebSocket upgrade. The tab id
// comes from the tab_id query parameter.
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	tabID := r.URL.Query().Get("tab_id")
	if tabID == "" {
		tabID = DefaultTabID
	}
	slog.Info("Generation stream connection request", "tab_id", tabID, "ip", r.RemoteAddr)

	if !h.checkOrigin(r) {
		http.Error(w, "origin not allowed", http.StatusForbidden)
		return
	}

	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		slog.Error("Failed to accept WebSocket", "error", err, "tab_id", tabID)
		return
	}
	defer func() {
		if closeErr := ws.Close(websocket.StatusNormalClosure, "stream ended"); closeErr != nil {
			slog.Debug("Failed to close websocket", "error", closeErr, "tab_id", tabID)
		}
	}()

	events, unsubscribe := h.svc.Subscribe(tabID)
	defer unsubscribe()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Read loop only watches for the client going away.
	go func() {
		defer cancel()
		for {
			if _, _, err := ws.Read(ctx); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			if err := wsjson.Write(ctx, ws, ev); err != nil {
				slog.Debug("WebSocket write error", "error", err, "tab_id", tabID)
				return
			}
		}
	}
}

func (h *WebSocketHandler) checkOrigin(r *http.Request) bool {
	if h.isDev || h.allowedOrigin == "" {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	allowed, err := url.Parse(h.allowedOrigin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, allowed.Host)
}
