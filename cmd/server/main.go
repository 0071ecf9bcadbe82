// Zanger - AI Legal Assistant Server
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/zangerai/zanger/internal/api"
	"github.com/zangerai/zanger/internal/assist"
	"github.com/zangerai/zanger/internal/auth"
	"github.com/zangerai/zanger/internal/config"
	"github.com/zangerai/zanger/internal/history"
	"github.com/zangerai/zanger/internal/legalinfo"
	"github.com/zangerai/zanger/internal/middleware"
	"github.com/zangerai/zanger/internal/nav"
	"github.com/zangerai/zanger/internal/prefs"
	"github.com/zangerai/zanger/internal/registry"
	"github.com/zangerai/zanger/internal/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server", "port", cfg.Port, "backend", cfg.StoreBackend, "dev", cfg.IsDevelopment())

	// Initialize persistence.
	var kv store.KV
	switch cfg.StoreBackend {
	case config.BackendBadger:
		kv, err = store.NewBadger(store.BadgerConfig{
			Path:       cfg.DBPath,
			SyncWrites: true,
			Logger:     logger,
		})
	default:
		kv, err = store.NewSQLite(cfg.DBPath)
	}
	if err != nil {
		slog.Error("Failed to initialize store", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := kv.Close(); closeErr != nil {
			slog.Error("Failed to close store", "error", closeErr)
		}
	}()
	slog.Info("Store ready", "backend", cfg.StoreBackend)

	bootCtx := context.Background()

	// Initialize application state.
	authMgr := auth.NewManager(kv, auth.Credentials{
		Username: cfg.AuthUsername,
		Password: cfg.AuthPassword,
		Role:     cfg.AuthRole,
	})
	if session, err := authMgr.Restore(bootCtx); err != nil {
		slog.Error("Failed to restore session", "error", err)
		os.Exit(1)
	} else if session != nil {
		slog.Info("Session restored", "username", session.Username)
	}

	prefStore := prefs.NewStore(bootCtx, kv)
	reg := registry.New(registry.SeedCases()...)
	log := history.NewLog(bootCtx, kv, cfg.HistoryLimit)
	router := nav.New(reg, log)

	legal, err := legalinfo.Load()
	if err != nil {
		slog.Error("Failed to load legal resources", "error", err)
		os.Exit(1)
	}

	// Chat-driven generations land in the history log against whichever
	// case is currently selected.
	recorder := func(ctx context.Context, documentType string) {
		st := router.State()
		if st.SelectedCaseID == "" {
			return
		}
		c, err := reg.Get(st.SelectedCaseID)
		if err != nil {
			return
		}
		if _, err := log.Append(ctx, c.ID, c.Name, documentType, st.ActiveSection, st.Context); err != nil {
			slog.Warn("Failed to record generation", "case_id", c.ID, "error", err)
		}
	}

	assistSvc, err := assist.NewService(kv, cfg.Generation, assist.WithRecorder(recorder))
	if err != nil {
		slog.Error("Failed to initialize assistant service", "error", err)
		os.Exit(1)
	}
	defer assistSvc.Close()

	// Initialize handlers.
	handler := api.NewHandler(authMgr, prefStore, reg, log, router, assistSvc, legal)
	wsHandler := assist.NewWebSocketHandler(assistSvc, cfg.FrontendURL, cfg.IsDevelopment())

	// Setup router.
	r := chi.NewRouter()

	// Global middleware.
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(middleware.CORS(cfg.FrontendURL))

	handler.RegisterRoutes(r)

	// WebSocket endpoint for generation events.
	r.Get("/ws/generation", wsHandler.ServeHTTP)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start server.
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped successfully")
}
