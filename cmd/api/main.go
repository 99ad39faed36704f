// Package main is the entry point for the Doodle Diary server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // registers the "sqlite" driver for database/sql

	"github.com/pkordes/doodle-diary/internal/config"
	"github.com/pkordes/doodle-diary/internal/gateway"
	"github.com/pkordes/doodle-diary/internal/handler"
	"github.com/pkordes/doodle-diary/internal/middleware"
	"github.com/pkordes/doodle-diary/internal/repo"
	"github.com/pkordes/doodle-diary/internal/service"
	"github.com/pkordes/doodle-diary/migrations"
)

// maxBodyBytes caps incoming request bodies. Transcripts are small text;
// 1 MiB leaves generous headroom without allowing runaway posts.
const maxBodyBytes = 1 << 20

func main() {
	// --- Config -----------------------------------------------------------
	// .env is a development convenience; missing files are fine.
	godotenv.Load() //nolint:errcheck

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog is the stdlib structured logger introduced in Go 1.21.
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// SQLite is embedded; the whole history lives in one local file.
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		slog.Error("failed to create database directory", "error", err)
		os.Exit(1)
	}
	db, err := sql.Open("sqlite", cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.PingContext(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	// Apply embedded migrations before accepting traffic.
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.FS)
	if err != nil {
		slog.Error("failed to create migration provider", "error", err)
		os.Exit(1)
	}
	if _, err := provider.Up(context.Background()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database ready", "path", cfg.DBPath)

	// --- Services ---------------------------------------------------------
	historyRepo := repo.NewHistoryRepo(db, logger)
	history, err := service.NewHistoryStore(context.Background(), historyRepo)
	if err != nil {
		slog.Error("failed to load history", "error", err)
		os.Exit(1)
	}
	slog.Info("history loaded", "entries", history.Len())

	gemini, err := gateway.NewGemini(context.Background(),
		cfg.GeminiAPIKey, cfg.TextModel, cfg.ImageModel, cfg.LiveModel, logger)
	if err != nil {
		slog.Error("failed to create gateway client", "error", err)
		os.Exit(1)
	}

	exporter := service.NewExportService(logger)
	sessions := service.NewSessionService(gemini, history, exporter, logger)

	// --- Router -----------------------------------------------------------
	// Middleware order: RequestID, RealIP, Logger, Recoverer, CORS, body
	// size cap. Recoverer catches panics and returns HTTP 500 instead of
	// crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodyBytes))

	srv := handler.NewServer(sessions, logger)
	r.Mount("/", srv.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Only the header read gets a timeout: the transcription WebSocket and
	// slow generation calls hold connections open far longer than a blanket
	// read/write timeout would allow.
	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
