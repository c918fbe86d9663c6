// Package main is the entry point for the CodeAtlas server.
//
// MAIN PACKAGE IN GO:
// Every Go program starts execution in the main() function of the "main" package.
// The main package should be kept minimal — its job is to:
// 1. Read configuration (from env vars)
// 2. Create dependencies (logger, Gemini client)
// 3. Start the application
//
// All actual logic lives in imported packages (internal/server, internal/handler, etc.).
// This separation makes the app testable and its components reusable.
package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Iamdevsuyash/CodeAtlas/internal/config"
	"github.com/Iamdevsuyash/CodeAtlas/internal/llm"
	"github.com/Iamdevsuyash/CodeAtlas/internal/server"
)

func main() {
	// === 1. SET UP LOGGING ===
	// slog.New creates a structured logger. slog.NewTextHandler outputs
	// human-readable logs to the terminal.
	//
	// Log levels (from least to most severe): Debug → Info → Warn → Error
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// === 2. READ CONFIGURATION ===
	// Everything comes from the environment:
	//
	//	PORT            (default 8080)
	//	DB_PATH         (default data/codeatlas.db)
	//	GITHUB_TOKEN    (required)
	//	GEMINI_API_KEY  (required)
	//	GEMINI_MODEL    (default gemini-2.5-pro)
	//	SESSION_SECRET  (required — generate with `openssl rand -hex 32`)
	//
	// A missing credential is fatal: without the GitHub token or the Gemini
	// key, every analysis request would fail anyway, and without the session
	// secret anyone could forge a login.
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// === 3. DATABASE DIRECTORY ===
	// os.MkdirAll creates all parent directories if needed (like `mkdir -p`).
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		logger.Error("failed to create database directory",
			slog.String("dir", dbDir),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	// === 4. GEMINI CLIENT ===
	// Built here rather than inside the server because the constructor takes
	// a context and can fail (bad key, unreachable endpoint).
	gemini, err := llm.NewGemini(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, logger)
	if err != nil {
		logger.Error("failed to create Gemini client", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// === 5. CREATE AND START THE SERVER ===
	srv, err := server.New(cfg, gemini, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start() blocks until the server is shut down (via Ctrl+C or SIGTERM)
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
