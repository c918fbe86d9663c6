// Package server sets up the HTTP server, router, and all route definitions.
//
// SERVER ARCHITECTURE:
// This package is the "wiring" layer — it connects handlers, middleware, and routes.
// Think of it as the control centre that decides:
// - Which URL patterns map to which handler functions
// - What middleware runs on which routes
// - How the server starts and stops gracefully
//
// WHY SEPARATE FROM main.go?
// Keeping server setup in its own package makes it:
// - Testable (we can create a test server without running main)
// - Reusable (multiple entry points could use the same server config)
// - Clean (main.go stays minimal — just "start the server")
//
// DEPENDENCY INJECTION FLOW:
// main.go creates: config → logger → Gemini client
// Server.New() creates: sqlite.DB → GitHub client → services → handlers
//
// This is the "composition root" pattern — all dependencies are wired
// in one place (New/setupRoutes), rather than scattered across the codebase.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Iamdevsuyash/CodeAtlas/internal/analyzer"
	"github.com/Iamdevsuyash/CodeAtlas/internal/apihub"
	"github.com/Iamdevsuyash/CodeAtlas/internal/auth"
	"github.com/Iamdevsuyash/CodeAtlas/internal/config"
	"github.com/Iamdevsuyash/CodeAtlas/internal/github"
	"github.com/Iamdevsuyash/CodeAtlas/internal/handler"
	"github.com/Iamdevsuyash/CodeAtlas/internal/llm"
	"github.com/Iamdevsuyash/CodeAtlas/internal/middleware"
	sqliteRepo "github.com/Iamdevsuyash/CodeAtlas/internal/repository/sqlite"
	"github.com/Iamdevsuyash/CodeAtlas/internal/service"
)

// Server represents the HTTP server and all its dependencies.
//
// RESOURCE MANAGEMENT:
// The Server owns the database connection (db). When the server shuts down,
// we must close this connection to flush the WAL and release the file lock.
// This is handled in Start() during graceful shutdown.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a new Server with the given config.
//
// The Gemini client is built in main() and passed in as llm.Generator —
// its constructor needs a context and an API call, which is main's job,
// and an interface here lets server tests plug in a fake.
func New(cfg *config.Config, generator llm.Generator, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(generator); err != nil {
		db.Close() // Clean up DB if route setup fails
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
// POST /api/register                → create an account
// POST /api/login                   → start a session (sets cookie)
// POST /api/logout                  → end the session              [auth]
// GET  /api/status                  → session probe
// POST /api/analyze                 → repository analysis pipeline [auth]
// GET  /api/trending                → trending GitHub repositories
// GET  /api/posts                   → list idea posts
// POST /api/posts                   → share an idea                [auth]
// DELETE /api/posts/{id}            → remove a post + its thread   [auth]
// GET  /api/posts/{id}/comments     → list a post's comments
// POST /api/posts/{id}/comments     → comment on a post            [auth]
// GET  /api/apihub/categories       → public-apis categories       [auth]
// GET  /api/apihub/entries          → public-apis entries          [auth]
// GET  /api/health                  → liveness probe
//
// MIDDLEWARE ORDER MATTERS:
// Middleware executes in the order it's added. Our order:
// 1. RequestID — assigns unique ID to each request (for tracing)
// 2. RealIP — extracts real client IP from proxy headers
// 3. CORS — answers preflights before any handler runs
// 4. Logger — logs each request with timing info
// 5. Recoverer — catches panics and returns 500 instead of crashing
func (s *Server) setupRoutes(generator llm.Generator) error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)

	// The frontend is served from a different origin (Vite dev server or a
	// static host), so the browser sends cross-origin requests with the
	// session cookie attached. AllowCredentials is what permits that; with
	// it on, AllowedOrigins cannot be "*" — the cors package echoes the
	// request origin instead.
	s.router.Use(cors.Handler(cors.Options{
		AllowOriginFunc:  func(r *http.Request, origin string) bool { return true },
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer)

	// === AUTH PLUMBING ===
	tokens, err := auth.NewTokenService(s.config.SessionSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()

	// === EXTERNAL CLIENTS ===
	githubClient := github.New(s.config.GitHubToken, s.logger)
	repoAnalyzer := analyzer.New(githubClient, generator, s.logger)
	hubClient := apihub.New()

	// === SERVICES & HANDLERS ===
	// DEPENDENCY CHAIN:
	//   s.db (sqlite.DB) → implements the repository interfaces
	//   services receive the repository interfaces
	//   handlers receive the services
	//
	// Notice: the handlers never touch the database directly.
	// The services never touch HTTP. Clean separation!
	authService := service.NewAuthService(s.db, tokens, passwords, s.logger)
	postService := service.NewPostService(s.db, s.db, s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	analyzeHandler := handler.NewAnalyzeHandler(repoAnalyzer, githubClient, s.logger)
	postHandler := handler.NewPostHandler(postService, s.logger)
	hubHandler := handler.NewAPIHubHandler(hubClient, s.logger)
	healthHandler := handler.NewHealthHandler(s.db)

	s.router.Route("/api", func(r chi.Router) {
		// Open routes — no session required
		r.Post("/register", authHandler.HandleRegister)
		r.Post("/login", authHandler.HandleLogin)
		r.With(auth.OptionalAuth(tokens)).Get("/status", authHandler.HandleStatus)

		r.Get("/trending", analyzeHandler.HandleTrending)

		r.Get("/posts", postHandler.HandleListPosts)
		r.Get("/posts/{id}/comments", postHandler.HandleListComments)

		r.Get("/health", healthHandler.HandleHealth)

		// Protected routes — a valid session cookie is required
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))

			r.Post("/logout", authHandler.HandleLogout)
			r.Post("/analyze", analyzeHandler.HandleAnalyze)
			r.Post("/posts", postHandler.HandleCreatePost)
			r.Delete("/posts/{id}", postHandler.HandleDeletePost)
			r.Post("/posts/{id}/comments", postHandler.HandleCreateComment)

			r.Get("/apihub/categories", hubHandler.HandleCategories)
			r.Get("/apihub/entries", hubHandler.HandleEntries)
		})
	})

	return nil
}

// Router exposes the configured router so tests can drive the full
// middleware and routing stack without opening a socket.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start starts the HTTP server and handles graceful shutdown.
//
// GRACEFUL SHUTDOWN:
// 1. Stop accepting new HTTP connections
// 2. Wait for in-flight requests to finish (30s timeout — an analyze call
//    in its third LLM round trip needs the headroom)
// 3. Close the database connection (flushes WAL, releases file lock)
//
// The `defer s.db.Close()` ensures step 3 happens even if something panics.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.config.Port),
		Handler: s.router,
		// WriteTimeout must cover the slowest endpoint. /api/analyze makes
		// two GitHub calls and three Gemini calls back to back, so the usual
		// 15s would cut real responses off mid-write.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		// Give in-flight requests 30 seconds to complete
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
