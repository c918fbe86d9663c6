package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Iamdevsuyash/CodeAtlas/internal/analyzer"
	"github.com/Iamdevsuyash/CodeAtlas/internal/model"
)

// Analyzer runs the full repository analysis pipeline. Implemented by
// *analyzer.Analyzer.
type Analyzer interface {
	Analyze(ctx context.Context, repoURL string) *analyzer.Result
}

// TrendingSearcher finds popular recent repositories. Implemented by
// *github.Client.
type TrendingSearcher interface {
	SearchTrending(ctx context.Context, searchQuery string) ([]model.TrendingRepo, error)
}

// AnalyzeHandler serves the repository analysis endpoint and the trending
// repository feed.
type AnalyzeHandler struct {
	analyzer Analyzer
	trending TrendingSearcher
	logger   *slog.Logger
}

// NewAnalyzeHandler creates an AnalyzeHandler.
func NewAnalyzeHandler(a Analyzer, t TrendingSearcher, logger *slog.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{analyzer: a, trending: t, logger: logger}
}

// analyzeRequest is the request body for HandleAnalyze.
type analyzeRequest struct {
	RepoURL string `json:"repo_url"`
}

// HandleAnalyze runs the analysis pipeline for a GitHub repository.
//
// HTTP: POST /api/analyze
// BODY: {"repo_url": "https://github.com/owner/repo"}
//
// A missing or malformed URL is a 400. Everything past URL validation is a
// 200: partial failures (unreachable README, LLM hiccups) are reported
// inside the result's "error" field so the frontend can show whatever
// sections did succeed.
func (h *AnalyzeHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_json",
			Message: "Invalid JSON body",
		})
		return
	}

	if strings.TrimSpace(req.RepoURL) == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "GitHub repository URL is required",
		})
		return
	}

	result := h.analyzer.Analyze(r.Context(), req.RepoURL)
	if result.Err == analyzer.InvalidURLMessage {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: analyzer.InvalidURLMessage,
		})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// HandleTrending returns recently created repositories sorted by stars.
//
// HTTP: GET /api/trending?search_query=<optional search terms>
func (h *AnalyzeHandler) HandleTrending(w http.ResponseWriter, r *http.Request) {
	repos, err := h.trending.SearchTrending(r.Context(), strings.TrimSpace(r.URL.Query().Get("search_query")))
	if err != nil {
		h.logger.Error("trending search failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadGateway, ErrorResponse{
			Error:   "upstream_error",
			Message: "Could not fetch trending repositories",
		})
		return
	}

	writeJSON(w, http.StatusOK, repos)
}
