package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/Iamdevsuyash/CodeAtlas/internal/apihub"
)

// APIHubHandler proxies the public-apis directory for the frontend's API
// explorer page.
type APIHubHandler struct {
	client *apihub.Client
	logger *slog.Logger
}

// NewAPIHubHandler creates an APIHubHandler.
func NewAPIHubHandler(client *apihub.Client, logger *slog.Logger) *APIHubHandler {
	return &APIHubHandler{client: client, logger: logger}
}

// HandleCategories lists the directory's API categories.
//
// HTTP: GET /api/apihub/categories
func (h *APIHubHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	body, err := h.client.Categories(r.Context())
	if err != nil {
		h.logger.Error("apihub categories failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadGateway, ErrorResponse{
			Error:   "upstream_error",
			Message: err.Error(),
		})
		return
	}

	writeRawJSON(w, http.StatusOK, body)
}

// HandleEntries lists the APIs within one category.
//
// HTTP: GET /api/apihub/entries?category=...
func (h *APIHubHandler) HandleEntries(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	if category == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Category parameter is required",
		})
		return
	}

	body, err := h.client.Entries(r.Context(), category)
	if err != nil {
		h.logger.Error("apihub entries failed",
			slog.String("category", category),
			slog.String("error", err.Error()),
		)
		writeJSON(w, http.StatusBadGateway, ErrorResponse{
			Error:   "upstream_error",
			Message: err.Error(),
		})
		return
	}

	writeRawJSON(w, http.StatusOK, body)
}
