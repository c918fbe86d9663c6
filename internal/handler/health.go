package handler

import (
	"net/http"
	"time"
)

// Pinger reports whether the backing database is reachable. Implemented by
// *sqlite.DB.
type Pinger interface {
	Ping() error
}

// HealthHandler serves the liveness probe.
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// HandleHealth reports service and database status.
//
// HTTP: GET /api/health
//
// Always a 200 — a monitoring probe wants the report, not a refusal; the
// "database" field tells it whether storage is up.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	database := "connected"
	if err := h.db.Ping(); err != nil {
		database = "disconnected"
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"database":  database,
	})
}
