package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Iamdevsuyash/CodeAtlas/internal/auth"
	"github.com/Iamdevsuyash/CodeAtlas/internal/service"
)

// AuthHandler manages registration, login, logout, and the session status
// probe.
//
//	POST /api/register → create an account
//	POST /api/login    → verify credentials, set the session cookie
//	POST /api/logout   → clear the session cookie
//	GET  /api/status   → report whether the caller is logged in
type AuthHandler struct {
	svc    *service.AuthService
	logger *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, logger: logger}
}

// credentials is the request body shared by register and login.
type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// userPayload is the public view of a user (no hash, no internal timestamps).
type userPayload struct {
	Username string `json:"username"`
}

// HandleRegister creates a new account.
//
// HTTP: POST /api/register
// BODY: {"username": "...", "password": "..."}
//
// 201 on success, 409 if the username is taken, 400 on validation failure.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		h.logger.Warn("invalid register JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_json",
			Message: "Invalid JSON body",
		})
		return
	}

	if _, err := h.svc.Register(r.Context(), creds.Username, creds.Password); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"message": "User registered successfully",
	})
}

// HandleLogin verifies credentials and starts a session.
//
// HTTP: POST /api/login
//
// On success the session token lands in an HttpOnly cookie — the response
// body carries only the username, never the token.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		h.logger.Warn("invalid login JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_json",
			Message: "Invalid JSON body",
		})
		return
	}

	result, err := h.svc.Login(r.Context(), creds.Username, creds.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	http.SetCookie(w, auth.NewSessionCookie(result.Token))

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Logged in successfully",
		"user":    userPayload{Username: result.User.Username},
	})
}

// HandleLogout ends the session by clearing the cookie. The JWT itself stays
// valid until it expires — stateless tokens can't be revoked server-side —
// but the browser no longer has it.
//
// HTTP: POST /api/logout (requires auth)
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, auth.ClearSessionCookie())

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Logged out successfully",
	})
}

// HandleStatus reports the caller's session state.
//
// HTTP: GET /api/status
//
// Runs behind OptionalAuth: anonymous callers get {"logged_in": false}
// rather than a 401, because the frontend polls this on page load before it
// knows whether a session exists.
func (h *AuthHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"logged_in": false})
		return
	}

	user, err := h.svc.UserByID(r.Context(), userID)
	if err != nil {
		// A valid token for a user that no longer exists — treat as logged out.
		writeJSON(w, http.StatusOK, map[string]any{"logged_in": false})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"logged_in": true,
		"user":      userPayload{Username: user.Username},
	})
}
