package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Iamdevsuyash/CodeAtlas/internal/service"
)

// PostHandler serves the community post board: shared repository ideas and
// the comments under them.
type PostHandler struct {
	svc    *service.PostService
	logger *slog.Logger
}

// NewPostHandler creates a PostHandler.
func NewPostHandler(svc *service.PostService, logger *slog.Logger) *PostHandler {
	return &PostHandler{svc: svc, logger: logger}
}

// createPostRequest is the request body for HandleCreatePost.
type createPostRequest struct {
	RepoName string `json:"repo_name"`
	Idea     string `json:"idea"`
}

// createCommentRequest is the request body for HandleCreateComment.
type createCommentRequest struct {
	Text string `json:"text"`
}

// HandleListPosts returns all posts, newest first, each with its comment
// count.
//
// HTTP: GET /api/posts
func (h *PostHandler) HandleListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.svc.ListPosts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, posts)
}

// HandleCreatePost shares a new project idea for a repository.
//
// HTTP: POST /api/posts (requires auth)
// BODY: {"repo_name": "...", "idea": "..."}
func (h *PostHandler) HandleCreatePost(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_json",
			Message: "Invalid JSON body",
		})
		return
	}

	post, err := h.svc.CreatePost(r.Context(), req.RepoName, req.Idea)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, post)
}

// HandleDeletePost removes a post and, through the storage cascade, its
// comment thread.
//
// HTTP: DELETE /api/posts/{id} (requires auth)
//
// 404 if the post does not exist.
func (h *PostHandler) HandleDeletePost(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeletePost(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleListComments returns a post's comments, oldest first.
//
// HTTP: GET /api/posts/{id}/comments
func (h *PostHandler) HandleListComments(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "id")

	comments, err := h.svc.ListComments(r.Context(), postID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, comments)
}

// HandleCreateComment adds a comment to a post.
//
// HTTP: POST /api/posts/{id}/comments (requires auth)
// BODY: {"text": "..."}
//
// 404 if the post does not exist.
func (h *PostHandler) HandleCreateComment(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "id")

	var req createCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_json",
			Message: "Invalid JSON body",
		})
		return
	}

	comment, err := h.svc.CreateComment(r.Context(), postID, req.Text)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, comment)
}
