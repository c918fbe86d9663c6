package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/Iamdevsuyash/CodeAtlas/internal/apperror"
	"github.com/Iamdevsuyash/CodeAtlas/internal/model"
)

// mockPostRepo stores posts in insertion order; List reverses it, which is
// good enough to exercise the service (the real DESC ordering is covered by
// the sqlite tests).
type mockPostRepo struct {
	posts     []*model.Post
	nextID    int
	createErr error
}

func (m *mockPostRepo) Create(_ context.Context, post *model.Post) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	post.ID = fmt.Sprintf("post-%d", m.nextID)
	stored := *post
	m.posts = append(m.posts, &stored)
	return nil
}

func (m *mockPostRepo) GetByID(_ context.Context, id string) (*model.Post, error) {
	for _, p := range m.posts {
		if p.ID == id {
			result := *p
			return &result, nil
		}
	}
	return nil, apperror.NotFound("post", id)
}

func (m *mockPostRepo) List(_ context.Context) ([]model.Post, error) {
	result := make([]model.Post, 0, len(m.posts))
	for i := len(m.posts) - 1; i >= 0; i-- {
		result = append(result, *m.posts[i])
	}
	return result, nil
}

func (m *mockPostRepo) Delete(_ context.Context, id string) error {
	for i, p := range m.posts {
		if p.ID == id {
			m.posts = append(m.posts[:i], m.posts[i+1:]...)
			return nil
		}
	}
	return apperror.NotFound("post", id)
}

type mockCommentRepo struct {
	comments []*model.Comment
	nextID   int
}

func (m *mockCommentRepo) CreateComment(_ context.Context, comment *model.Comment) error {
	m.nextID++
	comment.ID = fmt.Sprintf("comment-%d", m.nextID)
	stored := *comment
	m.comments = append(m.comments, &stored)
	return nil
}

func (m *mockCommentRepo) ListCommentsForPost(_ context.Context, postID string) ([]model.Comment, error) {
	result := []model.Comment{}
	for _, c := range m.comments {
		if c.PostID == postID {
			result = append(result, *c)
		}
	}
	return result, nil
}

func newTestPostService(posts *mockPostRepo, comments *mockCommentRepo) *PostService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewPostService(posts, comments, logger)
}

func TestCreatePost(t *testing.T) {
	svc := newTestPostService(&mockPostRepo{}, &mockCommentRepo{})

	post, err := svc.CreatePost(context.Background(), "golang/go", "add a playground mode")
	if err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}

	if post.ID == "" {
		t.Error("CreatePost() did not set post.ID")
	}
	if post.RepoName != "golang/go" {
		t.Errorf("RepoName = %q, want %q", post.RepoName, "golang/go")
	}
}

func TestCreatePost_TrimsWhitespace(t *testing.T) {
	svc := newTestPostService(&mockPostRepo{}, &mockCommentRepo{})

	post, err := svc.CreatePost(context.Background(), "  golang/go  ", "  an idea  ")
	if err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}
	if post.RepoName != "golang/go" || post.Idea != "an idea" {
		t.Errorf("fields not trimmed: %q / %q", post.RepoName, post.Idea)
	}
}

func TestCreatePost_Validation(t *testing.T) {
	svc := newTestPostService(&mockPostRepo{}, &mockCommentRepo{})

	tests := []struct {
		name     string
		repoName string
		idea     string
	}{
		{"missing repo name", "", "idea"},
		{"missing idea", "o/r", ""},
		{"repo name too long", strings.Repeat("x", MaxRepoNameLength+1), "idea"},
		{"idea too long", "o/r", strings.Repeat("x", MaxIdeaLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreatePost(context.Background(), tt.repoName, tt.idea)
			if !errors.Is(err, apperror.ErrValidation) {
				t.Errorf("CreatePost() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestCreateComment(t *testing.T) {
	posts := &mockPostRepo{}
	comments := &mockCommentRepo{}
	svc := newTestPostService(posts, comments)

	post, err := svc.CreatePost(context.Background(), "o/r", "idea")
	if err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}

	comment, err := svc.CreateComment(context.Background(), post.ID, "nice one")
	if err != nil {
		t.Fatalf("CreateComment() error = %v", err)
	}
	if comment.PostID != post.ID {
		t.Errorf("PostID = %q, want %q", comment.PostID, post.ID)
	}
}

func TestCreateComment_UnknownPost(t *testing.T) {
	svc := newTestPostService(&mockPostRepo{}, &mockCommentRepo{})

	// Commenting on a nonexistent post is NotFound (a 404 at the HTTP
	// layer), never a raw database error.
	_, err := svc.CreateComment(context.Background(), "no-such-post", "hello")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("CreateComment() error = %v, want ErrNotFound", err)
	}
}

func TestDeletePost(t *testing.T) {
	posts := &mockPostRepo{}
	svc := newTestPostService(posts, &mockCommentRepo{})

	post, err := svc.CreatePost(context.Background(), "o/r", "short-lived")
	if err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}

	if err := svc.DeletePost(context.Background(), post.ID); err != nil {
		t.Fatalf("DeletePost() error = %v", err)
	}
	if len(posts.posts) != 0 {
		t.Errorf("repository still holds %d post(s), want 0", len(posts.posts))
	}
}

func TestDeletePost_UnknownPost(t *testing.T) {
	svc := newTestPostService(&mockPostRepo{}, &mockCommentRepo{})

	if err := svc.DeletePost(context.Background(), "no-such-post"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("DeletePost() error = %v, want ErrNotFound", err)
	}
}

func TestDeletePost_EmptyID(t *testing.T) {
	svc := newTestPostService(&mockPostRepo{}, &mockCommentRepo{})

	if err := svc.DeletePost(context.Background(), "  "); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("DeletePost() error = %v, want ErrValidation", err)
	}
}

func TestListComments_UnknownPost(t *testing.T) {
	svc := newTestPostService(&mockPostRepo{}, &mockCommentRepo{})

	_, err := svc.ListComments(context.Background(), "no-such-post")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("ListComments() error = %v, want ErrNotFound", err)
	}
}

func TestListPosts_NewestFirst(t *testing.T) {
	posts := &mockPostRepo{}
	svc := newTestPostService(posts, &mockCommentRepo{})

	for _, idea := range []string{"first", "second", "third"} {
		if _, err := svc.CreatePost(context.Background(), "o/r", idea); err != nil {
			t.Fatalf("CreatePost() error = %v", err)
		}
	}

	list, err := svc.ListPosts(context.Background())
	if err != nil {
		t.Fatalf("ListPosts() error = %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("ListPosts() returned %d posts, want 3", len(list))
	}
	if list[0].Idea != "third" || list[2].Idea != "first" {
		t.Errorf("order = [%s %s %s], want newest first", list[0].Idea, list[1].Idea, list[2].Idea)
	}
}
