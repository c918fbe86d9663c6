package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Iamdevsuyash/CodeAtlas/internal/apperror"
	"github.com/Iamdevsuyash/CodeAtlas/internal/model"
	"github.com/Iamdevsuyash/CodeAtlas/internal/repository"
)

const (
	MaxRepoNameLength = 100
	MaxIdeaLength     = 10000
	MaxCommentLength  = 5000
)

// PostService handles business logic for the idea hub: posts and their
// comment threads.
type PostService struct {
	posts    repository.PostRepository
	comments repository.CommentRepository
	logger   *slog.Logger
}

// NewPostService creates a PostService.
func NewPostService(
	posts repository.PostRepository,
	comments repository.CommentRepository,
	logger *slog.Logger,
) *PostService {
	return &PostService{
		posts:    posts,
		comments: comments,
		logger:   logger,
	}
}

// CreatePost validates and saves a new idea post.
func (s *PostService) CreatePost(ctx context.Context, repoName, idea string) (*model.Post, error) {
	repoName = strings.TrimSpace(repoName)
	idea = strings.TrimSpace(idea)

	if repoName == "" {
		return nil, apperror.ValidationFailed("repo_name", "repository name is required")
	}
	if len(repoName) > MaxRepoNameLength {
		return nil, apperror.ValidationFailed("repo_name",
			fmt.Sprintf("repository name must be %d characters or less", MaxRepoNameLength))
	}
	if idea == "" {
		return nil, apperror.ValidationFailed("idea", "idea text is required")
	}
	if len(idea) > MaxIdeaLength {
		return nil, apperror.ValidationFailed("idea",
			fmt.Sprintf("idea must be %d characters or less", MaxIdeaLength))
	}

	post := &model.Post{
		RepoName: repoName,
		Idea:     idea,
	}

	if err := s.posts.Create(ctx, post); err != nil {
		s.logger.Error("failed to create post",
			slog.String("repoName", repoName),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating post: %w", err)
	}

	s.logger.Info("post created",
		slog.String("id", post.ID),
		slog.String("repoName", post.RepoName),
	)

	return post, nil
}

// ListPosts returns all posts, newest first.
func (s *PostService) ListPosts(ctx context.Context) ([]model.Post, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		s.logger.Error("failed to list posts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	return posts, nil
}

// DeletePost removes a post. The comment cascade lives in the storage layer,
// so a single delete takes the whole thread with it.
func (s *PostService) DeletePost(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "post ID is required")
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return err // NotFound passes through, anything else is already wrapped
	}

	s.logger.Info("post deleted", slog.String("id", id))
	return nil
}

// CreateComment validates and saves a comment on an existing post.
//
// The post lookup comes first so commenting on an unknown post surfaces as
// NotFound (→ 404) rather than a foreign-key violation (→ 500).
func (s *PostService) CreateComment(ctx context.Context, postID, text string) (*model.Comment, error) {
	postID = strings.TrimSpace(postID)
	text = strings.TrimSpace(text)

	if postID == "" {
		return nil, apperror.ValidationFailed("post_id", "post ID is required")
	}
	if text == "" {
		return nil, apperror.ValidationFailed("text", "comment text is required")
	}
	if len(text) > MaxCommentLength {
		return nil, apperror.ValidationFailed("text",
			fmt.Sprintf("comment must be %d characters or less", MaxCommentLength))
	}

	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err // already a proper apperror (NotFound) or wrapped DB error
	}

	comment := &model.Comment{
		PostID: postID,
		Text:   text,
	}

	if err := s.comments.CreateComment(ctx, comment); err != nil {
		s.logger.Error("failed to create comment",
			slog.String("postID", postID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating comment: %w", err)
	}

	s.logger.Info("comment created",
		slog.String("id", comment.ID),
		slog.String("postID", postID),
	)

	return comment, nil
}

// ListComments returns a post's comments, oldest first. Looking up the post
// first gives the same 404-for-unknown-post behavior as CreateComment.
func (s *PostService) ListComments(ctx context.Context, postID string) ([]model.Comment, error) {
	postID = strings.TrimSpace(postID)
	if postID == "" {
		return nil, apperror.ValidationFailed("post_id", "post ID is required")
	}

	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comments, err := s.comments.ListCommentsForPost(ctx, postID)
	if err != nil {
		s.logger.Error("failed to list comments",
			slog.String("postID", postID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing comments: %w", err)
	}

	return comments, nil
}
