// Package repository defines the storage interfaces the rest of the app
// depends on. The concrete SQLite implementation lives in repository/sqlite;
// services only ever see these interfaces, which is what lets tests swap in
// in-memory mocks.
package repository

import (
	"context"

	"github.com/Iamdevsuyash/CodeAtlas/internal/model"
)

// UserRepository methods carry a User prefix so a single storage type can
// implement the user, post, and comment interfaces side by side.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id string) (*model.Post, error)
	// List returns posts newest-first, each with its comment count.
	List(ctx context.Context) ([]model.Post, error)
	// Delete removes a post and, via ON DELETE CASCADE, its comments.
	Delete(ctx context.Context, id string) error
}

type CommentRepository interface {
	CreateComment(ctx context.Context, comment *model.Comment) error
	// ListCommentsForPost returns a post's comments oldest-first.
	ListCommentsForPost(ctx context.Context, postID string) ([]model.Comment, error)
}
