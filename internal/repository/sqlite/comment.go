package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/Iamdevsuyash/CodeAtlas/internal/model"
	"github.com/Iamdevsuyash/CodeAtlas/internal/repository"
)

// compile-time check that *DB implements repository.CommentRepository
var _ repository.CommentRepository = (*DB)(nil)

// CreateComment inserts a new comment inside a transaction.
//
// The service verifies the post exists before calling this (so an unknown
// post surfaces as a 404, not a raw constraint error); the foreign key on
// post_id is the backstop if that check is ever bypassed.
func (db *DB) CreateComment(ctx context.Context, comment *model.Comment) error {
	comment.ID = xid.New().String()
	comment.CreatedAt = time.Now()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO comments (id, post_id, text, created_at)
		 VALUES (?, ?, ?, ?)`,
		comment.ID,
		comment.PostID,
		comment.Text,
		comment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating comment on post %s: %w", comment.PostID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing comment insert: %w", err)
	}

	return nil
}

// ListCommentsForPost returns a post's comments oldest-first — a discussion thread
// reads top to bottom, unlike the post feed which shows newest first.
func (db *DB) ListCommentsForPost(ctx context.Context, postID string) ([]model.Comment, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, post_id, text, created_at
		 FROM comments
		 WHERE post_id = ?
		 ORDER BY created_at ASC`,
		postID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing comments for post %s: %w", postID, err)
	}
	defer rows.Close()

	comments := []model.Comment{}

	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.Text, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning comment row: %w", err)
		}
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating comments: %w", err)
	}

	return comments, nil
}
