package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/Iamdevsuyash/CodeAtlas/internal/apperror"
	"github.com/Iamdevsuyash/CodeAtlas/internal/model"
	"github.com/Iamdevsuyash/CodeAtlas/internal/repository"
)

// compile-time check that *DB implements repository.PostRepository
var _ repository.PostRepository = (*DB)(nil)

// Create inserts a new post inside a transaction.
//
// POINTER RECEIVER ON THE MODEL:
// We take *model.Post so the caller gets the generated ID and timestamp back
// on their own struct after Create returns.
func (db *DB) Create(ctx context.Context, post *model.Post) error {
	post.ID = xid.New().String()
	post.CreatedAt = time.Now()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO posts (id, repo_name, idea, created_at)
		 VALUES (?, ?, ?, ?)`,
		post.ID,
		post.RepoName,
		post.Idea,
		post.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating post: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing post insert: %w", err)
	}

	return nil
}

// GetByID retrieves a single post (without its comment count).
// Returns apperror.ErrNotFound if the post doesn't exist.
func (db *DB) GetByID(ctx context.Context, id string) (*model.Post, error) {
	var p model.Post

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, repo_name, idea, created_at
		 FROM posts WHERE id = ?`,
		id,
	).Scan(
		&p.ID,
		&p.RepoName,
		&p.Idea,
		&p.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("post", id)
		}
		return nil, fmt.Errorf("sqlite: getting post %s: %w", id, err)
	}

	return &p, nil
}

// List returns all posts newest-first, each with its comment count.
//
// The LEFT JOIN keeps posts with zero comments in the result (an INNER JOIN
// would drop them). COUNT(c.id) counts matching comment rows per post; it is
// 0 when the join found nothing because COUNT ignores NULLs.
func (db *DB) List(ctx context.Context) ([]model.Post, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT p.id, p.repo_name, p.idea, p.created_at, COUNT(c.id)
		 FROM posts p
		 LEFT JOIN comments c ON c.post_id = p.id
		 GROUP BY p.id
		 ORDER BY p.created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing posts: %w", err)
	}
	// sql.Rows holds a pool connection — always close it.
	defer rows.Close()

	posts := []model.Post{}

	for rows.Next() {
		var p model.Post
		if err := rows.Scan(
			&p.ID, &p.RepoName, &p.Idea, &p.CreatedAt, &p.CommentsCount,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning post row: %w", err)
		}
		posts = append(posts, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating posts: %w", err)
	}

	return posts, nil
}

// Delete removes a post by ID. The ON DELETE CASCADE constraint removes the
// post's comments in the same statement (New enables foreign keys on every
// pooled connection via the DSN).
func (db *DB) Delete(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM posts WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting post %s: %w", id, err)
	}

	// RowsAffected == 0 means the WHERE matched nothing → not found.
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("post", id)
	}

	return nil
}
