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

// COMPILE-TIME INTERFACE CHECK:
// `var _ X = (*Y)(nil)` assigns a nil *Y to a variable of interface type X.
// If *Y doesn't implement X, the compiler errors immediately instead of at
// the distant call site where the assignment would otherwise first happen.
var _ repository.UserRepository = (*DB)(nil)

// CreateUser inserts a new user.
//
// The service layer has already done the friendly "does this username exist"
// pre-check; if a concurrent registration slips past it, the UNIQUE
// constraint on username rejects this INSERT and the error is wrapped and
// returned as a plain database error.
//
// Runs in a transaction that is rolled back on failure — a single INSERT
// hardly needs one, but every write in this package goes through the same
// begin/commit shape so partial writes are impossible as the schema grows.
func (db *DB) CreateUser(ctx context.Context, user *model.User) error {
	user.ID = xid.New().String()
	user.CreatedAt = time.Now()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning transaction: %w", err)
	}
	// Rollback after a successful Commit is a no-op, so the defer is safe.
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, created_at)
		 VALUES (?, ?, ?, ?)`,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating user %q: %w", user.Username, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing user insert: %w", err)
	}

	return nil
}

// GetUserByUsername retrieves a user by their (unique) username.
// Returns apperror.ErrNotFound if no such user exists — callers use this
// both for login lookups and for the registration pre-check.
func (db *DB) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at
		 FROM users WHERE username = ?`,
		username,
	).Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.CreatedAt,
	)
	if err != nil {
		// sql.ErrNoRows is not really an error — it means "no matching row".
		// We translate it to our domain NotFound so the service can branch on it.
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", username)
		}
		return nil, fmt.Errorf("sqlite: getting user %q: %w", username, err)
	}

	return &u, nil
}

// GetUserByID retrieves a user by their internal ID. Used by the status endpoint
// to resolve the user behind a session token.
func (db *DB) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at
		 FROM users WHERE id = ?`,
		id,
	).Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", id)
		}
		return nil, fmt.Errorf("sqlite: getting user %s: %w", id, err)
	}

	return &u, nil
}
