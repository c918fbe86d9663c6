package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"testing"

	"github.com/Iamdevsuyash/CodeAtlas/internal/apperror"
	"github.com/Iamdevsuyash/CodeAtlas/internal/auth"
	"github.com/Iamdevsuyash/CodeAtlas/internal/model"
)

// mockUserRepo is a hand-written in-memory implementation of
// repository.UserRepository. The service doesn't know or care that it isn't
// SQLite — that's the point of programming to the interface.
type mockUserRepo struct {
	byUsername map[string]*model.User
	nextID     int
	createErr  error // set to simulate a database failure
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{byUsername: make(map[string]*model.User)}
}

func (m *mockUserRepo) CreateUser(_ context.Context, user *model.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	user.ID = fmt.Sprintf("user-%d", m.nextID)
	stored := *user
	m.byUsername[user.Username] = &stored
	return nil
}

func (m *mockUserRepo) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	user, ok := m.byUsername[username]
	if !ok {
		return nil, apperror.NotFound("user", username)
	}
	result := *user
	return &result, nil
}

func (m *mockUserRepo) GetUserByID(_ context.Context, id string) (*model.User, error) {
	for _, u := range m.byUsername {
		if u.ID == id {
			result := *u
			return &result, nil
		}
	}
	return nil, apperror.NotFound("user", id)
}

func newTestAuthService(t *testing.T, users *mockUserRepo) *AuthService {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	tokens, err := auth.NewTokenService("test-secret-at-least-16-chars")
	if err != nil {
		t.Fatalf("NewTokenService() error = %v", err)
	}
	// bcrypt cost 4: fast tests, same logic
	return NewAuthService(users, tokens, auth.NewPasswordServiceForTest(4), logger)
}

func TestRegister(t *testing.T) {
	users := newMockUserRepo()
	svc := newTestAuthService(t, users)

	user, err := svc.Register(context.Background(), "suyash", "hunter2")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if user.ID == "" {
		t.Error("Register() did not set user.ID")
	}
	if user.Username != "suyash" {
		t.Errorf("Username = %q, want %q", user.Username, "suyash")
	}
	// The stored value must be a hash, never the plaintext
	if user.PasswordHash == "hunter2" || user.PasswordHash == "" {
		t.Errorf("PasswordHash = %q — plaintext or empty", user.PasswordHash)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	users := newMockUserRepo()
	svc := newTestAuthService(t, users)

	first, err := svc.Register(context.Background(), "taken", "pw1")
	if err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	// Second registration with the same username → conflict
	_, err = svc.Register(context.Background(), "taken", "pw2")
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("second Register() error = %v, want ErrConflict", err)
	}

	// The first user is still queryable and unchanged
	found, err := users.GetUserByUsername(context.Background(), "taken")
	if err != nil {
		t.Fatalf("GetUserByUsername() after conflict error = %v", err)
	}
	if found.ID != first.ID {
		t.Errorf("surviving user ID = %q, want %q", found.ID, first.ID)
	}
}

func TestRegister_Validation(t *testing.T) {
	svc := newTestAuthService(t, newMockUserRepo())

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"empty username", "", "pw"},
		{"whitespace username", "   ", "pw"},
		{"empty password", "someone", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.username, tt.password)
			if !errors.Is(err, apperror.ErrValidation) {
				t.Errorf("Register() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	users := newMockUserRepo()
	svc := newTestAuthService(t, users)

	if _, err := svc.Register(context.Background(), "suyash", "hunter2"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	result, err := svc.Login(context.Background(), "suyash", "hunter2")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if result.Token == "" {
		t.Error("Login() returned empty token")
	}
	if result.User.Username != "suyash" {
		t.Errorf("User.Username = %q, want %q", result.User.Username, "suyash")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	users := newMockUserRepo()
	svc := newTestAuthService(t, users)

	if _, err := svc.Register(context.Background(), "suyash", "hunter2"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, err := svc.Login(context.Background(), "suyash", "wrong")
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("Login() error = %v, want ErrUnauthorized", err)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := newTestAuthService(t, newMockUserRepo())

	// Unknown user and wrong password must be indistinguishable to the caller
	_, err := svc.Login(context.Background(), "nobody", "pw")
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("Login() error = %v, want ErrUnauthorized", err)
	}
}
