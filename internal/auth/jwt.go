// Package auth provides password hashing, session token generation, and the
// middleware that guards protected routes.
//
// SESSION FLOW:
// 1. POST /api/register creates a user with a bcrypt password hash
// 2. POST /api/login verifies the password and issues a signed session token
// 3. The token is stored in an HttpOnly cookie named "token"
// 4. On protected routes, middleware reads the cookie, validates the token,
//    and puts the userID in the request context
// 5. POST /api/logout clears the cookie
//
// WHY A SIGNED TOKEN INSTEAD OF SERVER-SIDE SESSIONS?
// A JWT is stateless — everything the server needs (userID, expiry) is inside
// the signed token, so validating a session costs zero DB lookups. The
// signature (HMAC-SHA256 over header+payload with the session secret) is what
// stops anyone from forging or tampering with one.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// sessionDuration is how long a login lasts before the user must sign in
// again. There is no refresh-token mechanism; 24 hours keeps re-login rare
// without leaving stolen cookies valid forever.
const sessionDuration = 24 * time.Hour

// TokenService signs and validates session tokens. It holds the HMAC secret
// — the same secret must be used for both operations.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService with the given secret.
// The secret should be at least 32 bytes of random data in production.
// Example: SESSION_SECRET=$(openssl rand -hex 32)
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: session secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// claims embeds jwt.RegisteredClaims, which carries the standard fields
// (Subject, ExpiresAt, IssuedAt, Issuer). We store the internal user ID in
// "sub" — the standard claim for identifying who a token belongs to.
type claims struct {
	jwt.RegisteredClaims
}

// Generate creates and signs a session token for the given userID.
//
// Signing algorithm: HS256 (HMAC-SHA256) — symmetric, fast, and the right
// choice for a single-server deployment where one process both signs and
// verifies.
func (s *TokenService) Generate(userID string) (string, error) {
	now := time.Now()

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionDuration)),
			Issuer:    "codeatlas",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// GenerateWithDuration creates a token with a custom expiry. Used by tests to
// produce already-expired tokens.
func (s *TokenService) GenerateWithDuration(userID string, d time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    "codeatlas",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a session token and returns the userID from
// its "sub" claim.
//
// The jwt library checks the signature, the expiry, and (because we pass the
// options below) the issuer and the algorithm. Restricting the algorithm to
// HS256 prevents algorithm-confusion attacks where an attacker submits a
// token claiming to be signed with "none".
func (s *TokenService) Validate(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer("codeatlas"),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("auth: token expired")
		}
		return "", fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("auth: invalid token claims")
	}

	userID := c.Subject
	if userID == "" {
		return "", fmt.Errorf("auth: token has no subject")
	}

	return userID, nil
}
