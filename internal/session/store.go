// Package session holds the authenticated-session lookup: opaque token to
// principal, with creation on login, refresh on activity and invalidation
// on logout.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrNoSession is returned when a token is unknown or expired.
var ErrNoSession = errors.New("session not found")

// Principal is the authenticated identity attached to a session.
type Principal struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Admin    bool      `json:"admin"`
}

// Store keeps sessions keyed by opaque token.
type Store interface {
	// Create opens a session and returns its token.
	Create(ctx context.Context, p Principal) (string, error)
	// Get resolves a token and refreshes its expiry.
	Get(ctx context.Context, token string) (*Principal, error)
	// Delete invalidates a token. Unknown tokens are not an error.
	Delete(ctx context.Context, token string) error
}

func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
