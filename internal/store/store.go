// Package store persists quiz sessions between HTTP requests.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/playperu/lovebird/internal/quiz"
)

var ErrNotFound = errors.New("session not found")

// SessionStore holds sessions by id. Implementations return copies: a
// session read from a store is never shared with another caller.
type SessionStore interface {
	// Get returns ErrNotFound for unknown or expired sessions.
	Get(ctx context.Context, id string) (*quiz.Session, error)
	Put(ctx context.Context, s *quiz.Session) error
	// Delete returns ErrNotFound for unknown or expired sessions.
	Delete(ctx context.Context, id string) error
}

// timeFormat is fixed-width so stored timestamps sort lexically.
const timeFormat = "2006-01-02T15:04:05.000Z"

func expired(s *quiz.Session, ttl time.Duration, now time.Time) bool {
	return ttl > 0 && now.Sub(s.UpdatedAt) > ttl
}
