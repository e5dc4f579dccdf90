package domain

import (
	"context"
	"errors"
)

// ErrSessionNotFound is returned when no session is stored under an id.
var ErrSessionNotFound = errors.New("focus session not found")

// SessionStore persists focus sessions.
type SessionStore interface {
	Load(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Delete(ctx context.Context, id string) error
}
