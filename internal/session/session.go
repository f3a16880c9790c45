package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNoSession is returned when no credential is stored for a session ID, or
// when the stored data cannot be parsed. Callers treat both as "signed out"
// and never as a fatal error.
var ErrNoSession = errors.New("no session")

// Session is the operator's stored credential: an opaque bearer token for the
// tailoring backend plus a display name. It is opaque to everything except
// the gateway's Authorization header.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	Operator  string    `json:"operator"`
	CreatedAt time.Time `json:"created_at"`
}

// New creates a session with a fresh random ID.
func New(token, operator string) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Token:     token,
		Operator:  operator,
		CreatedAt: time.Now().UTC(),
	}
}

// Store persists operator sessions. Sessions are scoped: every
// implementation expires entries after the configured TTL, so a stale
// credential cannot outlive the operator's working session.
type Store interface {
	Load(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Clear(ctx context.Context, id string) error
}
