// Package storage defines persistence for chat transcripts.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/southmarket/storefront/internal/domain"
)

// ErrSessionNotFound is returned when a session id is unknown.
var ErrSessionNotFound = errors.New("session not found")

// Session is a persisted chat session and its ordered turns.
type Session struct {
	ID        string
	StartedAt time.Time
	Turns     []domain.ChatTurn
}

// ListOptions controls session listing.
type ListOptions struct {
	Limit  int
	Offset int
}

// TranscriptStore persists append-only chat transcripts. Implementations
// must preserve insertion order of turns within a session.
type TranscriptStore interface {
	CreateSession(ctx context.Context, session *Session) error
	AppendTurn(ctx context.Context, sessionID string, turn domain.ChatTurn) error
	GetSession(ctx context.Context, sessionID string) (*Session, error)
	ListSessions(ctx context.Context, opts ListOptions) ([]*Session, error)
	Close() error
}
