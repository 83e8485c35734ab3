// Package memory is the in-memory transcript store, used when no
// durable storage is configured.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/southmarket/storefront/internal/domain"
	"github.com/southmarket/storefront/internal/storage"
)

// Store is an in-memory implementation of TranscriptStore.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*storage.Session
}

var _ storage.TranscriptStore = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		sessions: make(map[string]*storage.Session),
	}
}

func (s *Store) CreateSession(ctx context.Context, session *storage.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[session.ID]; exists {
		return fmt.Errorf("session %s already exists", session.ID)
	}

	if session.StartedAt.IsZero() {
		session.StartedAt = time.Now()
	}
	stored := *session
	stored.Turns = append([]domain.ChatTurn(nil), session.Turns...)
	s.sessions[session.ID] = &stored
	return nil
}

func (s *Store) AppendTurn(ctx context.Context, sessionID string, turn domain.ChatTurn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, exists := s.sessions[sessionID]
	if !exists {
		return storage.ErrSessionNotFound
	}

	session.Turns = append(session.Turns, turn)
	return nil
}

func (s *Store) GetSession(ctx context.Context, sessionID string) (*storage.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, exists := s.sessions[sessionID]
	if !exists {
		return nil, storage.ErrSessionNotFound
	}

	out := *session
	out.Turns = append([]domain.ChatTurn(nil), session.Turns...)
	return &out, nil
}

func (s *Store) ListSessions(ctx context.Context, opts storage.ListOptions) ([]*storage.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*storage.Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		out := *session
		out.Turns = append([]domain.ChatTurn(nil), session.Turns...)
		result = append(result, &out)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartedAt.Before(result[j].StartedAt)
	})

	start := opts.Offset
	if start >= len(result) {
		return []*storage.Session{}, nil
	}
	end := start + opts.Limit
	if opts.Limit == 0 || end > len(result) {
		end = len(result)
	}

	return result[start:end], nil
}

func (s *Store) Close() error {
	return nil
}
