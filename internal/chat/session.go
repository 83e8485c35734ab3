// Package chat owns the conversational assistant session: the ordered
// transcript, the single-flight sending state, and sanitization of
// assistant output.
package chat

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/southmarket/storefront/internal/backend"
	"github.com/southmarket/storefront/internal/domain"
	"github.com/southmarket/storefront/internal/storage"
)

// FallbackReply is appended as the assistant turn whenever the
// assistant endpoint fails; the caller never sees the raw error.
const FallbackReply = "Hubo un error consultando el asistente."

// Assistant issues the outbound assistant call.
type Assistant interface {
	Chat(ctx context.Context, req backend.ChatRequest) (*backend.ChatResponse, error)
}

// Snapshot is a read-only view of the session state.
type Snapshot struct {
	SessionID  string
	Transcript []domain.ChatTurn
	Pending    bool
}

// Option configures the session.
type Option func(*Session)

// WithCredential sets the optional credential forwarded verbatim with
// each assistant request. It is never persisted beyond the session.
func WithCredential(credential string) Option {
	return func(s *Session) { s.credential = credential }
}

// WithLanguage sets the language tag forwarded with each request.
func WithLanguage(language string) Option {
	return func(s *Session) { s.language = language }
}

// WithStore persists accepted turns to a transcript store. The store
// observes the session; its failures are logged and never surfaced to
// the sender.
func WithStore(store storage.TranscriptStore) Option {
	return func(s *Session) { s.store = store }
}

// Session is the chat controller. The transcript is append-only and at
// most one assistant request is in flight at a time.
type Session struct {
	id         string
	assistant  Assistant
	logger     *slog.Logger
	language   string
	credential string
	store      storage.TranscriptStore

	mu         sync.Mutex
	transcript []domain.ChatTurn
	pending    bool
}

// NewSession creates a ready session.
func NewSession(assistant Assistant, logger *slog.Logger, opts ...Option) *Session {
	s := &Session{
		id:        uuid.New().String(),
		assistant: assistant,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store != nil {
		if err := s.store.CreateSession(context.Background(), &storage.Session{ID: s.id, StartedAt: time.Now()}); err != nil {
			s.logger.Warn("transcript session create failed", slog.String("error", err.Error()))
			s.store = nil
		}
	}
	return s
}

// Send submits a question to the assistant and appends both the user
// turn and the assistant's (sanitized) reply to the transcript. It is a
// no-op when the question is blank or while a previous send is still
// pending; the second attempt is dropped, not queued.
func (s *Session) Send(ctx context.Context, text string) {
	question := strings.TrimSpace(text)

	s.mu.Lock()
	if question == "" || s.pending {
		s.mu.Unlock()
		return
	}
	userTurn := domain.ChatTurn{Role: domain.RoleUser, Text: question, Timestamp: time.Now()}
	s.transcript = append(s.transcript, userTurn)
	s.pending = true
	s.mu.Unlock()

	// The session must never stay stuck in Sending, whatever the
	// assistant call does.
	defer func() {
		s.mu.Lock()
		s.pending = false
		s.mu.Unlock()
	}()

	s.persist(userTurn)

	reply := FallbackReply
	resp, err := s.assistant.Chat(ctx, backend.ChatRequest{
		Question:  question,
		OpenAIKey: s.credential,
		Language:  s.language,
	})
	if err != nil {
		s.logger.Warn("assistant request failed", slog.String("error", err.Error()))
	} else if answer := Sanitize(resp.Answer); answer != "" {
		reply = answer
	}

	assistantTurn := domain.ChatTurn{Role: domain.RoleAssistant, Text: reply, Timestamp: time.Now()}
	s.mu.Lock()
	s.transcript = append(s.transcript, assistantTurn)
	s.mu.Unlock()

	s.persist(assistantTurn)
}

// Snapshot returns a copy of the transcript and the sending state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	transcript := make([]domain.ChatTurn, len(s.transcript))
	copy(transcript, s.transcript)
	return Snapshot{
		SessionID:  s.id,
		Transcript: transcript,
		Pending:    s.pending,
	}
}

func (s *Session) persist(turn domain.ChatTurn) {
	if s.store == nil {
		return
	}
	if err := s.store.AppendTurn(context.Background(), s.id, turn); err != nil {
		s.logger.Warn("transcript append failed",
			slog.String("session_id", s.id),
			slog.String("error", err.Error()))
	}
}
