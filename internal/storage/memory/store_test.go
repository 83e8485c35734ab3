package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/southmarket/storefront/internal/domain"
	"github.com/southmarket/storefront/internal/storage"
)

func TestMemoryStore_AppendTurnPreservesOrder(t *testing.T) {
	store := New()
	ctx := context.Background()

	if err := store.CreateSession(ctx, &storage.Session{ID: "sess-1"}); err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	turns := []domain.ChatTurn{
		{Role: domain.RoleUser, Text: "¿Tiene buena batería?", Timestamp: time.Now()},
		{Role: domain.RoleAssistant, Text: "La batería es de 5000 mAh.", Timestamp: time.Now()},
	}
	for _, turn := range turns {
		if err := store.AppendTurn(ctx, "sess-1", turn); err != nil {
			t.Fatalf("AppendTurn() error = %v", err)
		}
	}

	session, err := store.GetSession(ctx, "sess-1")
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if len(session.Turns) != 2 {
		t.Fatalf("turns = %d, want 2", len(session.Turns))
	}
	if session.Turns[0].Role != domain.RoleUser || session.Turns[1].Role != domain.RoleAssistant {
		t.Errorf("turn order = %v, %v; want user then assistant", session.Turns[0].Role, session.Turns[1].Role)
	}
}

func TestMemoryStore_UnknownSession(t *testing.T) {
	store := New()
	ctx := context.Background()

	err := store.AppendTurn(ctx, "missing", domain.ChatTurn{Role: domain.RoleUser, Text: "hola"})
	if !errors.Is(err, storage.ErrSessionNotFound) {
		t.Errorf("AppendTurn() error = %v, want ErrSessionNotFound", err)
	}

	if _, err := store.GetSession(ctx, "missing"); !errors.Is(err, storage.ErrSessionNotFound) {
		t.Errorf("GetSession() error = %v, want ErrSessionNotFound", err)
	}
}

func TestMemoryStore_ListSessions(t *testing.T) {
	store := New()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		session := &storage.Session{
			ID:        fmt.Sprintf("sess-%d", i),
			StartedAt: time.Now().Add(time.Duration(i) * time.Minute),
		}
		if err := store.CreateSession(ctx, session); err != nil {
			t.Fatalf("CreateSession() error = %v", err)
		}
	}

	sessions, err := store.ListSessions(ctx, storage.ListOptions{Limit: 3})
	if err != nil {
		t.Fatalf("ListSessions() error = %v", err)
	}
	if len(sessions) != 3 {
		t.Errorf("ListSessions() count = %d, want 3", len(sessions))
	}
	if sessions[0].ID != "sess-0" {
		t.Errorf("first session = %v, want sess-0 (oldest first)", sessions[0].ID)
	}
}
