// Package sqlite is the durable transcript store backed by SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/southmarket/storefront/internal/domain"
	"github.com/southmarket/storefront/internal/storage"
)

// Store is a SQLite implementation of TranscriptStore.
type Store struct {
	db *sql.DB
}

var _ storage.TranscriptStore = (*Store)(nil)

// New opens (or creates) the database at dbPath and initializes the
// schema.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	store := &Store{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (s *Store) initSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			started_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS turns (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			role TEXT NOT NULL,
			text TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_turns_session ON turns(session_id, seq)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) CreateSession(ctx context.Context, session *storage.Session) error {
	if session.StartedAt.IsZero() {
		session.StartedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, started_at) VALUES (?, ?)`,
		session.ID, session.StartedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	for _, turn := range session.Turns {
		if err := s.AppendTurn(ctx, session.ID, turn); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) AppendTurn(ctx context.Context, sessionID string, turn domain.ChatTurn) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO turns (session_id, role, text, created_at)
		 SELECT id, ?, ?, ? FROM sessions WHERE id = ?`,
		string(turn.Role), turn.Text, turn.Timestamp.UTC().Format(time.RFC3339Nano), sessionID)
	if err != nil {
		return fmt.Errorf("failed to append turn: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return storage.ErrSessionNotFound
	}
	return nil
}

func (s *Store) GetSession(ctx context.Context, sessionID string) (*storage.Session, error) {
	var startedAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT started_at FROM sessions WHERE id = ?`, sessionID).Scan(&startedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	session := &storage.Session{ID: sessionID}
	session.StartedAt, _ = time.Parse(time.RFC3339Nano, startedAt)

	rows, err := s.db.QueryContext(ctx,
		`SELECT role, text, created_at FROM turns WHERE session_id = ? ORDER BY seq`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load turns: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var role, text, createdAt string
		if err := rows.Scan(&role, &text, &createdAt); err != nil {
			return nil, err
		}
		turn := domain.ChatTurn{Role: domain.Role(role), Text: text}
		turn.Timestamp, _ = time.Parse(time.RFC3339Nano, createdAt)
		session.Turns = append(session.Turns, turn)
	}
	return session, rows.Err()
}

func (s *Store) ListSessions(ctx context.Context, opts storage.ListOptions) ([]*storage.Session, error) {
	limit := opts.Limit
	if limit == 0 {
		limit = -1 // no limit in sqlite
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM sessions ORDER BY started_at LIMIT ? OFFSET ?`, limit, opts.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sessions := make([]*storage.Session, 0, len(ids))
	for _, id := range ids {
		session, err := s.GetSession(ctx, id)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
