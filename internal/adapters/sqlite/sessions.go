// Package sqlite implements the session provider port over a SQLite
// database. It exists to exercise the transactional hook points of the
// stacking library with a real driver; it is deliberately thin.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver

	"github.com/jsamuelsen/stackable/internal/domain"
	"github.com/jsamuelsen/stackable/internal/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS notes (
	id         TEXT PRIMARY KEY,
	author_id  TEXT NOT NULL,
	body       TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);`

// Provider hands out transactional sessions backed by a SQLite database.
type Provider struct {
	db     *sql.DB
	logger *slog.Logger
}

// New opens (and if necessary creates) the database at path and ensures the
// schema exists. Use ":memory:" for tests.
func New(path string, logger *slog.Logger) (*Provider, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database %q: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensuring schema: %w", err)
	}

	return &Provider{db: db, logger: logger}, nil
}

// Begin opens a new transactional session.
func (p *Provider) Begin(ctx context.Context) (ports.Session, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, domain.NewUnavailableError("sqlite", err.Error())
	}

	sess := &Session{id: uuid.NewString(), tx: tx}

	p.logger.DebugContext(ctx, "session opened", slog.String("session_id", sess.id))

	return sess, nil
}

// Close closes the underlying database.
func (p *Provider) Close() error {
	return p.db.Close()
}

// Name implements ports.HealthChecker.
func (p *Provider) Name() string {
	return "sqlite"
}

// Check implements ports.HealthChecker.
func (p *Provider) Check(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// Session is a single transaction. It resolves at most once: Commit or
// Rollback settle it, Close settles it by rollback if still open and is a
// no-op otherwise.
type Session struct {
	id string
	tx *sql.Tx

	mu   sync.Mutex
	done bool
}

// ID returns the session's identifier.
func (s *Session) ID() string {
	return s.id
}

// Tx exposes the underlying transaction to persistence helpers.
func (s *Session) Tx() *sql.Tx {
	return s.tx
}

// Commit implements ports.Session.
func (s *Session) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return nil
	}

	s.done = true

	return s.tx.Commit()
}

// Rollback implements ports.Session.
func (s *Session) Rollback() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return nil
	}

	s.done = true

	return s.tx.Rollback()
}

// Close implements ports.Session.
func (s *Session) Close() error {
	return s.Rollback()
}

// SaveNote persists a note within the session's transaction. Missing ID and
// timestamp are filled in.
func SaveNote(ctx context.Context, sess *Session, note *domain.Note) error {
	if note.ID == "" {
		note.ID = uuid.NewString()
	}

	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now().UTC()
	}

	_, err := sess.Tx().ExecContext(ctx,
		`INSERT INTO notes (id, author_id, body, created_at) VALUES (?, ?, ?, ?)`,
		note.ID, note.AuthorID, note.Body, note.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving note: %w", err)
	}

	return nil
}

// ListNotes returns the author's notes, newest first.
func ListNotes(ctx context.Context, sess *Session, authorID string) ([]*domain.Note, error) {
	rows, err := sess.Tx().QueryContext(ctx,
		`SELECT id, author_id, body, created_at FROM notes WHERE author_id = ? ORDER BY created_at DESC`,
		authorID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}
	defer rows.Close()

	var notes []*domain.Note

	for rows.Next() {
		var note domain.Note
		if err := rows.Scan(&note.ID, &note.AuthorID, &note.Body, &note.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning note: %w", err)
		}

		notes = append(notes, &note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}

	return notes, nil
}
