// Package sqlite provides the SQLite-backed store of sessions, chats and
// chat folders.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStorage persists sessions and their chats.
type SQLiteStorage struct {
	db *sql.DB
}

// SessionRecord is a stored session row.
type SessionRecord struct {
	ID        string
	Name      string
	CreatedAt string
}

// NewSQLiteStorage creates a SQLite-backed storage at the provided path.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("sqlite storage: db path cannot be empty")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite storage: create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: open db: %w", err)
	}
	// PRAGMA foreign_keys is per connection.
	db.SetMaxOpenConns(1)

	storage := &SQLiteStorage{db: db}
	if err := storage.init(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return storage, nil
}

// Close closes the underlying SQLite connection.
func (s *SQLiteStorage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStorage) init() error {
	if _, err := s.db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("sqlite storage: set busy timeout: %w", err)
	}
	if _, err := s.db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("sqlite storage: enable foreign keys: %w", err)
	}

	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("sqlite storage: create schema: %w", err)
	}

	return nil
}

// CreateSession stores a new session with a generated ID.
func (s *SQLiteStorage) CreateSession(ctx context.Context, name string) (SessionRecord, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return SessionRecord{}, fmt.Errorf("sqlite storage: create session: %w", ErrEmptyName)
	}
	rec := SessionRecord{ID: uuid.NewString(), Name: name, CreatedAt: utcNow()}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, name, created_at) VALUES (?, ?, ?)`,
		rec.ID, rec.Name, rec.CreatedAt)
	if err != nil {
		return SessionRecord{}, fmt.Errorf("sqlite storage: create session: %w", err)
	}
	return rec, nil
}

// ListSessions returns every session ordered by creation.
func (s *SQLiteStorage) ListSessions(ctx context.Context) ([]SessionRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, created_at FROM sessions ORDER BY created_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: list sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var rec SessionRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite storage: scan session: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite storage: list sessions: %w", err)
	}
	return out, nil
}

// FindSession looks a session up by ID or by exact name.
func (s *SQLiteStorage) FindSession(ctx context.Context, idOrName string) (SessionRecord, error) {
	var rec SessionRecord
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM sessions WHERE id = ? OR name = ? ORDER BY created_at LIMIT 1`,
		idOrName, idOrName).Scan(&rec.ID, &rec.Name, &rec.CreatedAt)
	if err == sql.ErrNoRows {
		return SessionRecord{}, fmt.Errorf("sqlite storage: find session %q: %w", idOrName, ErrSessionNotFound)
	}
	if err != nil {
		return SessionRecord{}, fmt.Errorf("sqlite storage: find session %q: %w", idOrName, err)
	}
	return rec, nil
}

func (s *SQLiteStorage) sessionExists(ctx context.Context, id string) error {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM sessions WHERE id = ?`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return ErrSessionNotFound
	}
	return err
}

func utcNow() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000000000Z")
}
