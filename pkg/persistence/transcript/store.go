// Package transcript is a write-only archive of finished chat sessions. It
// is never read at startup: the live timeline still resets on every launch,
// the archive only exists for later export.
package transcript

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/oto-sh/oto/pkg/chat"
)

const schema = `
CREATE TABLE IF NOT EXISTS transcript_messages (
	id            TEXT PRIMARY KEY,
	session_id    TEXT NOT NULL,
	role          TEXT NOT NULL,
	content       TEXT NOT NULL,
	shown_at      TEXT NOT NULL,
	archived_at_ms INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transcript_session ON transcript_messages(session_id, archived_at_ms);
`

type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrapf(err, "transcript: open %s", path)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "transcript: create schema")
	}
	return &Store{db: db}, nil
}

// Append archives one timeline message under sessionID.
func (s *Store) Append(ctx context.Context, sessionID string, m chat.Message) error {
	if sessionID == "" {
		return errors.New("transcript: empty session id")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO transcript_messages (id, session_id, role, content, shown_at, archived_at_ms)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, sessionID, string(m.Role), m.Content, m.Timestamp, time.Now().UnixMilli())
	return errors.Wrap(err, "transcript: append")
}

// Count returns how many messages a session archived. Used by export tooling
// and tests.
func (s *Store) Count(ctx context.Context, sessionID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transcript_messages WHERE session_id = ?`, sessionID).Scan(&n)
	return n, errors.Wrap(err, "transcript: count")
}

func (s *Store) Close() error { return s.db.Close() }
