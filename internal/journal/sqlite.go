package journal

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SQLite is a Sink backed by a local SQLite database.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating when needed) the journal database. DSN accepts
// a plain path, ":memory:", or a "sqlite://" prefixed form.
func OpenSQLite(dsn string) (*SQLite, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, errors.New("empty journal DSN")
	}
	if strings.HasPrefix(strings.ToLower(dsn), "sqlite://") {
		dsn = dsn[len("sqlite://"):]
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	s := &SQLite{db: db}
	if err := s.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLite) ensureSchema(ctx context.Context) error {
	stmt := `CREATE TABLE IF NOT EXISTS collector_events(
		occurred_at TIMESTAMP NOT NULL DEFAULT (CURRENT_TIMESTAMP),
		type TEXT NOT NULL,
		slot TEXT NOT NULL,
		pid INTEGER NOT NULL
	);`
	_, err := s.db.ExecContext(ctx, stmt)
	return err
}

func (s *SQLite) Send(ctx context.Context, e Event) error {
	occur := e.OccurredAt
	if occur.IsZero() {
		occur = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO collector_events(occurred_at, type, slot, pid)
		VALUES(?, ?, ?, ?);`,
		occur.UTC(), string(e.Type), e.Slot, e.PID)
	return err
}

func (s *SQLite) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
