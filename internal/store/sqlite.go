package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/playperu/lovebird/internal/migrations"
	"github.com/playperu/lovebird/internal/quiz"
)

// SQLiteStore keeps each session as a JSONB document in the sessions table.
type SQLiteStore struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// NewSQLiteStore migrates db and returns a store over it.
func NewSQLiteStore(db *sql.DB, ttl time.Duration) (*SQLiteStore, error) {
	if err := migrations.Run(db); err != nil {
		return nil, fmt.Errorf("migrating session store: %w", err)
	}
	return &SQLiteStore{db: db, ttl: ttl, now: time.Now}, nil
}

func (s *SQLiteStore) cutoff() string {
	if s.ttl <= 0 {
		return ""
	}
	return s.now().Add(-s.ttl).UTC().Format(timeFormat)
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*quiz.Session, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT json(data) FROM sessions WHERE id = ? AND updated_at >= ?`,
		id, s.cutoff(),
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading session %s: %w", id, err)
	}

	var sess quiz.Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, fmt.Errorf("decoding session %s: %w", id, err)
	}
	return &sess, nil
}

func (s *SQLiteStore) Put(ctx context.Context, sess *quiz.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encoding session %s: %w", sess.ID, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, mode, data, updated_at) VALUES (?, ?, jsonb(?), ?)
		 ON CONFLICT(id) DO UPDATE SET mode = excluded.mode, data = excluded.data, updated_at = excluded.updated_at`,
		sess.ID, string(sess.Mode), string(data), sess.UpdatedAt.UTC().Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("saving session %s: %w", sess.ID, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE id = ? AND updated_at >= ?`, id, s.cutoff())
	if err != nil {
		return fmt.Errorf("deleting session %s: %w", id, err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Prune deletes expired sessions and reports how many were removed.
func (s *SQLiteStore) Prune(ctx context.Context) (int64, error) {
	cutoff := s.cutoff()
	if cutoff == "" {
		return 0, nil
	}
	result, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE updated_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning sessions: %w", err)
	}
	return result.RowsAffected()
}

// Check reports whether the database is reachable.
func (s *SQLiteStore) Check(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
