// Package store persists extracted verses in SQLite so a run can be reviewed
// later and the poster can pick verses that have not been published yet.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/gptpoet/qasida/internal/model"
)

// ErrNoUnposted is returned by RandomUnposted when every verse is posted.
var ErrNoUnposted = errors.New("store: no unposted verses remain")

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         INTEGER PRIMARY KEY,
	source     TEXT NOT NULL,
	created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS verses (
	id        INTEGER PRIMARY KEY,
	run_id    INTEGER NOT NULL REFERENCES runs(id),
	position  INTEGER NOT NULL,
	label     TEXT NOT NULL,
	body      TEXT NOT NULL,
	posted_at TEXT NULL,
	x_post_id TEXT NULL
);
CREATE INDEX IF NOT EXISTS verses_run_position ON verses(run_id, position);
`

// Store wraps the verse database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies the schema.
// path may be ":memory:".
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	// one connection: keeps ":memory:" a single database and serialises writers
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: ping %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Label is the human reference stored with a verse: source file and 1-based line.
func Label(source string, position int) string {
	return fmt.Sprintf("%s#%d", filepath.Base(source), position+1)
}

// SaveRun records one pipeline run and its lines, in order, in a single
// transaction. Duplicate lines are stored as separate verses.
func (s *Store) SaveRun(ctx context.Context, source string, lines []model.CleanedLine) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `INSERT INTO runs (source) VALUES (?)`, source)
	if err != nil {
		return 0, fmt.Errorf("store: insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("store: run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO verses (run_id, position, label, body) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("store: prepare: %w", err)
	}
	defer stmt.Close()
	for _, l := range lines {
		if _, err := stmt.ExecContext(ctx, runID, l.Position, Label(source, l.Position), l.Text); err != nil {
			return 0, fmt.Errorf("store: insert verse %d: %w", l.Position, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("store: commit: %w", err)
	}
	return runID, nil
}

// Verses returns the verses of a run in input order.
func (s *Store) Verses(ctx context.Context, runID int64) ([]model.Verse, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, run_id, label, position, body, COALESCE(x_post_id, '')
FROM verses
WHERE run_id = ?
ORDER BY position, id`, runID)
	if err != nil {
		return nil, fmt.Errorf("store: query verses: %w", err)
	}
	defer rows.Close()

	var out []model.Verse
	for rows.Next() {
		var v model.Verse
		if err := rows.Scan(&v.ID, &v.RunID, &v.Label, &v.Position, &v.Body, &v.PostID); err != nil {
			return nil, fmt.Errorf("store: scan verse: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// RandomUnposted picks one verse that has not been posted.
func (s *Store) RandomUnposted(ctx context.Context) (*model.Verse, error) {
	const q = `
SELECT id, run_id, label, position, body
FROM verses
WHERE posted_at IS NULL
ORDER BY RANDOM()
LIMIT 1;
`
	v := &model.Verse{}
	err := s.db.QueryRowContext(ctx, q).Scan(&v.ID, &v.RunID, &v.Label, &v.Position, &v.Body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoUnposted
	}
	if err != nil {
		return nil, fmt.Errorf("store: random unposted: %w", err)
	}
	return v, nil
}

// MarkPosted stamps a verse as posted with the id the network returned.
func (s *Store) MarkPosted(ctx context.Context, id int64, postID string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE verses SET posted_at = CURRENT_TIMESTAMP, x_post_id = ? WHERE id = ?`, postID, id)
	if err != nil {
		return fmt.Errorf("store: mark posted %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("store: mark posted: no verse with id %d", id)
	}
	return nil
}
