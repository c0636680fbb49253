// Package history records one row per cloud generation in SQLite. The log
// is observational: write failures are logged, never propagated, so a
// broken history store can never fail a user's request.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/hazyhaar/nuage/idgen"
)

const schema = `
CREATE TABLE IF NOT EXISTS generations (
	generation_id  TEXT PRIMARY KEY,
	filename       TEXT NOT NULL,
	format         TEXT NOT NULL,
	words_in       INTEGER NOT NULL,
	words_kept     INTEGER NOT NULL,
	distinct_words INTEGER NOT NULL,
	duration_ms    INTEGER NOT NULL,
	success        INTEGER NOT NULL,
	error          TEXT NOT NULL DEFAULT '',
	created_at     INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_generations_created ON generations(created_at);
`

// Generation is one recorded run of the pipeline.
type Generation struct {
	ID            string `json:"id"`
	Filename      string `json:"filename"`
	Format        string `json:"format"`
	WordsIn       int    `json:"words_in"`
	WordsKept     int    `json:"words_kept"`
	DistinctWords int    `json:"distinct_words"`
	DurationMS    int64  `json:"duration_ms"`
	Success       bool   `json:"success"`
	Error         string `json:"error,omitempty"`
	CreatedAt     int64  `json:"created_at"`
}

// Store writes and reads generation rows.
type Store struct {
	db    *sql.DB
	newID idgen.Generator
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator sets a custom ID generator for generation IDs.
func WithIDGenerator(gen idgen.Generator) Option {
	return func(s *Store) { s.newID = gen }
}

// NewStore creates a store on the given database. The caller owns the
// database handle.
func NewStore(db *sql.DB, opts ...Option) *Store {
	s := &Store{
		db:    db,
		newID: idgen.Prefixed("gen_", idgen.Default),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Init creates the schema. Idempotent.
func (s *Store) Init() error {
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("history: init schema: %w", err)
	}
	return nil
}

// Record inserts one generation row and returns its ID. Non-blocking
// policy: errors are logged via slog and swallowed.
func (s *Store) Record(ctx context.Context, g Generation) string {
	id := g.ID
	if id == "" {
		id = s.newID()
	}
	created := g.CreatedAt
	if created == 0 {
		created = time.Now().Unix()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO generations (
			generation_id, filename, format, words_in, words_kept,
			distinct_words, duration_ms, success, error, created_at
		) VALUES (?,?,?,?,?,?,?,?,?,?)`,
		id, g.Filename, g.Format, g.WordsIn, g.WordsKept,
		g.DistinctWords, g.DurationMS, g.Success, g.Error, created)
	if err != nil {
		slog.Error("history record failed", "error", err, "filename", g.Filename)
	}
	return id
}

// Recent returns the latest n generations, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]Generation, error) {
	if n <= 0 {
		n = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT generation_id, filename, format, words_in, words_kept,
		       distinct_words, duration_ms, success, error, created_at
		FROM generations
		ORDER BY created_at DESC, generation_id DESC
		LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("history: query: %w", err)
	}
	defer rows.Close()

	var out []Generation
	for rows.Next() {
		var g Generation
		if err := rows.Scan(&g.ID, &g.Filename, &g.Format, &g.WordsIn, &g.WordsKept,
			&g.DistinctWords, &g.DurationMS, &g.Success, &g.Error, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("history: scan: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
