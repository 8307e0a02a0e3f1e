// Package store handles SQLite persistence of completed sessions.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pato/ratatype/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for session data.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			duration_seconds INTEGER NOT NULL,
			source TEXT NOT NULL,
			max_word_length INTEGER NOT NULL,
			correction_mode INTEGER NOT NULL,
			chars_typed INTEGER NOT NULL,
			keystrokes INTEGER NOT NULL,
			errors INTEGER NOT NULL,
			avg_wpm REAL NOT NULL,
			peak_wpm REAL NOT NULL,
			accuracy REAL NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS session_key_stats (
			session_id INTEGER NOT NULL,
			char TEXT NOT NULL,
			attempts INTEGER NOT NULL,
			errors INTEGER NOT NULL,
			latency_sum_ms INTEGER NOT NULL,
			PRIMARY KEY (session_id, char)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_ended_at ON sessions(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_session_key_stats_char ON session_key_stats(char);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertSession stores a completed session and its per-key stats.
func (s *Store) InsertSession(ctx context.Context, rec model.SessionRecord, keys []model.KeyStats) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO sessions (started_at, ended_at, duration_seconds, source, max_word_length, correction_mode, chars_typed, keystrokes, errors, avg_wpm, peak_wpm, accuracy)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.StartedAt.Format(time.RFC3339Nano),
		rec.EndedAt.Format(time.RFC3339Nano),
		rec.DurationSeconds,
		rec.Source,
		rec.MaxWordLength,
		rec.RequireCorrection,
		rec.CharsTyped,
		rec.Keystrokes,
		rec.Errors,
		rec.AvgWPM,
		rec.PeakWPM,
		rec.Accuracy,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(keys) > 0 {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO session_key_stats (session_id, char, attempts, errors, latency_sum_ms)
			 VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, ks := range keys {
			if _, err := stmt.ExecContext(ctx, id, ks.Char, ks.Attempts, ks.Errors, ks.LatencySumMs); err != nil {
				return 0, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// KeyAggregates sums per-key stats over the most recent sessions.
func (s *Store) KeyAggregates(ctx context.Context, window int, source string) ([]model.KeyAggregate, error) {
	if window <= 0 {
		return nil, nil
	}
	query := `WITH recent_sessions AS (
		SELECT id FROM sessions
		WHERE (? = '' OR source = ?)
		ORDER BY ended_at DESC
		LIMIT ?
	)
	SELECT ks.char, SUM(ks.attempts) AS attempts, SUM(ks.errors) AS errors,
		SUM(ks.latency_sum_ms) AS latency_sum_ms
	FROM session_key_stats ks
	JOIN recent_sessions r ON r.id = ks.session_id
	GROUP BY ks.char`

	rows, err := s.db.QueryContext(ctx, query, source, source, window)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.KeyAggregate
	for rows.Next() {
		var agg model.KeyAggregate
		if err := rows.Scan(&agg.Char, &agg.Attempts, &agg.Errors, &agg.LatencySumMs); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListSessions returns session aggregates filtered by stats config.
func (s *Store) ListSessions(ctx context.Context, cfg model.StatsConfig) ([]model.SessionAggregate, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Source != "" {
		clauses = append(clauses, "source = ?")
		args = append(args, cfg.Source)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, ended_at, avg_wpm, accuracy, errors
		FROM sessions
		WHERE %s
		ORDER BY ended_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var sessions []model.SessionAggregate
	for rows.Next() {
		var agg model.SessionAggregate
		var endedAt string
		if err := rows.Scan(&agg.SessionID, &endedAt, &agg.AvgWPM, &agg.Accuracy, &agg.Errors); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, endedAt)
		if err != nil {
			return nil, err
		}
		agg.EndedAt = parsed
		sessions = append(sessions, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// ListKeyAggregatesForSessions sums per-key stats across the given sessions.
func (s *Store) ListKeyAggregatesForSessions(ctx context.Context, sessionIDs []int64) ([]model.KeyAggregate, error) {
	if len(sessionIDs) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(sessionIDs))
	args := make([]any, len(sessionIDs))
	for i, id := range sessionIDs {
		placeholders[i] = "?"
		args[i] = id
	}
	query := fmt.Sprintf(`SELECT char, SUM(attempts) AS attempts, SUM(errors) AS errors,
		SUM(latency_sum_ms) AS latency_sum_ms
		FROM session_key_stats
		WHERE session_id IN (%s)
		GROUP BY char`, strings.Join(placeholders, ","))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.KeyAggregate
	for rows.Next() {
		var agg model.KeyAggregate
		if err := rows.Scan(&agg.Char, &agg.Attempts, &agg.Errors, &agg.LatencySumMs); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
