package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"clipforge/internal/config"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is bumped on any schema change. Databases with a different
// version are rejected rather than migrated.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database was created by a different
// release and must be removed before reuse.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// ErrRunNotFound is returned for lookups of unknown run IDs.
var ErrRunNotFound = errors.New("analysis run not found")

// Store manages run persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Open connects to the results database, creating it on first use. The
// store holds a file lock until Close; a second process opening the same
// store fails fast.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	storeDir := cfg.Paths.StoreDir
	lock := flock.New(filepath.Join(storeDir, "clipforge.lock"))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire store lock: %w", err)
	}
	if !ok {
		return nil, errors.New("results store is locked by another process")
	}

	dbPath := filepath.Join(storeDir, "results.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, lock: lock}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}
	return store, nil
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Close closes the database and releases the store lock.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	if s.lock != nil {
		if unlockErr := s.lock.Unlock(); err == nil {
			err = unlockErr
		}
	}
	return err
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to start over)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// SaveRun inserts a run and its clips in one transaction. The run's
// ClipCount and CreatedAt are taken as given.
func (s *Store) SaveRun(ctx context.Context, run Run, clips []Clip) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO analysis_runs (
            id, source_path, duration_seconds, analyzed_seconds, prefix_seconds,
            clip_count, degraded_audio, gameplay_fallback, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.SourcePath,
		run.DurationSeconds,
		run.AnalyzedSeconds,
		run.PrefixSeconds,
		run.ClipCount,
		boolToInt(run.DegradedAudio),
		boolToInt(run.GameplayFallback),
		run.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, clip := range clips {
		signalsJSON, err := json.Marshal(clip.Signals)
		if err != nil {
			return fmt.Errorf("marshal signals: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO highlight_clips (
                run_id, start_seconds, end_seconds, peak_seconds, score,
                signals_json, rationale
            ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			run.ID,
			clip.Start,
			clip.End,
			clip.Peak,
			clip.Score,
			string(signalsJSON),
			clip.Rationale,
		)
		if err != nil {
			return fmt.Errorf("insert clip: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// ListRuns returns runs newest first, up to limit (0 means all).
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, source_path, duration_seconds, analyzed_seconds, prefix_seconds,
        clip_count, degraded_audio, gameplay_fallback, created_at
        FROM analysis_runs ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// GetRun fetches one run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, source_path, duration_seconds, analyzed_seconds, prefix_seconds,
            clip_count, degraded_audio, gameplay_fallback, created_at
            FROM analysis_runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return run, err
}

// ClipsForRun returns a run's clips in chronological order.
func (s *Store) ClipsForRun(ctx context.Context, runID string) ([]Clip, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, start_seconds, end_seconds, peak_seconds, score,
            signals_json, rationale
            FROM highlight_clips WHERE run_id = ? ORDER BY start_seconds`, runID)
	if err != nil {
		return nil, fmt.Errorf("list clips: %w", err)
	}
	defer rows.Close()

	var clips []Clip
	for rows.Next() {
		var clip Clip
		var signalsJSON string
		if err := rows.Scan(&clip.ID, &clip.RunID, &clip.Start, &clip.End,
			&clip.Peak, &clip.Score, &signalsJSON, &clip.Rationale); err != nil {
			return nil, fmt.Errorf("scan clip: %w", err)
		}
		if err := json.Unmarshal([]byte(signalsJSON), &clip.Signals); err != nil {
			return nil, fmt.Errorf("unmarshal signals: %w", err)
		}
		clips = append(clips, clip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clips: %w", err)
	}
	return clips, nil
}

// DeleteRun removes a run and, by cascade, its clips.
func (s *Store) DeleteRun(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM analysis_runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var run Run
	var degraded, fallback int
	var createdAt string
	if err := row.Scan(&run.ID, &run.SourcePath, &run.DurationSeconds,
		&run.AnalyzedSeconds, &run.PrefixSeconds, &run.ClipCount,
		&degraded, &fallback, &createdAt); err != nil {
		return Run{}, err
	}
	run.DegradedAudio = degraded != 0
	run.GameplayFallback = fallback != 0
	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return Run{}, fmt.Errorf("parse created_at: %w", err)
	}
	run.CreatedAt = ts
	return run, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
