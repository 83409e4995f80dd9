package manifest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrRunNotFound is returned when a run ID has no row.
var ErrRunNotFound = errors.New("run not found")

const runColumns = "id, kind, input_dir, started_at, finished_at, discovered, copied, converted, skipped, failed"

// BeginRun inserts a new run and returns it with a fresh UUID.
func (s *Store) BeginRun(ctx context.Context, trigger Trigger, inputDir string) (Run, error) {
	run := Run{
		ID:        uuid.NewString(),
		Trigger:   trigger,
		InputDir:  inputDir,
		StartedAt: time.Now().UTC(),
	}
	_, err := s.execWithRetry(ctx,
		`INSERT INTO runs (id, kind, input_dir, started_at) VALUES (?, ?, ?, ?)`,
		run.ID, string(run.Trigger), run.InputDir, formatTime(run.StartedAt),
	)
	if err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// FinishRun stamps the run's finish time and final counts.
func (s *Store) FinishRun(ctx context.Context, runID string, counts Counts) error {
	res, err := s.execWithRetry(ctx,
		`UPDATE runs SET finished_at = ?, discovered = ?, copied = ?, converted = ?, skipped = ?, failed = ?
         WHERE id = ?`,
		formatTime(time.Now()),
		counts.Discovered, counts.Copied, counts.Converted, counts.Skipped, counts.Failed,
		runID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("finish run %s: %w", runID, ErrRunNotFound)
	}
	return nil
}

// GetRun returns one run by ID.
func (s *Store) GetRun(ctx context.Context, runID string) (Run, error) {
	row := s.db.QueryRowContext(ensureContext(ctx), `SELECT `+runColumns+` FROM runs WHERE id = ?`, runID)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("get run %s: %w", runID, ErrRunNotFound)
	}
	return run, err
}

// ListRuns returns the most recent runs first. A limit <= 0 returns all.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ensureContext(ctx), query, args...)
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
	return runs, rows.Err()
}

// PruneBefore deletes runs started before cutoff, along with their file
// rows, and returns how many runs were removed.
func (s *Store) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM runs WHERE started_at < ?`, formatTime(cutoff))
	if err != nil {
		return 0, fmt.Errorf("prune runs: %w", err)
	}
	return res.RowsAffected()
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (Run, error) {
	var (
		run         Run
		trigger     string
		startedRaw  string
		finishedRaw sql.NullString
	)
	if err := scanner.Scan(
		&run.ID,
		&trigger,
		&run.InputDir,
		&startedRaw,
		&finishedRaw,
		&run.Counts.Discovered,
		&run.Counts.Copied,
		&run.Counts.Converted,
		&run.Counts.Skipped,
		&run.Counts.Failed,
	); err != nil {
		return Run{}, err
	}
	run.Trigger = Trigger(trigger)
	if started, err := parseTimeString(startedRaw); err == nil {
		run.StartedAt = started
	}
	if finishedRaw.Valid {
		if finished, err := parseTimeString(finishedRaw.String); err == nil {
			run.FinishedAt = &finished
		}
	}
	return run, nil
}
