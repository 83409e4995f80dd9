package manifest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cellsort/internal/classify"
)

const fileColumns = "id, run_id, source_path, canonical_name, cell_id, test_name, variable, test_spec, operating_condition, date, organized_path, txt_path, checksum, outcome, error_message, recorded_at"

// RecordFile appends one file outcome to a run and returns the row ID.
func (s *Store) RecordFile(ctx context.Context, rec FileRecord) (int64, error) {
	if rec.RunID == "" {
		return 0, fmt.Errorf("record file %s: run id is required", rec.SourcePath)
	}
	if rec.RecordedAt.IsZero() {
		rec.RecordedAt = time.Now()
	}
	meta := rec.Metadata
	res, err := s.execWithRetry(ctx,
		`INSERT INTO files (
            run_id, source_path, canonical_name, cell_id, test_name, variable,
            test_spec, operating_condition, date, organized_path, txt_path,
            checksum, outcome, error_message, recorded_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID,
		rec.SourcePath,
		rec.CanonicalName,
		meta.CellID,
		string(meta.TestName),
		string(meta.Variable),
		meta.TestSpec,
		string(meta.OperatingCondition),
		meta.Date,
		nullableString(rec.OrganizedPath),
		nullableString(rec.TxtPath),
		nullableString(rec.Checksum),
		string(rec.Outcome),
		nullableString(rec.ErrorMessage),
		formatTime(rec.RecordedAt),
	)
	if err != nil {
		return 0, fmt.Errorf("insert file record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// RunFiles returns the file rows of one run in insertion order.
func (s *Store) RunFiles(ctx context.Context, runID string) ([]FileRecord, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx),
		`SELECT `+fileColumns+` FROM files WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("list run files: %w", err)
	}
	defer rows.Close()

	var records []FileRecord
	for rows.Next() {
		rec, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// LatestForSource returns the most recent record for a source path, or
// false when the path has never been processed.
func (s *Store) LatestForSource(ctx context.Context, sourcePath string) (FileRecord, bool, error) {
	row := s.db.QueryRowContext(ensureContext(ctx),
		`SELECT `+fileColumns+` FROM files WHERE source_path = ? ORDER BY id DESC LIMIT 1`, sourcePath)
	rec, err := scanFile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return FileRecord{}, false, nil
	}
	if err != nil {
		return FileRecord{}, false, err
	}
	return rec, true, nil
}

func scanFile(scanner interface{ Scan(dest ...any) error }) (FileRecord, error) {
	var (
		rec           FileRecord
		testName      string
		variable      string
		condition     string
		outcome       string
		organizedPath sql.NullString
		txtPath       sql.NullString
		checksum      sql.NullString
		errorMessage  sql.NullString
		recordedRaw   string
	)
	if err := scanner.Scan(
		&rec.ID,
		&rec.RunID,
		&rec.SourcePath,
		&rec.CanonicalName,
		&rec.Metadata.CellID,
		&testName,
		&variable,
		&rec.Metadata.TestSpec,
		&condition,
		&rec.Metadata.Date,
		&organizedPath,
		&txtPath,
		&checksum,
		&outcome,
		&errorMessage,
		&recordedRaw,
	); err != nil {
		return FileRecord{}, err
	}
	rec.Metadata.TestName = classify.TestName(testName)
	rec.Metadata.Variable = classify.Variable(variable)
	rec.Metadata.OperatingCondition = classify.OperatingCondition(condition)
	rec.Outcome = Outcome(outcome)
	rec.OrganizedPath = organizedPath.String
	rec.TxtPath = txtPath.String
	rec.Checksum = checksum.String
	rec.ErrorMessage = errorMessage.String
	if recorded, err := parseTimeString(recordedRaw); err == nil {
		rec.RecordedAt = recorded
	}
	return rec, nil
}
