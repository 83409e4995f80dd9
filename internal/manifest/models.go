package manifest

import (
	"time"

	"cellsort/internal/classify"
)

// Outcome is the terminal state of one processed file.
type Outcome string

const (
	// OutcomeConverted means the file was copied and a .txt table written.
	OutcomeConverted Outcome = "converted"
	// OutcomeCopied means the file was copied but no table was written
	// (conversion disabled, no data start, or an empty table).
	OutcomeCopied Outcome = "copied"
	// OutcomeSkipped means the destination existed and overwrite is off.
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// Trigger names what started a run.
type Trigger string

const (
	TriggerOrganize Trigger = "organize"
	TriggerWatch    Trigger = "watch"
)

// Counts tallies file outcomes for a run.
type Counts struct {
	Discovered int `json:"discovered"`
	Copied     int `json:"copied"`
	Converted  int `json:"converted"`
	Skipped    int `json:"skipped"`
	Failed     int `json:"failed"`
}

// Add folds one outcome into the tally. Converted files count as copied too.
func (c *Counts) Add(outcome Outcome) {
	switch outcome {
	case OutcomeConverted:
		c.Copied++
		c.Converted++
	case OutcomeCopied:
		c.Copied++
	case OutcomeSkipped:
		c.Skipped++
	case OutcomeFailed:
		c.Failed++
	}
}

// Run is one organizer pass.
type Run struct {
	ID         string     `json:"id"`
	Trigger    Trigger    `json:"trigger"`
	InputDir   string     `json:"input_dir"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Counts     Counts     `json:"counts"`
}

// Finished reports whether FinishRun has been recorded.
func (r Run) Finished() bool {
	return r.FinishedAt != nil
}

// FileRecord is the manifest row for one processed file.
type FileRecord struct {
	ID            int64
	RunID         string
	SourcePath    string
	Metadata      classify.FileMetadata
	CanonicalName string
	OrganizedPath string
	TxtPath       string
	Checksum      string
	Outcome       Outcome
	ErrorMessage  string
	RecordedAt    time.Time
}
