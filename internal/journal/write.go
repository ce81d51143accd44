package journal

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hostersuite/wfclient/internal/runlog"
)

// NewRunID returns a time-ordered unique run identifier.
// UUIDv7 keeps journal listings in chronological order by ID.
func NewRunID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// BeginRun registers a run and returns its ID.
func (j *Journal) BeginRun(ctx context.Context, username, server string) (string, error) {
	runID := NewRunID()
	err := j.execContext(ctx, `
		INSERT INTO runs (id, username, server, started_at)
		VALUES (?, ?, ?, ?)
	`, runID, username, server, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", err
	}
	return runID, nil
}

// AppendRecord persists one call record under a run.
// Duplicate (run, seq) writes are ignored, so re-journaling a snapshot is
// idempotent.
func (j *Journal) AppendRecord(ctx context.Context, runID string, seq int, rec runlog.Record) error {
	return j.execContext(ctx, `
		INSERT INTO records (run_id, seq, timestamp, operation, status, message)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, seq) DO NOTHING
	`,
		runID,
		seq,
		rec.Timestamp.UTC().Format(time.RFC3339Nano),
		rec.Operation,
		string(rec.Status),
		rec.Message,
	)
}

// AppendSnapshot persists an entire run-log snapshot under a run.
func (j *Journal) AppendSnapshot(ctx context.Context, runID string, records []runlog.Record) error {
	for i, rec := range records {
		if err := j.AppendRecord(ctx, runID, i, rec); err != nil {
			return err
		}
	}
	return nil
}
