package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/hostersuite/wfclient/internal/runlog"
)

// RunInfo summarizes one persisted run.
type RunInfo struct {
	ID        string
	Username  string
	Server    string
	StartedAt time.Time
	Records   int
}

// ListRuns returns all runs, oldest first.
func (j *Journal) ListRuns(ctx context.Context) ([]RunInfo, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT r.id, r.username, r.server, r.started_at, COUNT(c.run_id)
		FROM runs r
		LEFT JOIN records c ON c.run_id = r.id
		GROUP BY r.id
		ORDER BY r.id
	`)
	if err != nil {
		return nil, fmt.Errorf("journal list runs: %w", err)
	}
	defer rows.Close()

	var out []RunInfo
	for rows.Next() {
		var info RunInfo
		var started string
		if err := rows.Scan(&info.ID, &info.Username, &info.Server, &started, &info.Records); err != nil {
			return nil, fmt.Errorf("journal scan run: %w", err)
		}
		if info.StartedAt, err = time.Parse(time.RFC3339, started); err != nil {
			return nil, fmt.Errorf("journal run %s: bad started_at: %w", info.ID, err)
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

// RunRecords returns the call records of one run in call order.
func (j *Journal) RunRecords(ctx context.Context, runID string) ([]runlog.Record, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT timestamp, operation, status, message
		FROM records
		WHERE run_id = ?
		ORDER BY seq
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("journal read run %s: %w", runID, err)
	}
	defer rows.Close()

	var out []runlog.Record
	for rows.Next() {
		var rec runlog.Record
		var ts, status string
		if err := rows.Scan(&ts, &rec.Operation, &status, &rec.Message); err != nil {
			return nil, fmt.Errorf("journal scan record: %w", err)
		}
		if rec.Timestamp, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, fmt.Errorf("journal record in %s: bad timestamp: %w", runID, err)
		}
		rec.Status = runlog.Status(status)
		out = append(out, rec)
	}
	return out, rows.Err()
}
