package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostersuite/wfclient/internal/runlog"
)

func openTemp(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func sampleRecords() []runlog.Record {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return []runlog.Record{
		{Timestamp: base.Add(time.Second), Operation: "create_mailbox", Status: runlog.StatusSuccess, Message: "created"},
		{Timestamp: base.Add(2 * time.Second), Operation: "create_mailbox", Status: runlog.StatusFailure, Message: "entity already exists: 'box1'"},
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	j1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, j1.Close())

	j2, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, j2.Close())
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	j := openTemp(t)

	runID, err := j.BeginRun(ctx, "alice", "Web100")
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	recs := sampleRecords()
	require.NoError(t, j.AppendSnapshot(ctx, runID, recs))

	got, err := j.RunRecords(ctx, runID)
	require.NoError(t, err)
	require.Len(t, got, len(recs))
	for i := range recs {
		assert.Equal(t, recs[i].Operation, got[i].Operation)
		assert.Equal(t, recs[i].Status, got[i].Status)
		assert.Equal(t, recs[i].Message, got[i].Message)
		assert.True(t, recs[i].Timestamp.Equal(got[i].Timestamp))
	}
}

func TestAppendSnapshotIdempotent(t *testing.T) {
	ctx := context.Background()
	j := openTemp(t)

	runID, err := j.BeginRun(ctx, "alice", "Web100")
	require.NoError(t, err)

	recs := sampleRecords()
	require.NoError(t, j.AppendSnapshot(ctx, runID, recs))
	require.NoError(t, j.AppendSnapshot(ctx, runID, recs))

	got, err := j.RunRecords(ctx, runID)
	require.NoError(t, err)
	assert.Len(t, got, len(recs))
}

func TestListRuns(t *testing.T) {
	ctx := context.Background()
	j := openTemp(t)

	run1, err := j.BeginRun(ctx, "alice", "Web100")
	require.NoError(t, err)
	run2, err := j.BeginRun(ctx, "bob", "Web200")
	require.NoError(t, err)
	require.NoError(t, j.AppendSnapshot(ctx, run1, sampleRecords()))

	runs, err := j.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// UUIDv7 IDs keep listing in creation order.
	assert.Equal(t, run1, runs[0].ID)
	assert.Equal(t, run2, runs[1].ID)
	assert.Equal(t, "alice", runs[0].Username)
	assert.Equal(t, 2, runs[0].Records)
	assert.Equal(t, 0, runs[1].Records)
}

func TestRunIDsAreTimeOrdered(t *testing.T) {
	a := NewRunID()
	b := NewRunID()
	assert.NotEqual(t, a, b)
	assert.Less(t, a, b)
}
