package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostersuite/wfclient/internal/journal"
	"github.com/hostersuite/wfclient/internal/runlog"
)

func seedJournal(t *testing.T) (string, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "runs.db")
	j, err := journal.Open(path)
	require.NoError(t, err)
	defer j.Close()

	ctx := context.Background()
	runID, err := j.BeginRun(ctx, "alice", "Web100")
	require.NoError(t, err)
	require.NoError(t, j.AppendSnapshot(ctx, runID, []runlog.Record{
		{
			Timestamp: time.Date(2024, 3, 1, 12, 0, 1, 0, time.UTC),
			Operation: "create_mailbox",
			Status:    runlog.StatusSuccess,
			Message:   "OK",
		},
		{
			Timestamp: time.Date(2024, 3, 1, 12, 0, 2, 0, time.UTC),
			Operation: "create_mailbox",
			Status:    runlog.StatusFailure,
			Message:   "entity already exists: 'box1'",
		},
	}))
	return path, runID
}

func TestJournalListShowsRuns(t *testing.T) {
	path, runID := seedJournal(t)

	buf := &bytes.Buffer{}
	cmd := NewJournalCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"list", "--journal", path})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.Contains(t, output, runID)
	assert.Contains(t, output, "alice@Web100")
	assert.Contains(t, output, "2 records")
}

func TestJournalListEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	j, err := journal.Open(path)
	require.NoError(t, err)
	require.NoError(t, j.Close())

	buf := &bytes.Buffer{}
	cmd := NewJournalCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"list", "--journal", path})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "no runs")
}

func TestJournalRenderToStdout(t *testing.T) {
	path, runID := seedJournal(t)

	buf := &bytes.Buffer{}
	cmd := NewJournalCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"render", runID, "--journal", path})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.Contains(t, output, "<table id=\"results\">")
	assert.Contains(t, output, "create_mailbox")
	assert.Contains(t, output, "entity already exists: &#39;box1&#39;")
}

func TestJournalRenderUnknownRun(t *testing.T) {
	path, _ := seedJournal(t)

	cmd := NewJournalCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"render", "no-such-run", "--journal", path})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestJournalRequiresDatabaseFlag(t *testing.T) {
	cmd := NewJournalCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"list"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "journal")
}
