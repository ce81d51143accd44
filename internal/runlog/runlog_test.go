package runlog

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tickingClock returns a clock that advances one second per call.
func tickingClock() func() time.Time {
	t := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func TestRecordAppendsInOrder(t *testing.T) {
	l := NewWithClock(tickingClock())

	for i := 0; i < 5; i++ {
		l.Record(fmt.Sprintf("op_%d", i), StatusSuccess, "ok")
	}

	snap := l.Snapshot()
	require.Len(t, snap, 5)
	for i, rec := range snap {
		assert.Equal(t, fmt.Sprintf("op_%d", i), rec.Operation)
		if i > 0 {
			assert.True(t, rec.Timestamp.After(snap[i-1].Timestamp))
		}
	}
}

func TestSnapshotIsReadOnlyView(t *testing.T) {
	l := NewWithClock(tickingClock())
	l.Record("create_mailbox", StatusSuccess, "ok")

	snap := l.Snapshot()
	snap[0].Operation = "mutated"
	snap = append(snap, Record{Operation: "extra"})
	_ = snap

	fresh := l.Snapshot()
	require.Len(t, fresh, 1)
	assert.Equal(t, "create_mailbox", fresh[0].Operation)
}

func TestSnapshotPreservesMixedStatuses(t *testing.T) {
	l := NewWithClock(tickingClock())
	l.Record("create_email", StatusSuccess, "created")
	l.Record("create_email", StatusFailure, "entity already exists: 'user@example.com'")
	l.Record("delete_email", StatusSuccess, "deleted")

	require.Equal(t, 3, l.Len())
	failures := l.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, StatusFailure, failures[0].Status)
	assert.Contains(t, failures[0].Message, "already exists")
}

func TestRecordString(t *testing.T) {
	l := NewWithClock(tickingClock())
	rec := l.Record("system", StatusFailure, "fault 550: denied")
	assert.Equal(t, "2024-03-01T12:00:01Z | system | failure | fault 550: denied", rec.String())
}
