package plan

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostersuite/wfclient/internal/runlog"
	"github.com/hostersuite/wfclient/internal/schema"
	"github.com/hostersuite/wfclient/internal/session"
	"github.com/hostersuite/wfclient/internal/testutil"
)

var catalog = schema.MustLoad()

const sitePlan = `
name: new-site
description: domain, mailbox and addresses for one site
steps:
  - op: create_domain
    args:
      domain: example.com
      subdomain: [www, mail]
  - op: create_mailbox
    args:
      mailbox: box1
  - op: create_email
    args:
      email_address: info@example.com
      targets: [box1]
`

func writePlan(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newSession(t *testing.T, fake *testutil.FakeCaller) *session.Session {
	t.Helper()
	log := runlog.NewWithClock(testutil.TickingClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)))
	s := session.New(fake, catalog, log)
	require.NoError(t, s.Login(context.Background(), "alice", "secret"))
	return s
}

func TestLoadParsesSteps(t *testing.T) {
	p, err := Load(writePlan(t, sitePlan))
	require.NoError(t, err)

	assert.Equal(t, "new-site", p.Name)
	require.Len(t, p.Steps, 3)
	assert.Equal(t, "create_domain", p.Steps[0].Op)
	assert.Equal(t, "example.com", p.Steps[0].Args["domain"])
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	_, err := Load(writePlan(t, `
name: typo
steps:
  - op: create_mailbox
    arg:
      mailbox: box1
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse plan")
}

func TestLoadRejectsEmptyPlan(t *testing.T) {
	_, err := Parse([]byte("name: empty\nsteps: []\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "steps list is required")
}

func TestValidateRejectsBadStepBeforeRun(t *testing.T) {
	p, err := Parse([]byte(`
name: bad
steps:
  - op: create_mailbox
    args:
      mailbx: box1
`))
	require.NoError(t, err)

	fake := testutil.NewFakeCaller()
	s := newSession(t, fake)

	err = p.Run(context.Background(), s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "steps[0]")

	// Pre-validation failed, so nothing beyond login reached the provider.
	assert.Equal(t, 1, len(fake.Calls()))
	assert.Empty(t, s.Snapshot())
}

func TestRunRecordsEveryStep(t *testing.T) {
	p, err := Parse([]byte(sitePlan))
	require.NoError(t, err)

	fake := testutil.NewFakeCaller()
	s := newSession(t, fake)

	require.NoError(t, p.Run(context.Background(), s))

	snap := s.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, "create_domain", snap[0].Operation)
	assert.Equal(t, "create_mailbox", snap[1].Operation)
	assert.Equal(t, "create_email", snap[2].Operation)
	for _, rec := range snap {
		assert.Equal(t, runlog.StatusSuccess, rec.Status)
	}
}

func TestRunContinuesPastGuardSkip(t *testing.T) {
	p, err := Parse([]byte(sitePlan))
	require.NoError(t, err)

	fake := testutil.NewFakeCaller()
	fake.AddInventory("list_mailboxes", map[string]any{"mailbox": "box1"})
	s := newSession(t, fake)

	require.NoError(t, p.Run(context.Background(), s))

	snap := s.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, runlog.StatusFailure, snap[1].Status)
	assert.Equal(t, "entity already exists: 'box1'", snap[1].Message)
	assert.Equal(t, runlog.StatusSuccess, snap[2].Status)

	// The skipped create never reached the provider.
	assert.Equal(t, 0, fake.CallCount("create_mailbox"))
}

func TestRunSkipsRepeatedCreate(t *testing.T) {
	p, err := Parse([]byte(`
name: twice
steps:
  - op: create_mailbox
    args: {mailbox: box1}
  - op: create_mailbox
    args: {mailbox: box1}
`))
	require.NoError(t, err)

	fake := testutil.NewFakeCaller()
	s := newSession(t, fake)

	require.NoError(t, p.Run(context.Background(), s))

	// The first create lands; the second is suppressed client-side even
	// though the inventory was only fetched before the first.
	assert.Equal(t, 1, fake.CallCount("create_mailbox"))
	assert.Equal(t, 1, fake.CallCount("list_mailboxes"))

	snap := s.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, runlog.StatusSuccess, snap[0].Status)
	assert.Equal(t, runlog.StatusFailure, snap[1].Status)
	assert.Equal(t, "entity already exists: 'box1'", snap[1].Message)
}

func TestRunCreateThenDelete(t *testing.T) {
	p, err := Parse([]byte(`
name: churn
steps:
  - op: create_mailbox
    args: {mailbox: box1}
  - op: delete_mailbox
    args: {mailbox: box1}
`))
	require.NoError(t, err)

	fake := testutil.NewFakeCaller()
	s := newSession(t, fake)

	require.NoError(t, p.Run(context.Background(), s))

	// The delete sees the mailbox the plan just created.
	assert.Equal(t, 1, fake.CallCount("create_mailbox"))
	assert.Equal(t, 1, fake.CallCount("delete_mailbox"))

	snap := s.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, runlog.StatusSuccess, snap[0].Status)
	assert.Equal(t, runlog.StatusSuccess, snap[1].Status)
}

func TestRunSharesGuardSnapshots(t *testing.T) {
	p, err := Parse([]byte(`
name: many-boxes
steps:
  - op: create_mailbox
    args: {mailbox: box1}
  - op: create_mailbox
    args: {mailbox: box2}
  - op: create_mailbox
    args: {mailbox: box3}
`))
	require.NoError(t, err)

	fake := testutil.NewFakeCaller()
	s := newSession(t, fake)

	require.NoError(t, p.Run(context.Background(), s))
	assert.Equal(t, 1, fake.CallCount("list_mailboxes"))
	assert.Equal(t, 3, fake.CallCount("create_mailbox"))
}
