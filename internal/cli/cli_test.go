package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/bidtrack/internal/config"
	"github.com/julianstephens/bidtrack/internal/email"
	"github.com/julianstephens/bidtrack/internal/models"
	"github.com/julianstephens/bidtrack/internal/utils"
)

var testNow = time.Date(2026, 1, 19, 12, 0, 0, 0, time.UTC)

func setupTestContext(t *testing.T, scenarioPath string) (*Context, *bytes.Buffer) {
	t.Helper()
	ctx := NewContext(config.Default(), utils.FixedClock{At: testNow}, scenarioPath)
	var out bytes.Buffer
	ctx.Out = &out
	return ctx, &out
}

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bids.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestReportCmd(t *testing.T) {
	ctx, out := setupTestContext(t, "")
	require.NoError(t, (&ReportCmd{}).Run(ctx))

	assert.Contains(t, out.String(), "DAILY ACTION REPORT – January 19, 2026")
	assert.Contains(t, out.String(), "Bid #737 (Office Building Reno): Approve custom railing exclusion [by 02:00 PM]")
	assert.Contains(t, out.String(), "Bid #738 (Warehouse Expansion): Due: No deadline")
	assert.NotContains(t, out.String(), "#736")
}

func TestReportCmd_PDF(t *testing.T) {
	ctx, out := setupTestContext(t, "")
	path := filepath.Join(t.TempDir(), "report.pdf")

	require.NoError(t, (&ReportCmd{PDF: path}).Run(ctx))
	assert.Contains(t, out.String(), "PDF report written to "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestShowAndAuditCmd(t *testing.T) {
	ctx, out := setupTestContext(t, "")

	require.NoError(t, (&ShowCmd{ID: "736"}).Run(ctx))
	assert.Contains(t, out.String(), "BID #736: Example Retail Shell")
	assert.Contains(t, out.String(), "CLOSED: closed_lost")

	out.Reset()
	require.NoError(t, (&AuditCmd{ID: "736"}).Run(ctx))
	assert.Contains(t, out.String(), "Audit trail for bid #736 (7 entries)")

	err := (&ShowCmd{ID: "999"}).Run(ctx)
	assert.ErrorIs(t, err, ErrBidNotFound)
	err = (&AuditCmd{ID: "999"}).Run(ctx)
	assert.ErrorIs(t, err, ErrBidNotFound)
}

func TestEmailCmd(t *testing.T) {
	ctx, out := setupTestContext(t, "")

	require.NoError(t, (&EmailCmd{ID: "737", Kind: "awaiting_input"}).Run(ctx))
	assert.Contains(t, out.String(), "To: sean@example.com\n")
	assert.Contains(t, out.String(), "Subject: Bid #737 NOT Submitted – Awaiting Your Input – Office Building Reno\n")

	out.Reset()
	require.NoError(t, (&EmailCmd{ID: "736", Kind: " Status_Check "}).Run(ctx))
	assert.Contains(t, out.String(), "To: jane@examplegc.com\n")
	assert.Contains(t, out.String(), "Subject: Status Check – Example Retail Shell\n")

	err := (&EmailCmd{ID: "736", Kind: "thank_you"}).Run(ctx)
	assert.ErrorIs(t, err, models.ErrUnknownFollowUpKind)

	err = (&EmailCmd{ID: "738", Kind: "submitted"}).Run(ctx)
	assert.ErrorIs(t, err, models.ErrMissingRequiredField)
}

func TestEmailCmd_Picker(t *testing.T) {
	ctx, out := setupTestContext(t, "")
	var offered *models.Bid
	cmd := &EmailCmd{ID: "736", pick: func(bid *models.Bid) (email.Kind, error) {
		offered = bid
		return email.Kind(models.FollowUpValueTouch), nil
	}}

	require.NoError(t, cmd.Run(ctx))
	require.NotNil(t, offered)
	assert.Equal(t, "736", offered.ID)
	assert.Contains(t, out.String(), "Subject: Quick Turnaround Available – Example Retail Shell")
}

func TestSuggestedKind(t *testing.T) {
	ctx, _ := setupTestContext(t, "")
	bids, err := ctx.Bids()
	require.NoError(t, err)

	assert.Equal(t, email.Kind(models.FollowUpStatusCheck), suggestedKind(bids[0]))
	assert.Equal(t, email.KindAwaitingInput, suggestedKind(bids[1]))
	assert.Equal(t, email.KindSubmitted, suggestedKind(bids[2]))
	assert.Equal(t, "GC: value touch (day 14)", kindLabel(email.Kind(models.FollowUpValueTouch)))
}

func TestDemoCmd(t *testing.T) {
	ctx, out := setupTestContext(t, "")
	require.NoError(t, (&DemoCmd{}).Run(ctx))

	s := out.String()
	for _, want := range []string{
		"EXAMPLE 1: Bid blocked awaiting input",
		"Decision needed: Choose lane: Low / Mid / High (recommend Mid)",
		"EXAMPLE 2: Bid submitted, follow-ups active",
		"Follow-up sequence is active (Day 2/7/14/28).",
		"EXAMPLE 3: Send first follow-up",
		"Subject: Bid Confirmation – Example Retail Shell – Example GC",
		"EXAMPLE 4: Record GC response",
		"Last GC Response: reviewing",
		"EXAMPLE 5: Close as LOST",
		"Lost to: Competitor Steel Co",
		"EXAMPLE 6: Daily action report",
		"AWAITING INPUT (1):",
		"READY TO SUBMIT (1):",
	} {
		assert.Contains(t, s, want)
	}
}

func TestValidateCmd(t *testing.T) {
	good := writeScenario(t, `
bids:
  - id: "1"
    project: Shell
    gc: GC
    estimator: {name: N, email: n@gc.test}
    events:
      - {type: submit, at: 2026-01-16T10:05:00Z, proof: screenshot}
`)
	ctx, out := setupTestContext(t, good)
	require.NoError(t, (&ValidateCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "Scenario OK: 1 bid(s) replayed cleanly")

	bad := writeScenario(t, `
bids:
  - id: "1"
    project: Shell
    gc: GC
    estimator: {name: N, email: n@gc.test}
    events:
      - {type: send_followup, at: 2026-01-16T10:05:00Z, kind: status_check}
  - id: "2"
    project: Shell
    estimator: {name: N, email: n@gc.test}
`)
	ctx, out = setupTestContext(t, bad)
	err := (&ValidateCmd{}).Run(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 problem(s)")
	assert.Contains(t, out.String(), "bid 1 event 0 (send_followup)")
	assert.Contains(t, out.String(), "bid 2: missing required field")
}

func TestBids_ScenarioErrors(t *testing.T) {
	ctx, _ := setupTestContext(t, filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := ctx.Bids()
	assert.Error(t, err)

	ctx, _ = setupTestContext(t, writeScenario(t, `
bids:
  - id: "1"
    project: Shell
    gc: GC
    estimator: {name: N, email: n@gc.test}
    events:
      - {type: close, at: 2026-01-16T10:05:00Z, outcome: won, amount: 10}
`))
	_, err = ctx.Bids()
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrNotSubmitted)
	assert.Contains(t, err.Error(), "failed to replay scenario")
}
