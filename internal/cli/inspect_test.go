package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/bidtrack/internal/models"
)

func TestInspectConfigCmd(t *testing.T) {
	ctx, out := setupTestContext(t, "")
	require.NoError(t, (&InspectConfigCmd{}).Run(ctx))

	var got map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, float64(30), got["close_after_days"])
	assert.Equal(t, "2026-01-19T12:00:00Z", got["now"])
	sender, ok := got["sender"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "sean@example.com", sender["PrincipalEmail"])
}

func TestInspectDumpCmd(t *testing.T) {
	ctx, out := setupTestContext(t, "")
	require.NoError(t, (&InspectDumpCmd{ID: "736"}).Run(ctx))

	var bid models.Bid
	require.NoError(t, json.Unmarshal(out.Bytes(), &bid))
	assert.Equal(t, "736", bid.ID)
	assert.Equal(t, models.StatusClosedLost, bid.Status)
	assert.Len(t, bid.FollowUps, 4)
	assert.Len(t, bid.Audit, 7)
	require.NotNil(t, bid.Closure)
	assert.Equal(t, models.OutcomeLost, bid.Closure.Outcome)

	err := (&InspectDumpCmd{ID: "nope"}).Run(ctx)
	assert.ErrorIs(t, err, ErrBidNotFound)
}
