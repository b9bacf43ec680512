package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunStale(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	later := base.Add(time.Minute)

	// No staging activity yet, nothing to publish.
	assert.False(t, (&Run{}).Stale())

	// Staged but never synced.
	assert.True(t, (&Run{LastStagingChangeAt: &base}).Stale())

	// Synced after the last staging change.
	assert.False(t, (&Run{LastStagingChangeAt: &base, LastSyncAt: &later}).Stale())

	// Staging changed again after the sync.
	assert.True(t, (&Run{LastStagingChangeAt: &later, LastSyncAt: &base}).Stale())
}

func TestNewRunResponse(t *testing.T) {
	now := time.Now().UTC()
	run := &Run{ID: "r1", Summary: "Topic", LastStagingChangeAt: &now}

	resp := NewRunResponse(run)
	assert.True(t, resp.Stale)
	assert.Equal(t, "r1", resp.ID)
}
