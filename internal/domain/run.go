package domain

import "time"

// Run is one workflow session scoped to a single topic summary.
// It owns every staging and published row created during the session.
type Run struct {
	ID                  string     `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	Summary             string     `gorm:"column:summary;type:text;not null" json:"summary"`
	CreatedAt           time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	LastSyncAt          *time.Time `gorm:"column:last_sync_at" json:"last_sync_at,omitempty"`
	LastStagingChangeAt *time.Time `gorm:"column:last_staging_change_at" json:"last_staging_change_at,omitempty"`
}

func (Run) TableName() string { return "runs" }

// Stale reports whether staging changed after the last sync, i.e. the
// published view may no longer reflect reviewer decisions.
func (r *Run) Stale() bool {
	if r.LastStagingChangeAt == nil {
		return false
	}
	if r.LastSyncAt == nil {
		return true
	}
	return r.LastStagingChangeAt.After(*r.LastSyncAt)
}

// RunResponse is a run plus its computed staleness for the API.
type RunResponse struct {
	*Run
	Stale bool `json:"stale"`
}

// NewRunResponse builds the API shape of one run
func NewRunResponse(run *Run) *RunResponse {
	return &RunResponse{Run: run, Stale: run.Stale()}
}
