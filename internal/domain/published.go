package domain

import "time"

// PublishedQuestion is the reconciled copy of an approved staging
// question. StagingID links it back to its staging source and acts as
// the reconciliation key; rows with a null StagingID were seeded from
// outside the sync engine and are never touched by it.
//
// HasApprovedAnswer does not mean "this question was approved". It
// means the question currently has an approved answer in staging. The
// published view exposes only rows where it is true.
type PublishedQuestion struct {
	ID                uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	RunID             string    `gorm:"column:run_id;type:varchar(36);index;not null" json:"run_id"`
	StagingID         *uint64   `gorm:"column:staging_id;index" json:"staging_id,omitempty"`
	QuestionText      string    `gorm:"column:question_text;type:text;not null" json:"question_text"`
	HasApprovedAnswer bool      `gorm:"column:has_approved_answer;not null;default:false" json:"has_approved_answer"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	Tags              []Tag     `gorm:"many2many:published_question_tags" json:"tags,omitempty"`
}

func (PublishedQuestion) TableName() string { return "published_questions" }

// PublishedAnswer is the reconciled copy of an approved staging answer,
// keyed by (published question, staging answer id).
type PublishedAnswer struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	RunID      string    `gorm:"column:run_id;type:varchar(36);index;not null" json:"run_id"`
	QuestionID uint64    `gorm:"column:question_id;index;not null" json:"question_id"`
	StagingID  *uint64   `gorm:"column:staging_id;index" json:"staging_id,omitempty"`
	AnswerText string    `gorm:"column:answer_text;type:text;not null" json:"answer_text"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (PublishedAnswer) TableName() string { return "published_answers" }

// PublishedQuestionResponse is a published question joined with its
// single answer and full tag set for the read API.
type PublishedQuestionResponse struct {
	ID                uint64           `json:"id"`
	RunID             string           `json:"run_id"`
	StagingID         *uint64          `json:"staging_id,omitempty"`
	QuestionText      string           `json:"question_text"`
	HasApprovedAnswer bool             `json:"has_approved_answer"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
	Tags              []Tag            `json:"tags"`
	Answer            *PublishedAnswer `json:"answer,omitempty"`
}

// SyncResult is returned by one sync pass.
type SyncResult struct {
	LastSyncAt      time.Time `json:"last_sync_at"`
	QuestionsSynced int       `json:"questions_synced"`
}
