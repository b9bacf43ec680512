package domain

import "time"

// StagingQuestion is a generated question awaiting review. Reviewers
// mutate approval and tags freely; the published tables are never
// touched directly.
type StagingQuestion struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	RunID        string    `gorm:"column:run_id;type:varchar(36);index;not null" json:"run_id"`
	QuestionText string    `gorm:"column:question_text;type:text;not null" json:"question_text"`
	Approval     Approval  `gorm:"column:approval;type:varchar(10);not null;default:'unset'" json:"approval"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	Tags         []Tag     `gorm:"many2many:staging_question_tags" json:"tags,omitempty"`
}

func (StagingQuestion) TableName() string { return "staging_questions" }

// StagingAnswer is a generated answer for one staging question.
// Rejecting the question deletes its answers; there is at most one
// non-rejected answer per question at any time.
type StagingAnswer struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	RunID      string    `gorm:"column:run_id;type:varchar(36);index;not null" json:"run_id"`
	QuestionID uint64    `gorm:"column:question_id;index;not null" json:"question_id"`
	AnswerText string    `gorm:"column:answer_text;type:text;not null" json:"answer_text"`
	Approval   Approval  `gorm:"column:approval;type:varchar(10);not null;default:'unset'" json:"approval"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (StagingAnswer) TableName() string { return "staging_answers" }
