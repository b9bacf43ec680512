package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/quizstage/quizstage-backend/internal/common"
	"github.com/quizstage/quizstage-backend/internal/domain"
	"gorm.io/gorm"
)

// StagingQuestionRepository staging question data access interface
type StagingQuestionRepository interface {
	CreateAll(questions []*domain.StagingQuestion) error
	FindByID(id uint64) (*domain.StagingQuestion, error)
	FindByRun(runID string) ([]*domain.StagingQuestion, error)
	FindApprovedByRun(runID string) ([]*domain.StagingQuestion, error)
	SetApproval(id uint64, approval domain.Approval, at time.Time) error
	ReplaceTags(question *domain.StagingQuestion, tags []domain.Tag) error
	WithTx(tx *gorm.DB) StagingQuestionRepository
}

type stagingQuestionRepository struct {
	db *gorm.DB
}

// NewStagingQuestionRepository creates a new StagingQuestionRepository
func NewStagingQuestionRepository(db *gorm.DB) StagingQuestionRepository {
	return &stagingQuestionRepository{db: db}
}

// WithTx returns a StagingQuestionRepository bound to the given transaction
func (r *stagingQuestionRepository) WithTx(tx *gorm.DB) StagingQuestionRepository {
	return &stagingQuestionRepository{db: tx}
}

// CreateAll inserts generated questions in one batch
func (r *stagingQuestionRepository) CreateAll(questions []*domain.StagingQuestion) error {
	if len(questions) == 0 {
		return nil
	}
	return r.db.Create(questions).Error
}

// FindByID returns one staging question with its tags
func (r *stagingQuestionRepository) FindByID(id uint64) (*domain.StagingQuestion, error) {
	var question domain.StagingQuestion
	err := r.db.Preload("Tags").Where("id = ?", id).First(&question).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("staging question %d: %w", id, common.ErrQuestionNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// FindByRun returns all staging questions for a run with tags
func (r *stagingQuestionRepository) FindByRun(runID string) ([]*domain.StagingQuestion, error) {
	var questions []*domain.StagingQuestion
	err := r.db.Preload("Tags").Where("run_id = ?", runID).Order("id").Find(&questions).Error
	return questions, err
}

// FindApprovedByRun returns the run's approved staging questions with tags
func (r *stagingQuestionRepository) FindApprovedByRun(runID string) ([]*domain.StagingQuestion, error) {
	var questions []*domain.StagingQuestion
	err := r.db.Preload("Tags").
		Where("run_id = ? AND approval = ?", runID, domain.ApprovalApproved).
		Order("id").Find(&questions).Error
	return questions, err
}

// SetApproval updates the approval state of one question
func (r *stagingQuestionRepository) SetApproval(id uint64, approval domain.Approval, at time.Time) error {
	result := r.db.Model(&domain.StagingQuestion{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"approval":   approval,
			"updated_at": at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("staging question %d: %w", id, common.ErrQuestionNotFound)
	}
	return nil
}

// ReplaceTags overwrites the question's tag set
func (r *stagingQuestionRepository) ReplaceTags(question *domain.StagingQuestion, tags []domain.Tag) error {
	return r.db.Model(question).Association("Tags").Replace(tags)
}
