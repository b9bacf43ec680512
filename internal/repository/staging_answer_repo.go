package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/quizstage/quizstage-backend/internal/common"
	"github.com/quizstage/quizstage-backend/internal/domain"
	"gorm.io/gorm"
)

// StagingAnswerRepository staging answer data access interface
type StagingAnswerRepository interface {
	CreateAll(answers []*domain.StagingAnswer) error
	FindByID(id uint64) (*domain.StagingAnswer, error)
	FindByRun(runID string) ([]*domain.StagingAnswer, error)
	FindApprovedByRun(runID string) ([]*domain.StagingAnswer, error)
	FindByQuestion(questionID uint64) ([]*domain.StagingAnswer, error)
	DeleteByQuestion(questionID uint64) error
	SetApproval(id uint64, approval domain.Approval, at time.Time) error
	WithTx(tx *gorm.DB) StagingAnswerRepository
}

type stagingAnswerRepository struct {
	db *gorm.DB
}

// NewStagingAnswerRepository creates a new StagingAnswerRepository
func NewStagingAnswerRepository(db *gorm.DB) StagingAnswerRepository {
	return &stagingAnswerRepository{db: db}
}

// WithTx returns a StagingAnswerRepository bound to the given transaction
func (r *stagingAnswerRepository) WithTx(tx *gorm.DB) StagingAnswerRepository {
	return &stagingAnswerRepository{db: tx}
}

// CreateAll inserts generated answers in one batch
func (r *stagingAnswerRepository) CreateAll(answers []*domain.StagingAnswer) error {
	if len(answers) == 0 {
		return nil
	}
	return r.db.Create(answers).Error
}

// FindByID returns one staging answer
func (r *stagingAnswerRepository) FindByID(id uint64) (*domain.StagingAnswer, error) {
	var answer domain.StagingAnswer
	err := r.db.Where("id = ?", id).First(&answer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("staging answer %d: %w", id, common.ErrAnswerNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

// FindByRun returns all staging answers for a run
func (r *stagingAnswerRepository) FindByRun(runID string) ([]*domain.StagingAnswer, error) {
	var answers []*domain.StagingAnswer
	err := r.db.Where("run_id = ?", runID).Order("id").Find(&answers).Error
	return answers, err
}

// FindApprovedByRun returns the run's approved staging answers
func (r *stagingAnswerRepository) FindApprovedByRun(runID string) ([]*domain.StagingAnswer, error) {
	var answers []*domain.StagingAnswer
	err := r.db.Where("run_id = ? AND approval = ?", runID, domain.ApprovalApproved).
		Order("id").Find(&answers).Error
	return answers, err
}

// FindByQuestion returns all staging answers of one staging question
func (r *stagingAnswerRepository) FindByQuestion(questionID uint64) ([]*domain.StagingAnswer, error) {
	var answers []*domain.StagingAnswer
	err := r.db.Where("question_id = ?", questionID).Order("id").Find(&answers).Error
	return answers, err
}

// DeleteByQuestion removes every staging answer of one staging question
func (r *stagingAnswerRepository) DeleteByQuestion(questionID uint64) error {
	return r.db.Where("question_id = ?", questionID).Delete(&domain.StagingAnswer{}).Error
}

// SetApproval updates the approval state of one answer
func (r *stagingAnswerRepository) SetApproval(id uint64, approval domain.Approval, at time.Time) error {
	result := r.db.Model(&domain.StagingAnswer{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"approval":   approval,
			"updated_at": at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("staging answer %d: %w", id, common.ErrAnswerNotFound)
	}
	return nil
}
