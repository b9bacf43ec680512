package repository

import (
	"errors"

	"github.com/quizstage/quizstage-backend/internal/domain"
	"gorm.io/gorm"
)

// PublishedRepository published question/answer data access interface.
// Only the sync engine writes through it; the read methods back the
// published view.
type PublishedRepository interface {
	FindQuestionsByRun(runID string) ([]*domain.PublishedQuestion, error)
	FindAnswersByRun(runID string) ([]*domain.PublishedAnswer, error)
	CreateQuestion(question *domain.PublishedQuestion) error
	SaveQuestion(question *domain.PublishedQuestion) error
	ReplaceQuestionTags(question *domain.PublishedQuestion, tags []domain.Tag) error
	CreateAnswer(answer *domain.PublishedAnswer) error
	SaveAnswer(answer *domain.PublishedAnswer) error
	DeleteAnswers(ids []uint64) error
	FindApprovedQuestions(runID string) ([]*domain.PublishedQuestion, error)
	FindFirstAnswerForQuestion(questionID uint64) (*domain.PublishedAnswer, error)
	WithTx(tx *gorm.DB) PublishedRepository
}

type publishedRepository struct {
	db *gorm.DB
}

// NewPublishedRepository creates a new PublishedRepository
func NewPublishedRepository(db *gorm.DB) PublishedRepository {
	return &publishedRepository{db: db}
}

// WithTx returns a PublishedRepository bound to the given transaction
func (r *publishedRepository) WithTx(tx *gorm.DB) PublishedRepository {
	return &publishedRepository{db: tx}
}

// FindQuestionsByRun returns all published questions of a run with tags
func (r *publishedRepository) FindQuestionsByRun(runID string) ([]*domain.PublishedQuestion, error) {
	var questions []*domain.PublishedQuestion
	err := r.db.Preload("Tags").Where("run_id = ?", runID).Order("id").Find(&questions).Error
	return questions, err
}

// FindAnswersByRun returns all published answers of a run
func (r *publishedRepository) FindAnswersByRun(runID string) ([]*domain.PublishedAnswer, error) {
	var answers []*domain.PublishedAnswer
	err := r.db.Where("run_id = ?", runID).Order("id").Find(&answers).Error
	return answers, err
}

// CreateQuestion inserts a published question
func (r *publishedRepository) CreateQuestion(question *domain.PublishedQuestion) error {
	return r.db.Create(question).Error
}

// SaveQuestion persists column changes of an existing published question.
// Limited to scalar columns; tag links are managed solely via
// ReplaceQuestionTags.
func (r *publishedRepository) SaveQuestion(question *domain.PublishedQuestion) error {
	return r.db.Model(question).
		Select("question_text", "has_approved_answer", "updated_at").
		Updates(question).Error
}

// ReplaceQuestionTags overwrites the published question's tag set
func (r *publishedRepository) ReplaceQuestionTags(question *domain.PublishedQuestion, tags []domain.Tag) error {
	return r.db.Model(question).Association("Tags").Replace(tags)
}

// CreateAnswer inserts a published answer
func (r *publishedRepository) CreateAnswer(answer *domain.PublishedAnswer) error {
	return r.db.Create(answer).Error
}

// SaveAnswer persists text changes of an existing published answer
func (r *publishedRepository) SaveAnswer(answer *domain.PublishedAnswer) error {
	return r.db.Model(answer).
		Select("answer_text", "updated_at").
		Updates(answer).Error
}

// DeleteAnswers removes published answers by id
func (r *publishedRepository) DeleteAnswers(ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Where("id IN ?", ids).Delete(&domain.PublishedAnswer{}).Error
}

// FindApprovedQuestions returns published questions whose
// has_approved_answer flag is set, newest first, optionally filtered
// by run. An empty runID means all runs.
func (r *publishedRepository) FindApprovedQuestions(runID string) ([]*domain.PublishedQuestion, error) {
	query := r.db.Preload("Tags").Where("has_approved_answer = ?", true)
	if runID != "" {
		query = query.Where("run_id = ?", runID)
	}
	var questions []*domain.PublishedQuestion
	err := query.Order("created_at DESC").Find(&questions).Error
	return questions, err
}

// FindFirstAnswerForQuestion returns the question's answer, first by
// primary key when several exist. Nil without error when there is none.
func (r *publishedRepository) FindFirstAnswerForQuestion(questionID uint64) (*domain.PublishedAnswer, error) {
	var answer domain.PublishedAnswer
	err := r.db.Where("question_id = ?", questionID).Order("id").First(&answer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &answer, nil
}
