package service

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/quizstage/quizstage-backend/internal/common"
	"github.com/quizstage/quizstage-backend/internal/domain"
	"github.com/quizstage/quizstage-backend/internal/repository"
	"github.com/quizstage/quizstage-backend/pkg/logger"
)

// StagingService reviewer-facing mutations of the staging area. Every
// mutation bumps the owning run's last_staging_change_at so consumers
// can tell the published view may be stale.
type StagingService interface {
	GenerateQuestions(ctx context.Context, runID string, count int) ([]*domain.StagingQuestion, error)
	ListQuestions(runID string) ([]*domain.StagingQuestion, error)
	SetQuestionApproval(id uint64, approved bool) (*domain.StagingQuestion, error)
	GenerateAnswers(ctx context.Context, runID string) ([]*domain.StagingAnswer, error)
	ListAnswers(runID string) ([]*domain.StagingAnswer, error)
	SetAnswerApproval(id uint64, approved bool) (*domain.StagingAnswer, error)
	ListTags() ([]*domain.Tag, error)
	GetQuestionTags(questionID uint64) ([]domain.Tag, error)
	SetQuestionTags(questionID uint64, names []string) ([]domain.Tag, error)
}

type stagingService struct {
	db           *gorm.DB
	runRepo      repository.RunRepository
	questionRepo repository.StagingQuestionRepository
	answerRepo   repository.StagingAnswerRepository
	tagRepo      repository.TagRepository
	generation   GenerationService
}

// NewStagingService creates a new StagingService
func NewStagingService(
	db *gorm.DB,
	runRepo repository.RunRepository,
	questionRepo repository.StagingQuestionRepository,
	answerRepo repository.StagingAnswerRepository,
	tagRepo repository.TagRepository,
	generation GenerationService,
) StagingService {
	return &stagingService{
		db:           db,
		runRepo:      runRepo,
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		tagRepo:      tagRepo,
		generation:   generation,
	}
}

// GenerateQuestions asks the collaborator for questions about the
// run's summary and appends them to staging in unset state. A
// collaborator failure leaves staging untouched.
func (s *stagingService) GenerateQuestions(ctx context.Context, runID string, count int) ([]*domain.StagingQuestion, error) {
	run, err := s.runRepo.FindByID(runID)
	if err != nil {
		return nil, err
	}

	texts, err := s.generation.GenerateQuestions(ctx, run.Summary, count)
	if err != nil {
		return nil, err
	}

	questions := make([]*domain.StagingQuestion, 0, len(texts))
	for _, text := range texts {
		questions = append(questions, &domain.StagingQuestion{
			RunID:        runID,
			QuestionText: text,
			Approval:     domain.ApprovalUnset,
		})
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.questionRepo.WithTx(tx).CreateAll(questions); err != nil {
			return err
		}
		return s.runRepo.WithTx(tx).TouchStagingChange(runID, time.Now().UTC())
	})
	if err != nil {
		return nil, err
	}

	logger.WithRunID(runID).Info().Int("count", len(questions)).Msg("staging questions generated")
	return questions, nil
}

// ListQuestions returns the run's staging questions
func (s *stagingService) ListQuestions(runID string) ([]*domain.StagingQuestion, error) {
	if _, err := s.runRepo.FindByID(runID); err != nil {
		return nil, err
	}
	return s.questionRepo.FindByRun(runID)
}

// SetQuestionApproval records the reviewer's decision on a question.
// Rejection deletes every staging answer of the question; the answers
// are not recoverable by re-approving.
func (s *stagingService) SetQuestionApproval(id uint64, approved bool) (*domain.StagingQuestion, error) {
	question, err := s.questionRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	approval := domain.ApprovalFromBool(approved)
	now := time.Now().UTC()

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.questionRepo.WithTx(tx).SetApproval(id, approval, now); err != nil {
			return err
		}
		if approval.Rejected() {
			if err := s.answerRepo.WithTx(tx).DeleteByQuestion(id); err != nil {
				return err
			}
		}
		return s.runRepo.WithTx(tx).TouchStagingChange(question.RunID, now)
	})
	if err != nil {
		return nil, err
	}

	return s.questionRepo.FindByID(id)
}

// GenerateAnswers produces one answer per approved question that does
// not already have a pending or approved answer. Rejected answers are
// deleted and replaced; questions with a non-rejected answer are
// skipped so no duplicates accumulate. Collaborator failure aborts
// with no staging writes.
func (s *stagingService) GenerateAnswers(ctx context.Context, runID string) ([]*domain.StagingAnswer, error) {
	run, err := s.runRepo.FindByID(runID)
	if err != nil {
		return nil, err
	}

	approved, err := s.questionRepo.FindApprovedByRun(runID)
	if err != nil {
		return nil, err
	}
	if len(approved) == 0 {
		return nil, common.ErrNoApprovedQuestions
	}

	var (
		answers        []*domain.StagingAnswer
		staleQuestions []uint64
	)
	for _, question := range approved {
		existing, err := s.answerRepo.FindByQuestion(question.ID)
		if err != nil {
			return nil, err
		}

		hasNonRejected := false
		for _, answer := range existing {
			if !answer.Approval.Rejected() {
				hasNonRejected = true
				break
			}
		}
		if hasNonRejected {
			continue
		}

		text, err := s.generation.GenerateAnswer(ctx, question.QuestionText, run.Summary)
		if err != nil {
			return nil, err
		}

		if len(existing) > 0 {
			staleQuestions = append(staleQuestions, question.ID)
		}
		answers = append(answers, &domain.StagingAnswer{
			RunID:      runID,
			QuestionID: question.ID,
			AnswerText: text,
			Approval:   domain.ApprovalUnset,
		})
	}

	if len(answers) == 0 && len(staleQuestions) == 0 {
		return answers, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		txAnswers := s.answerRepo.WithTx(tx)
		for _, questionID := range staleQuestions {
			if err := txAnswers.DeleteByQuestion(questionID); err != nil {
				return err
			}
		}
		if err := txAnswers.CreateAll(answers); err != nil {
			return err
		}
		return s.runRepo.WithTx(tx).TouchStagingChange(runID, time.Now().UTC())
	})
	if err != nil {
		return nil, err
	}

	logger.WithRunID(runID).Info().Int("count", len(answers)).Msg("staging answers generated")
	return answers, nil
}

// ListAnswers returns the run's staging answers
func (s *stagingService) ListAnswers(runID string) ([]*domain.StagingAnswer, error) {
	if _, err := s.runRepo.FindByID(runID); err != nil {
		return nil, err
	}
	return s.answerRepo.FindByRun(runID)
}

// SetAnswerApproval records the reviewer's decision on an answer
func (s *stagingService) SetAnswerApproval(id uint64, approved bool) (*domain.StagingAnswer, error) {
	answer, err := s.answerRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	approval := domain.ApprovalFromBool(approved)
	now := time.Now().UTC()

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.answerRepo.WithTx(tx).SetApproval(id, approval, now); err != nil {
			return err
		}
		return s.runRepo.WithTx(tx).TouchStagingChange(answer.RunID, now)
	})
	if err != nil {
		return nil, err
	}

	return s.answerRepo.FindByID(id)
}

// ListTags returns all known tags ordered by name
func (s *stagingService) ListTags() ([]*domain.Tag, error) {
	return s.tagRepo.FindAll()
}

// GetQuestionTags returns the tag set of one staging question
func (s *stagingService) GetQuestionTags(questionID uint64) ([]domain.Tag, error) {
	question, err := s.questionRepo.FindByID(questionID)
	if err != nil {
		return nil, err
	}
	return question.Tags, nil
}

// SetQuestionTags replaces the question's tag set with the named tags.
// Unknown names are created, empty names silently skipped.
func (s *stagingService) SetQuestionTags(questionID uint64, names []string) ([]domain.Tag, error) {
	question, err := s.questionRepo.FindByID(questionID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var tags []domain.Tag

	err = s.db.Transaction(func(tx *gorm.DB) error {
		txTags := s.tagRepo.WithTx(tx)
		for _, name := range names {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			tag, err := txTags.FindOrCreateByName(name)
			if err != nil {
				return err
			}
			tags = append(tags, *tag)
		}

		if err := s.questionRepo.WithTx(tx).ReplaceTags(question, tags); err != nil {
			return err
		}
		return s.runRepo.WithTx(tx).TouchStagingChange(question.RunID, now)
	})
	if err != nil {
		return nil, err
	}

	return tags, nil
}
