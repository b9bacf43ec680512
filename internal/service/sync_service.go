package service

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/quizstage/quizstage-backend/internal/domain"
	"github.com/quizstage/quizstage-backend/internal/repository"
	"github.com/quizstage/quizstage-backend/pkg/cache"
	"github.com/quizstage/quizstage-backend/pkg/logger"
)

// SyncService reconciles the published tables of one run with the
// current staging state. A pass is atomic: every step commits or the
// run's published state is left untouched, including last_sync_at.
// Running a pass twice without intervening staging changes leaves the
// published state identical and reports zero synced questions.
//
// Published rows with a null staging id were seeded from outside this
// engine and are exempt: they are never updated, demoted or deleted.
type SyncService interface {
	Sync(ctx context.Context, runID string) (*domain.SyncResult, error)
}

type syncService struct {
	db            *gorm.DB
	runRepo       repository.RunRepository
	questionRepo  repository.StagingQuestionRepository
	answerRepo    repository.StagingAnswerRepository
	publishedRepo repository.PublishedRepository
	cache         cache.Service

	// Concurrent passes for the same run would race on find-or-create,
	// so they are serialized here. Different runs proceed in parallel.
	// Entries are refcounted and removed once no pass holds them.
	mu       sync.Mutex
	runLocks map[string]*runLock
}

type runLock struct {
	mu   sync.Mutex
	refs int
}

// NewSyncService creates a new SyncService. cacheService may be nil.
func NewSyncService(
	db *gorm.DB,
	runRepo repository.RunRepository,
	questionRepo repository.StagingQuestionRepository,
	answerRepo repository.StagingAnswerRepository,
	publishedRepo repository.PublishedRepository,
	cacheService cache.Service,
) SyncService {
	return &syncService{
		db:            db,
		runRepo:       runRepo,
		questionRepo:  questionRepo,
		answerRepo:    answerRepo,
		publishedRepo: publishedRepo,
		cache:         cacheService,
		runLocks:      make(map[string]*runLock),
	}
}

func (s *syncService) lockRun(runID string) *runLock {
	s.mu.Lock()
	lock, ok := s.runLocks[runID]
	if !ok {
		lock = &runLock{}
		s.runLocks[runID] = lock
	}
	lock.refs++
	s.mu.Unlock()

	lock.mu.Lock()
	return lock
}

func (s *syncService) unlockRun(runID string, lock *runLock) {
	lock.mu.Unlock()

	s.mu.Lock()
	lock.refs--
	if lock.refs == 0 {
		delete(s.runLocks, runID)
	}
	s.mu.Unlock()
}

// Sync runs one reconciliation pass for the run
func (s *syncService) Sync(ctx context.Context, runID string) (*domain.SyncResult, error) {
	if _, err := s.runRepo.FindByID(runID); err != nil {
		return nil, err
	}

	lock := s.lockRun(runID)
	defer s.unlockRun(runID, lock)

	now := time.Now().UTC()
	synced := 0

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		synced, err = s.reconcile(tx, runID, now)
		if err != nil {
			return err
		}
		return s.runRepo.WithTx(tx).RecordSync(runID, now)
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.InvalidatePublished(ctx, runID); err != nil {
			logger.WithRunID(runID).Warn().Err(err).Msg("published cache invalidation failed")
		}
	}

	logger.WithRunID(runID).Info().Int("questions_synced", synced).Msg("sync pass completed")
	return &domain.SyncResult{LastSyncAt: now, QuestionsSynced: synced}, nil
}

// reconcile performs steps 1-5 of the pass inside tx and returns the
// number of meaningfully changed questions: promotions, demotions and
// tag-set changes. Text-only edits to an existing published question
// and newly created questions without an approved answer do not count.
func (s *syncService) reconcile(tx *gorm.DB, runID string, now time.Time) (int, error) {
	questionRepo := s.questionRepo.WithTx(tx)
	answerRepo := s.answerRepo.WithTx(tx)
	publishedRepo := s.publishedRepo.WithTx(tx)

	// Step 1: classify staging.
	approvedQuestions, err := questionRepo.FindApprovedByRun(runID)
	if err != nil {
		return 0, err
	}
	approvedAnswers, err := answerRepo.FindApprovedByRun(runID)
	if err != nil {
		return 0, err
	}

	approvedQ := make(map[uint64]bool, len(approvedQuestions))
	for _, question := range approvedQuestions {
		approvedQ[question.ID] = true
	}
	approvedA := make(map[uint64]bool, len(approvedAnswers))
	withAnswer := make(map[uint64]bool)
	for _, answer := range approvedAnswers {
		approvedA[answer.ID] = true
		if approvedQ[answer.QuestionID] {
			withAnswer[answer.QuestionID] = true
		}
	}

	// Index the existing published rows by staging id once so the
	// pass stays near-linear in record count.
	existingQuestions, err := publishedRepo.FindQuestionsByRun(runID)
	if err != nil {
		return 0, err
	}
	byStagingID := make(map[uint64]*domain.PublishedQuestion, len(existingQuestions))
	for _, question := range existingQuestions {
		if question.StagingID != nil {
			byStagingID[*question.StagingID] = question
		}
	}

	synced := 0

	// Step 2: upsert published questions for every approved staging
	// question. The tag set is overwritten unconditionally.
	for _, stagingQ := range approvedQuestions {
		newFlag := withAnswer[stagingQ.ID]

		published, exists := byStagingID[stagingQ.ID]
		if exists {
			if published.HasApprovedAnswer != newFlag || !sameTagSet(published.Tags, stagingQ.Tags) {
				synced++
			}
			published.QuestionText = stagingQ.QuestionText
			published.HasApprovedAnswer = newFlag
			published.UpdatedAt = now
			if err := publishedRepo.SaveQuestion(published); err != nil {
				return 0, err
			}
		} else {
			stagingID := stagingQ.ID
			published = &domain.PublishedQuestion{
				RunID:             runID,
				StagingID:         &stagingID,
				QuestionText:      stagingQ.QuestionText,
				HasApprovedAnswer: newFlag,
			}
			if err := publishedRepo.CreateQuestion(published); err != nil {
				return 0, err
			}
			byStagingID[stagingQ.ID] = published
			existingQuestions = append(existingQuestions, published)
			if newFlag {
				synced++
			}
		}

		if err := publishedRepo.ReplaceQuestionTags(published, stagingQ.Tags); err != nil {
			return 0, err
		}
		published.Tags = stagingQ.Tags
	}

	// Step 3: upsert published answers for approved answers of
	// approved questions. Approved answers of unapproved questions
	// are never published.
	existingAnswers, err := publishedRepo.FindAnswersByRun(runID)
	if err != nil {
		return 0, err
	}
	type answerKey struct {
		questionID uint64
		stagingID  uint64
	}
	answersByKey := make(map[answerKey]*domain.PublishedAnswer, len(existingAnswers))
	for _, answer := range existingAnswers {
		if answer.StagingID != nil {
			answersByKey[answerKey{answer.QuestionID, *answer.StagingID}] = answer
		}
	}

	for _, stagingA := range approvedAnswers {
		if !approvedQ[stagingA.QuestionID] {
			continue
		}
		publishedQ, ok := byStagingID[stagingA.QuestionID]
		if !ok {
			continue
		}

		if published, ok := answersByKey[answerKey{publishedQ.ID, stagingA.ID}]; ok {
			published.AnswerText = stagingA.AnswerText
			published.UpdatedAt = now
			if err := publishedRepo.SaveAnswer(published); err != nil {
				return 0, err
			}
		} else {
			stagingID := stagingA.ID
			if err := publishedRepo.CreateAnswer(&domain.PublishedAnswer{
				RunID:      runID,
				QuestionID: publishedQ.ID,
				StagingID:  &stagingID,
				AnswerText: stagingA.AnswerText,
			}); err != nil {
				return 0, err
			}
		}
	}

	// Step 4: demote published questions whose staging source was
	// rejected, reset, or lost its approved answer. Questions handled
	// in step 2 already carry the new flag, so only true demotions
	// are written and counted here.
	questionsByID := make(map[uint64]*domain.PublishedQuestion, len(existingQuestions))
	for _, published := range existingQuestions {
		questionsByID[published.ID] = published

		if published.StagingID == nil {
			continue
		}
		stagingID := *published.StagingID
		if approvedQ[stagingID] && withAnswer[stagingID] {
			continue
		}
		if published.HasApprovedAnswer {
			synced++
			published.HasApprovedAnswer = false
			published.UpdatedAt = now
			if err := publishedRepo.SaveQuestion(published); err != nil {
				return 0, err
			}
		}
	}

	// Step 5: delete published answers whose staging answer is no
	// longer approved, and answers whose owning question was rejected
	// even if step 3 never touched them this pass.
	var staleAnswerIDs []uint64
	for _, published := range existingAnswers {
		if published.StagingID == nil {
			continue
		}
		stale := !approvedA[*published.StagingID]
		if owner, ok := questionsByID[published.QuestionID]; ok && owner.StagingID != nil && !approvedQ[*owner.StagingID] {
			stale = true
		}
		if stale {
			staleAnswerIDs = append(staleAnswerIDs, published.ID)
		}
	}
	if err := publishedRepo.DeleteAnswers(staleAnswerIDs); err != nil {
		return 0, err
	}

	return synced, nil
}

// sameTagSet compares two tag lists as id sets
func sameTagSet(a, b []domain.Tag) bool {
	if len(a) != len(b) {
		return false
	}
	ids := make(map[uint64]bool, len(a))
	for _, tag := range a {
		ids[tag.ID] = true
	}
	for _, tag := range b {
		if !ids[tag.ID] {
			return false
		}
	}
	return true
}
