package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/quizstage/quizstage-backend/internal/migration"
	"github.com/quizstage/quizstage-backend/internal/repository"
)

// MockGenerationService is a mock implementation of GenerationService
type MockGenerationService struct {
	mock.Mock
}

func (m *MockGenerationService) GenerateQuestions(ctx context.Context, summary string, count int) ([]string, error) {
	args := m.Called(ctx, summary, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockGenerationService) GenerateAnswer(ctx context.Context, question, summary string) (string, error) {
	args := m.Called(ctx, question, summary)
	return args.String(0), args.Error(1)
}

type testEnv struct {
	db            *gorm.DB
	gen           *MockGenerationService
	runRepo       repository.RunRepository
	questionRepo  repository.StagingQuestionRepository
	answerRepo    repository.StagingAnswerRepository
	tagRepo       repository.TagRepository
	publishedRepo repository.PublishedRepository
	runs          RunService
	staging       StagingService
	sync          SyncService
	published     PublishedService
}

// newTestEnv wires the full service stack over a fresh in-memory store
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// One connection so every query sees the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, migration.Run(db))

	env := &testEnv{
		db:            db,
		gen:           &MockGenerationService{},
		runRepo:       repository.NewRunRepository(db),
		questionRepo:  repository.NewStagingQuestionRepository(db),
		answerRepo:    repository.NewStagingAnswerRepository(db),
		tagRepo:       repository.NewTagRepository(db),
		publishedRepo: repository.NewPublishedRepository(db),
	}
	env.runs = NewRunService(env.runRepo)
	env.staging = NewStagingService(db, env.runRepo, env.questionRepo, env.answerRepo, env.tagRepo, env.gen)
	env.sync = NewSyncService(db, env.runRepo, env.questionRepo, env.answerRepo, env.publishedRepo, nil)
	env.published = NewPublishedService(env.publishedRepo, nil)
	return env
}
