package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/quizstage/quizstage-backend/internal/common"
	"github.com/quizstage/quizstage-backend/internal/domain"
)

func TestGenerateQuestions_CreatesUnsetQuestions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	run, err := env.runs.CreateRun("Astronomy")
	require.NoError(t, err)

	env.gen.On("GenerateQuestions", mock.Anything, "Astronomy", 2).
		Return([]string{"What is a star?", "What is a planet?"}, nil).Once()

	questions, err := env.staging.GenerateQuestions(ctx, run.ID, 2)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	for _, question := range questions {
		assert.Equal(t, domain.ApprovalUnset, question.Approval)
		assert.Equal(t, run.ID, question.RunID)
	}

	// Generation is a staging mutation, so the staleness marker moves.
	before := run.LastStagingChangeAt
	updated, err := env.runs.GetRun(run.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.LastStagingChangeAt)
	assert.False(t, updated.LastStagingChangeAt.Before(*before))
}

func TestGenerateQuestions_AppendsToExisting(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	run, err := env.runs.CreateRun("Astronomy")
	require.NoError(t, err)

	env.gen.On("GenerateQuestions", mock.Anything, "Astronomy", 1).
		Return([]string{"What is a star?"}, nil).Once()
	_, err = env.staging.GenerateQuestions(ctx, run.ID, 1)
	require.NoError(t, err)

	env.gen.On("GenerateQuestions", mock.Anything, "Astronomy", 1).
		Return([]string{"What is a comet?"}, nil).Once()
	_, err = env.staging.GenerateQuestions(ctx, run.ID, 1)
	require.NoError(t, err)

	questions, err := env.staging.ListQuestions(run.ID)
	require.NoError(t, err)
	assert.Len(t, questions, 2)
}

func TestGenerateQuestions_CollaboratorFailureLeavesStagingUnchanged(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	run, err := env.runs.CreateRun("Astronomy")
	require.NoError(t, err)

	env.gen.On("GenerateQuestions", mock.Anything, "Astronomy", 5).
		Return(nil, common.ErrGenerationFailed).Once()

	_, err = env.staging.GenerateQuestions(ctx, run.ID, 5)
	assert.ErrorIs(t, err, common.ErrGenerationFailed)

	questions, err := env.staging.ListQuestions(run.ID)
	require.NoError(t, err)
	assert.Empty(t, questions)
}

func TestGenerateQuestions_RunNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.staging.GenerateQuestions(context.Background(), "missing", 3)
	assert.ErrorIs(t, err, common.ErrRunNotFound)
}

func TestSetQuestionApproval_RejectionDeletesAnswers(t *testing.T) {
	env := newTestEnv(t)
	_, question, answer := seedApprovedPair(t, env)

	updated, err := env.staging.SetQuestionApproval(question.ID, false)
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalRejected, updated.Approval)

	_, err = env.answerRepo.FindByID(answer.ID)
	assert.ErrorIs(t, err, common.ErrAnswerNotFound)
}

func TestSetQuestionApproval_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.staging.SetQuestionApproval(12345, true)
	assert.ErrorIs(t, err, common.ErrQuestionNotFound)
}

func TestGenerateAnswers_RegenerationGating(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	run, question, answer := seedApprovedPair(t, env)

	// Reject the only answer; the next generation pass replaces it.
	_, err := env.staging.SetAnswerApproval(answer.ID, false)
	require.NoError(t, err)

	env.gen.On("GenerateAnswer", mock.Anything, question.QuestionText, "Photosynthesis").
		Return("A fresh answer.", nil).Once()
	regenerated, err := env.staging.GenerateAnswers(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, regenerated, 1)
	assert.Equal(t, domain.ApprovalUnset, regenerated[0].Approval)

	answers, err := env.staging.ListAnswers(run.ID)
	require.NoError(t, err)
	require.Len(t, answers, 1)
	assert.Equal(t, "A fresh answer.", answers[0].AnswerText)

	// A pending answer blocks further generation.
	again, err := env.staging.GenerateAnswers(ctx, run.ID)
	require.NoError(t, err)
	assert.Empty(t, again)

	answers, err = env.staging.ListAnswers(run.ID)
	require.NoError(t, err)
	assert.Len(t, answers, 1)
}

func TestGenerateAnswers_SkipsApprovedAnswer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	run, _, _ := seedApprovedPair(t, env)

	answers, err := env.staging.GenerateAnswers(ctx, run.ID)
	require.NoError(t, err)
	assert.Empty(t, answers)
}

func TestGenerateAnswers_NoApprovedQuestions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	run, err := env.runs.CreateRun("Astronomy")
	require.NoError(t, err)

	env.gen.On("GenerateQuestions", mock.Anything, "Astronomy", 1).
		Return([]string{"What is a star?"}, nil).Once()
	_, err = env.staging.GenerateQuestions(ctx, run.ID, 1)
	require.NoError(t, err)

	_, err = env.staging.GenerateAnswers(ctx, run.ID)
	assert.ErrorIs(t, err, common.ErrNoApprovedQuestions)
}

func TestGenerateAnswers_CollaboratorFailureLeavesStagingUnchanged(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	run, question, answer := seedApprovedPair(t, env)

	_, err := env.staging.SetAnswerApproval(answer.ID, false)
	require.NoError(t, err)

	env.gen.On("GenerateAnswer", mock.Anything, question.QuestionText, "Photosynthesis").
		Return("", errors.New("model overloaded")).Once()

	_, err = env.staging.GenerateAnswers(ctx, run.ID)
	require.Error(t, err)

	// The rejected answer survives the failed pass untouched.
	answers, err := env.staging.ListAnswers(run.ID)
	require.NoError(t, err)
	require.Len(t, answers, 1)
	assert.Equal(t, answer.ID, answers[0].ID)
	assert.Equal(t, domain.ApprovalRejected, answers[0].Approval)
}

func TestSetAnswerApproval_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.staging.SetAnswerApproval(999, true)
	assert.ErrorIs(t, err, common.ErrAnswerNotFound)
}

func TestSetQuestionTags_CreatesAndSkipsEmpty(t *testing.T) {
	env := newTestEnv(t)
	_, question, _ := seedApprovedPair(t, env)

	tags, err := env.staging.SetQuestionTags(question.ID, []string{" biology ", "", "plants", "   "})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"biology", "plants"}, tagNames(tags))

	stored, err := env.staging.GetQuestionTags(question.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"biology", "plants"}, tagNames(stored))
}

func TestSetQuestionTags_ReplacesExistingSet(t *testing.T) {
	env := newTestEnv(t)
	_, question, _ := seedApprovedPair(t, env)

	_, err := env.staging.SetQuestionTags(question.ID, []string{"a", "b"})
	require.NoError(t, err)

	tags, err := env.staging.SetQuestionTags(question.ID, []string{"b", "c"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"b", "c"}, tagNames(tags))

	// Tag "a" still exists globally, only the link was removed.
	all, err := env.staging.ListTags()
	require.NoError(t, err)
	names := make([]string, len(all))
	for i, tag := range all {
		names[i] = tag.Name
	}
	assert.ElementsMatch(t, []string{"a", "b", "c"}, names)
}

func TestSetQuestionTags_ReusesExistingTags(t *testing.T) {
	env := newTestEnv(t)
	_, question, _ := seedApprovedPair(t, env)

	first, err := env.staging.SetQuestionTags(question.ID, []string{"shared"})
	require.NoError(t, err)
	second, err := env.staging.SetQuestionTags(question.ID, []string{"shared"})
	require.NoError(t, err)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].ID, second[0].ID)
}

func TestCreateRun_EmptySummary(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.runs.CreateRun("   ")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestDeleteRun_CascadesEverything(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	run, question, _ := seedApprovedPair(t, env)

	_, err := env.staging.SetQuestionTags(question.ID, []string{"a"})
	require.NoError(t, err)
	_, err = env.sync.Sync(ctx, run.ID)
	require.NoError(t, err)

	require.NoError(t, env.runs.DeleteRun(run.ID))

	_, err = env.runs.GetRun(run.ID)
	assert.ErrorIs(t, err, common.ErrRunNotFound)

	questions, err := env.questionRepo.FindByRun(run.ID)
	require.NoError(t, err)
	assert.Empty(t, questions)

	published, err := env.publishedRepo.FindQuestionsByRun(run.ID)
	require.NoError(t, err)
	assert.Empty(t, published)

	answers, err := env.publishedRepo.FindAnswersByRun(run.ID)
	require.NoError(t, err)
	assert.Empty(t, answers)
}
