package service

import (
	"context"

	"github.com/quizstage/quizstage-backend/internal/domain"
	"github.com/quizstage/quizstage-backend/internal/repository"
	"github.com/quizstage/quizstage-backend/pkg/cache"
	"github.com/quizstage/quizstage-backend/pkg/logger"
)

// PublishedService read path over the published tables. Exposes only
// questions that currently have an approved answer; no mutation.
type PublishedService interface {
	ListPublished(ctx context.Context, runID string) ([]*domain.PublishedQuestionResponse, error)
}

type publishedService struct {
	publishedRepo repository.PublishedRepository
	cache         cache.Service
}

// NewPublishedService creates a new PublishedService. cacheService may
// be nil; reads then always hit the store.
func NewPublishedService(publishedRepo repository.PublishedRepository, cacheService cache.Service) PublishedService {
	return &publishedService{publishedRepo: publishedRepo, cache: cacheService}
}

// ListPublished returns published questions with their single answer
// and full tag set, newest first. An empty runID means all runs. The
// result is cached until the next sync pass of the run.
func (s *publishedService) ListPublished(ctx context.Context, runID string) ([]*domain.PublishedQuestionResponse, error) {
	if s.cache != nil {
		var cached []*domain.PublishedQuestionResponse
		if err := s.cache.GetPublished(ctx, runID, &cached); err == nil {
			return cached, nil
		}
	}

	questions, err := s.publishedRepo.FindApprovedQuestions(runID)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.PublishedQuestionResponse, 0, len(questions))
	for _, question := range questions {
		answer, err := s.publishedRepo.FindFirstAnswerForQuestion(question.ID)
		if err != nil {
			return nil, err
		}

		tags := question.Tags
		if tags == nil {
			tags = []domain.Tag{}
		}
		result = append(result, &domain.PublishedQuestionResponse{
			ID:                question.ID,
			RunID:             question.RunID,
			StagingID:         question.StagingID,
			QuestionText:      question.QuestionText,
			HasApprovedAnswer: question.HasApprovedAnswer,
			CreatedAt:         question.CreatedAt,
			UpdatedAt:         question.UpdatedAt,
			Tags:              tags,
			Answer:            answer,
		})
	}

	if s.cache != nil {
		if err := s.cache.SetPublished(ctx, runID, result); err != nil {
			logger.Warn("published cache write failed: %v", err)
		}
	}

	return result, nil
}
