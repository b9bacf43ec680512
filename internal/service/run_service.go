package service

import (
	"fmt"
	"strings"

	"github.com/quizstage/quizstage-backend/internal/common"
	"github.com/quizstage/quizstage-backend/internal/domain"
	"github.com/quizstage/quizstage-backend/internal/repository"
)

// RunService business logic for workflow runs
type RunService interface {
	CreateRun(summary string) (*domain.Run, error)
	ListRuns() ([]*domain.Run, error)
	GetRun(id string) (*domain.Run, error)
	DeleteRun(id string) error
}

type runService struct {
	runRepo repository.RunRepository
}

// NewRunService creates a new RunService
func NewRunService(runRepo repository.RunRepository) RunService {
	return &runService{runRepo: runRepo}
}

// CreateRun starts a workflow session for a topic summary
func (s *runService) CreateRun(summary string) (*domain.Run, error) {
	if strings.TrimSpace(summary) == "" {
		return nil, fmt.Errorf("summary must not be empty: %w", common.ErrInvalidInput)
	}
	return s.runRepo.Create(summary)
}

// ListRuns returns all runs, newest first
func (s *runService) ListRuns() ([]*domain.Run, error) {
	return s.runRepo.FindAll()
}

// GetRun returns one run
func (s *runService) GetRun(id string) (*domain.Run, error) {
	return s.runRepo.FindByID(id)
}

// DeleteRun removes a run and all staging and published rows beneath it
func (s *runService) DeleteRun(id string) error {
	return s.runRepo.Delete(id)
}
