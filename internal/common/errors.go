package common

import "errors"

// Business logic errors
var (
	// General errors
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")

	// Workflow errors
	ErrRunNotFound         = errors.New("run not found")
	ErrQuestionNotFound    = errors.New("question not found")
	ErrAnswerNotFound      = errors.New("answer not found")
	ErrNoApprovedQuestions = errors.New("no approved questions found for this run")

	// Collaborator errors
	ErrGenerationFailed = errors.New("generation failed")
)
