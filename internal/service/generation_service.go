package service

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	openai "github.com/sashabaranov/go-openai"

	"github.com/quizstage/quizstage-backend/internal/common"
	"github.com/quizstage/quizstage-backend/pkg/logger"
)

// GenerationService is the external collaborator producing question
// and answer text from a topic summary. Failures are not retried here;
// the enclosing staging mutation aborts with no partial writes.
type GenerationService interface {
	GenerateQuestions(ctx context.Context, summary string, count int) ([]string, error)
	GenerateAnswer(ctx context.Context, question, summary string) (string, error)
}

type openAIGenerationService struct {
	client        *openai.Client
	questionModel string
	answerModel   string
}

// NewOpenAIGenerationService creates a GenerationService backed by the
// OpenAI chat completion API
func NewOpenAIGenerationService(client *openai.Client, questionModel, answerModel string) GenerationService {
	return &openAIGenerationService{
		client:        client,
		questionModel: questionModel,
		answerModel:   answerModel,
	}
}

const questionSystemPrompt = "You are an expert at creating test questions for educational assessments."

const answerSystemPrompt = "You are an expert at providing clear and educational answers to test questions."

// GenerateQuestions asks the model for count questions about the
// summary and parses them from the numbered response. At most count
// questions are returned; the model may honor fewer.
func (s *openAIGenerationService) GenerateQuestions(ctx context.Context, summary string, count int) ([]string, error) {
	prompt := fmt.Sprintf(`Based on the following summary, generate %d well-structured test questions.

Summary:
%s

Generate questions that:
1. Are clear and specific
2. Test understanding of the key concepts
3. Are appropriate for assessment purposes
4. Cover different aspects of the topic

Return each question on a separate line, numbered from 1 to %d.
Only return the questions, no additional text or explanations.`, count, summary, count)

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.questionModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: questionSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   1000,
	})
	if err != nil {
		logger.Error("generation: question request failed: %v", err)
		return nil, fmt.Errorf("%w: %v", common.ErrGenerationFailed, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices returned", common.ErrGenerationFailed)
	}

	questions := parseQuestionList(resp.Choices[0].Message.Content, count)
	logger.Info("generation: parsed %d questions (requested %d)", len(questions), count)
	return questions, nil
}

// GenerateAnswer asks the model to answer one question in the context
// of the summary.
func (s *openAIGenerationService) GenerateAnswer(ctx context.Context, question, summary string) (string, error) {
	prompt := fmt.Sprintf(`Based on the following summary, provide a clear and comprehensive answer to the question.

Summary:
%s

Question:
%s

Provide a well-structured answer that:
1. Directly addresses the question
2. Is based on the information in the summary
3. Is clear and comprehensive
4. Is appropriate for an educational context`, summary, question)

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.answerModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: answerSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.5,
		MaxTokens:   800,
	})
	if err != nil {
		logger.Error("generation: answer request failed: %v", err)
		return "", fmt.Errorf("%w: %v", common.ErrGenerationFailed, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", common.ErrGenerationFailed)
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// parseQuestionList extracts questions from a numbered or bulleted
// model response, falling back to all non-empty lines when no line
// looks numbered. Never returns more than count entries.
func parseQuestionList(text string, count int) []string {
	text = strings.TrimSpace(text)

	var questions []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		first := []rune(line)[0]
		if !unicode.IsDigit(first) && !strings.HasPrefix(line, "-") {
			continue
		}
		question := strings.TrimSpace(strings.TrimLeft(line, "0123456789.- "))
		if question != "" {
			questions = append(questions, question)
		}
	}

	if len(questions) == 0 {
		for _, line := range strings.Split(text, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				questions = append(questions, line)
			}
		}
	}

	if len(questions) > count {
		questions = questions[:count]
	}
	return questions
}
