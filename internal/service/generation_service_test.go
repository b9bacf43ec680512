package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQuestionList_NumberedLines(t *testing.T) {
	text := "1. What is photosynthesis?\n2. Where does it happen?\n3. What is chlorophyll?"
	questions := parseQuestionList(text, 5)
	assert.Equal(t, []string{
		"What is photosynthesis?",
		"Where does it happen?",
		"What is chlorophyll?",
	}, questions)
}

func TestParseQuestionList_DashLines(t *testing.T) {
	text := "- What is a star?\n- What is a planet?"
	questions := parseQuestionList(text, 5)
	assert.Equal(t, []string{"What is a star?", "What is a planet?"}, questions)
}

func TestParseQuestionList_SkipsPreamble(t *testing.T) {
	text := "Here are some questions:\n\n1. What is a star?\n2. What is a planet?"
	questions := parseQuestionList(text, 5)
	assert.Equal(t, []string{"What is a star?", "What is a planet?"}, questions)
}

func TestParseQuestionList_FallbackToPlainLines(t *testing.T) {
	text := "What is a star?\nWhat is a planet?\n"
	questions := parseQuestionList(text, 5)
	assert.Equal(t, []string{"What is a star?", "What is a planet?"}, questions)
}

func TestParseQuestionList_TruncatesToCount(t *testing.T) {
	text := "1. a?\n2. b?\n3. c?\n4. d?"
	questions := parseQuestionList(text, 2)
	assert.Equal(t, []string{"a?", "b?"}, questions)
}

func TestParseQuestionList_Empty(t *testing.T) {
	assert.Empty(t, parseQuestionList("   \n  ", 3))
}
