package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sohinisarkar2002/EduAssist/internal/model"
)

func TestParseGeneratedQuestionsJSONArray(t *testing.T) {
	response := `Here are the questions:
[
  {"question_type": "MCQ", "question_text": "What is 2+2?", "options": ["A. 3", "B. 4"], "correct_answer": ["B"], "explanation": "basic math"},
  {"question_type": "NAT", "question_text": "Compute 10*5", "correct_answer": "50", "explanation": "multiplication"}
]
Done.`

	questions := parseGeneratedQuestions(response, []model.QuestionType{model.QuestionMCQ})

	require.Len(t, questions, 2)
	assert.Equal(t, model.QuestionMCQ, questions[0].QuestionType)
	assert.Equal(t, "What is 2+2?", questions[0].QuestionText)
	assert.Equal(t, model.QuestionNAT, questions[1].QuestionType)
}

func TestParseGeneratedQuestionsCodeFence(t *testing.T) {
	response := "```json\n[{\"question_type\": \"TRUE_FALSE\", \"question_text\": \"Go has generics.\", \"correct_answer\": [\"True\"], \"explanation\": \"since 1.18\"}]\n```"

	questions := parseGeneratedQuestions(response, nil)

	require.Len(t, questions, 1)
	assert.Equal(t, model.QuestionTrueFalse, questions[0].QuestionType)
}

func TestParseGeneratedQuestionsDropsInvalidEntries(t *testing.T) {
	response := `[
  {"question_type": "MCQ", "question_text": "", "correct_answer": ["A"]},
  {"question_type": "BOGUS", "question_text": "x", "correct_answer": ["A"]},
  {"question_type": "MCQ", "question_text": "valid", "correct_answer": ["A"], "explanation": "ok"}
]`

	questions := parseGeneratedQuestions(response, nil)

	require.Len(t, questions, 1)
	assert.Equal(t, "valid", questions[0].QuestionText)
}

func TestParseGeneratedQuestionsLineFallback(t *testing.T) {
	response := `Sorry, I cannot produce JSON right now.
Question 1: What is a goroutine?
Question 2: What does defer do?
Some unrelated line.
Q3: Explain channels.`

	questions := parseGeneratedQuestions(response, []model.QuestionType{model.QuestionMCQ})

	require.Len(t, questions, 3)
	for _, q := range questions {
		assert.Equal(t, model.QuestionMCQ, q.QuestionType)
		assert.NotEmpty(t, q.CorrectAnswer)
	}
}

func TestScrapeQuestionLinesCapsAtFive(t *testing.T) {
	response := "Q1\nQ2\nQ3\nQ4\nQ5\nQ6\nQ7"

	questions := scrapeQuestionLines(response, nil)

	assert.Len(t, questions, 5)
	assert.Equal(t, model.QuestionShortAnswer, questions[0].QuestionType, "无期望题型时默认简答")
}

func TestCalculateMarks(t *testing.T) {
	cases := []struct {
		qType model.QuestionType
		diff  model.DifficultyLevel
		want  float64
	}{
		{model.QuestionMCQ, model.DifficultyEasy, 1},
		{model.QuestionMCQ, model.DifficultyHard, 2},
		{model.QuestionMSQ, model.DifficultyMedium, 2},
		{model.QuestionMSQ, model.DifficultyHard, 4},
		{model.QuestionNAT, model.DifficultyEasy, 2},
		{model.QuestionShortAnswer, model.DifficultyMedium, 3},
		{model.QuestionShortAnswer, model.DifficultyHard, 6},
		{model.QuestionTrueFalse, model.DifficultyEasy, 1},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, calculateMarks(c.qType, c.diff), "%s/%s", c.qType, c.diff)
	}
}

func TestCalculateMarksUnknownDefaultsToOne(t *testing.T) {
	assert.Equal(t, 1.0, calculateMarks(model.QuestionType("UNKNOWN"), model.DifficultyLevel("")))
}
