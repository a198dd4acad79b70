package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sohinisarkar2002/EduAssist/internal/model"
)

func question(id uint, qType model.QuestionType, marks float64, correct interface{}) model.Question {
	raw, _ := json.Marshal(correct)
	q := model.Question{
		Type:          qType,
		CorrectAnswer: raw,
		Marks:         marks,
	}
	q.ID = id
	return q
}

func TestGradeMCQExactMatch(t *testing.T) {
	q := question(1, model.QuestionMCQ, 1, "B")

	assert.Equal(t, 1.0, gradeQuestion(q, model.StringAnswer("B")))
	assert.Equal(t, 1.0, gradeQuestion(q, model.StringAnswer("  b  ")), "忽略大小写和首尾空白")
	assert.Equal(t, 0.0, gradeQuestion(q, model.StringAnswer("C")))
}

func TestGradeMCQListAnswerTakesFirstElement(t *testing.T) {
	q := question(1, model.QuestionMCQ, 2, "A")

	assert.Equal(t, 2.0, gradeQuestion(q, model.ListAnswer("A", "B")))
	assert.Equal(t, 0.0, gradeQuestion(q, model.ListAnswer("B", "A")))
}

func TestGradeTrueFalse(t *testing.T) {
	q := question(1, model.QuestionTrueFalse, 1, "True")

	assert.Equal(t, 1.0, gradeQuestion(q, model.StringAnswer("TRUE")))
	// 布尔值作答也按字符串比较
	assert.Equal(t, 1.0, gradeQuestion(q, model.AnswerValue{Raw: json.RawMessage(`true`)}))
	assert.Equal(t, 0.0, gradeQuestion(q, model.StringAnswer("False")))
}

func TestGradeMSQ(t *testing.T) {
	q := question(1, model.QuestionMSQ, 2, []string{"A", "C"})

	assert.Equal(t, 2.0, gradeQuestion(q, model.ListAnswer("A", "C")), "完全一致得满分")
	assert.Equal(t, 2.0, gradeQuestion(q, model.ListAnswer("c", "a")), "顺序和大小写无关")
	assert.Equal(t, 1.0, gradeQuestion(q, model.ListAnswer("A")), "部分命中得半分")
	assert.Equal(t, 1.0, gradeQuestion(q, model.ListAnswer("A", "B")), "多选含错项也是半分")
	assert.Equal(t, 0.0, gradeQuestion(q, model.ListAnswer("B", "D")), "全不命中0分")
	assert.Equal(t, 0.0, gradeQuestion(q, model.ListAnswer()), "空作答0分")
}

func TestGradeNATTolerance(t *testing.T) {
	q := question(1, model.QuestionNAT, 2, "100")

	assert.Equal(t, 2.0, gradeQuestion(q, model.StringAnswer("100")))
	assert.Equal(t, 2.0, gradeQuestion(q, model.StringAnswer("101")), "1%误差恰好在边界上")
	assert.Equal(t, 2.0, gradeQuestion(q, model.StringAnswer("99.0")))
	assert.Equal(t, 0.0, gradeQuestion(q, model.StringAnswer("101.5")))
	assert.Equal(t, 0.0, gradeQuestion(q, model.StringAnswer("not a number")), "解析失败0分")
}

func TestGradeNATNumericAnswerValue(t *testing.T) {
	q := question(1, model.QuestionNAT, 2, 3.14)

	assert.Equal(t, 2.0, gradeQuestion(q, model.AnswerValue{Raw: json.RawMessage(`3.14`)}))
	assert.Equal(t, 2.0, gradeQuestion(q, model.StringAnswer("3.15")))
}

func TestGradeNATZeroRequiresExactZero(t *testing.T) {
	q := question(1, model.QuestionNAT, 2, "0")

	assert.Equal(t, 2.0, gradeQuestion(q, model.StringAnswer("0")))
	assert.Equal(t, 0.0, gradeQuestion(q, model.StringAnswer("0.001")))
}

func TestGradeShortAnswerHalfMarks(t *testing.T) {
	q := question(1, model.QuestionShortAnswer, 3, "any reference answer")

	assert.Equal(t, 1.5, gradeQuestion(q, model.StringAnswer("my essay")))
}

func TestGradeAssessmentTotalsAndSkipsMissing(t *testing.T) {
	questions := []model.Question{
		question(1, model.QuestionMCQ, 1, "A"),
		question(2, model.QuestionMSQ, 2, []string{"A", "B"}),
		question(3, model.QuestionNAT, 2, "50"),
		question(4, model.QuestionShortAnswer, 3, "ref"),
		question(5, model.QuestionTrueFalse, 1, "True"),
	}
	answers := map[uint]model.AnswerValue{
		1: model.StringAnswer("A"),           // 1
		2: model.ListAnswer("A"),             // 1 (半分)
		3: model.StringAnswer("50.2"),        // 2 (误差内)
		4: model.StringAnswer("some answer"), // 1.5
		// 第5题未作答
	}

	assert.Equal(t, 5.5, GradeAssessment(questions, answers))
}

func TestGradeAssessmentNullAnswerScoresZero(t *testing.T) {
	questions := []model.Question{question(1, model.QuestionMCQ, 1, "A")}
	answers := map[uint]model.AnswerValue{
		1: {Raw: json.RawMessage(`null`)},
	}

	assert.Equal(t, 0.0, GradeAssessment(questions, answers))
}
