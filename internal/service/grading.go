package service

import (
	"math"
	"strings"

	"github.com/sohinisarkar2002/EduAssist/internal/model"
)

// GradeAssessment 逐题独立评分并累加总分。
// 答案缺失记0分, 单题异常不影响其他题。
func GradeAssessment(questions []model.Question, answers map[uint]model.AnswerValue) float64 {
	var total float64
	for _, q := range questions {
		answer, ok := answers[q.ID]
		if !ok || answer.IsNull() {
			continue
		}
		total += gradeQuestion(q, answer)
	}
	return total
}

func gradeQuestion(q model.Question, answer model.AnswerValue) float64 {
	correct := model.AnswerValue{Raw: q.CorrectAnswer}

	switch q.Type {
	case model.QuestionMCQ, model.QuestionTrueFalse:
		if normalize(answer.AsString()) == normalize(correct.AsString()) {
			return q.Marks
		}
		return 0

	case model.QuestionMSQ:
		return gradeMSQ(q.Marks, answer.AsList(), correct.AsList())

	case model.QuestionNAT:
		return gradeNAT(q, answer, correct)

	case model.QuestionShortAnswer:
		// 主观题暂不自动判分, 作答即给一半分
		return q.Marks * 0.5
	}
	return 0
}

// gradeMSQ 选项集合完全一致得满分, 部分命中得半分
func gradeMSQ(marks float64, answer, correct []string) float64 {
	correctSet := make(map[string]struct{}, len(correct))
	for _, c := range correct {
		correctSet[normalize(c)] = struct{}{}
	}
	answerSet := make(map[string]struct{}, len(answer))
	for _, a := range answer {
		answerSet[normalize(a)] = struct{}{}
	}
	if len(answerSet) == 0 || len(correctSet) == 0 {
		return 0
	}

	overlap := 0
	for a := range answerSet {
		if _, ok := correctSet[a]; ok {
			overlap++
		}
	}

	if overlap == len(correctSet) && len(answerSet) == len(correctSet) {
		return marks
	}
	if overlap > 0 {
		return marks * 0.5
	}
	return 0
}

// gradeNAT 相对误差1%以内算对, 标准答案为0时要求精确为0
func gradeNAT(q model.Question, answer, correct model.AnswerValue) float64 {
	want, err := correct.AsFloat()
	if err != nil {
		return 0
	}
	got, err := answer.AsFloat()
	if err != nil {
		return 0
	}

	if want == 0 {
		if got == 0 {
			return q.Marks
		}
		return 0
	}
	if math.Abs(got-want) <= math.Abs(want)*0.01 {
		return q.Marks
	}
	return 0
}

func normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
