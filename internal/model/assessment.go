package model

import "encoding/json"

type AssessmentStatus string

const (
	AssessmentGenerating AssessmentStatus = "GENERATING"
	AssessmentCompleted  AssessmentStatus = "COMPLETED"
	AssessmentFailed     AssessmentStatus = "FAILED"
)

type QuestionType string

const (
	QuestionMCQ         QuestionType = "MCQ"
	QuestionMSQ         QuestionType = "MSQ"
	QuestionNAT         QuestionType = "NAT"
	QuestionShortAnswer QuestionType = "SHORT_ANSWER"
	QuestionTrueFalse   QuestionType = "TRUE_FALSE"
)

func (t QuestionType) Valid() bool {
	switch t {
	case QuestionMCQ, QuestionMSQ, QuestionNAT, QuestionShortAnswer, QuestionTrueFalse:
		return true
	}
	return false
}

type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "EASY"
	DifficultyMedium DifficultyLevel = "MEDIUM"
	DifficultyHard   DifficultyLevel = "HARD"
)

func (d DifficultyLevel) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// swagger:model Assessment
type Assessment struct {
	BaseModel
	Title           string           `gorm:"size:255;not null" json:"title"`
	Description     string           `gorm:"type:text" json:"description"`
	CustomPrompt    string           `gorm:"type:text" json:"customPrompt"`
	Difficulty      DifficultyLevel  `gorm:"size:10;default:'MEDIUM'" json:"difficulty"`
	QuestionTypes   json.RawMessage  `gorm:"type:json" json:"questionTypes"`
	TotalQuestions  int              `gorm:"default:5" json:"totalQuestions"`
	Status          AssessmentStatus `gorm:"size:20;default:'GENERATING'" json:"status"`
	ReferenceDocIDs json.RawMessage  `gorm:"type:json" json:"referenceDocIds,omitempty"`
	TotalMarks      float64          `gorm:"default:0" json:"totalMarks"`
	DurationMins    int              `gorm:"default:30" json:"durationMins"`
	CourseID        uint             `gorm:"index;type:bigint unsigned" json:"courseId"`
	CreatedBy       uint             `gorm:"index;type:bigint unsigned" json:"createdBy"`
	Questions       []Question       `gorm:"foreignKey:AssessmentID" json:"questions,omitempty"`
}

func (Assessment) TableName() string {
	return "assessments"
}

// swagger:model Question
type Question struct {
	BaseModel
	AssessmentID  uint            `gorm:"index;type:bigint unsigned" json:"assessmentId"`
	Type          QuestionType    `gorm:"size:20;not null" json:"type"`
	Text          string          `gorm:"type:text;not null" json:"text"`
	Options       json.RawMessage `gorm:"type:json" json:"options,omitempty"`
	CorrectAnswer json.RawMessage `gorm:"type:json" json:"correctAnswer,omitempty"`
	Explanation   string          `gorm:"type:text" json:"explanation,omitempty"`
	Difficulty    DifficultyLevel `gorm:"size:10;default:'MEDIUM'" json:"difficulty"`
	Marks         float64         `gorm:"not null" json:"marks"`
	Position      int             `gorm:"not null" json:"position"`
}

func (Question) TableName() string {
	return "questions"
}

// Sanitize 学生预览时抹掉答案与解析
func (q *Question) Sanitize() {
	q.CorrectAnswer = nil
	q.Explanation = ""
}
