package model

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// AnswerValue 学生作答的原始JSON值, 可能是字符串/数字/布尔/数组
type AnswerValue struct {
	Raw json.RawMessage
}

func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	v.Raw = append(v.Raw[:0], data...)
	return nil
}

func (v AnswerValue) MarshalJSON() ([]byte, error) {
	if len(v.Raw) == 0 {
		return []byte("null"), nil
	}
	return v.Raw, nil
}

// IsNull 空值或JSON null都视为未作答
func (v AnswerValue) IsNull() bool {
	trimmed := strings.TrimSpace(string(v.Raw))
	return trimmed == "" || trimmed == "null"
}

// AsString 标量转字符串, 数组取第一个元素
func (v AnswerValue) AsString() string {
	if v.IsNull() {
		return ""
	}
	var s string
	if err := json.Unmarshal(v.Raw, &s); err == nil {
		return s
	}
	var list []json.RawMessage
	if err := json.Unmarshal(v.Raw, &list); err == nil {
		if len(list) == 0 {
			return ""
		}
		return AnswerValue{Raw: list[0]}.AsString()
	}
	var b bool
	if err := json.Unmarshal(v.Raw, &b); err == nil {
		if b {
			return "true"
		}
		return "false"
	}
	var f float64
	if err := json.Unmarshal(v.Raw, &f); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strings.TrimSpace(string(v.Raw))
}

// AsList 数组逐项转字符串, 标量包装成单元素列表
func (v AnswerValue) AsList() []string {
	if v.IsNull() {
		return nil
	}
	var list []json.RawMessage
	if err := json.Unmarshal(v.Raw, &list); err == nil {
		out := make([]string, 0, len(list))
		for _, item := range list {
			out = append(out, AnswerValue{Raw: item}.AsString())
		}
		return out
	}
	return []string{v.AsString()}
}

// AsFloat 数字或数字字符串解析为float64
func (v AnswerValue) AsFloat() (float64, error) {
	s := strings.TrimSpace(v.AsString())
	return strconv.ParseFloat(s, 64)
}

// StringAnswer 便于测试构造字符串答案
func StringAnswer(s string) AnswerValue {
	raw, _ := json.Marshal(s)
	return AnswerValue{Raw: raw}
}

// ListAnswer 便于测试构造数组答案
func ListAnswer(items ...string) AnswerValue {
	raw, _ := json.Marshal(items)
	return AnswerValue{Raw: raw}
}

// swagger:model AssessmentAttempt
type AssessmentAttempt struct {
	BaseModel
	AssessmentID  uint            `gorm:"index;type:bigint unsigned" json:"assessmentId"`
	StudentID     uint            `gorm:"index;type:bigint unsigned" json:"studentId"`
	StartedAt     time.Time       `gorm:"not null" json:"startedAt"`
	SubmittedAt   *time.Time      `json:"submittedAt,omitempty"`
	Answers       json.RawMessage `gorm:"type:json" json:"answers,omitempty"`
	Score         float64         `gorm:"default:0" json:"score"`
	MaxScore      float64         `gorm:"default:0" json:"maxScore"` // 开卷时的总分快照
	Percentage    float64         `gorm:"default:0" json:"percentage"`
	TimeTakenMins int             `gorm:"default:0" json:"timeTakenMins"`
	Assessment    *Assessment     `gorm:"foreignKey:AssessmentID" json:"assessment,omitempty"`
}

func (AssessmentAttempt) TableName() string {
	return "assessment_attempts"
}

// Submitted 提交过的答卷不允许再次提交
func (a *AssessmentAttempt) Submitted() bool {
	return a.SubmittedAt != nil
}
