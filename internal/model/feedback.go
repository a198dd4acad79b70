package model

import "encoding/json"

type FeedbackTarget string

const (
	FeedbackAssessment FeedbackTarget = "assessment"
	FeedbackStudyGuide FeedbackTarget = "study_guide"
	FeedbackSlideDeck  FeedbackTarget = "slide_deck"
)

func (t FeedbackTarget) Valid() bool {
	switch t {
	case FeedbackAssessment, FeedbackStudyGuide, FeedbackSlideDeck:
		return true
	}
	return false
}

// swagger:model Feedback
type Feedback struct {
	BaseModel
	TargetType    FeedbackTarget  `gorm:"size:20;not null;index" json:"targetType"`
	TargetID      uint            `gorm:"type:bigint unsigned;index" json:"targetId"`
	Rating        int             `gorm:"not null" json:"rating"` // 1-5
	AspectRatings json.RawMessage `gorm:"type:json" json:"aspectRatings,omitempty"`
	Comment       string          `gorm:"type:text" json:"comment"`
	UserID        uint            `gorm:"index;type:bigint unsigned" json:"userId"`
	User          *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Feedback) TableName() string {
	return "feedbacks"
}
