package model

import "encoding/json"

type GuideStatus string

const (
	GuideProcessing GuideStatus = "PROCESSING"
	GuideCompleted  GuideStatus = "COMPLETED"
	GuideFailed     GuideStatus = "FAILED"
)

// StudyGuide 基于YouTube字幕生成的学习指南
// swagger:model StudyGuide
type StudyGuide struct {
	BaseModel
	Title            string          `gorm:"size:255;not null" json:"title"`
	YoutubeURL       string          `gorm:"size:500;not null" json:"youtubeUrl"`
	VideoID          string          `gorm:"size:20;index;not null" json:"videoId"`
	VideoTitle       string          `gorm:"size:500" json:"videoTitle"`
	VideoDuration    int             `gorm:"default:0" json:"videoDuration"` // 秒
	PrioritySegments json.RawMessage `gorm:"type:json" json:"prioritySegments,omitempty"`
	Content          string          `gorm:"type:longtext" json:"content"` // Markdown
	KeyTopics        json.RawMessage `gorm:"type:json" json:"keyTopics,omitempty"`
	Status           GuideStatus     `gorm:"size:20;default:'PROCESSING'" json:"status"`
	CourseID         uint            `gorm:"index;type:bigint unsigned" json:"courseId"`
	CreatedBy        uint            `gorm:"index;type:bigint unsigned" json:"createdBy"`
	Segments         []VideoSegment  `gorm:"foreignKey:StudyGuideID" json:"segments,omitempty"`
}

func (StudyGuide) TableName() string {
	return "study_guides"
}

// VideoSegment 视频里的一个重点时间段及其AI分析
// swagger:model VideoSegment
type VideoSegment struct {
	BaseModel
	StudyGuideID uint            `gorm:"index;type:bigint unsigned" json:"studyGuideId"`
	StartSeconds float64         `gorm:"not null" json:"startSeconds"`
	EndSeconds   float64         `gorm:"not null" json:"endSeconds"`
	Transcript   string          `gorm:"type:longtext" json:"transcript"`
	Priority     string          `gorm:"size:20;default:'medium'" json:"priority"`
	Summary      string          `gorm:"type:text" json:"summary"`
	KeyPoints    json.RawMessage `gorm:"type:json" json:"keyPoints,omitempty"`
	Position     int             `gorm:"not null" json:"position"`
}

func (VideoSegment) TableName() string {
	return "video_segments"
}
