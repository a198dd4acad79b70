package model

import (
	"encoding/json"
	"time"
)

type ConversationStatus string

const (
	ConversationActive    ConversationStatus = "ACTIVE"
	ConversationResolved  ConversationStatus = "RESOLVED"
	ConversationEscalated ConversationStatus = "ESCALATED"
)

func (s ConversationStatus) Valid() bool {
	switch s {
	case ConversationActive, ConversationResolved, ConversationEscalated:
		return true
	}
	return false
}

type SenderType string

const (
	SenderStudent SenderType = "STUDENT"
	SenderAI      SenderType = "AI"
	SenderTA      SenderType = "TA"
)

// swagger:model Conversation
type Conversation struct {
	BaseModel
	StudentID     uint               `gorm:"index;type:bigint unsigned" json:"studentId"`
	CourseID      uint               `gorm:"index;type:bigint unsigned" json:"courseId"`
	Status        ConversationStatus `gorm:"size:20;default:'ACTIVE'" json:"status"`
	LastMessageAt *time.Time         `json:"lastMessageAt,omitempty"`
	Messages      []Message          `gorm:"foreignKey:ConversationID" json:"messages,omitempty"`
}

func (Conversation) TableName() string {
	return "conversations"
}

// swagger:model Message
type Message struct {
	BaseModel
	ConversationID  uint            `gorm:"index;type:bigint unsigned" json:"conversationId"`
	SenderType      SenderType      `gorm:"size:20;not null" json:"senderType"`
	Content         string          `gorm:"type:text;not null" json:"content"`
	ConfidenceScore *float64        `json:"confidenceScore,omitempty"`
	Sources         json.RawMessage `gorm:"type:json" json:"sources,omitempty"`
}

func (Message) TableName() string {
	return "messages"
}
