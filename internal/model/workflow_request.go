package model

import (
	"encoding/json"
	"time"
)

type WorkflowStatus string

const (
	WorkflowPending      WorkflowStatus = "PENDING"
	WorkflowInProgress   WorkflowStatus = "IN_PROGRESS"
	WorkflowResolved     WorkflowStatus = "RESOLVED"
	WorkflowRejected     WorkflowStatus = "REJECTED"
	WorkflowAutoApproved WorkflowStatus = "AUTO_APPROVED"
)

// Terminal 终态请求不允许再被处理
func (s WorkflowStatus) Terminal() bool {
	switch s {
	case WorkflowResolved, WorkflowRejected, WorkflowAutoApproved:
		return true
	}
	return false
}

type WorkflowDecision string

const (
	DecisionAutoApprove  WorkflowDecision = "AUTO_APPROVE"
	DecisionReject       WorkflowDecision = "REJECT"
	DecisionManualReview WorkflowDecision = "MANUAL_REVIEW"
)

// WorkflowRequest 学生提交的流程申请, 由LLM预审后转人工
// swagger:model WorkflowRequest
type WorkflowRequest struct {
	BaseModel
	Title          string           `gorm:"size:255;not null" json:"title"`
	Description    string           `gorm:"type:text;not null" json:"description"`
	RequestType    string           `gorm:"size:100;not null" json:"requestType"`
	Status         WorkflowStatus   `gorm:"size:20;default:'PENDING'" json:"status"`
	AgentDecision  WorkflowDecision `gorm:"size:20" json:"agentDecision,omitempty"`
	AdminDecision  string           `gorm:"size:20" json:"adminDecision,omitempty"`
	AgentReasoning string           `gorm:"type:text" json:"agentReasoning,omitempty"`
	LastRunReport  json.RawMessage  `gorm:"type:json" json:"lastRunReport,omitempty"`
	ResolvedAt     *time.Time       `json:"resolvedAt,omitempty"`
	RequesterID    uint             `gorm:"index;type:bigint unsigned" json:"requesterId"`
	Requester      *User            `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
}

func (WorkflowRequest) TableName() string {
	return "workflow_requests"
}
