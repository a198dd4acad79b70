package repository

import (
	"encoding/json"
	"time"

	"github.com/sohinisarkar2002/EduAssist/internal/model"
	"gorm.io/gorm"
)

type WorkflowRepository struct {
	DB *gorm.DB
}

func NewWorkflowRepository(db *gorm.DB) *WorkflowRepository {
	return &WorkflowRepository{DB: db}
}

func (r *WorkflowRepository) Create(req *model.WorkflowRequest) error {
	return r.DB.Create(req).Error
}

func (r *WorkflowRepository) FindByID(id uint) (*model.WorkflowRequest, error) {
	var req model.WorkflowRequest
	err := r.DB.Preload("Requester").First(&req, id).Error
	return &req, err
}

func (r *WorkflowRepository) FindByRequester(requesterID uint) ([]model.WorkflowRequest, error) {
	var reqs []model.WorkflowRequest
	err := r.DB.Where("requester_id = ?", requesterID).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

// FindAll 管理端列表, 可按状态过滤
func (r *WorkflowRepository) FindAll(status model.WorkflowStatus) ([]model.WorkflowRequest, error) {
	var reqs []model.WorkflowRequest
	q := r.DB.Preload("Requester").Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&reqs).Error
	return reqs, err
}

// RecordAgentRun 预审结果与运行报告一并落库
func (r *WorkflowRepository) RecordAgentRun(id uint, status model.WorkflowStatus, decision model.WorkflowDecision, reasoning string, report json.RawMessage) error {
	updates := map[string]interface{}{
		"status":          status,
		"agent_decision":  decision,
		"agent_reasoning": reasoning,
		"last_run_report": report,
	}
	if status.Terminal() {
		updates["resolved_at"] = time.Now()
	}
	return r.DB.Model(&model.WorkflowRequest{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// Resolve 管理员裁决, 只允许处理非终态请求
func (r *WorkflowRepository) Resolve(id uint, status model.WorkflowStatus, adminDecision string) (int64, error) {
	res := r.DB.Model(&model.WorkflowRequest{}).
		Where("id = ? AND status IN ?", id,
			[]model.WorkflowStatus{model.WorkflowPending, model.WorkflowInProgress}).
		Updates(map[string]interface{}{
			"status":         status,
			"admin_decision": adminDecision,
			"resolved_at":    time.Now(),
		})
	return res.RowsAffected, res.Error
}
