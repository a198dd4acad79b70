package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sohinisarkar2002/EduAssist/internal/model"
	"github.com/sohinisarkar2002/EduAssist/internal/repository"
	"github.com/sohinisarkar2002/EduAssist/internal/util"
	"github.com/sohinisarkar2002/EduAssist/pkg/jobs"
	"github.com/sohinisarkar2002/EduAssist/pkg/logger"
	"go.uber.org/zap"
)

type WorkflowService struct {
	repo  *repository.WorkflowRepository
	ai    AIClient
	queue *jobs.Queue
}

func NewWorkflowService(repo *repository.WorkflowRepository, ai AIClient, queue *jobs.Queue) *WorkflowService {
	return &WorkflowService{repo: repo, ai: ai, queue: queue}
}

type CreateWorkflowInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	RequestType string `json:"requestType" binding:"required"`
}

// Create PENDING落库后交给预审agent异步处理
func (s *WorkflowService) Create(input CreateWorkflowInput, requesterID uint) (*model.WorkflowRequest, error) {
	req := &model.WorkflowRequest{
		Title:       input.Title,
		Description: input.Description,
		RequestType: input.RequestType,
		Status:      model.WorkflowPending,
		RequesterID: requesterID,
	}
	if err := s.repo.Create(req); err != nil {
		return nil, err
	}

	id := req.ID
	if err := s.queue.Enqueue("workflow_agent_run", func() error {
		return s.runAgent(id)
	}); err != nil {
		logger.Log.Error("agent job enqueue failed", zap.Uint("requestID", id), zap.Error(err))
	}

	return req, nil
}

// runAgent LLM预审。任何agent错误都归为待人工处理, 任务本身不算失败。
func (s *WorkflowService) runAgent(requestID uint) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	req, err := s.repo.FindByID(requestID)
	if err != nil {
		return err
	}

	history, err := s.requesterHistory(req.RequesterID, requestID)
	if err != nil {
		logger.Log.Warn("requester history unavailable", zap.Uint("requestID", requestID), zap.Error(err))
	}

	prompt := buildAgentPrompt(req, history)
	output, err := s.ai.Chat(ctx, "", prompt)
	if err != nil {
		report, _ := json.Marshal(map[string]string{"error": err.Error()})
		return s.repo.RecordAgentRun(requestID, model.WorkflowInProgress, model.DecisionManualReview,
			"Agent error: "+err.Error(), report)
	}

	decision, reasoning, parsed := parseAgentDecision(output)
	status := decisionToStatus(decision)

	report, _ := json.Marshal(map[string]interface{}{
		"raw":    output,
		"parsed": parsed,
	})
	return s.repo.RecordAgentRun(requestID, status, decision, reasoning, report)
}

// requesterHistory 同一申请人的历史请求摘要, 供agent参考
func (s *WorkflowService) requesterHistory(requesterID, excludeID uint) (string, error) {
	past, err := s.repo.FindByRequester(requesterID)
	if err != nil {
		return "", err
	}

	var lines []string
	for _, p := range past {
		if p.ID == excludeID {
			continue
		}
		lines = append(lines, fmt.Sprintf("- [%s] %s (%s): %s",
			p.CreatedAt.Format(util.DateFormat), p.Title, p.RequestType, p.Status))
	}
	return strings.Join(lines, "\n"), nil
}

func buildAgentPrompt(req *model.WorkflowRequest, history string) string {
	var b strings.Builder
	b.WriteString(`You are an expert educational admin agent with access to student support policies and historical request data.
Given below is a new admin workflow request. Your tasks:
1. Analyze the request type, description, and any available requester history.
2. Apply policy:
   - If this is an extension, and requester has more than 3 extensions this semester, flag for manual review.
   - If similar requests were approved before and the student history is good, recommend AUTO-APPROVAL.
   - If requester has a negative pattern or the request lacks justification, REJECT.
3. If unsure, summarize reasoning and recommend MANUAL REVIEW.
Return output as JSON: {"decision": "AUTO_APPROVE"|"REJECT"|"MANUAL_REVIEW", "reasoning": string, "policy_check": string}

REQUEST DETAILS:
`)
	fmt.Fprintf(&b, "Title: %s\nDescription: %s\nType: %s\nCreated At: %s\nRequester ID: %d\n",
		req.Title, req.Description, req.RequestType, req.CreatedAt.Format(time.RFC3339), req.RequesterID)
	if history != "" {
		fmt.Fprintf(&b, "\nRequester History:\n%s\n", history)
	}
	return b.String()
}

type agentOutput struct {
	Decision    string `json:"decision"`
	Reasoning   string `json:"reasoning"`
	PolicyCheck string `json:"policy_check"`
}

// parseAgentDecision JSON优先, 解析失败时扫描原文关键字
func parseAgentDecision(output string) (model.WorkflowDecision, string, *agentOutput) {
	text := output
	if start := strings.Index(text, "{"); start != -1 {
		if end := strings.LastIndex(text, "}"); end > start {
			text = text[start : end+1]
		}
	}

	var parsed agentOutput
	if err := json.Unmarshal([]byte(text), &parsed); err == nil && parsed.Decision != "" {
		switch strings.ToUpper(parsed.Decision) {
		case string(model.DecisionAutoApprove):
			return model.DecisionAutoApprove, parsed.Reasoning, &parsed
		case string(model.DecisionReject), "REJECTED":
			return model.DecisionReject, parsed.Reasoning, &parsed
		default:
			return model.DecisionManualReview, parsed.Reasoning, &parsed
		}
	}

	raw := strings.ToUpper(output)
	switch {
	case strings.Contains(raw, "AUTO-APPROVE") || strings.Contains(raw, "AUTO_APPROVE"):
		return model.DecisionAutoApprove, output, nil
	case strings.Contains(raw, "REJECT"):
		return model.DecisionReject, output, nil
	default:
		return model.DecisionManualReview, output, nil
	}
}

func decisionToStatus(d model.WorkflowDecision) model.WorkflowStatus {
	switch d {
	case model.DecisionAutoApprove:
		return model.WorkflowAutoApproved
	case model.DecisionReject:
		return model.WorkflowRejected
	default:
		return model.WorkflowInProgress
	}
}

func (s *WorkflowService) Get(id uint, viewer *util.Claims) (*model.WorkflowRequest, error) {
	req, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if viewer.Role == model.Student && req.RequesterID != viewer.UserID {
		return nil, util.ErrPermissionDenied
	}
	return req, nil
}

func (s *WorkflowService) List(viewer *util.Claims, status model.WorkflowStatus) ([]model.WorkflowRequest, error) {
	if viewer.Role == model.Student {
		return s.repo.FindByRequester(viewer.UserID)
	}
	return s.repo.FindAll(status)
}

type AdminDecisionInput struct {
	Approve bool   `json:"approve"`
	Comment string `json:"comment"`
}

// Decide 管理员裁决非终态请求
func (s *WorkflowService) Decide(id uint, input AdminDecisionInput) (*model.WorkflowRequest, error) {
	status := model.WorkflowResolved
	decision := "APPROVED"
	if !input.Approve {
		status = model.WorkflowRejected
		decision = "REJECTED"
	}

	affected, err := s.repo.Resolve(id, status, decision)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// 不存在或已是终态
		if _, err := s.repo.FindByID(id); err != nil {
			return nil, err
		}
		return nil, util.ErrWorkflowResolved
	}

	return s.repo.FindByID(id)
}
