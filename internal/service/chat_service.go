package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sohinisarkar2002/EduAssist/internal/model"
	"github.com/sohinisarkar2002/EduAssist/internal/repository"
	"github.com/sohinisarkar2002/EduAssist/internal/util"
	"github.com/sohinisarkar2002/EduAssist/pkg/logger"
	"go.uber.org/zap"
)

const (
	chatHistoryWindow = 10
	chatContextChunks = 3
)

// LLM调用失败时的兜底回复
const chatApologyReply = "I'm sorry, I couldn't process your question right now. " +
	"Please try again, or wait for a teaching assistant to follow up here."

type ChatService struct {
	convRepo *repository.ConversationRepository
	rag      *RAGService
	ai       AIClient
}

func NewChatService(convRepo *repository.ConversationRepository, rag *RAGService, ai AIClient) *ChatService {
	return &ChatService{convRepo: convRepo, rag: rag, ai: ai}
}

func (s *ChatService) CreateConversation(studentID, courseID uint) (*model.Conversation, error) {
	conv := &model.Conversation{
		StudentID: studentID,
		CourseID:  courseID,
		Status:    model.ConversationActive,
	}
	if err := s.convRepo.Create(conv); err != nil {
		return nil, err
	}
	return conv, nil
}

func (s *ChatService) ListConversations(viewer *util.Claims) ([]model.Conversation, error) {
	if viewer.Role == model.Student {
		return s.convRepo.FindByStudent(viewer.UserID)
	}
	return s.convRepo.FindEscalated()
}

func (s *ChatService) GetConversation(id uint, viewer *util.Claims) (*model.Conversation, error) {
	conv, err := s.convRepo.FindByIDWithMessages(id)
	if err != nil {
		return nil, err
	}
	if viewer.Role == model.Student && conv.StudentID != viewer.UserID {
		return nil, util.ErrPermissionDenied
	}
	return conv, nil
}

func (s *ChatService) UpdateStatus(id uint, status model.ConversationStatus, viewer *util.Claims) error {
	conv, err := s.convRepo.FindByID(id)
	if err != nil {
		return err
	}
	if viewer.Role == model.Student && conv.StudentID != viewer.UserID {
		return util.ErrPermissionDenied
	}
	return s.convRepo.UpdateStatus(id, status)
}

type ChatReply struct {
	StudentMessage *model.Message `json:"studentMessage"`
	AIMessage      *model.Message `json:"aiMessage"`
	ShouldEscalate bool           `json:"shouldEscalate"`
}

// Ask 检索增强问答。回答永远会生成, 置信度不足只是建议升级给TA,
// 会话状态由前端通过status接口显式变更。
func (s *ChatService) Ask(ctx context.Context, conversationID uint, student *util.Claims, question string) (*ChatReply, error) {
	conv, err := s.convRepo.FindByID(conversationID)
	if err != nil {
		return nil, err
	}
	if conv.StudentID != student.UserID {
		return nil, util.ErrPermissionDenied
	}

	studentMsg := &model.Message{
		ConversationID: conversationID,
		SenderType:     model.SenderStudent,
		Content:        question,
	}
	if err := s.convRepo.AddMessage(studentMsg); err != nil {
		return nil, err
	}

	chunks, confidence, err := s.rag.Retrieve(ctx, question, conv.CourseID)
	if err != nil {
		logger.Log.Warn("retrieval failed, answering without context",
			zap.Uint("conversationID", conversationID), zap.Error(err))
		chunks, confidence = nil, 0
	}
	if len(chunks) > chatContextChunks {
		chunks = chunks[:chatContextChunks]
	}

	history, err := s.history(conversationID, studentMsg.ID)
	if err != nil {
		return nil, err
	}

	answer, err := s.ai.ChatWithHistory(ctx, buildChatSystemPrompt(chunks), history, question)
	if err != nil {
		logger.Log.Error("chat completion failed",
			zap.Uint("conversationID", conversationID), zap.Error(err))
		answer = chatApologyReply
		confidence = 0
	}

	sources, _ := json.Marshal(sourceTitles(chunks))
	aiMsg := &model.Message{
		ConversationID:  conversationID,
		SenderType:      model.SenderAI,
		Content:         answer,
		ConfidenceScore: &confidence,
		Sources:         sources,
	}
	if err := s.convRepo.AddMessage(aiMsg); err != nil {
		return nil, err
	}

	return &ChatReply{
		StudentMessage: studentMsg,
		AIMessage:      aiMsg,
		ShouldEscalate: !s.rag.Confident(confidence),
	}, nil
}

// history 取最近几条消息作为多轮上下文, 排除刚写入的提问
func (s *ChatService) history(conversationID, excludeID uint) ([]AIChatMessage, error) {
	msgs, err := s.convRepo.RecentMessages(conversationID, chatHistoryWindow)
	if err != nil {
		return nil, err
	}

	var history []AIChatMessage
	for _, m := range msgs {
		if m.ID == excludeID {
			continue
		}
		role := "user"
		if m.SenderType == model.SenderAI {
			role = "assistant"
		}
		history = append(history, AIChatMessage{Role: role, Content: m.Content})
	}
	return history, nil
}

// TAReply TA人工跟进升级的会话
func (s *ChatService) TAReply(conversationID uint, content string) (*model.Message, error) {
	if _, err := s.convRepo.FindByID(conversationID); err != nil {
		return nil, err
	}
	msg := &model.Message{
		ConversationID: conversationID,
		SenderType:     model.SenderTA,
		Content:        content,
	}
	if err := s.convRepo.AddMessage(msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func buildChatSystemPrompt(chunks []RetrievedChunk) string {
	if len(chunks) == 0 {
		return "You are a helpful teaching assistant. Answer the student's question honestly; " +
			"if you are unsure, say so and suggest asking a teaching assistant."
	}

	var b strings.Builder
	b.WriteString("You are a helpful teaching assistant. Answer the student's question using ONLY the course material below. " +
		"If the material does not cover the question, say so honestly.\n\n**Course Material:**\n")
	for i, c := range chunks {
		fmt.Fprintf(&b, "\n[Source %d: %s]\n%s\n", i+1, c.Title, c.Content)
	}
	return b.String()
}

func sourceTitles(chunks []RetrievedChunk) []string {
	seen := make(map[string]struct{})
	titles := []string{}
	for _, c := range chunks {
		if _, ok := seen[c.Title]; ok || c.Title == "" {
			continue
		}
		seen[c.Title] = struct{}{}
		titles = append(titles, c.Title)
	}
	return titles
}
