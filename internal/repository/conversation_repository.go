package repository

import (
	"time"

	"github.com/sohinisarkar2002/EduAssist/internal/model"
	"gorm.io/gorm"
)

type ConversationRepository struct {
	DB *gorm.DB
}

func NewConversationRepository(db *gorm.DB) *ConversationRepository {
	return &ConversationRepository{DB: db}
}

func (r *ConversationRepository) Create(conv *model.Conversation) error {
	return r.DB.Create(conv).Error
}

func (r *ConversationRepository) FindByID(id uint) (*model.Conversation, error) {
	var conv model.Conversation
	err := r.DB.First(&conv, id).Error
	return &conv, err
}

func (r *ConversationRepository) FindByIDWithMessages(id uint) (*model.Conversation, error) {
	var conv model.Conversation
	err := r.DB.Preload("Messages", func(db *gorm.DB) *gorm.DB {
		return db.Order("messages.created_at")
	}).First(&conv, id).Error
	return &conv, err
}

func (r *ConversationRepository) FindByStudent(studentID uint) ([]model.Conversation, error) {
	var convs []model.Conversation
	err := r.DB.Where("student_id = ?", studentID).
		Order("COALESCE(last_message_at, created_at) DESC").
		Find(&convs).Error
	return convs, err
}

// FindEscalated TA工作台展示所有升级的会话
func (r *ConversationRepository) FindEscalated() ([]model.Conversation, error) {
	var convs []model.Conversation
	err := r.DB.Where("status = ?", model.ConversationEscalated).
		Order("COALESCE(last_message_at, created_at) DESC").
		Find(&convs).Error
	return convs, err
}

func (r *ConversationRepository) Update(conv *model.Conversation) error {
	return r.DB.Save(conv).Error
}

func (r *ConversationRepository) UpdateStatus(id uint, status model.ConversationStatus) error {
	return r.DB.Model(&model.Conversation{}).
		Where("id = ?", id).
		Update("status", status).
		Error
}

func (r *ConversationRepository) AddMessage(msg *model.Message) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}
		return tx.Model(&model.Conversation{}).
			Where("id = ?", msg.ConversationID).
			Update("last_message_at", time.Now()).
			Error
	})
}

func (r *ConversationRepository) RecentMessages(conversationID uint, limit int) ([]model.Message, error) {
	var msgs []model.Message
	err := r.DB.Where("conversation_id = ?", conversationID).
		Order("created_at DESC").
		Limit(limit).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	// 倒序查出来的按时间正序返回
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}
