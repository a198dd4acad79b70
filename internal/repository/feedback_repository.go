package repository

import (
	"github.com/sohinisarkar2002/EduAssist/internal/model"
	"gorm.io/gorm"
)

type FeedbackRepository struct {
	DB *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{DB: db}
}

func (r *FeedbackRepository) Create(fb *model.Feedback) error {
	return r.DB.Create(fb).Error
}

// FindByTarget 按目标类型列出, targetID为0时不限定具体对象
func (r *FeedbackRepository) FindByTarget(targetType model.FeedbackTarget, targetID uint) ([]model.Feedback, error) {
	var list []model.Feedback
	q := r.DB.Preload("User").Order("created_at DESC")
	if targetType != "" {
		q = q.Where("target_type = ?", targetType)
	}
	if targetID != 0 {
		q = q.Where("target_id = ?", targetID)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *FeedbackRepository) FindByUser(userID uint) ([]model.Feedback, error) {
	var list []model.Feedback
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

// AverageRating 按目标类型统计平均分
func (r *FeedbackRepository) AverageRating(targetType model.FeedbackTarget) (float64, int64, error) {
	var stats struct {
		Avg   float64
		Count int64
	}
	q := r.DB.Model(&model.Feedback{}).
		Select("COALESCE(AVG(rating),0) AS avg, COUNT(*) AS count")
	if targetType != "" {
		q = q.Where("target_type = ?", targetType)
	}
	err := q.Scan(&stats).Error
	return stats.Avg, stats.Count, err
}
